package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"osinbot/pkg/chat"
	"osinbot/pkg/session"
)

// Client wraps the Gemini API for chat sessions, one-shot text and image
// generation. It implements chat.Provider, chat.ImageProvider and the
// bot-side Summarizer interface.
type Client struct {
	client      *genai.Client
	chatModel   string
	imageModel  string
	temperature float32
}

func NewClient(ctx context.Context, apiKey, chatModel, imageModel string, temperature float64) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{
		client:      client,
		chatModel:   chatModel,
		imageModel:  imageModel,
		temperature: float32(temperature),
	}, nil
}

// StartChat opens a conversation seeded with the tone's system prompt as the
// hidden system instruction. The returned handle owns the turn history.
func (c *Client) StartChat(ctx context.Context, systemPrompt string) (session.Chat, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
	}

	ch, err := c.client.Chats.Create(ctx, c.chatModel, config, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}
	return &chatSession{chat: ch}, nil
}

type chatSession struct {
	chat *genai.Chat
}

func (s *chatSession) Send(ctx context.Context, text string) (string, error) {
	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return "", err
	}
	if reason := blockReason(resp); reason != "" {
		return "", &chat.BlockedError{Reason: reason}
	}
	return responseText(resp)
}

// GenerateText runs a one-shot generation with no session, used for channel
// summaries.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.chatModel, genai.Text(prompt), config)
	if err != nil {
		return "", err
	}
	if reason := blockReason(resp); reason != "" {
		return "", &chat.BlockedError{Reason: reason}
	}
	return responseText(resp)
}

// GenerateImage asks the image model for a single image. The instruction
// wrapper matches the tone prompts' Vietnamese register.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (*chat.Image, error) {
	imagePrompt := fmt.Sprintf("Tạo một hình ảnh chi tiết dựa trên mô tả sau: %q. Chỉ trả về dữ liệu hình ảnh.", prompt)

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.imageModel, genai.Text(imagePrompt), config)
	if err != nil {
		return nil, err
	}
	if reason := blockReason(resp); reason != "" {
		return nil, &chat.BlockedError{Reason: reason}
	}

	img := firstImage(resp)
	if img == nil {
		return nil, fmt.Errorf("no image data in response")
	}
	return img, nil
}

// blockReason extracts a content-policy reason code from a response, either
// from prompt feedback or from a safety finish on the candidate. Empty means
// not blocked.
func blockReason(resp *genai.GenerateContentResponse) string {
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return string(resp.PromptFeedback.BlockReason)
	}
	for _, cand := range resp.Candidates {
		if cand.FinishReason == genai.FinishReasonSafety {
			return string(genai.FinishReasonSafety)
		}
	}
	return ""
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response candidates returned")
	}
	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", fmt.Errorf("no content parts in response")
	}

	var b strings.Builder
	for _, part := range cand.Content.Parts {
		b.WriteString(part.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("empty response text")
	}
	return text, nil
}

func firstImage(resp *genai.GenerateContentResponse) *chat.Image {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && strings.HasPrefix(part.InlineData.MIMEType, "image/") {
				return &chat.Image{
					Data:     part.InlineData.Data,
					MIMEType: part.InlineData.MIMEType,
				}
			}
		}
	}
	return nil
}
