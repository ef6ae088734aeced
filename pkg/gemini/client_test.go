package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: content}},
	}
}

func TestBlockReason_PromptFeedback(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		PromptFeedback: &genai.GenerateContentResponsePromptFeedback{
			BlockReason: genai.BlockedReasonSafety,
		},
	}
	assert.Equal(t, "SAFETY", blockReason(resp))
}

func TestBlockReason_SafetyFinish(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
	}
	assert.Equal(t, "SAFETY", blockReason(resp))
}

func TestBlockReason_CleanResponse(t *testing.T) {
	assert.Empty(t, blockReason(textResponse("hello")))
}

func TestResponseText(t *testing.T) {
	text, err := responseText(textResponse("Xin chào ", "quý ngài!"))
	require.NoError(t, err)
	assert.Equal(t, "Xin chào quý ngài!", text)
}

func TestResponseText_NoCandidates(t *testing.T) {
	_, err := responseText(&genai.GenerateContentResponse{})
	assert.Error(t, err)
}

func TestResponseText_EmptyParts(t *testing.T) {
	_, err := responseText(textResponse("  "))
	assert.Error(t, err)
}

func TestFirstImage(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "here is your image"},
				{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte{0x89, 0x50, 0x4e, 0x47}}},
			}},
		}},
	}

	img := firstImage(resp)
	require.NotNil(t, img)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Len(t, img.Data, 4)
}

func TestFirstImage_TextOnly(t *testing.T) {
	assert.Nil(t, firstImage(textResponse("no image here")))
}

func TestFirstImage_IgnoresNonImageData(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: "application/octet-stream", Data: []byte{1}}},
			}},
		}},
	}
	assert.Nil(t, firstImage(resp))
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(t.Context(), "", "gemini-2.0-flash", "img-model", 1.0)
	assert.Error(t, err)
}
