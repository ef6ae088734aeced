package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

type Handler struct {
	conv           Conversation
	images         ImageGenerator
	summarizer     Summarizer
	botID          string
	replyMaxChars  int
	summaryMaxMsgs int
	requestTimeout time.Duration
}

func NewHandler(conv Conversation, images ImageGenerator, summarizer Summarizer, replyMaxChars, summaryMaxMsgs int, requestTimeout time.Duration) *Handler {
	return &Handler{
		conv:           conv,
		images:         images,
		summarizer:     summarizer,
		replyMaxChars:  replyMaxChars,
		summaryMaxMsgs: summaryMaxMsgs,
		requestTimeout: requestTimeout,
	}
}

func (h *Handler) SetBotID(id string) {
	h.botID = id
}

func (h *Handler) MessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	h.HandleMessage(&DiscordSession{s}, m)
}

// HandleMessage replies when the bot is mentioned, routing the stripped
// content through the conversation core.
func (h *Handler) HandleMessage(s Session, m *discordgo.MessageCreate) {
	// Ignore own messages
	if m.Author.ID == h.botID {
		return
	}

	isMentioned := false
	for _, user := range m.Mentions {
		if user.ID == h.botID {
			isMentioned = true
			break
		}
	}
	if !isMentioned {
		return
	}

	cleaned := stripMention(m.Content, h.botID)
	name := displayName(m.Author)

	// Mentioned with nothing to say: greet instead of calling the model.
	if cleaned == "" {
		_, err := s.ChannelMessageSendReply(m.ChannelID, fmt.Sprintf("Kính chào %s! Nô tỳ có thể giúp gì được cho ngài ạ? 🫡", name), m.Reference())
		if err != nil {
			log.Printf("Error sending greeting: %v", err)
		}
		return
	}

	s.ChannelTyping(m.ChannelID)

	log.Printf("Message from %s (%s) in channel %s: %s", m.Author.Username, m.Author.ID, m.ChannelID, cleaned)

	reply, err := h.conv.Send(context.Background(), m.GuildID, m.ChannelID, m.Author.ID, name, cleaned)
	if err != nil {
		log.Printf("Error generating reply for %s/%s: %v", m.ChannelID, m.Author.ID, err)
		reply = renderChatError(err, name)
	}

	h.sendSplitMessage(s, m.ChannelID, truncate(reply, h.replyMaxChars), m.Reference())
}

// stripMention removes the first plain and nickname mention of the bot.
func stripMention(content, botID string) string {
	content = strings.Replace(content, "<@"+botID+">", "", 1)
	content = strings.Replace(content, "<@!"+botID+">", "", 1)
	return strings.TrimSpace(content)
}

func displayName(u *discordgo.User) string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

func (h *Handler) sendSplitMessage(s Session, channelID, content string, reference *discordgo.MessageReference) {
	// Replace \n\n with a special separator for multi-part messages
	content = strings.ReplaceAll(content, "\n\n", "---SPLIT---")
	parts := strings.Split(content, "---SPLIT---")

	isFirstPart := true
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		var err error
		if reference == nil {
			_, err = s.ChannelMessageSend(channelID, part)
		} else {
			if isFirstPart {
				// The first part of a reply pings the user by default
				_, err = s.ChannelMessageSendReply(channelID, part, reference)
				isFirstPart = false
			} else {
				// Subsequent parts are sent as replies without pinging the user
				_, err = s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
					Content:   part,
					Reference: reference,
					AllowedMentions: &discordgo.MessageAllowedMentions{
						RepliedUser: false,
					},
				})
			}
		}

		if err != nil {
			log.Printf("Error sending message part: %v", err)
		}
	}
}
