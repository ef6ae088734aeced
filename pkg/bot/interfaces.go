package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"osinbot/pkg/chat"
	"osinbot/pkg/tone"
)

// Session interface abstracts discordgo.Session for testing
type Session interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendReply(channelID string, content string, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelTyping(channelID string, options ...discordgo.RequestOption) (err error)
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

// DiscordSession adapts discordgo.Session to the Session interface
type DiscordSession struct {
	*discordgo.Session
}

func (s *DiscordSession) Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	return s.Session.Channel(channelID, options...)
}

func (s *DiscordSession) ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error) {
	return s.Session.ChannelMessages(channelID, limit, beforeID, afterID, aroundID, options...)
}

// Conversation is the core the bot talks to: session-backed chat plus tone
// configuration. Implemented by chat.Manager.
type Conversation interface {
	Send(ctx context.Context, guildID, channelID, userID, displayName, text string) (string, error)
	Clear(channelID, userID string) bool
	SetTone(guildID string, level int, actorIsAdmin bool) (tone.Level, error)
	InvalidateGuild(guildID string, resolve chat.GuildResolver) int
}

// ImageGenerator produces one image per prompt. Implemented by
// chat.ImageRequestHandler.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (*chat.Image, error)
}

// Summarizer runs a one-shot text generation, used for channel summaries.
// Implemented by gemini.Client.
type Summarizer interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}
