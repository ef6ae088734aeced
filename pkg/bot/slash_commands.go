package bot

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"osinbot/pkg/tone"
)

var adminPermission int64 = discordgo.PermissionAdministrator

// SlashCommands defines all available slash commands
var SlashCommands = []*discordgo.ApplicationCommand{
	{
		Name:        "chat",
		Description: "Chat with the AI assistant",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "message",
				Description: "What to say to the bot",
				Required:    true,
			},
		},
	},
	{
		Name:        "imagine",
		Description: "Generate an image from a description",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "prompt",
				Description: "Description of the image to generate",
				Required:    true,
			},
		},
	},
	{
		Name:        "clear_context",
		Description: "Clear your conversation history with the bot",
	},
	{
		Name:        "summary",
		Description: "Summarize recent chat messages in this channel",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "count",
				Description: "How many messages to summarize (default 10)",
			},
		},
	},
	{
		Name:                     "tone",
		Description:              "Set bot response tone for this server",
		DefaultMemberPermissions: &adminPermission,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "level",
				Description: "Tone level",
				Required:    true,
				Choices:     toneChoices(),
			},
		},
	},
}

func toneChoices() []*discordgo.ApplicationCommandOptionChoice {
	levels := tone.Levels()
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(levels))
	for _, l := range levels {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("%d - %s", l, tone.GetStrategy(l).Name),
			Value: int(l),
		})
	}
	return choices
}

// SlashCommandHandlers maps command names to their handler functions
var SlashCommandHandlers = map[string]func(h *Handler, s *discordgo.Session, i *discordgo.InteractionCreate){
	"chat":          handleChatCommand,
	"imagine":       handleImagineCommand,
	"clear_context": handleClearContextCommand,
	"summary":       handleSummaryCommand,
	"tone":          handleToneCommand,
}

func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

func optionByName(i *discordgo.InteractionCreate, name string) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == name {
			return opt
		}
	}
	return nil
}

func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

func followUp(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{Content: content}); err != nil {
		log.Printf("Error sending followup for /%s: %v", i.ApplicationCommandData().Name, err)
	}
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error responding to /%s: %v", i.ApplicationCommandData().Name, err)
	}
}

func handleChatCommand(h *Handler, s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	if user == nil {
		return
	}
	name := displayName(user)

	opt := optionByName(i, "message")
	if opt == nil {
		return
	}

	if err := deferResponse(s, i); err != nil {
		log.Printf("Error deferring /chat: %v", err)
		return
	}

	reply, err := h.conv.Send(context.Background(), i.GuildID, i.ChannelID, user.ID, name, opt.StringValue())
	if err != nil {
		log.Printf("Error in /chat for %s/%s: %v", i.ChannelID, user.ID, err)
		reply = renderChatError(err, name)
	}

	followUp(s, i, truncate(reply, h.replyMaxChars))
}

func handleImagineCommand(h *Handler, s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	if user == nil {
		return
	}
	name := displayName(user)

	opt := optionByName(i, "prompt")
	if opt == nil {
		return
	}
	prompt := opt.StringValue()

	if err := deferResponse(s, i); err != nil {
		log.Printf("Error deferring /imagine: %v", err)
		return
	}

	followUp(s, i, fmt.Sprintf("Ô sin đang tạo ảnh cho %s theo yêu cầu: %q... 🎨", name, prompt))

	img, err := h.images.Generate(context.Background(), prompt)
	if err != nil {
		log.Printf("Error in /imagine for %s: %v", user.ID, err)
		followUp(s, i, renderImageError(err, name))
		return
	}

	_, err = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: imageCaption(name, prompt),
		Files: []*discordgo.File{
			{
				Name:        generatedImageName,
				ContentType: "image/png",
				Reader:      bytes.NewReader(normalizeImage(img.Data)),
			},
		},
	})
	if err != nil {
		log.Printf("Error sending generated image: %v", err)
	}
}

func handleClearContextCommand(h *Handler, s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	if user == nil {
		return
	}
	name := displayName(user)

	var content string
	if h.conv.Clear(i.ChannelID, user.ID) {
		content = fmt.Sprintf("Ô sin đã xóa lịch sử trò chuyện của %s rồi ạ! 🫡", name)
		log.Printf("Context cleared for %s/%s", i.ChannelID, user.ID)
	} else {
		content = fmt.Sprintf("Thưa %s, không có lịch sử trò chuyện nào để xóa ạ! 🙏", name)
	}

	respondEphemeral(s, i, content)
}

func handleSummaryCommand(h *Handler, s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	if user == nil {
		return
	}
	name := displayName(user)

	count := 10
	if opt := optionByName(i, "count"); opt != nil {
		count = int(opt.IntValue())
	}

	if err := deferResponse(s, i); err != nil {
		log.Printf("Error deferring /summary: %v", err)
		return
	}

	if count < 1 {
		followUp(s, i, "Thưa ngài, số tin nhắn phải lớn hơn 0 ạ! 🙏")
		return
	}
	if count > h.summaryMaxMsgs {
		followUp(s, i, fmt.Sprintf("Ố dồi ôi, em chỉ có thể tóm tắt tối đa %d tin nhắn thôi ạ! 🙏", h.summaryMaxMsgs))
		return
	}

	messages, err := fetchRecentMessages(&DiscordSession{s}, i.ChannelID, count+1)
	if err != nil {
		log.Printf("Error fetching history for /summary: %v", err)
		followUp(s, i, fmt.Sprintf("Úi giời ơi, em không có quyền đọc lịch sử tin nhắn trong kênh này. %s thông cảm giúp nô tỳ nhé! 😔", name))
		return
	}

	lines := buildTranscript(messages, h.botID, i.ID, count)
	if len(lines) == 0 {
		followUp(s, i, fmt.Sprintf("Thưa %s, không có tin nhắn nào để tóm tắt ạ! 🙏", name))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.requestTimeout)
	defer cancel()

	summary, err := h.summarizer.GenerateText(ctx, summaryPrompt(lines))
	if err != nil {
		log.Printf("Error generating summary: %v", err)
		followUp(s, i, renderSummaryError(err, name))
		return
	}

	followUp(s, i, formatSummary(len(lines), summary))
}

func handleToneCommand(h *Handler, s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	if user == nil {
		return
	}
	name := displayName(user)

	if i.GuildID == "" {
		respondEphemeral(s, i, "Thưa ngài, lệnh này chỉ dùng được trong máy chủ ạ! 🙏")
		return
	}

	opt := optionByName(i, "level")
	if opt == nil {
		return
	}
	level := int(opt.IntValue())

	isAdmin := i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0

	prev, err := h.conv.SetTone(i.GuildID, level, isAdmin)
	if err != nil {
		log.Printf("Rejected /tone by %s in guild %s: %v", user.ID, i.GuildID, err)
		respondEphemeral(s, i, renderChatError(err, name))
		return
	}

	// Fast path: drop the guild's sessions now so the new tone applies
	// immediately instead of on the next message.
	removed := h.conv.InvalidateGuild(i.GuildID, guildResolver(s))
	log.Printf("Tone for guild %s: %d -> %d (%d session(s) invalidated)", i.GuildID, prev, level, removed)

	respondEphemeral(s, i, fmt.Sprintf("Tone đã đặt ở mức %d (%s)", level, tone.GetStrategy(tone.Level(level)).Name))
}

// guildResolver maps channels to guilds via the gateway state cache, falling
// back to the API. Channels that cannot be resolved report false and their
// sessions stay put.
func guildResolver(s *discordgo.Session) func(channelID string) (string, bool) {
	return func(channelID string) (string, bool) {
		if ch, err := s.State.Channel(channelID); err == nil {
			return ch.GuildID, ch.GuildID != ""
		}
		ch, err := s.Channel(channelID)
		if err != nil {
			return "", false
		}
		return ch.GuildID, ch.GuildID != ""
	}
}

// fetchRecentMessages pages through channel history newest-first until n
// messages are collected or the channel runs out.
func fetchRecentMessages(s Session, channelID string, n int) ([]*discordgo.Message, error) {
	var messages []*discordgo.Message
	beforeID := ""

	for len(messages) < n {
		batch := n - len(messages)
		if batch > 100 {
			batch = 100
		}

		page, err := s.ChannelMessages(channelID, batch, beforeID, "", "")
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		messages = append(messages, page...)
		beforeID = page[len(page)-1].ID
	}

	return messages, nil
}

// InteractionCreate handles all slash command interactions
func (h *Handler) InteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	commandName := i.ApplicationCommandData().Name

	if handler, ok := SlashCommandHandlers[commandName]; ok {
		handler(h, s, i)
	} else {
		log.Printf("Unknown slash command: %s", commandName)
	}
}

// RegisterSlashCommands registers all slash commands with Discord
func RegisterSlashCommands(s *discordgo.Session, guildID string) ([]*discordgo.ApplicationCommand, error) {
	log.Println("Registering slash commands...")

	registeredCommands := make([]*discordgo.ApplicationCommand, len(SlashCommands))

	for i, cmd := range SlashCommands {
		registeredCmd, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, cmd)
		if err != nil {
			log.Printf("Cannot create '%s' command: %v", cmd.Name, err)
			return nil, err
		}
		registeredCommands[i] = registeredCmd
		log.Printf("Registered command: %s", cmd.Name)
	}

	return registeredCommands, nil
}

// UnregisterSlashCommands removes all registered slash commands
func UnregisterSlashCommands(s *discordgo.Session, guildID string, commands []*discordgo.ApplicationCommand) error {
	log.Println("Unregistering slash commands...")

	for _, cmd := range commands {
		err := s.ApplicationCommandDelete(s.State.User.ID, guildID, cmd.ID)
		if err != nil {
			log.Printf("Cannot delete '%s' command: %v", cmd.Name, err)
			return err
		}
		log.Printf("Unregistered command: %s", cmd.Name)
	}

	return nil
}
