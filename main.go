package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	"osinbot/pkg/bot"
	"osinbot/pkg/chat"
	"osinbot/pkg/config"
	"osinbot/pkg/gemini"
	"osinbot/pkg/session"
	"osinbot/pkg/tone"
)

func main() {
	// Load config.yml
	cfg, err := config.LoadConfig("config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load .env for secrets
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	token := os.Getenv("DISCORD_TOKEN")
	geminiKey := os.Getenv("GEMINI_API_KEY")

	// Check each required environment variable individually for better error messages
	if token == "" {
		log.Fatal("Missing required environment variable: DISCORD_TOKEN")
	}
	if geminiKey == "" {
		log.Fatal("Missing required environment variable: GEMINI_API_KEY")
	}

	requestTimeout := time.Duration(cfg.Limits.RequestTimeoutSeconds) * time.Second

	// Initialize Gemini Client
	geminiClient, err := gemini.NewClient(context.Background(), geminiKey,
		cfg.ModelSettings.ChatModel, cfg.ModelSettings.ImageModel, cfg.ModelSettings.Temperature)
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}
	log.Printf("Gemini client initialized (chat: %s, image: %s)", cfg.ModelSettings.ChatModel, cfg.ModelSettings.ImageModel)

	// Initialize Conversation Core
	tones := tone.NewRegistry()
	store := session.NewStore()
	manager := chat.NewManager(geminiClient, store, tones, requestTimeout)
	images := chat.NewImageRequestHandler(geminiClient, requestTimeout)

	// Initialize Bot Handler
	handler := bot.NewHandler(
		manager,
		images,
		geminiClient,
		cfg.Limits.ReplyMaxChars,
		cfg.Limits.SummaryMaxMessages,
		requestTimeout,
	)

	// Create Discord Session
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		log.Fatalf("Error creating Discord session: %v", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentMessageContent

	// Register Handlers
	dg.AddHandler(handler.MessageCreate)
	dg.AddHandler(handler.InteractionCreate)

	// Open Connection
	if err := dg.Open(); err != nil {
		log.Fatalf("Error opening connection: %v", err)
	}

	// Set Bot ID in handler (so it can ignore itself)
	handler.SetBotID(dg.State.User.ID)

	// Register slash commands (empty string = global, or specify guild ID for faster testing)
	guildID := os.Getenv("DISCORD_GUILD_ID") // Optional: set this for faster command updates during development
	registeredCommands, err := bot.RegisterSlashCommands(dg, guildID)
	if err != nil {
		log.Fatalf("Error registering slash commands: %v", err)
	}

	// Cleanup function to unregister commands on shutdown
	defer func() {
		if err := bot.UnregisterSlashCommands(dg, guildID, registeredCommands); err != nil {
			log.Printf("Error unregistering slash commands: %v", err)
		}
	}()

	log.Println("Ô sin is now running. Press CTRL-C to exit.")

	// Set Custom Status
	err = dg.UpdateStatusComplex(discordgo.UpdateStatusData{
		Activities: []*discordgo.Activity{
			{
				Name:  "Custom Status",
				Type:  discordgo.ActivityTypeCustom,
				State: "Ô sin phục vụ quý ông/bà chủ 🫡",
			},
		},
		Status: "online",
	})
	if err != nil {
		log.Printf("Error setting custom status: %v", err)
	}

	// Wait for signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	dg.Close()
}
