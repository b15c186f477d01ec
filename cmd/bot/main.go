package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rollit/internal/common/clock"
	"github.com/KirkDiggler/rollit/internal/common/uuid"
	"github.com/KirkDiggler/rollit/internal/dice"
	"github.com/KirkDiggler/rollit/internal/handlers/discord"
	"github.com/KirkDiggler/rollit/internal/roll"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// config is loaded from the environment, optionally seeded from .env
type config struct {
	DiscordToken  string        `env:"DISCORD_TOKEN,required"`
	ApplicationID string        `env:"APPLICATION_ID"`
	GuildID       string        `env:"GUILD_ID"`
	RollDelay     time.Duration `env:"ROLL_DELAY" envDefault:"500ms"`
	DieSides      int           `env:"DIE_SIDES" envDefault:"6"`
}

func main() {
	// Load .env if present; real environments set variables directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env: %v", err)
	}

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("Failed to parse config: %v", err)
	}

	// Initialize dice roller
	diceRoller := dice.New(&dice.Config{})

	systemClock := &clock.DefaultClock{}

	// Initialize the roll reducer shared by every channel session
	reducer, err := roll.New(&roll.Config{
		DiceRoller: diceRoller,
		Clock:      systemClock,
		RollDelay:  cfg.RollDelay,
		DieSides:   cfg.DieSides,
	})
	if err != nil {
		log.Fatalf("Failed to create roll reducer: %v", err)
	}

	// Initialize Discord bot
	bot, err := discord.New(&discord.Config{
		Token:         cfg.DiscordToken,
		ApplicationID: cfg.ApplicationID,
		GuildID:       cfg.GuildID,
		Reducer:       reducer,
		Clock:         systemClock,
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		log.Fatalf("Failed to create Discord bot: %v", err)
	}

	// Start the bot
	if err := bot.Start(); err != nil {
		log.Fatalf("Failed to start Discord bot: %v", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Shutdown the bot
	if err := bot.Stop(); err != nil {
		log.Printf("Error stopping bot: %v", err)
	}

	log.Println("Bot has been shut down")
}
