package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/KirkDiggler/rollit/internal/common/clock"
	"github.com/KirkDiggler/rollit/internal/common/uuid"
	"github.com/KirkDiggler/rollit/internal/roll"
	"github.com/KirkDiggler/rollit/internal/store"
	"github.com/bwmarrin/discordgo"
)

// defaultRollTimeout bounds how long a handler waits for a delayed
// roll result before giving up on editing the message
const defaultRollTimeout = 5 * time.Second

// channelSession ties a Discord channel to its own dice store
type channelSession struct {
	ID        string
	ChannelID string
	CreatedAt time.Time
	Store     *store.Store[roll.State, roll.Action]
}

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	config     *Config

	mu       sync.Mutex
	sessions map[string]*channelSession // Keyed by channel ID
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	// Reducer drives every channel's dice store
	Reducer *roll.Reducer

	// Clock bounds waits for delayed roll results
	Clock clock.Clock

	// UUIDGenerator mints channel session IDs
	UUIDGenerator uuid.UUID

	// RollTimeout overrides defaultRollTimeout when positive
	RollTimeout time.Duration
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Token == "" {
		return nil, errors.New("token cannot be empty")
	}

	if cfg.Reducer == nil {
		return nil, errors.New("reducer cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	if cfg.UUIDGenerator == nil {
		return nil, errors.New("UUID generator cannot be nil")
	}

	// Create a new Discord session
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		config:     cfg,
		sessions:   make(map[string]*channelSession),
	}

	// Register the interaction handler
	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	// Register the dice command
	diceCmd := NewDiceCommand(b)
	if err := b.RegisterCommand(diceCmd); err != nil {
		return fmt.Errorf("failed to register dice command: %w", err)
	}

	log.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	// Remove all commands
	appID := b.config.ApplicationID
	if appID == "" {
		appID = b.session.State.User.ID
	}

	guildID := ""
	if b.config.GuildID != "" {
		guildID = b.config.GuildID
	}

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, guildID, cmdID); err != nil {
			log.Printf("Failed to delete command %s (ID: %s): %v", cmdName, cmdID, err)
		} else {
			log.Printf("Successfully deleted command %s (ID: %s)", cmdName, cmdID)
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	// Register the command with Discord
	appID := b.config.ApplicationID
	if appID == "" {
		// Fall back to session user ID if application ID is not provided
		appID = b.session.State.User.ID
	}

	// If guild ID is provided, register command for that specific guild
	// Otherwise, register it globally
	guildID := ""
	if b.config.GuildID != "" {
		guildID = b.config.GuildID
		log.Printf("Registering command %s for guild %s", cmd.GetName(), guildID)
	} else {
		log.Printf("Registering command %s globally", cmd.GetName())
	}

	createdCmd, err := b.session.ApplicationCommandCreate(appID, guildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	// Store the command handler and its ID
	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	log.Printf("Registered command: %s with ID: %s", cmd.GetName(), createdCmd.ID)

	return nil
}

// Button IDs
const (
	ButtonRollAgain   = "roll_again"
	ButtonShowHistory = "show_history"
)

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	// Handle different interaction types
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		// Handle slash commands
		if h, ok := b.commands[i.ApplicationCommandData().Name]; ok {
			if err := h.Handle(s, i); err != nil {
				log.Printf("Error handling command %s: %v", i.ApplicationCommandData().Name, err)
			}
		}
	case discordgo.InteractionMessageComponent:
		// Handle buttons and other components
		if err := b.handleComponentInteraction(s, i); err != nil {
			log.Printf("Error handling component interaction: %v", err)
		}
	}
}

// handleComponentInteraction handles button clicks
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	// Get the custom ID of the component
	customID := i.MessageComponentData().CustomID

	switch customID {
	case ButtonRollAgain:
		return b.handleRoll(s, i, i.ChannelID)
	case ButtonShowHistory:
		return b.handleShowHistory(s, i, i.ChannelID)
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown button: %s", customID))
	}
}

// channelSessionFor returns the dice session for a channel, creating it
// on first use. Each channel owns one store; its history lives as long
// as the process.
func (b *Bot) channelSessionFor(channelID string) (*channelSession, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sess, ok := b.sessions[channelID]; ok {
		return sess, nil
	}

	diceStore, err := store.New(&store.Config[roll.State, roll.Action]{
		InitialState: roll.State{},
		Reducer:      b.config.Reducer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create store for channel %s: %w", channelID, err)
	}

	sess := &channelSession{
		ID:        b.config.UUIDGenerator.NewUUID(),
		ChannelID: channelID,
		CreatedAt: b.config.Clock.Now(),
		Store:     diceStore,
	}
	b.sessions[channelID] = sess

	log.Printf("Created dice session %s for channel %s", sess.ID, channelID)
	return sess, nil
}

// handleRoll requests a roll, acknowledges immediately, and edits the
// response once the delayed result lands.
func (b *Bot) handleRoll(s *discordgo.Session, i *discordgo.InteractionCreate, channelID string) error {
	sess, err := b.channelSessionFor(channelID)
	if err != nil {
		log.Printf("Error getting session: %v", err)
		return RespondWithError(s, i, "Could not start a dice session for this channel")
	}

	// Watch for the completed roll before dispatching so the result
	// cannot slip past us. The subscriber must not block: the store
	// notifies synchronously.
	result := make(chan roll.State, 1)
	cancel := sess.Store.Subscribe(func(state roll.State) {
		if state.IsRolling || state.CurrentRoll == 0 {
			return
		}
		select {
		case result <- state:
		default:
		}
	})

	sess.Store.Dispatch(context.Background(), roll.RequestRoll{})

	if err := RespondWithMessage(s, i, "Rolling... 🎲"); err != nil {
		cancel()
		return err
	}

	timeout := b.config.RollTimeout
	if timeout <= 0 {
		timeout = defaultRollTimeout
	}

	go func() {
		defer cancel()

		select {
		case state := <-result:
			embed := renderRollEmbed(state)
			content := ""
			components := []discordgo.MessageComponent{rollActionsRow()}
			if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
				Content:    &content,
				Embeds:     &[]*discordgo.MessageEmbed{embed},
				Components: &components,
			}); err != nil {
				log.Printf("Failed to edit roll response: %v", err)
			}
		case <-b.config.Clock.After(timeout):
			log.Printf("Timed out waiting for roll result in channel %s", channelID)
		}
	}()

	return nil
}

// handleUndo removes the most recent roll and shows the updated state
func (b *Bot) handleUndo(s *discordgo.Session, i *discordgo.InteractionCreate, channelID string) error {
	sess, err := b.channelSessionFor(channelID)
	if err != nil {
		log.Printf("Error getting session: %v", err)
		return RespondWithError(s, i, "Could not start a dice session for this channel")
	}

	sess.Store.Dispatch(context.Background(), roll.UndoLastRoll{})

	state := sess.Store.State()
	return RespondWithEmbed(s, i, renderUndoEmbed(state))
}

// handleReset clears the channel's roll history
func (b *Bot) handleReset(s *discordgo.Session, i *discordgo.InteractionCreate, channelID string) error {
	sess, err := b.channelSessionFor(channelID)
	if err != nil {
		log.Printf("Error getting session: %v", err)
		return RespondWithError(s, i, "Could not start a dice session for this channel")
	}

	sess.Store.Dispatch(context.Background(), roll.ResetHistory{})

	return RespondWithMessage(s, i, "History cleared. Fresh dice! 🎲")
}

// handleShowHistory presents the full-history screen as an embed. The
// sent message is the presented screen; once rendered the panel is
// dismissed again since Discord messages outlive the interaction.
func (b *Bot) handleShowHistory(s *discordgo.Session, i *discordgo.InteractionCreate, channelID string) error {
	sess, err := b.channelSessionFor(channelID)
	if err != nil {
		log.Printf("Error getting session: %v", err)
		return RespondWithError(s, i, "Could not start a dice session for this channel")
	}

	ctx := context.Background()
	sess.Store.Dispatch(ctx, roll.ShowHistory{})

	state := sess.Store.State()
	embed := renderHistoryEmbed(state.HistoryPanel)

	sess.Store.Dispatch(ctx, roll.DismissHistory{})

	return RespondWithEmbed(s, i, embed)
}
