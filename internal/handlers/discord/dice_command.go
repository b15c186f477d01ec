package discord

import (
	"errors"

	"github.com/bwmarrin/discordgo"
)

// DiceCommand handles the /dice command
type DiceCommand struct {
	BaseCommand
	bot *Bot
}

// NewDiceCommand creates a new dice command handler
func NewDiceCommand(bot *Bot) *DiceCommand {
	return &DiceCommand{
		BaseCommand: BaseCommand{
			Name:        "dice",
			Description: "Roll a die and keep a running history",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "roll",
					Description: "Roll the die",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "undo",
					Description: "Remove the most recent roll",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "reset",
					Description: "Clear the roll history",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "history",
					Description: "Show the full roll history",
				},
			},
		},
		bot: bot,
	}
}

// Handle processes a Discord interaction for the dice command
func (c *DiceCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	channelID := i.ChannelID

	// Handle the appropriate subcommand
	var err error
	switch data.Options[0].Name {
	case "roll":
		err = c.bot.handleRoll(s, i, channelID)
	case "undo":
		err = c.bot.handleUndo(s, i, channelID)
	case "reset":
		err = c.bot.handleReset(s, i, channelID)
	case "history":
		err = c.bot.handleShowHistory(s, i, channelID)
	default:
		err = errors.New("unknown subcommand")
	}

	return err
}
