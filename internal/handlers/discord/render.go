package discord

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/rollit/internal/history"
	"github.com/KirkDiggler/rollit/internal/roll"
	"github.com/bwmarrin/discordgo"
)

// dieFaces maps roll values to their emoji for six-sided dice
var dieFaces = map[int]string{
	1: "⚀",
	2: "⚁",
	3: "⚂",
	4: "⚃",
	5: "⚄",
	6: "⚅",
}

// maxRecentRolls is how many history entries the roll embed shows
const maxRecentRolls = 5

// renderRollEmbed renders the result of a completed roll
func renderRollEmbed(state roll.State) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{
			Name:   "Total Rolls",
			Value:  fmt.Sprintf("%d", len(state.History)),
			Inline: true,
		},
	}

	if recent := formatRolls(state.History, maxRecentRolls); recent != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Recent",
			Value:  recent,
			Inline: true,
		})
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("You rolled a %d %s", state.CurrentRoll, dieFace(state.CurrentRoll)),
		Description: "Roll again or check the history below.",
		Color:       0x00ff00, // Green color
		Fields:      fields,
	}
}

// renderUndoEmbed renders the state after an undo
func renderUndoEmbed(state roll.State) *discordgo.MessageEmbed {
	title := "Last roll removed"
	description := fmt.Sprintf("Current roll is now %d %s", state.CurrentRoll, dieFace(state.CurrentRoll))
	if len(state.History) == 0 {
		description = "No rolls left in the history."
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       0x00ff00, // Green color
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Total Rolls",
				Value:  fmt.Sprintf("%d", len(state.History)),
				Inline: true,
			},
		},
	}
}

// renderHistoryEmbed renders the full-history screen
func renderHistoryEmbed(panel *history.State) *discordgo.MessageEmbed {
	if panel == nil || len(panel.Rolls) == 0 {
		return &discordgo.MessageEmbed{
			Title:       "Roll History",
			Description: "No rolls yet. Try `/dice roll`!",
			Color:       0x0000ff, // Blue color
		}
	}

	var lines []string
	for n, value := range panel.Rolls {
		lines = append(lines, fmt.Sprintf("%d. %s %d", n+1, dieFace(value), value))
	}

	return &discordgo.MessageEmbed{
		Title:       "Roll History",
		Description: strings.Join(lines, "\n"),
		Color:       0x0000ff, // Blue color
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Most recent first",
		},
	}
}

// rollActionsRow builds the buttons shown under a roll result
func rollActionsRow() discordgo.MessageComponent {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Roll Again",
				Style:    discordgo.PrimaryButton,
				CustomID: ButtonRollAgain,
				Emoji: &discordgo.ComponentEmoji{
					Name: "🎲",
				},
			},
			discordgo.Button{
				Label:    "History",
				Style:    discordgo.SecondaryButton,
				CustomID: ButtonShowHistory,
			},
		},
	}
}

// formatRolls joins the first limit rolls as die faces
func formatRolls(rolls []int, limit int) string {
	if len(rolls) == 0 {
		return ""
	}

	if len(rolls) > limit {
		rolls = rolls[:limit]
	}

	faces := make([]string, 0, len(rolls))
	for _, value := range rolls {
		faces = append(faces, dieFace(value))
	}

	return strings.Join(faces, " ")
}

// dieFace returns the emoji for a roll value, falling back to the number
func dieFace(value int) string {
	if face, ok := dieFaces[value]; ok {
		return face
	}
	return fmt.Sprintf("%d", value)
}
