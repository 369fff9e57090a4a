package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
	"github.com/oldgods/nmibot/internal/domain/roster"
	"github.com/oldgods/nmibot/nmibot"
	"github.com/oldgods/nmibot/nmibot/utils"
)

const (
	chaptersPerPage = 10
	// Discord caps autocomplete responses at 25 choices
	maxChoices = 25
)

var Chapters = discord.SlashCommandCreate{
	Name:        "chapters",
	Description: "List every chapter with the number used in the registration form",
}

var Chapter = discord.SlashCommandCreate{
	Name:        "chapter",
	Description: "Look up a chapter by name",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:         "name",
			Description:  "Chapter name",
			Required:     true,
			Autocomplete: true,
		},
	},
}

func ChaptersHandler(b *nmibot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		r := b.Chapters.Current()
		if r.Count() == 0 {
			return utils.EphemeralError(e, utils.NotFoundError, "No chapters are configured yet.")
		}

		totalPages := (r.Count() + chaptersPerPage - 1) / chaptersPerPage
		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				embed.
					SetTitle("Chapters").
					SetDescription(chapterPage(r, page)).
					SetColor(utils.InfoColor).
					SetFooter(fmt.Sprintf("Page %d/%d • %d chapters", page+1, totalPages, r.Count()), "")
			},
			Pages:      totalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}

func chapterPage(r roster.Roster, page int) string {
	var description strings.Builder
	start := page * chaptersPerPage
	end := min(start+chaptersPerPage, r.Count())
	for i := start; i < end; i++ {
		c, _ := r.Chapter(i)
		description.WriteString(fmt.Sprintf("`%2d` **%s** <@&%s>\n", i, c.Name, c.Role()))
	}
	return description.String()
}

func ChapterHandler(b *nmibot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		query := e.SlashCommandInteractionData().String("name")

		match, err := b.Chapters.Current().Resolve(query)
		if err != nil {
			return utils.EphemeralError(e, utils.NotFoundError, fmt.Sprintf("No chapter matches `%s`.", query))
		}

		embed := discord.NewEmbedBuilder().
			SetTitle(match.Chapter.Name).
			SetColor(utils.InfoColor).
			AddField("Chapter Number", fmt.Sprintf("`%d`", match.Index), true).
			AddField("Role", fmt.Sprintf("<@&%s>", match.Chapter.Role()), true).
			Build()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{embed},
			Flags:  discord.MessageFlagEphemeral,
		})
	}
}

func ChapterAutocomplete(b *nmibot.Bot) handler.AutocompleteHandler {
	return func(e *handler.AutocompleteEvent) error {
		query := e.Data.String("name")
		matches := b.Chapters.Current().Find(query)

		choices := make([]discord.AutocompleteChoice, 0, min(len(matches), maxChoices))
		for _, m := range matches {
			if len(choices) == maxChoices {
				break
			}
			choices = append(choices, discord.AutocompleteChoiceString{
				Name:  fmt.Sprintf("[%d] %s", m.Index, m.Chapter.Name),
				Value: m.Chapter.Name,
			})
		}

		slog.Debug("Chapter autocomplete",
			slog.String("type", "cmd"),
			slog.String("query", query),
			slog.Int("matches", len(matches)),
		)
		return e.AutocompleteResult(choices)
	}
}
