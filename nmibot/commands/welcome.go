package commands

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/oldgods/nmibot/internal/gateways/platform"
	"github.com/oldgods/nmibot/nmibot"
	"github.com/oldgods/nmibot/nmibot/utils"
)

var CreateWelcomeMessage = discord.SlashCommandCreate{
	Name:        "create-welcome-message",
	Description: "Post the chapter list with the registration button in this channel",
}

func CreateWelcomeMessageHandler(b *nmibot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !b.Secrets.Current().Authorized(e.User().ID) {
			return utils.EphemeralError(e, utils.PermissionError, "You are not allowed to post the welcome message.")
		}

		r := b.Chapters.Current()
		if r.Count() == 0 {
			return utils.EphemeralError(e, utils.NotFoundError, "No chapters are configured yet.")
		}
		return e.CreateMessage(platform.WelcomeMessage(r))
	}
}
