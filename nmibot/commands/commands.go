package commands

import "github.com/disgoorg/disgo/discord"

var Commands = []discord.ApplicationCommandCreate{
	CreateWelcomeMessage,
	Chapters,
	Chapter,
	OnboardingStatus,
	Version,
}
