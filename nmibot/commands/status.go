package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
	"github.com/oldgods/nmibot/internal/domain/onboarding"
	"github.com/oldgods/nmibot/internal/gateways/platform"
	"github.com/oldgods/nmibot/nmibot"
	"github.com/oldgods/nmibot/nmibot/utils"
)

var OnboardingStatus = discord.SlashCommandCreate{
	Name:        "onboarding-status",
	Description: "Show where a member is in onboarding",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "member",
			Description: "Member to look up",
			Required:    true,
		},
	},
}

var stageColor = map[onboarding.Stage]int{
	onboarding.NewMember:  platform.ColorAwaiting,
	onboarding.Onboarding: platform.ColorSubmitted,
	onboarding.Completed:  platform.ColorCompleted,
}

func OnboardingStatusHandler(b *nmibot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		sec := b.Secrets.Current()
		if !sec.Authorized(e.User().ID) {
			return utils.EphemeralError(e, utils.PermissionError, "You are not allowed to look up onboarding records.")
		}
		member := e.SlashCommandInteractionData().User("member")

		if err := e.DeferCreateMessage(true); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		record, err := b.Records.FindByMember(ctx, member.ID)
		if errors.Is(err, onboarding.ErrNotFound) {
			return utils.UpdateWithError(e, utils.NotFoundError, fmt.Sprintf("%s has no onboarding record.", member.Mention()))
		}
		if err != nil {
			return utils.UpdateWithError(e, utils.SystemError, "Failed to look up the onboarding record.")
		}

		embed := discord.NewEmbedBuilder().
			SetAuthorName(member.Username).
			SetTitle("Onboarding Status").
			SetColor(stageColor[record.Stage]).
			AddField("Member", member.Mention(), true).
			AddField("Stage", record.Stage.String(), true).
			AddField("Tracking Message", messageLink(sec.Guild(), sec.ReviewChannel(), record.MessageID), false).
			SetFooter(fmt.Sprintf("Record #%d", record.ID), "").
			Build()
		_, err = e.UpdateInteractionResponse(discord.MessageUpdate{
			Embeds: &[]discord.Embed{embed},
		})
		return err
	}
}

func messageLink(guildID, channelID, messageID snowflake.ID) string {
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", guildID, channelID, messageID)
}
