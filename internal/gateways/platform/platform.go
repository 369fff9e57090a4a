package platform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/oldgods/nmibot/internal/domain/onboarding"
)

// Rest is the subset of the disgo REST client the onboarding workflow uses.
type Rest interface {
	CreateMessage(channelID snowflake.ID, messageCreate discord.MessageCreate, opts ...rest.RequestOpt) (*discord.Message, error)
	UpdateMessage(channelID snowflake.ID, messageID snowflake.ID, messageUpdate discord.MessageUpdate, opts ...rest.RequestOpt) (*discord.Message, error)
	AddMemberRole(guildID snowflake.ID, userID snowflake.ID, roleID snowflake.ID, opts ...rest.RequestOpt) error
	RemoveMemberRole(guildID snowflake.ID, userID snowflake.ID, roleID snowflake.ID, opts ...rest.RequestOpt) error
	CreateDMChannel(userID snowflake.ID, opts ...rest.RequestOpt) (*discord.DMChannel, error)
}

// Discord implements onboarding.Platform for a single guild.
type Discord struct {
	rest    Rest
	guildID snowflake.ID
}

var _ onboarding.Platform = (*Discord)(nil)

func New(client Rest, guildID snowflake.ID) *Discord {
	return &Discord{rest: client, guildID: guildID}
}

func (p *Discord) SendView(ctx context.Context, channelID snowflake.ID, view onboarding.View) (snowflake.ID, error) {
	msg, err := p.rest.CreateMessage(channelID, discord.MessageCreate{
		Embeds:     []discord.Embed{BuildEmbed(view)},
		Components: BuildComponents(view.Stage),
	}, rest.WithCtx(ctx))
	if err != nil {
		return 0, fmt.Errorf("failed to send %s view: %w", view.Stage, err)
	}
	return msg.ID, nil
}

func (p *Discord) EditView(ctx context.Context, channelID, messageID snowflake.ID, view onboarding.View) error {
	embeds := []discord.Embed{BuildEmbed(view)}
	components := BuildComponents(view.Stage)
	_, err := p.rest.UpdateMessage(channelID, messageID, discord.MessageUpdate{
		Embeds:     &embeds,
		Components: &components,
	}, rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to edit message %s to %s view: %w", messageID, view.Stage, err)
	}
	return nil
}

func (p *Discord) GrantRole(ctx context.Context, memberID, roleID snowflake.ID) error {
	if err := p.rest.AddMemberRole(p.guildID, memberID, roleID, rest.WithCtx(ctx)); err != nil {
		return fmt.Errorf("failed to grant role %s to %s: %w", roleID, memberID, err)
	}
	slog.Debug("Role granted",
		slog.String("type", "sys"),
		slog.String("member_id", memberID.String()),
		slog.String("role_id", roleID.String()),
	)
	return nil
}

func (p *Discord) RevokeRole(ctx context.Context, memberID, roleID snowflake.ID) error {
	if err := p.rest.RemoveMemberRole(p.guildID, memberID, roleID, rest.WithCtx(ctx)); err != nil {
		return fmt.Errorf("failed to revoke role %s from %s: %w", roleID, memberID, err)
	}
	slog.Debug("Role revoked",
		slog.String("type", "sys"),
		slog.String("member_id", memberID.String()),
		slog.String("role_id", roleID.String()),
	)
	return nil
}

func (p *Discord) DirectMessage(ctx context.Context, memberID snowflake.ID, content string) error {
	dmChannel, err := p.rest.CreateDMChannel(memberID, rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to open DM channel with %s: %w", memberID, err)
	}
	_, err = p.rest.CreateMessage(dmChannel.ID(), discord.MessageCreate{
		Content: content,
	}, rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to DM %s: %w", memberID, err)
	}
	return nil
}
