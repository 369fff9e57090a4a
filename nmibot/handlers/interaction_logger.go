package handlers

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
)

const (
	slowThreshold      = 2 * time.Second
	interactionTimeout = 10 * time.Second
)

type interaction struct {
	kind    string // log type: cmd, component or modal
	label   string
	name    string
	user    discord.User
	guild   *snowflake.ID
	channel snowflake.ID
}

// run executes fn and logs its start, outcome and duration. The interaction
// fails once it exceeds interactionTimeout; fn keeps running in the background.
func (i interaction) run(fn func() error) error {
	start := time.Now()
	base := []any{
		slog.String("type", i.kind),
		slog.String("name", i.name),
		slog.String("user_id", i.user.ID.String()),
		slog.String("user_name", i.user.Username),
	}

	guildID := ""
	if i.guild != nil {
		guildID = i.guild.String()
	}
	slog.Info(i.label+" started", append(base,
		slog.String("guild_id", guildID),
		slog.String("channel_id", i.channel.String()),
	)...)

	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		duration := time.Since(start)
		attrs := append(base, slog.Duration("took", duration))
		switch {
		case err != nil:
			slog.Error(i.label+" failed", append(attrs, slog.Any("error", err), slog.String("status", "failed"))...)
		case duration > slowThreshold:
			slog.Warn(i.label+" executed slowly", append(attrs, slog.String("status", "slow"))...)
		default:
			slog.Info(i.label+" completed", append(attrs, slog.String("status", "success"))...)
		}
		return err

	case <-time.After(interactionTimeout):
		slog.Error(i.label+" timed out", append(base,
			slog.String("status", "timeout"),
			slog.Duration("timeout", interactionTimeout),
		)...)
		return fmt.Errorf("%s %s timed out after %s", i.kind, i.name, interactionTimeout)
	}
}

// WrapWithLogging wraps a command handler with logging functionality
func WrapWithLogging(name string, h handler.CommandHandler) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return interaction{
			kind: "cmd", label: "Command", name: name,
			user: e.User(), guild: e.GuildID(), channel: e.ChannelID(),
		}.run(func() error { return h(e) })
	}
}

// WrapComponentWithLogging wraps a component handler with logging functionality
func WrapComponentWithLogging(name string, h handler.ComponentHandler) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		return interaction{
			kind: "component", label: "Component interaction", name: name,
			user: e.User(), guild: e.GuildID(), channel: e.ChannelID(),
		}.run(func() error { return h(e) })
	}
}

// WrapModalWithLogging wraps a modal submit handler with logging functionality
func WrapModalWithLogging(name string, h handler.ModalHandler) handler.ModalHandler {
	return func(e *handler.ModalEvent) error {
		return interaction{
			kind: "modal", label: "Modal submission", name: name,
			user: e.User(), guild: e.GuildID(), channel: e.ChannelID(),
		}.run(func() error { return h(e) })
	}
}
