package components

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"
	"github.com/oldgods/nmibot/internal/domain/onboarding"
	"github.com/oldgods/nmibot/internal/gateways/platform"
	"github.com/oldgods/nmibot/nmibot"
	"github.com/oldgods/nmibot/nmibot/logger"
	"github.com/oldgods/nmibot/nmibot/utils"
)

const interactionTimeout = 8 * time.Second

// RegisterButtonHandler opens the registration form from the welcome message.
func RegisterButtonHandler(_ *nmibot.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		return e.Modal(platform.RegistrationModal())
	}
}

func RegistrationFormHandler(b *nmibot.Bot) handler.ModalHandler {
	return func(e *handler.ModalEvent) error {
		if err := e.DeferCreateMessage(true); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
		defer cancel()

		event := FormEvent(e.User().ID, e.Data)
		out, err := b.Handle(ctx, event)
		if err != nil {
			kind := logFormFailure(event.MemberID, err)
			return utils.UpdateWithError(e, kind, formErrorMessage(err, event.ChapterInput, b.Chapters.Current().Count()))
		}

		slog.Debug("Registration handled",
			slog.String("type", "modal"),
			slog.String("member_id", event.MemberID.String()),
			slog.String("message_id", out.MessageID.String()),
			slog.Bool("created", out.Created),
		)
		return utils.UpdateWithSuccess(e, fmt.Sprintf("Registration received for **%s** (%s). An officer will review it shortly.",
			event.CharacterName, event.Realm))
	}
}

// FormEvent reads the registration form submitted by memberID.
func FormEvent(memberID snowflake.ID, data discord.ModalSubmitInteractionData) onboarding.FormSubmitted {
	return onboarding.FormSubmitted{
		MemberID:      memberID,
		ChapterInput:  data.Text(platform.InputChapter),
		CharacterName: data.Text(platform.InputCharacter),
		Realm:         data.Text(platform.InputRealm),
	}
}

// logFormFailure classifies err and logs it unless the member caused it.
func logFormFailure(memberID snowflake.ID, err error) utils.ErrorType {
	kind := utils.Classify(err)
	switch kind {
	case utils.UserError, utils.StateError:
	default:
		logger.LogError("Registration failed", err, slog.String("member_id", memberID.String()))
	}
	return kind
}

func formErrorMessage(err error, input string, count int) string {
	switch {
	case errors.Is(err, onboarding.ErrInvalidChapter):
		if count == 0 {
			return "No chapters are configured yet, please contact an officer."
		}
		return fmt.Sprintf("`%s` is not a chapter number. Use a number from 0 to %d as listed in the welcome message.", input, count-1)
	case errors.Is(err, onboarding.ErrInvalidTransition):
		return "Your onboarding is already complete."
	default:
		return "Registration failed, please contact an officer."
	}
}

// CompleteHandler marks the member on the clicked tracking message as onboarded.
func CompleteHandler(b *nmibot.Bot) handler.ComponentHandler {
	return reviewHandler(b, func(e *handler.ComponentEvent) onboarding.Event {
		return onboarding.CompletionMarked{MessageID: e.Message.ID, Details: messageDetails(e.Message)}
	})
}

// UndoHandler moves the member on the clicked tracking message back to officer review.
func UndoHandler(b *nmibot.Bot) handler.ComponentHandler {
	return reviewHandler(b, func(e *handler.ComponentEvent) onboarding.Event {
		return onboarding.CompletionUndone{MessageID: e.Message.ID, Details: messageDetails(e.Message)}
	})
}

func reviewHandler(b *nmibot.Bot, build func(e *handler.ComponentEvent) onboarding.Event) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		if err := e.DeferUpdateMessage(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
		defer cancel()

		event := build(e)
		if _, err := b.Handle(ctx, event); err != nil {
			message := "Failed to update the onboarding record."
			if errors.Is(err, onboarding.ErrInvalidTransition) {
				message = "This member is not in a stage that allows that action."
			}
			if _, ferr := e.CreateFollowupMessage(discord.MessageCreate{
				Content: message,
				Flags:   discord.MessageFlagEphemeral,
			}); ferr != nil {
				return errors.Join(err, ferr)
			}
			return err
		}
		return nil
	}
}

func messageDetails(m discord.Message) onboarding.Details {
	if len(m.Embeds) == 0 {
		return onboarding.Details{}
	}
	return platform.ParseDetails(m.Embeds[0])
}
