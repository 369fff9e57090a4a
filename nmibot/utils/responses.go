package utils

import (
	"errors"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/oldgods/nmibot/internal/domain/onboarding"
)

const (
	ErrorColor   = 0xED4245
	WarningColor = 0xFEE75C
	SuccessColor = 0x57F287
	InfoColor    = 0x5865F2
	WelcomeColor = 0xA724FF
)

// ErrorType represents different categories of errors for consistent replies
type ErrorType int

const (
	// UserError - input the member can fix
	UserError ErrorType = iota
	// SystemError - store, network or Discord failures
	SystemError
	NotFoundError
	PermissionError
	// StateError - the tracked member is not in a stage that allows the action
	StateError
)

func getErrorPrefix(errorType ErrorType) string {
	switch errorType {
	case UserError:
		return "⚠️"
	case SystemError:
		return "🔧"
	case NotFoundError:
		return "🔍"
	case PermissionError:
		return "🚫"
	case StateError:
		return "⏳"
	default:
		return "❌"
	}
}

// Classify maps onboarding errors onto reply categories.
func Classify(err error) ErrorType {
	switch {
	case errors.Is(err, onboarding.ErrInvalidChapter):
		return UserError
	case errors.Is(err, onboarding.ErrInvalidTransition):
		return StateError
	case errors.Is(err, onboarding.ErrNotFound):
		return NotFoundError
	default:
		return SystemError
	}
}

// Responder is implemented by command, component and modal events.
type Responder interface {
	CreateMessage(messageCreate discord.MessageCreate, opts ...rest.RequestOpt) error
}

// DeferredResponder is implemented by events whose response was deferred.
type DeferredResponder interface {
	UpdateInteractionResponse(messageUpdate discord.MessageUpdate, opts ...rest.RequestOpt) (*discord.Message, error)
}

// EphemeralError replies with a categorized ephemeral error.
func EphemeralError(e Responder, errorType ErrorType, message string) error {
	return e.CreateMessage(discord.MessageCreate{
		Content: getErrorPrefix(errorType) + " " + message,
		Flags:   discord.MessageFlagEphemeral,
	})
}

func EphemeralSuccess(e Responder, message string) error {
	return e.CreateMessage(discord.MessageCreate{
		Content: "✅ " + message,
		Flags:   discord.MessageFlagEphemeral,
	})
}

// UpdateWithError replaces a deferred response with a categorized error.
func UpdateWithError(e DeferredResponder, errorType ErrorType, message string) error {
	_, err := e.UpdateInteractionResponse(discord.MessageUpdate{
		Content: Ptr(fmt.Sprintf("%s %s", getErrorPrefix(errorType), message)),
	})
	return err
}

func UpdateWithSuccess(e DeferredResponder, message string) error {
	_, err := e.UpdateInteractionResponse(discord.MessageUpdate{
		Content: Ptr("✅ " + message),
	})
	return err
}

func Ptr[T any](v T) *T {
	return &v
}
