package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/oldgods/nmibot/internal/domain/onboarding"
)

type recorder struct {
	created []discord.MessageCreate
}

func (r *recorder) CreateMessage(m discord.MessageCreate, _ ...rest.RequestOpt) error {
	r.created = append(r.created, m)
	return nil
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"chapter", fmt.Errorf("wrap: %w", onboarding.ErrInvalidChapter), UserError},
		{"transition", onboarding.ErrInvalidTransition, StateError},
		{"missing", onboarding.ErrNotFound, NotFoundError},
		{"other", errors.New("boom"), SystemError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEphemeralError(t *testing.T) {
	r := &recorder{}
	if err := EphemeralError(r, PermissionError, "You are not allowed to do that."); err != nil {
		t.Fatal(err)
	}
	if len(r.created) != 1 {
		t.Fatalf("CreateMessage called %d times, want 1", len(r.created))
	}
	got := r.created[0]
	if got.Flags != discord.MessageFlagEphemeral {
		t.Errorf("flags = %v, want ephemeral", got.Flags)
	}
	if got.Content != "🚫 You are not allowed to do that." {
		t.Errorf("content = %q", got.Content)
	}
}
