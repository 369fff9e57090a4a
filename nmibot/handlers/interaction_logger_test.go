package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/disgoorg/disgo/discord"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })
	return &buf
}

func testInteraction() interaction {
	return interaction{
		kind:    "modal",
		label:   "Modal submission",
		name:    "nmi-modal",
		user:    discord.User{ID: 1001, Username: "bjork"},
		channel: 42,
	}
}

func TestInteraction_Run(t *testing.T) {
	logs := captureLogs(t)

	if err := testInteraction().run(func() error { return nil }); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	out := logs.String()
	for _, want := range []string{"Modal submission started", "Modal submission completed", "status=success", "guild_id=\"\""} {
		if !strings.Contains(out, want) {
			t.Errorf("logs missing %q:\n%s", want, out)
		}
	}
}

func TestInteraction_RunFailure(t *testing.T) {
	logs := captureLogs(t)
	boom := errors.New("unknown interaction")

	if err := testInteraction().run(func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("run() error = %v, want %v", err, boom)
	}
	if out := logs.String(); !strings.Contains(out, "Modal submission failed") || !strings.Contains(out, "status=failed") {
		t.Errorf("logs = %s", out)
	}
}
