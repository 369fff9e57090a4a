package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestCustomHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, slog.LevelInfo, false))

	log.Info("Query executed", slog.String("type", "db"), slog.String("table", "member_join_messages"))
	got := buf.String()
	for _, want := range []string{"[NMI]", "[INFO]", "[DB]", "Query executed", "table=member_join_messages"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q does not contain %q", got, want)
		}
	}
	if strings.Contains(got, "type=") {
		t.Errorf("output %q leaks the type attribute", got)
	}
}

func TestCustomHandler_ErrorAndStatus(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, slog.LevelInfo, false))

	log.Error("Command failed",
		slog.String("type", "cmd"),
		slog.String("name", "chapters"),
		slog.String("user_name", "officer"),
		slog.String("status", "failed"),
		slog.Any("error", errors.New("boom")),
	)
	got := buf.String()
	for _, want := range []string{"[ERROR]", "[CMD]", ": boom", "[chapters by officer]", "[Status: failed]", "logger_test.go:"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q does not contain %q", got, want)
		}
	}
}

func TestCustomHandler_FiltersAndLevels(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, slog.LevelInfo, false))

	log.Info("sending heartbeat", slog.Int("seq", 4))
	log.Debug("Role granted")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}

	log.With(slog.String("shard", "0")).WithGroup("gw").Info("Ready", slog.Int("guilds", 1))
	got := buf.String()
	if !strings.Contains(got, "[SYS]") || !strings.Contains(got, "shard=0") || !strings.Contains(got, "gw.guilds=1") {
		t.Errorf("unexpected output %q", got)
	}
}
