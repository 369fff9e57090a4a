package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeCommand   LogType = "CMD"
	TypeComponent LogType = "CMP"
	TypeModal     LogType = "MDL"
	TypeDB        LogType = "DB"
	TypeFlow      LogType = "FLOW"
	TypeSystem    LogType = "SYS"
	TypeError     LogType = "ERR"
)

var logTypes = map[string]LogType{
	"cmd":       TypeCommand,
	"component": TypeComponent,
	"modal":     TypeModal,
	"db":        TypeDB,
	"flow":      TypeFlow,
	"error":     TypeError,
}

// Keys rendered inside the message rather than as trailing key=value pairs.
var internalKeys = map[string]bool{
	"type":           true,
	"name":           true,
	"user_name":      true,
	"status":         true,
	"error":          true,
	"error_location": true,
}

// Chatty disgo gateway and rest messages that are dropped.
var skippedMessages = []string{
	"locking buckets",
	"unlocking buckets",
	"gateway event",
	"cleaning up bucket",
	"cleaned up rate limit buckets",
	"binary message received",
	"received gateway message",
	"sending gateway command",
	"new request",
	"new response",
	"locking rest bucket",
	"unlocking rest bucket",
	"rate limit response headers",
	"sending heartbeat",
}

// CustomHandler writes single line, colored records:
//
//	[NMI] [15:04:05] [INFO] [DB] Query executed [Status: success] key=value
type CustomHandler struct {
	mu    *sync.Mutex
	out   io.Writer
	level slog.Leveler
	color bool
	attrs []slog.Attr
	group string
}

func NewHandler(out io.Writer, level slog.Leveler, color bool) *CustomHandler {
	return &CustomHandler{
		mu:    &sync.Mutex{},
		out:   out,
		level: level,
		color: color,
	}
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), h.qualify(attrs)...)
	return &clone
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	clone := *h
	if h.group != "" {
		name = h.group + "." + name
	}
	clone.group = name
	return &clone
}

func (h *CustomHandler) qualify(attrs []slog.Attr) []slog.Attr {
	if h.group == "" {
		return attrs
	}
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: h.group + "." + a.Key, Value: a.Value}
	}
	return out
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	lower := strings.ToLower(r.Message)
	for _, skip := range skippedMessages {
		if strings.Contains(lower, skip) {
			return nil
		}
	}

	attrs := append([]slog.Attr{}, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, h.qualify([]slog.Attr{a})...)
		return true
	})
	lookup := func(key string) string {
		for _, a := range attrs {
			if a.Key == key {
				return a.Value.String()
			}
		}
		return ""
	}

	levelColor, levelText := colorGreen, r.Level.String()
	switch {
	case r.Level >= slog.LevelError:
		levelColor = colorRed
	case r.Level >= slog.LevelWarn:
		levelColor = colorYellow
	case r.Level < slog.LevelInfo:
		levelColor = colorPurple
	}

	logType, ok := logTypes[lookup("type")]
	if !ok {
		logType = TypeSystem
	}

	var b strings.Builder
	b.WriteString(r.Message)
	if r.Level >= slog.LevelError {
		location := lookup("error_location")
		if location == "" && r.PC != 0 {
			frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
			location = fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
		}
		if location != "" {
			fmt.Fprintf(&b, " (%s)", location)
		}
	}
	if errText := lookup("error"); errText != "" {
		fmt.Fprintf(&b, ": %s", errText)
	}
	if name, user := lookup("name"), lookup("user_name"); name != "" && user != "" {
		fmt.Fprintf(&b, " [%s by %s]", name, user)
	}
	if status := lookup("status"); status != "" {
		fmt.Fprintf(&b, " [Status: %s]", status)
	}
	for _, a := range attrs {
		if !internalKeys[a.Key] {
			fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		}
	}

	line := fmt.Sprintf("[NMI] [%s] [%s] [%s] %s\n", r.Time.Format(time.TimeOnly), levelText, logType, b.String())
	if h.color {
		line = fmt.Sprintf("%s[NMI] [%s] [%s%s%s] [%s] %s%s\n",
			colorWhite, r.Time.Format(time.TimeOnly), levelColor, levelText, colorWhite, logType, b.String(), colorReset)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, line)
	return err
}
