package logger

import (
	"log/slog"
	"time"
)

// QueryLogger times a store operation and logs its result.
type QueryLogger struct {
	Operation string
	Table     string
	Args      []any
	StartTime time.Time
}

func NewQueryLogger(operation, table string, args ...any) *QueryLogger {
	return &QueryLogger{
		Operation: operation,
		Table:     table,
		Args:      args,
		StartTime: time.Now(),
	}
}

// Log records the outcome. Misses are expected for new members and are not errors.
func (l *QueryLogger) Log(err error, rows int64, miss bool) {
	duration := time.Since(l.StartTime)

	if err != nil && !miss {
		slog.Error("Query failed",
			slog.String("type", "db"),
			slog.String("operation", l.Operation),
			slog.String("table", l.Table),
			slog.Any("args", l.Args),
			slog.Duration("took", duration),
			slog.Any("error", err),
		)
		return
	}

	slog.Debug("Query executed",
		slog.String("type", "db"),
		slog.String("operation", l.Operation),
		slog.String("table", l.Table),
		slog.Any("args", l.Args),
		slog.Duration("took", duration),
		slog.Int64("rows", rows),
		slog.Bool("miss", miss),
	)
}
