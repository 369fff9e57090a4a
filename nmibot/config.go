package nmibot

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/oldgods/nmibot/internal/gateways/database"
	"github.com/oldgods/nmibot/internal/gateways/documents"
	"github.com/oldgods/nmibot/nmibot/logger"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes environment overrides, e.g. NMI_DB_DRIVER.
const EnvPrefix = "NMI"

// LoadConfig reads the TOML config at path and applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if err = envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}
	return &cfg, nil
}

func DefaultConfig() Config {
	return Config{
		Log: LogConfig{Level: slog.LevelInfo, Format: LogFormatPretty, Color: true},
		Bot: BotConfig{ShutdownTimeout: 10, RecordCacheSize: 1024},
		DB:  database.Config{Driver: database.DriverSQLite, Path: "sqlite.db"},
		Documents: DocumentsConfig{
			Chapters: documents.SourceConfig{Source: documents.SourceFile, Path: "chapters.json"},
			Secrets:  documents.SourceConfig{Source: documents.SourceFile, Path: "secrets.json"},
		},
	}
}

type Config struct {
	Log       LogConfig              `toml:"log"`
	Bot       BotConfig              `toml:"bot"`
	DB        database.Config        `toml:"db"`
	Documents DocumentsConfig        `toml:"documents"`
	Spaces    documents.SpacesConfig `toml:"spaces"`
	Metrics   MetricsConfig          `toml:"metrics"`
}

const (
	LogFormatPretty = "pretty"
	LogFormatJSON   = "json"
)

type LogConfig struct {
	Level slog.Level `toml:"level"`
	// Format is "pretty" for the colored console handler or "json".
	Format    string `toml:"format"`
	Color     bool   `toml:"color"`
	AddSource bool   `toml:"add_source" split_words:"true"`
}

// Handler builds the slog handler described by the config.
func (c LogConfig) Handler(out io.Writer) slog.Handler {
	if c.Format == LogFormatJSON {
		return slog.NewJSONHandler(out, &slog.HandlerOptions{
			AddSource: c.AddSource,
			Level:     c.Level,
		})
	}
	return logger.NewHandler(out, c.Level, c.Color)
}

type BotConfig struct {
	SyncCommands    bool `toml:"sync_commands" split_words:"true"`
	ShutdownTimeout int  `toml:"shutdown_timeout" split_words:"true"` // seconds
	RecordCacheSize int  `toml:"record_cache_size" split_words:"true"`
}

func (c BotConfig) ShutdownAfter() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}

// DocumentsConfig locates the chapter roster and operational secrets documents.
type DocumentsConfig struct {
	Chapters documents.SourceConfig `toml:"chapters"`
	Secrets  documents.SourceConfig `toml:"secrets"`
}

type MetricsConfig struct {
	ListenAddress string `toml:"listen_address" split_words:"true"`
}
