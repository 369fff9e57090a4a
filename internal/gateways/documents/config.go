package documents

import (
	"context"
	"fmt"
)

const (
	SourceFile   = "file"
	SourceSpaces = "spaces"
)

// SourceConfig selects where a document is read from.
type SourceConfig struct {
	Source string `toml:"source"`
	Path   string `toml:"path"`
	Sops   bool   `toml:"sops"`
}

// OpenSource builds the Source described by cfg.
func OpenSource(ctx context.Context, cfg SourceConfig, spaces SpacesConfig) (Source, error) {
	var source Source
	switch cfg.Source {
	case "", SourceFile:
		source = NewFileSource(cfg.Path)
	case SourceSpaces:
		s, err := NewSpacesSource(ctx, spaces, cfg.Path)
		if err != nil {
			return nil, err
		}
		source = s
	default:
		return nil, fmt.Errorf("unknown document source %q", cfg.Source)
	}

	if cfg.Sops {
		source = NewSopsSource(source)
	}
	return source, nil
}
