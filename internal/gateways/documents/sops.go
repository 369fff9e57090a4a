package documents

import (
	"context"
	"fmt"

	"github.com/getsops/sops/v3/decrypt"
)

// SopsSource decrypts a sops-encrypted JSON document read from another source.
// Encrypting needs master keys the bot does not hold, so it is read-only.
type SopsSource struct {
	Source Source
}

func NewSopsSource(source Source) *SopsSource {
	return &SopsSource{Source: source}
}

func (s *SopsSource) Name() string {
	return "sops+" + s.Source.Name()
}

func (s *SopsSource) Read(ctx context.Context) ([]byte, error) {
	data, err := s.Source.Read(ctx)
	if err != nil {
		return nil, err
	}
	plain, err := decrypt.Data(data, "json")
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt %s: %w", s.Source.Name(), err)
	}
	return plain, nil
}

func (s *SopsSource) Write(context.Context, []byte) error {
	return fmt.Errorf("%s: %w", s.Name(), ErrReadOnly)
}
