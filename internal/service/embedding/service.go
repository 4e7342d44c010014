package embedding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/w-h-a/manualqa/chunker"
	"github.com/w-h-a/manualqa/embedder"
)

// ErrNotConfigured means no provider credential was supplied. This is the
// designed degraded mode: callers get a zero vector and no network call is
// made.
var ErrNotConfigured = errors.New("embedding provider not configured")

// Service wraps an embedding provider with a fixed dimensionality and a
// fallback policy: embedding failure never blocks ingestion or retrieval.
type Service struct {
	provider   embedder.Embedder
	chunker    *chunker.Chunker
	dimensions int
}

// EmbedChecked returns the provider's vector for text, or a zero vector and
// the reason it could not be produced. Inputs beyond the provider limit are
// truncated to the first chunk.
func (s *Service) EmbedChecked(ctx context.Context, text string) ([]float32, error) {
	if s.provider == nil {
		return s.ZeroVector(), ErrNotConfigured
	}

	if len(text) > s.chunker.MaxChars() {
		if chunks := s.chunker.Chunk(text); len(chunks) > 0 {
			text = chunks[0]
		}
	}

	vec, err := s.provider.Embed(ctx, text)
	if err != nil {
		return s.ZeroVector(), err
	}

	if len(vec) != s.dimensions {
		return s.ZeroVector(), fmt.Errorf("expected %d dimensions, got %d", s.dimensions, len(vec))
	}

	return vec, nil
}

// Embed is EmbedChecked with the fallback applied: any failure is logged and
// the zero vector returned.
func (s *Service) Embed(ctx context.Context, text string) []float32 {
	vec, err := s.EmbedChecked(ctx, text)
	if err != nil && !errors.Is(err, ErrNotConfigured) {
		slog.ErrorContext(ctx, "embedding failed, falling back to zero vector", "error", err)
	}
	return vec
}

func (s *Service) ZeroVector() []float32 {
	return make([]float32, s.dimensions)
}

func (s *Service) Dimensions() int {
	return s.dimensions
}

func (s *Service) Configured() bool {
	return s.provider != nil
}

func New(provider embedder.Embedder, ch *chunker.Chunker, dimensions int) *Service {
	if ch == nil {
		ch = chunker.New()
	}

	if dimensions <= 0 {
		dimensions = 768
	}

	return &Service{
		provider:   provider,
		chunker:    ch,
		dimensions: dimensions,
	}
}
