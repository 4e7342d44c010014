package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/w-h-a/manualqa/chunker"
	"github.com/w-h-a/manualqa/cleaner"
	"github.com/w-h-a/manualqa/extractor"
	"github.com/w-h-a/manualqa/internal/service/embedding"
	"github.com/w-h-a/manualqa/store"
)

// DocumentType tags every ingested chunk so retrieval can scope to manuals.
const DocumentType = "pdf_manual"

const DefaultCategory = "manual"

var ErrUnsupportedFileType = errors.New("unsupported file type: only pdf is accepted")

type Service struct {
	extractor extractor.Extractor
	store     store.Store
	embedding *embedding.Service
	chunker   *chunker.Chunker
}

type Result struct {
	DocumentIds []int64
	ChunkCount  int
	TextLength  int
	Embedded    int
}

// Upload runs the full pipeline: extract, clean, chunk, store every chunk
// with a zero-vector placeholder, then backfill embeddings one chunk at a
// time. Storage failure is terminal; a failed embedding only leaves that one
// chunk on its placeholder.
func (s *Service) Upload(ctx context.Context, filename string, title string, category string, data []byte) (Result, error) {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != ".pdf" {
		return Result{}, ErrUnsupportedFileType
	}

	raw, err := s.extractor.Extract(ctx, data)
	if err != nil {
		return Result{}, fmt.Errorf("extraction failed: %w", err)
	}

	text := cleaner.Clean(raw)
	if len(text) == 0 {
		return Result{}, errors.New("document contains no text")
	}

	if len(strings.TrimSpace(title)) == 0 {
		title = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	if len(strings.TrimSpace(category)) == 0 {
		category = DefaultCategory
	}

	chunks := s.chunker.Chunk(text)

	result := Result{
		DocumentIds: make([]int64, 0, len(chunks)),
		TextLength:  len(text),
	}

	// 1. Store every chunk with a placeholder so each has a durable id even
	// if embedding later fails for it.
	for i, chunk := range chunks {
		metadata := map[string]any{
			"title":        title,
			"category":     category,
			"type":         DocumentType,
			"filename":     filepath.Base(filename),
			"text_length":  len(text),
			"chunk_index":  i,
			"total_chunks": len(chunks),
		}

		id, err := s.store.Insert(ctx, chunk, s.embedding.ZeroVector(), metadata)
		if err != nil {
			return result, fmt.Errorf("failed to store chunk %d of %d: %w", i, len(chunks), err)
		}

		result.DocumentIds = append(result.DocumentIds, id)
		result.ChunkCount++
	}

	// 2. Backfill embeddings sequentially; per-chunk failures are isolated.
	for i, id := range result.DocumentIds {
		if s.backfill(ctx, id, chunks[i]) {
			result.Embedded++
		}
	}

	return result, nil
}

// RetryBackfill re-embeds chunks still carrying the zero-vector placeholder
// from earlier failed or unconfigured runs.
func (s *Service) RetryBackfill(ctx context.Context, limit int) (int, error) {
	records, err := s.store.Unembedded(ctx, limit)
	if err != nil {
		return 0, err
	}

	embedded := 0
	for _, rec := range records {
		if s.backfill(ctx, rec.Id, rec.Content) {
			embedded++
		}
	}

	return embedded, nil
}

func (s *Service) backfill(ctx context.Context, id int64, content string) bool {
	vec, err := s.embedding.EmbedChecked(ctx, content)
	if err != nil {
		if !errors.Is(err, embedding.ErrNotConfigured) {
			slog.WarnContext(ctx, "embedding backfill failed, chunk keeps placeholder", "id", id, "error", err)
		}
		return false
	}

	if err := s.store.UpdateEmbedding(ctx, id, vec); err != nil {
		slog.WarnContext(ctx, "failed to update embedding, chunk keeps placeholder", "id", id, "error", err)
		return false
	}

	return true
}

func New(
	ex extractor.Extractor,
	st store.Store,
	em *embedding.Service,
	ch *chunker.Chunker,
) *Service {
	if ex == nil {
		panic("extractor is required")
	}

	if st == nil {
		panic("store is required")
	}

	if em == nil {
		panic("embedding service is required")
	}

	if ch == nil {
		ch = chunker.New()
	}

	return &Service{
		extractor: ex,
		store:     st,
		embedding: em,
		chunker:   ch,
	}
}
