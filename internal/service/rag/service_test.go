package rag

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/manualqa/chunker"
	"github.com/w-h-a/manualqa/internal/service/embedding"
	"github.com/w-h-a/manualqa/internal/service/ingest"
	"github.com/w-h-a/manualqa/store"
	memorystore "github.com/w-h-a/manualqa/store/memory"
)

type fakeEmbedder struct {
	vector []float32
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return f.vector, nil
}

type fakeGenerator struct {
	reply      string
	err        error
	lastPrompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func seedChunk(t *testing.T, st store.Store, content string, vec []float32, meta map[string]any) int64 {
	t.Helper()
	id, err := st.Insert(context.Background(), content, vec, meta)
	require.NoError(t, err)
	return id
}

func manualMeta(title string, category string, index int, total int) map[string]any {
	return map[string]any{
		"title":        title,
		"category":     category,
		"type":         ingest.DocumentType,
		"chunk_index":  index,
		"total_chunks": total,
	}
}

func newService(gen *fakeGenerator) (*Service, store.Store) {
	st := memorystore.NewStore(store.WithDimensions(4))
	em := embedding.New(&fakeEmbedder{vector: []float32{1, 0, 0, 0}}, chunker.New(), 4)

	if gen == nil {
		return New(st, em, nil), st
	}
	return New(st, em, gen), st
}

func TestAskWithEmptyStore(t *testing.T) {
	gen := &fakeGenerator{reply: "should not be called"}
	svc, _ := newService(gen)

	answer, err := svc.Ask(context.Background(), "How do I drain the tank?", "", 3)

	require.NoError(t, err)
	assert.Equal(t, notFoundAnswer, answer.Answer)
	assert.NotNil(t, answer.Sources)
	assert.Empty(t, answer.Sources)
	assert.Equal(t, 0, answer.ContextUsed)
	assert.Empty(t, gen.lastPrompt)
}

func TestAskRequiresQuestion(t *testing.T) {
	svc, _ := newService(&fakeGenerator{})

	_, err := svc.Ask(context.Background(), "   ", "", 3)

	require.Error(t, err)
}

func TestAskBuildsContextFromChunks(t *testing.T) {
	gen := &fakeGenerator{reply: "Unplug the unit, then open the drain valve."}
	svc, st := newService(gen)

	id := seedChunk(t, st, "To drain: open the valve at the base.", []float32{1, 0, 0, 0}, manualMeta("Washer Guide", "appliance", 0, 2))
	seedChunk(t, st, "Warranty terms and conditions.", []float32{0, 1, 0, 0}, manualMeta("Washer Guide", "appliance", 1, 2))

	answer, err := svc.Ask(context.Background(), "How do I drain the tank?", "", 2)

	require.NoError(t, err)
	assert.Equal(t, gen.reply, answer.Answer)
	assert.Equal(t, 2, answer.ContextUsed)
	require.Len(t, answer.Sources, 2)

	assert.Equal(t, id, answer.Sources[0].Id)
	assert.Equal(t, "Washer Guide", answer.Sources[0].Title)
	assert.Equal(t, 0, answer.Sources[0].ChunkIndex)
	assert.InDelta(t, 1.0, answer.Sources[0].Similarity, 0.0001)

	assert.Contains(t, gen.lastPrompt, "To drain: open the valve at the base.")
	assert.Contains(t, gen.lastPrompt, "Excerpt 1: Washer Guide (part 1 of 2)")
	assert.Contains(t, gen.lastPrompt, "How do I drain the tank?")
}

func TestAskLimitAboveMatchCount(t *testing.T) {
	svc, st := newService(&fakeGenerator{reply: "answer"})

	seedChunk(t, st, "only chunk", []float32{1, 0, 0, 0}, manualMeta("Guide", "manual", 0, 1))

	answer, err := svc.Ask(context.Background(), "question", "", 5)

	require.NoError(t, err)
	assert.Equal(t, 1, answer.ContextUsed)
	assert.Len(t, answer.Sources, 1)
}

func TestAskFiltersByCategory(t *testing.T) {
	svc, st := newService(&fakeGenerator{reply: "answer"})

	seedChunk(t, st, "printer chunk", []float32{1, 0, 0, 0}, manualMeta("Printer Guide", "printer", 0, 1))
	seedChunk(t, st, "washer chunk", []float32{1, 0, 0, 0}, manualMeta("Washer Guide", "appliance", 0, 1))

	answer, err := svc.Ask(context.Background(), "question", "printer", 5)

	require.NoError(t, err)
	require.Len(t, answer.Sources, 1)
	assert.Equal(t, "Printer Guide", answer.Sources[0].Title)
}

func TestAskIgnoresOtherDocumentTypes(t *testing.T) {
	svc, st := newService(&fakeGenerator{reply: "answer"})

	seedChunk(t, st, "plain note", []float32{1, 0, 0, 0}, map[string]any{"title": "Note", "type": "note"})

	answer, err := svc.Ask(context.Background(), "question", "", 5)

	require.NoError(t, err)
	assert.Equal(t, notFoundAnswer, answer.Answer)
}

func TestAskSimilarityIsFiniteForPlaceholders(t *testing.T) {
	svc, st := newService(&fakeGenerator{reply: "answer"})

	// zero-vector placeholder, cosine against it is NaN before coercion
	seedChunk(t, st, "pending chunk", []float32{0, 0, 0, 0}, manualMeta("Guide", "manual", 0, 1))

	answer, err := svc.Ask(context.Background(), "question", "", 5)

	require.NoError(t, err)
	require.Len(t, answer.Sources, 1)
	assert.Equal(t, 0.0, answer.Sources[0].Similarity)
}

func TestAskWithGeneratorError(t *testing.T) {
	svc, st := newService(&fakeGenerator{err: errors.New("rate limited")})

	seedChunk(t, st, "chunk", []float32{1, 0, 0, 0}, manualMeta("Guide", "manual", 0, 1))

	answer, err := svc.Ask(context.Background(), "question", "", 3)

	require.NoError(t, err)
	assert.Equal(t, "Error generating response: rate limited", answer.Answer)
	assert.Len(t, answer.Sources, 1)
}

func TestAskWithoutGenerator(t *testing.T) {
	svc, st := newService(nil)

	seedChunk(t, st, "chunk", []float32{1, 0, 0, 0}, manualMeta("Guide", "manual", 0, 1))

	answer, err := svc.Ask(context.Background(), "question", "", 3)

	require.NoError(t, err)
	assert.Equal(t, notConfiguredMessage, answer.Answer)
}

func TestChatAppendsHistory(t *testing.T) {
	gen := &fakeGenerator{reply: "hello there"}
	svc, st := newService(gen)

	seedChunk(t, st, "relevant context", []float32{1, 0, 0, 0}, manualMeta("Guide", "manual", 0, 1))

	reply, err := svc.Chat(context.Background(), "hi", "session-1")

	require.NoError(t, err)
	assert.Equal(t, "hi", reply.UserMessage)
	assert.Equal(t, "hello there", reply.AiResponse)
	assert.Equal(t, 1, reply.ContextUsed)
	assert.Contains(t, gen.lastPrompt, "relevant context")

	history, err := svc.History(context.Background(), "session-1", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "hi", history[0].UserMessage)
	assert.Equal(t, "hello there", history[0].AiResponse)
	assert.Equal(t, "session-1", history[0].SessionId)
}

func TestChatWithEmptyStore(t *testing.T) {
	gen := &fakeGenerator{reply: "general answer"}
	svc, _ := newService(gen)

	reply, err := svc.Chat(context.Background(), "hi", "")

	require.NoError(t, err)
	assert.Equal(t, 0, reply.ContextUsed)
	assert.Contains(t, gen.lastPrompt, "No relevant context found.")
}

func TestAddDocumentAndSearchSimilar(t *testing.T) {
	svc, _ := newService(&fakeGenerator{})

	id, err := svc.AddDocument(context.Background(), "custom note about filters", map[string]any{"category": "note"})
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	matches, err := svc.SearchSimilar(context.Background(), "filters", 5)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "custom note about filters", matches[0].Content)
}

func TestSearchByCategory(t *testing.T) {
	svc, st := newService(&fakeGenerator{})

	seedChunk(t, st, "printer chunk", []float32{1, 0, 0, 0}, manualMeta("Printer Guide", "printer", 0, 1))
	seedChunk(t, st, "washer chunk", []float32{1, 0, 0, 0}, manualMeta("Washer Guide", "appliance", 0, 1))

	records, err := svc.SearchByCategory(context.Background(), "printer", 10)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "printer chunk", records[0].Content)

	_, err = svc.SearchByCategory(context.Background(), "  ", 10)
	require.Error(t, err)
}

func TestSearchByDateRange(t *testing.T) {
	svc, st := newService(&fakeGenerator{})

	seedChunk(t, st, "recent chunk", []float32{1, 0, 0, 0}, manualMeta("Guide", "manual", 0, 1))

	now := time.Now().UTC()

	records, err := svc.SearchByDateRange(context.Background(), now.Add(-time.Minute), now.Add(time.Minute), 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	records, err = svc.SearchByDateRange(context.Background(), now.Add(-2*time.Hour), now.Add(-time.Hour), 10)
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = svc.SearchByDateRange(context.Background(), now, now.Add(-time.Hour), 10)
	require.Error(t, err)
}
