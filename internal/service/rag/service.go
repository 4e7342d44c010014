package rag

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/w-h-a/manualqa/generator"
	"github.com/w-h-a/manualqa/internal/service/embedding"
	"github.com/w-h-a/manualqa/internal/service/ingest"
	"github.com/w-h-a/manualqa/store"
	getsafe "github.com/w-h-a/manualqa/util/get_safe"
)

const (
	notFoundAnswer       = "No relevant manual content was found for this question. Try uploading the manual first or asking about a different topic."
	notConfiguredMessage = "Generation model API key not configured"

	chatContextLimit = 3
)

type Service struct {
	store     store.Store
	embedding *embedding.Service
	generator generator.Generator
}

type Source struct {
	Id         int64   `json:"id"`
	Title      string  `json:"title"`
	ChunkIndex int     `json:"chunk_index"`
	Similarity float64 `json:"similarity"`
}

type Answer struct {
	Answer      string   `json:"answer"`
	Sources     []Source `json:"sources"`
	ContextUsed int      `json:"context_used_count"`
}

type ChatReply struct {
	UserMessage string `json:"user_message"`
	AiResponse  string `json:"ai_response"`
	ContextUsed int    `json:"context_used"`
}

// Ask answers a question grounded in stored manual chunks. Zero retrieved
// chunks is a normal outcome, not an error, and this path never writes chat
// history.
func (s *Service) Ask(ctx context.Context, question string, category string, limit int) (Answer, error) {
	if len(strings.TrimSpace(question)) == 0 {
		return Answer{}, errors.New("question is required")
	}

	if limit <= 0 {
		limit = chatContextLimit
	}

	vec := s.embedding.Embed(ctx, question)

	filters := []store.Filter{
		store.FieldEquals{Field: "type", Value: ingest.DocumentType},
	}
	if len(strings.TrimSpace(category)) > 0 {
		filters = append(filters, store.FieldEquals{Field: "category", Value: category})
	}

	matches, err := s.store.Nearest(ctx, vec, limit, filters...)
	if err != nil {
		return Answer{}, fmt.Errorf("similarity search failed: %w", err)
	}

	if len(matches) == 0 {
		return Answer{
			Answer:  notFoundAnswer,
			Sources: []Source{},
		}, nil
	}

	// Full chunk content goes into the context, never truncated.
	var sb strings.Builder
	sources := make([]Source, 0, len(matches))

	for i, m := range matches {
		title := getsafe.String(m.Metadata, "title")
		index := getsafe.Int(m.Metadata, "chunk_index")
		total := getsafe.Int(m.Metadata, "total_chunks")

		sb.WriteString(fmt.Sprintf("--- Excerpt %d: %s (part %d of %d) ---\n", i+1, title, index+1, total))
		sb.WriteString(m.Content)
		sb.WriteString("\n\n")

		sources = append(sources, Source{
			Id:         m.Id,
			Title:      title,
			ChunkIndex: index,
			Similarity: roundSimilarity(m.Similarity),
		})
	}

	prompt := fmt.Sprintf(
		"You are a support assistant answering questions about product manuals.\n\nManual excerpts:\n%s\nQuestion: %s\n\nAnswer using only the excerpts above. If they do not contain the answer, say so.",
		sb.String(),
		question,
	)

	return Answer{
		Answer:      s.generate(ctx, prompt),
		Sources:     sources,
		ContextUsed: len(matches),
	}, nil
}

// Chat generates a context-aware reply and appends the exchange to chat
// history.
func (s *Service) Chat(ctx context.Context, message string, sessionId string) (ChatReply, error) {
	if len(strings.TrimSpace(message)) == 0 {
		return ChatReply{}, errors.New("message is required")
	}

	vec := s.embedding.Embed(ctx, message)

	matches, err := s.store.Nearest(ctx, vec, chatContextLimit)
	if err != nil {
		return ChatReply{}, fmt.Errorf("similarity search failed: %w", err)
	}

	contextText := "No relevant context found."
	if len(matches) > 0 {
		var sb strings.Builder
		for _, m := range matches {
			sb.WriteString(m.Content)
			sb.WriteString("\n")
		}
		contextText = sb.String()
	}

	prompt := fmt.Sprintf(
		"Context from database:\n%s\n\nUser question: %s\n\nPlease provide a helpful response based on the context and your knowledge.",
		contextText,
		message,
	)

	aiResponse := s.generate(ctx, prompt)

	if err := s.store.AppendChat(ctx, message, aiResponse, sessionId); err != nil {
		return ChatReply{}, fmt.Errorf("failed to save chat history: %w", err)
	}

	return ChatReply{
		UserMessage: message,
		AiResponse:  aiResponse,
		ContextUsed: len(matches),
	}, nil
}

func (s *Service) SearchSimilar(ctx context.Context, query string, limit int) ([]store.Match, error) {
	if limit <= 0 {
		limit = 5
	}

	vec := s.embedding.Embed(ctx, query)

	return s.store.Nearest(ctx, vec, limit)
}

// AddDocument embeds content and stores it as a standalone document. A failed
// embedding falls back to the placeholder, which keeps the document stored but
// unsearchable until backfilled.
func (s *Service) AddDocument(ctx context.Context, content string, metadata map[string]any) (int64, error) {
	if len(strings.TrimSpace(content)) == 0 {
		return 0, errors.New("content is required")
	}

	vec := s.embedding.Embed(ctx, content)

	return s.store.Insert(ctx, content, vec, metadata)
}

func (s *Service) History(ctx context.Context, sessionId string, limit int) ([]store.ChatRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.store.RecentChats(ctx, sessionId, limit)
}

func (s *Service) SearchByCategory(ctx context.Context, category string, limit int) ([]store.Record, error) {
	if len(strings.TrimSpace(category)) == 0 {
		return nil, errors.New("category is required")
	}

	if limit <= 0 {
		limit = 5
	}

	return s.store.Search(ctx, limit, store.FieldEquals{Field: "category", Value: category})
}

func (s *Service) SearchByDateRange(ctx context.Context, start time.Time, end time.Time, limit int) ([]store.Record, error) {
	if end.Before(start) {
		return nil, errors.New("end date is before start date")
	}

	if limit <= 0 {
		limit = 10
	}

	return s.store.Search(ctx, limit, store.CreatedBetween{Start: start, End: end})
}

// generate maps generation failures to inline answer text so a provider
// outage degrades the reply instead of failing the request.
func (s *Service) generate(ctx context.Context, prompt string) string {
	if s.generator == nil {
		return notConfiguredMessage
	}

	result, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return fmt.Sprintf("Error generating response: %v", err)
	}

	return result
}

func roundSimilarity(v float64) float64 {
	return math.Round(store.SafeSimilarity(v)*10000) / 10000
}

func New(st store.Store, em *embedding.Service, gen generator.Generator) *Service {
	if st == nil {
		panic("store is required")
	}

	if em == nil {
		panic("embedding service is required")
	}

	return &Service{
		store:     st,
		embedding: em,
		generator: gen,
	}
}
