package store

import "context"

// Store owns all persisted chunk and chat state. Nearest only considers rows
// that carry an embedding and orders by descending similarity with ties broken
// by insertion order.
type Store interface {
	Insert(ctx context.Context, content string, embedding []float32, metadata map[string]any) (int64, error)
	UpdateEmbedding(ctx context.Context, id int64, embedding []float32) error
	Nearest(ctx context.Context, vector []float32, limit int, filters ...Filter) ([]Match, error)
	Search(ctx context.Context, limit int, filters ...Filter) ([]Record, error)
	Unembedded(ctx context.Context, limit int) ([]Record, error)
	AppendChat(ctx context.Context, userMessage string, aiResponse string, sessionId string) error
	RecentChats(ctx context.Context, sessionId string, limit int) ([]ChatRecord, error)
}
