package postgres

import (
	"context"
	"fmt"
)

func (p *postgresStore) ensureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS documents (
			id BIGSERIAL PRIMARY KEY,
			content TEXT NOT NULL,
			embedding vector(%d),
			metadata JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, p.options.Dimensions),
		`CREATE TABLE IF NOT EXISTS chat_history (
			id BIGSERIAL PRIMARY KEY,
			user_message TEXT NOT NULL,
			ai_response TEXT NOT NULL,
			session_id TEXT,
			timestamp TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS documents_embedding_idx
			ON documents USING hnsw (embedding vector_cosine_ops)`,
		`CREATE INDEX IF NOT EXISTS chat_history_session_idx
			ON chat_history (session_id, timestamp DESC)`,
	}

	for _, stmt := range statements {
		if _, err := p.conn.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}
