package store

import "time"

type Record struct {
	Id        int64
	Content   string
	Metadata  map[string]any
	Embedding []float32
	CreatedAt time.Time
}

// Match is a transient similarity result. Similarity is always finite and in
// [0, 1]; non-finite values are coerced to 0 before a Match is surfaced.
type Match struct {
	Record
	Similarity float64
}

type ChatRecord struct {
	Id          int64
	UserMessage string
	AiResponse  string
	SessionId   string
	Timestamp   time.Time
}
