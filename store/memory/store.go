package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/w-h-a/manualqa/store"
)

type memoryStore struct {
	options store.Options
	records map[int64]store.Record
	chats   []store.ChatRecord
	nextId  int64
	mtx     sync.RWMutex
}

func (s *memoryStore) Insert(ctx context.Context, content string, embedding []float32, metadata map[string]any) (int64, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.nextId++
	id := s.nextId

	cpy := make([]float32, len(embedding))
	copy(cpy, embedding)

	metaCopy := make(map[string]any, len(metadata))
	maps.Copy(metaCopy, metadata)

	s.records[id] = store.Record{
		Id:        id,
		Content:   content,
		Metadata:  metaCopy,
		Embedding: cpy,
		CreatedAt: time.Now().UTC(),
	}

	return id, nil
}

func (s *memoryStore) UpdateEmbedding(ctx context.Context, id int64, embedding []float32) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return fmt.Errorf("no document with id %d", id)
	}

	cpy := make([]float32, len(embedding))
	copy(cpy, embedding)

	rec.Embedding = cpy
	s.records[id] = rec

	return nil
}

func (s *memoryStore) Nearest(ctx context.Context, vector []float32, limit int, filters ...store.Filter) ([]store.Match, error) {
	if limit < 1 {
		return nil, nil
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	candidates := make([]store.Match, 0, len(s.records))

	for _, rec := range s.records {
		if len(rec.Embedding) == 0 {
			continue
		}
		if !matchesFilters(rec, filters) {
			continue
		}
		candidates = append(candidates, store.Match{
			Record:     rec,
			Similarity: store.SafeSimilarity(store.CosineSimilarity(vector, rec.Embedding)),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Similarity != candidates[j].Similarity {
			return candidates[i].Similarity > candidates[j].Similarity
		}
		return candidates[i].Id < candidates[j].Id
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates, nil
}

func (s *memoryStore) Search(ctx context.Context, limit int, filters ...store.Filter) ([]store.Record, error) {
	if limit < 1 {
		return nil, nil
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var results []store.Record

	for _, rec := range s.records {
		if matchesFilters(rec, filters) {
			results = append(results, rec)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if !results[i].CreatedAt.Equal(results[j].CreatedAt) {
			return results[i].CreatedAt.After(results[j].CreatedAt)
		}
		return results[i].Id > results[j].Id
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

func (s *memoryStore) Unembedded(ctx context.Context, limit int) ([]store.Record, error) {
	if limit < 1 {
		return nil, nil
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var results []store.Record

	for _, rec := range s.records {
		if isZero(rec.Embedding) {
			results = append(results, rec)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Id < results[j].Id
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

func (s *memoryStore) AppendChat(ctx context.Context, userMessage string, aiResponse string, sessionId string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.nextId++

	s.chats = append(s.chats, store.ChatRecord{
		Id:          s.nextId,
		UserMessage: userMessage,
		AiResponse:  aiResponse,
		SessionId:   sessionId,
		Timestamp:   time.Now().UTC(),
	})

	return nil
}

func (s *memoryStore) RecentChats(ctx context.Context, sessionId string, limit int) ([]store.ChatRecord, error) {
	if limit < 1 {
		return nil, nil
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var results []store.ChatRecord

	for i := len(s.chats) - 1; i >= 0; i-- {
		if len(sessionId) > 0 && s.chats[i].SessionId != sessionId {
			continue
		}
		results = append(results, s.chats[i])
		if len(results) == limit {
			break
		}
	}

	return results, nil
}

func matchesFilters(rec store.Record, filters []store.Filter) bool {
	for _, f := range filters {
		switch f := f.(type) {
		case store.FieldEquals:
			v, ok := rec.Metadata[f.Field]
			if !ok || strings.TrimSpace(fmt.Sprint(v)) != f.Value {
				return false
			}
		case store.CreatedBetween:
			if rec.CreatedAt.Before(f.Start) || rec.CreatedAt.After(f.End) {
				return false
			}
		}
	}
	return true
}

func isZero(vec []float32) bool {
	if len(vec) == 0 {
		return false
	}
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}

func NewStore(opts ...store.Option) store.Store {
	options := store.NewOptions(opts...)

	return &memoryStore{
		options: options,
		records: map[int64]store.Record{},
		mtx:     sync.RWMutex{},
	}
}
