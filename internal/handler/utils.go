package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/w-h-a/manualqa/store"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func writeFailure(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusOK, Response{Success: false, Error: err.Error()})
}

func decodePayload(r *http.Request) (map[string]any, error) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("invalid json payload: %w", err)
	}
	return payload, nil
}

// parseDate accepts RFC3339 or a plain date. A plain end date covers the
// whole day so the range stays inclusive on both ends.
func parseDate(raw string, endOfDay bool) (time.Time, error) {
	if len(raw) == 0 {
		return time.Time{}, errors.New("start_date and end_date are required")
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}

	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", raw, err)
	}

	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}

	return t, nil
}

func recordData(records []store.Record) []map[string]any {
	results := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		results = append(results, map[string]any{
			"id":         rec.Id,
			"content":    rec.Content,
			"metadata":   rec.Metadata,
			"created_at": rec.CreatedAt,
		})
	}
	return results
}
