package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/w-h-a/manualqa/internal/service/ingest"
	"github.com/w-h-a/manualqa/internal/service/rag"
	"github.com/w-h-a/manualqa/internal/service/tools"
	getsafe "github.com/w-h-a/manualqa/util/get_safe"
)

const maxUploadBytes = 32 << 20

// Response is the envelope every operation returns; failures are reported as
// {success: false, error: message} rather than an unhandled fault.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type Handler struct {
	rag      *rag.Service
	ingest   *ingest.Service
	catalog  *tools.Catalog
	provider string
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	providerStatus := "not_configured"
	if len(h.provider) > 0 {
		providerStatus = "configured"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "healthy",
		"services": map[string]string{
			"store":    "healthy",
			"provider": providerStatus,
		},
	})
}

func (h *Handler) ListTools(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]any{
		"tools": h.catalog.ListSpecs(),
	})
}

func (h *Handler) VectorSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, err)
		return
	}

	matches, err := h.rag.SearchSimilar(r.Context(), req.Query, req.Limit)
	if err != nil {
		writeFailure(w, err)
		return
	}

	results := make([]map[string]any, 0, len(matches))
	for _, m := range matches {
		results = append(results, map[string]any{
			"id":         m.Id,
			"content":    m.Content,
			"metadata":   m.Metadata,
			"similarity": m.Similarity,
		})
	}

	writeSuccess(w, map[string]any{
		"query":   req.Query,
		"results": results,
	})
}

func (h *Handler) AddDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content  string         `json:"content"`
		Metadata map[string]any `json:"metadata"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, err)
		return
	}

	id, err := h.rag.AddDocument(r.Context(), req.Content, req.Metadata)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeSuccess(w, map[string]any{
		"document_id": id,
		"content":     req.Content,
	})
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message   string `json:"message"`
		SessionId string `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, err)
		return
	}

	reply, err := h.rag.Chat(r.Context(), req.Message, req.SessionId)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeSuccess(w, reply)
}

func (h *Handler) ChatHistory(w http.ResponseWriter, r *http.Request) {
	sessionId := r.URL.Query().Get("session_id")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	chats, err := h.rag.History(r.Context(), sessionId, limit)
	if err != nil {
		writeFailure(w, err)
		return
	}

	history := make([]map[string]any, 0, len(chats))
	for _, c := range chats {
		history = append(history, map[string]any{
			"id":           c.Id,
			"user_message": c.UserMessage,
			"ai_response":  c.AiResponse,
			"session_id":   c.SessionId,
			"timestamp":    c.Timestamp,
		})
	}

	writeSuccess(w, map[string]any{"history": history})
}

func (h *Handler) SearchByCategory(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		writeFailure(w, err)
		return
	}

	category := getsafe.String(payload, "category")
	limit := getsafe.Int(payload, "limit")

	records, err := h.rag.SearchByCategory(r.Context(), category, limit)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeSuccess(w, map[string]any{
		"category": category,
		"results":  recordData(records),
		"count":    len(records),
	})
}

func (h *Handler) SearchByDateRange(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		writeFailure(w, err)
		return
	}

	start, err := parseDate(getsafe.String(payload, "start_date"), false)
	if err != nil {
		writeFailure(w, err)
		return
	}

	end, err := parseDate(getsafe.String(payload, "end_date"), true)
	if err != nil {
		writeFailure(w, err)
		return
	}

	records, err := h.rag.SearchByDateRange(r.Context(), start, end, getsafe.Int(payload, "limit"))
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeSuccess(w, map[string]any{
		"start_date": start,
		"end_date":   end,
		"results":    recordData(records),
		"count":      len(records),
	})
}

func (h *Handler) UploadManual(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeFailure(w, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeFailure(w, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeFailure(w, err)
		return
	}

	result, err := h.ingest.Upload(
		r.Context(),
		header.Filename,
		r.FormValue("title"),
		r.FormValue("category"),
		data,
	)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeSuccess(w, map[string]any{
		"document_ids": result.DocumentIds,
		"chunks":       result.ChunkCount,
		"text_length":  result.TextLength,
		"embedded":     result.Embedded,
	})
}

func (h *Handler) AskManual(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question    string `json:"question"`
		PdfCategory string `json:"pdf_category"`
		Limit       int    `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, err)
		return
	}

	answer, err := h.rag.Ask(r.Context(), req.Question, req.PdfCategory, req.Limit)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeSuccess(w, answer)
}

func New(ragService *rag.Service, ingestService *ingest.Service, catalog *tools.Catalog, provider string) *Handler {
	return &Handler{
		rag:      ragService,
		ingest:   ingestService,
		catalog:  catalog,
		provider: provider,
	}
}
