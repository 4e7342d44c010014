package tools

// Defaults is the static manifest of the service's callable operations.
func Defaults() []Spec {
	return []Spec{
		{
			Name:        "vector_search",
			Description: "Search for similar documents using vector similarity",
			Parameters:  []string{"query", "limit"},
		},
		{
			Name:        "add_document",
			Description: "Add a new document to the vector database",
			Parameters:  []string{"content", "metadata"},
		},
		{
			Name:        "chat_with_context",
			Description: "Chat with AI using context from the vector database",
			Parameters:  []string{"message", "session_id"},
		},
		{
			Name:        "get_chat_history",
			Description: "Get chat history for a session",
			Parameters:  []string{"session_id", "limit"},
		},
		{
			Name:        "search_by_category",
			Description: "Search documents by category in metadata",
			Parameters:  []string{"category", "limit"},
		},
		{
			Name:        "search_by_date_range",
			Description: "Search documents within a specific date range",
			Parameters:  []string{"start_date", "end_date", "limit"},
		},
		{
			Name:        "upload_pdf_manual",
			Description: "Upload a PDF manual, chunk it, and index it for retrieval",
			Parameters:  []string{"file", "title", "category"},
		},
		{
			Name:        "ask_pdf_manual",
			Description: "Ask a question answered from uploaded PDF manuals",
			Parameters:  []string{"question", "pdf_category", "limit"},
		},
	}
}
