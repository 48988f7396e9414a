package api

// SessionRequest is the payload for POST /api/v1/auth/create-session.
type SessionRequest struct {
	ClientInfo string `json:"client_info"`
}

// SessionResponse is returned from POST /api/v1/auth/create-session.
type SessionResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	SessionID   string `json:"session_id"`
	CreatedAt   string `json:"created_at"`
}

// TokenValidationResponse is returned from POST /api/v1/auth/validate-token.
type TokenValidationResponse struct {
	Valid     bool   `json:"valid"`
	SessionID string `json:"session_id"`
	ExpiresAt string `json:"expires_at"`
	CreatedAt string `json:"created_at"`
}

// SessionInfoResponse is returned from GET /api/v1/auth/session-info.
type SessionInfoResponse struct {
	SessionID  string `json:"session_id"`
	CreatedAt  string `json:"created_at"`
	ExpiresAt  string `json:"expires_at"`
	Status     string `json:"status"`
	TokenValid bool   `json:"token_valid"`
}

// StoreChunksRequest is the payload for POST /api/v1/documents/store_chunks.
type StoreChunksRequest struct {
	DocumentID   string `json:"document_id"`
	FullText     string `json:"full_text"`
	ChunkSize    int    `json:"chunk_size"`
	Overlap      int    `json:"overlap"`
	DocumentType string `json:"document_type"`
}

// ExtractionInfo describes how text was pulled out of an uploaded document.
type ExtractionInfo struct {
	Method       string  `json:"method"`
	QualityScore float64 `json:"quality_score"`
	PageCount    int     `json:"page_count,omitempty"`
	TextLength   int     `json:"text_length"`
	DocumentType string  `json:"document_type"`
}

// StoreChunksResponse is returned from both store_chunks and upload-pdf.
type StoreChunksResponse struct {
	DocumentID        string         `json:"document_id"`
	SessionDocumentID string         `json:"session_document_id"`
	ChunksStored      int            `json:"chunks_stored"`
	Status            string         `json:"status"`
	Timestamp         string         `json:"timestamp"`
	SessionID         string         `json:"session_id"`
	ExtractionInfo    ExtractionInfo `json:"extraction_info"`
	BackendType       string         `json:"backend_type"`
}

// DocumentInfoResponse is returned from GET /api/v1/documents/document/{id}/info.
type DocumentInfoResponse struct {
	DocumentID        string `json:"document_id"`
	SessionDocumentID string `json:"session_document_id"`
	SessionID         string `json:"session_id"`
	Exists            bool   `json:"exists"`
	ChunkCount        int    `json:"chunk_count"`
	CreatedAt         string `json:"created_at"`
	Status            string `json:"status"`
	Backend           string `json:"backend"`
	IndexTotalVectors int    `json:"index_total_vectors"`
	OptimalChunks     bool   `json:"optimal_chunks"`
	Timestamp         string `json:"timestamp"`
}

// DeleteDocumentResponse is returned from DELETE /api/v1/documents/document/{id}.
type DeleteDocumentResponse struct {
	DocumentID string `json:"document_id"`
	SessionID  string `json:"session_id"`
	Backend    string `json:"backend"`
	Status     string `json:"status"`
	Timestamp  string `json:"timestamp"`
}

// AnalysisRequest is the shared payload for the analysis endpoints.
type AnalysisRequest struct {
	DocumentID   string `json:"document_id"`
	Jurisdiction string `json:"jurisdiction"`
}

// Risk is one identified contract risk.
type Risk struct {
	Title       string `json:"title"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

// GraphData carries aggregate risk figures the backend precomputes.
// Chart rendering is out of scope; the counts are still useful to print.
type GraphData struct {
	RiskCounts map[string]int `json:"risk_counts"`
	TotalScore float64        `json:"total_score"`
	TotalRisks int            `json:"total_risks"`
}

// RiskAnalysis is the analysis object of a risk-analysis response.
type RiskAnalysis struct {
	Risks      []Risk     `json:"risks"`
	TotalRisks int        `json:"total_risks"`
	RiskScore  float64    `json:"risk_score"`
	GraphData  *GraphData `json:"graph_data,omitempty"`
}

// DocumentSummary is the analysis object of a document-summary response.
type DocumentSummary struct {
	ContractType string   `json:"contract_type"`
	KeyPoints    []string `json:"key_points"`
	Summary      string   `json:"summary"`
}

// NegotiationEmails holds the two generated email templates.
type NegotiationEmails struct {
	Acceptance string `json:"acceptance"`
	Rejection  string `json:"rejection"`
}

// Negotiation is the analysis object of a negotiation-assistant response.
type Negotiation struct {
	Emails NegotiationEmails `json:"emails"`
}

// Chunk is a retrieved document section attached to an analysis response.
type Chunk struct {
	ChunkIndex     int     `json:"chunk_index"`
	Text           string  `json:"text"`
	RelevanceScore float64 `json:"relevance_score"`
	WordCount      int     `json:"word_count"`
	SectionType    string  `json:"section_type"`
	CharacterCount int     `json:"character_count,omitempty"`
}

// RiskAnalysisResponse is returned from POST /api/v1/analysis/risk-analysis.
type RiskAnalysisResponse struct {
	Analysis       RiskAnalysis `json:"analysis"`
	RelevantChunks []Chunk      `json:"relevant_chunks"`
	Status         string       `json:"status"`
	Timestamp      string       `json:"timestamp"`
	SessionID      string       `json:"session_id"`
}

// DocumentSummaryResponse is returned from POST /api/v1/analysis/document-summary.
type DocumentSummaryResponse struct {
	Analysis       DocumentSummary `json:"analysis"`
	RelevantChunks []Chunk         `json:"relevant_chunks"`
	Status         string          `json:"status"`
	Timestamp      string          `json:"timestamp"`
	SessionID      string          `json:"session_id"`
}

// NegotiationResponse is returned from POST /api/v1/analysis/negotiation-assistant.
type NegotiationResponse struct {
	Analysis       Negotiation `json:"analysis"`
	RelevantChunks []Chunk     `json:"relevant_chunks"`
	Status         string      `json:"status"`
	Timestamp      string      `json:"timestamp"`
	SessionID      string      `json:"session_id"`
}

// ChatMessage is one turn of conversation history.
type ChatMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ChatRequest is the payload for POST /api/v1/chatbot/chat.
type ChatRequest struct {
	Message                string        `json:"message"`
	DocumentID             string        `json:"document_id"`
	ConversationHistory    []ChatMessage `json:"conversation_history"`
	MaxContextChunks       int           `json:"max_context_chunks"`
	IncludeDocumentContext bool          `json:"include_document_context"`
}

// ChatSource describes a context chunk the chatbot grounded its answer on.
type ChatSource struct {
	ChunkID        string  `json:"chunk_id"`
	ChunkIndex     int     `json:"chunk_index"`
	RelevanceScore float64 `json:"relevance_score"`
	TextPreview    string  `json:"text_preview"`
	SectionType    string  `json:"section_type"`
	WordCount      int     `json:"word_count"`
	CharacterCount int     `json:"character_count"`
}

// ChatResponse is returned from POST /api/v1/chatbot/chat.
type ChatResponse struct {
	Response        string       `json:"response"`
	DocumentID      string       `json:"document_id"`
	Sources         []ChatSource `json:"sources"`
	ConversationID  string       `json:"conversation_id"`
	Timestamp       string       `json:"timestamp"`
	ContextUsed     int          `json:"context_used"`
	ModelUsed       string       `json:"model_used"`
	ConfidenceScore float64      `json:"confidence_score"`
	SessionID       string       `json:"session_id"`
}

// SuggestionsResponse is returned from GET /api/v1/chatbot/suggestions/{id}.
type SuggestionsResponse struct {
	DocumentID         string   `json:"document_id"`
	SuggestedQuestions []string `json:"suggested_questions"`
	Category           string   `json:"category"`
	Timestamp          string   `json:"timestamp"`
	SessionID          string   `json:"session_id"`
}

// HealthResponse is returned from GET /health.
type HealthResponse struct {
	Status    string  `json:"status"`
	Version   string  `json:"version"`
	Timestamp float64 `json:"timestamp"`
}

// AnalysisHealthResponse is returned from
// GET /api/v1/analysis/health/legal-analysis. The backend also reports
// per-service LLM and vector store details; only the fields the CLI
// prints are decoded.
type AnalysisHealthResponse struct {
	System    string   `json:"system"`
	Model     string   `json:"model"`
	Backend   string   `json:"backend"`
	Features  []string `json:"features,omitempty"`
	Status    string   `json:"status"`
	Timestamp string   `json:"timestamp"`
}

// ChatbotHealthResponse is returned from GET /api/v1/chatbot/health.
type ChatbotHealthResponse struct {
	Service   string   `json:"service"`
	Status    string   `json:"status"`
	Features  []string `json:"features,omitempty"`
	Timestamp string   `json:"timestamp"`
}

// ErrorResponse is the FastAPI error envelope.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
