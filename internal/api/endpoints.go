package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
)

// Defaults matching the backend's chunking and retrieval parameters.
const (
	DefaultChunkSize        = 500
	DefaultOverlap          = 100
	DefaultMaxContextChunks = 8
)

// ValidateToken checks the stored token against the backend.
func (c *Client) ValidateToken(ctx context.Context) (*TokenValidationResponse, error) {
	var resp TokenValidationResponse
	err := c.doJSON(ctx, http.MethodPost, apiPrefix+"/auth/validate-token", struct{}{}, &resp)
	return &resp, err
}

// SessionInfo returns details about the current session.
func (c *Client) SessionInfo(ctx context.Context) (*SessionInfoResponse, error) {
	var resp SessionInfoResponse
	err := c.doJSON(ctx, http.MethodGet, apiPrefix+"/auth/session-info", nil, &resp)
	return &resp, err
}

// StoreChunks sends raw text to be chunked and stored for analysis.
// Zero chunk size and overlap fall back to the backend defaults.
func (c *Client) StoreChunks(ctx context.Context, req *StoreChunksRequest) (*StoreChunksResponse, error) {
	if req.ChunkSize <= 0 {
		req.ChunkSize = DefaultChunkSize
	}
	if req.Overlap < 0 {
		req.Overlap = DefaultOverlap
	}
	if req.DocumentType == "" {
		req.DocumentType = "text"
	}
	var resp StoreChunksResponse
	err := c.doJSON(ctx, http.MethodPost, apiPrefix+"/documents/store_chunks", req, &resp)
	return &resp, err
}

// UploadPDF uploads a PDF for server-side extraction and chunking.
func (c *Client) UploadPDF(ctx context.Context, filePath string) (*StoreChunksResponse, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("copying file: %w", err)
	}
	writer.Close()

	var resp StoreChunksResponse
	err = c.doWithRefresh(ctx, http.MethodPost, apiPrefix+"/documents/upload-pdf",
		writer.FormDataContentType(), buf.Bytes(), &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// DocumentInfo fetches server-side state for a stored document.
func (c *Client) DocumentInfo(ctx context.Context, documentID string) (*DocumentInfoResponse, error) {
	var resp DocumentInfoResponse
	err := c.doJSON(ctx, http.MethodGet, apiPrefix+"/documents/document/"+documentID+"/info", nil, &resp)
	return &resp, err
}

// DeleteDocument removes a document and all its chunks from the server.
func (c *Client) DeleteDocument(ctx context.Context, documentID string) (*DeleteDocumentResponse, error) {
	var resp DeleteDocumentResponse
	err := c.doJSON(ctx, http.MethodDelete, apiPrefix+"/documents/document/"+documentID, nil, &resp)
	return &resp, err
}

// RiskAnalysis runs a risk analysis over a stored document.
// An empty jurisdiction defaults to "US".
func (c *Client) RiskAnalysis(ctx context.Context, documentID, jurisdiction string) (*RiskAnalysisResponse, error) {
	var resp RiskAnalysisResponse
	err := c.doJSON(ctx, http.MethodPost, apiPrefix+"/analysis/risk-analysis",
		newAnalysisRequest(documentID, jurisdiction), &resp)
	return &resp, err
}

// DocumentSummary produces a contract summary for a stored document.
func (c *Client) DocumentSummary(ctx context.Context, documentID, jurisdiction string) (*DocumentSummaryResponse, error) {
	var resp DocumentSummaryResponse
	err := c.doJSON(ctx, http.MethodPost, apiPrefix+"/analysis/document-summary",
		newAnalysisRequest(documentID, jurisdiction), &resp)
	return &resp, err
}

// NegotiationAssistant generates acceptance and modification-request
// email templates for a stored document.
func (c *Client) NegotiationAssistant(ctx context.Context, documentID, jurisdiction string) (*NegotiationResponse, error) {
	var resp NegotiationResponse
	err := c.doJSON(ctx, http.MethodPost, apiPrefix+"/analysis/negotiation-assistant",
		newAnalysisRequest(documentID, jurisdiction), &resp)
	return &resp, err
}

// RagAnalysis calls the legacy analysis endpoint. The backend keeps it
// as an alias of risk analysis for older clients, so the response
// shape is the same.
func (c *Client) RagAnalysis(ctx context.Context, documentID, jurisdiction string) (*RiskAnalysisResponse, error) {
	var resp RiskAnalysisResponse
	err := c.doJSON(ctx, http.MethodPost, apiPrefix+"/analysis/rag_analysis",
		newAnalysisRequest(documentID, jurisdiction), &resp)
	return &resp, err
}

func newAnalysisRequest(documentID, jurisdiction string) *AnalysisRequest {
	if jurisdiction == "" {
		jurisdiction = "US"
	}
	return &AnalysisRequest{DocumentID: documentID, Jurisdiction: jurisdiction}
}

// Chat sends a message to the document chatbot.
func (c *Client) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	if req.ConversationHistory == nil {
		req.ConversationHistory = []ChatMessage{}
	}
	if req.MaxContextChunks <= 0 {
		req.MaxContextChunks = DefaultMaxContextChunks
	}
	req.IncludeDocumentContext = true

	var resp ChatResponse
	err := c.doJSON(ctx, http.MethodPost, apiPrefix+"/chatbot/chat", req, &resp)
	return &resp, err
}

// ExplainClause asks the chatbot to explain a single clause. The
// backend has no dedicated route for this; it rides the chat endpoint.
func (c *Client) ExplainClause(ctx context.Context, documentID, clause string) (*ChatResponse, error) {
	msg := "Explain the following clause in plain language, including the obligations it creates and any risks it carries:\n\n" + clause
	return c.Chat(ctx, &ChatRequest{Message: msg, DocumentID: documentID})
}

// Suggestions fetches suggested questions for a document.
func (c *Client) Suggestions(ctx context.Context, documentID string) (*SuggestionsResponse, error) {
	var resp SuggestionsResponse
	err := c.doJSON(ctx, http.MethodGet, apiPrefix+"/chatbot/suggestions/"+documentID, nil, &resp)
	return &resp, err
}

// Health checks the unversioned service health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	err := c.doJSON(ctx, http.MethodGet, "/health", nil, &resp)
	return &resp, err
}

// AnalysisHealth checks the legal analysis subsystem.
func (c *Client) AnalysisHealth(ctx context.Context) (*AnalysisHealthResponse, error) {
	var resp AnalysisHealthResponse
	err := c.doJSON(ctx, http.MethodGet, apiPrefix+"/analysis/health/legal-analysis", nil, &resp)
	return &resp, err
}

// ChatbotHealth checks the chatbot subsystem.
func (c *Client) ChatbotHealth(ctx context.Context) (*ChatbotHealthResponse, error) {
	var resp ChatbotHealthResponse
	err := c.doJSON(ctx, http.MethodGet, apiPrefix+"/chatbot/health", nil, &resp)
	return &resp, err
}
