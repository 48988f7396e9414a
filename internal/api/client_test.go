package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/config"
)

func testConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	return &config.Config{
		ServerURL:      serverURL,
		ClientID:       "test-client",
		TimeoutSeconds: 5,
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func sessionHandler(t *testing.T, calls *int64, token string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(calls, 1)
		var req SessionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "cli_test-client", req.ClientInfo)
		writeJSON(t, w, http.StatusOK, SessionResponse{
			AccessToken: token,
			TokenType:   "bearer",
			ExpiresIn:   86400,
			SessionID:   "session_abc",
			CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func TestUnauthorizedRefreshesAndReplaysOnce(t *testing.T) {
	var sessionCalls, analysisCalls int64

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/create-session", sessionHandler(t, &sessionCalls, "fresh-token"))
	mux.HandleFunc("/api/v1/analysis/risk-analysis", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&analysisCalls, 1)
		if r.Header.Get("Authorization") != "Bearer fresh-token" {
			writeJSON(t, w, http.StatusUnauthorized, ErrorResponse{Detail: "Token has expired"})
			return
		}
		writeJSON(t, w, http.StatusOK, RiskAnalysisResponse{
			Analysis:  RiskAnalysis{RiskScore: 7.5, TotalRisks: 1, Risks: []Risk{{Title: "Service Bond Penalty", Severity: "High"}}},
			Status:    "success",
			SessionID: "session_abc",
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	cfg.AccessToken = "stale-token"
	client := NewClient(cfg, nil)

	resp, err := client.RiskAnalysis(context.Background(), "doc_1", "")
	require.NoError(t, err)

	assert.Equal(t, int64(1), atomic.LoadInt64(&sessionCalls), "exactly one session refresh")
	assert.Equal(t, int64(2), atomic.LoadInt64(&analysisCalls), "original call plus one replay")
	assert.Equal(t, 7.5, resp.Analysis.RiskScore)
	assert.Equal(t, "fresh-token", cfg.AccessToken, "new token persisted in config")
}

func TestSecondUnauthorizedPropagates(t *testing.T) {
	var sessionCalls, analysisCalls int64

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/create-session", sessionHandler(t, &sessionCalls, "fresh-token"))
	mux.HandleFunc("/api/v1/analysis/risk-analysis", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&analysisCalls, 1)
		writeJSON(t, w, http.StatusUnauthorized, ErrorResponse{Detail: "Invalid token"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	cfg.AccessToken = "stale-token"
	client := NewClient(cfg, nil)

	_, err := client.RiskAnalysis(context.Background(), "doc_1", "")
	require.Error(t, err)

	apiErr, ok := err.(*Error)
	require.True(t, ok, "expected *api.Error, got %T", err)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid token", apiErr.Detail)

	assert.Equal(t, int64(1), atomic.LoadInt64(&sessionCalls), "no second refresh")
	assert.Equal(t, int64(2), atomic.LoadInt64(&analysisCalls), "no retry beyond the single replay")
}

func TestConcurrentUnauthorizedSharesOneRefresh(t *testing.T) {
	var sessionCalls int64

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/create-session", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&sessionCalls, 1)
		time.Sleep(100 * time.Millisecond) // hold the flight open
		writeJSON(t, w, http.StatusOK, SessionResponse{
			AccessToken: "fresh-token", TokenType: "bearer", ExpiresIn: 86400, SessionID: "session_abc",
		})
	})
	mux.HandleFunc("/api/v1/chatbot/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh-token" {
			writeJSON(t, w, http.StatusUnauthorized, ErrorResponse{Detail: "Token has expired"})
			return
		}
		writeJSON(t, w, http.StatusOK, ChatbotHealthResponse{Status: "operational"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	cfg.AccessToken = "stale-token"
	client := NewClient(cfg, nil)

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = client.ChatbotHealth(context.Background())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "caller %d", i)
	}
	assert.Equal(t, int64(1), atomic.LoadInt64(&sessionCalls), "concurrent 401s share one bootstrap")
}

func TestNoTokenMeansNoAuthorizationHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["Authorization"]
		assert.False(t, present, "Authorization header must be absent without a stored token")
		writeJSON(t, w, http.StatusOK, HealthResponse{Status: "healthy", Version: "1.0.0"})
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	client := NewClient(cfg, nil)

	resp, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", resp.Status)
}

func TestErrorDetailExtraction(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{"detail field", http.StatusNotFound, `{"detail":"Legal document not found"}`, "Legal document not found"},
		{"plain body", http.StatusBadGateway, "upstream exploded", "upstream exploded"},
		{"empty body", http.StatusServiceUnavailable, "", "Service Unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			cfg := testConfig(t, srv.URL)
			cfg.AccessToken = "token"
			client := NewClient(cfg, nil)

			_, err := client.DocumentInfo(context.Background(), "doc_1")
			require.Error(t, err)

			apiErr, ok := err.(*Error)
			require.True(t, ok)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantDetail, apiErr.Detail)
		})
	}
}

func TestResponseFieldsDecodeUnchanged(t *testing.T) {
	// Wire-format payload as the backend emits it; decoding must not
	// lose or rename anything the client exposes.
	const payload = `{
		"analysis": {
			"risks": [
				{"title": "Service Bond and Liquidated Damages", "severity": "High", "description": "Early exit costs money."},
				{"title": "Location Transfer", "severity": "Medium", "description": "Relocation may be required."}
			],
			"total_risks": 2,
			"risk_score": 6.5,
			"graph_data": {"risk_counts": {"High": 1, "Medium": 1, "Low": 0}, "total_score": 6.5, "total_risks": 2}
		},
		"relevant_chunks": [
			{"chunk_index": 3, "text": "Section text.", "relevance_score": 0.91, "word_count": 2, "section_type": "legal_section", "character_count": 13}
		],
		"status": "success",
		"timestamp": "2026-08-30T10:00:00",
		"session_id": "session_abc"
	}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req AnalysisRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "doc_1", req.DocumentID)
		assert.Equal(t, "US", req.Jurisdiction, "empty jurisdiction defaults to US")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	cfg.AccessToken = "token"
	client := NewClient(cfg, nil)

	resp, err := client.RiskAnalysis(context.Background(), "doc_1", "")
	require.NoError(t, err)

	require.Len(t, resp.Analysis.Risks, 2)
	assert.Equal(t, "Service Bond and Liquidated Damages", resp.Analysis.Risks[0].Title)
	assert.Equal(t, "High", resp.Analysis.Risks[0].Severity)
	assert.Equal(t, 2, resp.Analysis.TotalRisks)
	assert.Equal(t, 6.5, resp.Analysis.RiskScore)
	require.NotNil(t, resp.Analysis.GraphData)
	assert.Equal(t, 1, resp.Analysis.GraphData.RiskCounts["High"])
	require.Len(t, resp.RelevantChunks, 1)
	assert.Equal(t, 3, resp.RelevantChunks[0].ChunkIndex)
	assert.Equal(t, 0.91, resp.RelevantChunks[0].RelevanceScore)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "session_abc", resp.SessionID)
}

func TestRagAnalysisAliasesRiskAnalysis(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/analysis/rag_analysis", r.URL.Path)
		var req AnalysisRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "doc_1", req.DocumentID)
		writeJSON(t, w, http.StatusOK, RiskAnalysisResponse{
			Analysis: RiskAnalysis{
				Risks:     []Risk{{Title: "Service Bond", Severity: "High", Description: "Costly exit."}},
				RiskScore: 5.0,
			},
			Status: "success",
		})
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	cfg.AccessToken = "token"
	client := NewClient(cfg, nil)

	resp, err := client.RagAnalysis(context.Background(), "doc_1", "US")
	require.NoError(t, err)
	require.Len(t, resp.Analysis.Risks, 1)
	assert.Equal(t, "Service Bond", resp.Analysis.Risks[0].Title)
	assert.Equal(t, 5.0, resp.Analysis.RiskScore)
}

func TestHealthProbes(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, HealthResponse{Status: "healthy", Version: "1.0.0"})
	})
	mux.HandleFunc("/api/v1/chatbot/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, ChatbotHealthResponse{Service: "chatbot", Status: "healthy"})
	})
	mux.HandleFunc("/api/v1/analysis/health/legal-analysis", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, AnalysisHealthResponse{
			System:  "Enhanced Legal Document Analysis",
			Model:   "Llama 3.3 70B Versatile",
			Backend: "Pinecone Enhanced Legal",
			Status:  "fully_operational",
		})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	cfg.AccessToken = "token"
	client := NewClient(cfg, nil)
	ctx := context.Background()

	svc, err := client.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "healthy", svc.Status)

	bot, err := client.ChatbotHealth(ctx)
	require.NoError(t, err)
	assert.Equal(t, "chatbot", bot.Service)

	analysis, err := client.AnalysisHealth(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fully_operational", analysis.Status)
	assert.Equal(t, "Llama 3.3 70B Versatile", analysis.Model)
}

func TestChatRequestDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]json.RawMessage
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&raw))

		// conversation_history must serialize as [], never null.
		assert.Equal(t, "[]", string(raw["conversation_history"]))
		assert.Equal(t, "8", string(raw["max_context_chunks"]))
		assert.Equal(t, "true", string(raw["include_document_context"]))

		writeJSON(t, w, http.StatusOK, ChatResponse{Response: "answer", ConversationID: "conv_1"})
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	cfg.AccessToken = "token"
	client := NewClient(cfg, nil)

	resp, err := client.Chat(context.Background(), &ChatRequest{Message: "hi", DocumentID: "doc_1"})
	require.NoError(t, err)
	assert.Equal(t, "answer", resp.Response)
}
