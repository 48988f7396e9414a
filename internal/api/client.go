package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/config"
)

const (
	apiPrefix         = "/api/v1"
	createSessionPath = apiPrefix + "/auth/create-session"
)

// Client talks to the Legal AI Platform API. It attaches the stored
// bearer token to every request, logs each outcome, and on a 401
// discards the token, bootstraps a fresh session, and replays the
// original request exactly once. Concurrent 401s share a single
// in-flight session bootstrap.
type Client struct {
	httpClient *http.Client
	serverURL  string
	cfg        *config.Config
	log        *zap.Logger
	refresh    singleflight.Group
}

func NewClient(cfg *config.Config, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		serverURL:  cfg.ServerURL,
		cfg:        cfg,
		log:        log,
	}
}

// send performs one HTTP attempt. It never retries; the 401 replay
// policy lives in doWithRefresh.
func (c *Client) send(ctx context.Context, method, path, contentType string, payload []byte) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.serverURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("creating request: %w", err)
	}

	if contentType != "" && payload != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.cfg.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("reading response: %w", err)
	}

	c.log.Debug("api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	return resp.StatusCode, respBody, nil
}

// doJSON runs a JSON request with the 401-refresh-once policy applied.
func (c *Client) doJSON(ctx context.Context, method, path string, body, result interface{}) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		payload = data
	}
	return c.doWithRefresh(ctx, method, path, "application/json", payload, result)
}

func (c *Client) doWithRefresh(ctx context.Context, method, path, contentType string, payload []byte, result interface{}) error {
	status, respBody, err := c.send(ctx, method, path, contentType, payload)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized {
		c.cfg.ClearSession()
		if _, err := c.BootstrapSession(ctx); err != nil {
			return fmt.Errorf("session refresh: %w", err)
		}
		// Replay the original request once with the new token.
		status, respBody, err = c.send(ctx, method, path, contentType, payload)
		if err != nil {
			return err
		}
	}

	if status >= 400 {
		return newAPIError(status, respBody)
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// BootstrapSession creates a new session and persists the returned
// token and session id. Concurrent callers share one bootstrap; every
// waiter observes the same result.
func (c *Client) BootstrapSession(ctx context.Context) (*SessionResponse, error) {
	v, err, _ := c.refresh.Do("create-session", func() (interface{}, error) {
		return c.createSession(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*SessionResponse), nil
}

func (c *Client) createSession(ctx context.Context) (*SessionResponse, error) {
	payload, err := json.Marshal(SessionRequest{ClientInfo: c.cfg.ClientInfo()})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	// create-session is unauthenticated and must never recurse into
	// the refresh path, so it goes through send directly.
	status, respBody, err := c.send(ctx, http.MethodPost, createSessionPath, "application/json", payload)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, newAPIError(status, respBody)
	}

	var resp SessionResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	c.cfg.SetSession(resp.AccessToken, resp.SessionID, resp.ExpiresIn)
	if err := c.cfg.Save(); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}

	c.log.Info("session created", zap.String("session_id", resp.SessionID))
	return &resp, nil
}
