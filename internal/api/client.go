// Package api is the HTTP gateway to the quiz backend: document upload,
// session lifecycle, discussion, and analytics. Question streaming lives in
// the stream package; everything here is plain request/response.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abhisek/quizdeck/internal/quiz"
)

// Client talks to the backend API. Reads retry transient failures; writes
// never do, since the backend records them on first receipt.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     zerolog.Logger
}

// NewClient creates a gateway client for the given base URL, e.g.
// "http://localhost:5000/api". The timeout bounds each one-shot request;
// a non-positive value falls back to 60 seconds.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		log:     log.With().Str("component", "api").Logger(),
	}
}

// Upload sends a document to the backend for text extraction. The returned
// document id keys every later call for this session.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader, language string) (Upload, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return Upload{}, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return Upload{}, fmt.Errorf("read document: %w", err)
	}
	if err := mw.WriteField("language", language); err != nil {
		return Upload{}, fmt.Errorf("build upload form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return Upload{}, fmt.Errorf("build upload form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload", &buf)
	if err != nil {
		return Upload{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var wire wireUpload
	if err := c.doOnce(req, &wire); err != nil {
		return Upload{}, err
	}
	return Upload{
		DocumentID:     wire.DocumentID.String(),
		Filename:       wire.Filename,
		ContentPreview: wire.ContentPreview,
	}, nil
}

// StartSession registers a new attempt for a document and returns its
// backend session id.
func (c *Client) StartSession(ctx context.Context, documentID string, totalQuestions int) (string, error) {
	body := map[string]any{
		"document_id":     documentID,
		"total_questions": totalQuestions,
	}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/session/start", body)
	if err != nil {
		return "", err
	}

	var wire struct {
		SessionID json.Number `json:"session_id"`
	}
	if err := c.doOnce(req, &wire); err != nil {
		return "", err
	}
	return wire.SessionID.String(), nil
}

// SubmitAnswers grades the session server-side. The backend treats unknown
// question ids as noise and unanswered questions as wrong, so the result is
// authoritative regardless of what was sent.
func (c *Client) SubmitAnswers(ctx context.Context, documentID, sessionID string, answers map[string]string) (*quiz.Result, error) {
	body := map[string]any{
		"document_id": documentID,
		"session_id":  sessionID,
		"answers":     answers,
	}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/submit-answers", body)
	if err != nil {
		return nil, err
	}

	var result quiz.Result
	if err := c.doOnce(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// History lists recent completed sessions, newest first. The backend caps
// the listing at ten entries.
func (c *Client) History(ctx context.Context) ([]HistoryEntry, error) {
	var wire []wireHistoryEntry
	if err := c.getJSON(ctx, "/session/history", &wire); err != nil {
		return nil, err
	}
	entries := make([]HistoryEntry, 0, len(wire))
	for _, w := range wire {
		entries = append(entries, HistoryEntry{
			ID:         w.ID.String(),
			FileName:   w.FileName,
			Date:       w.Date,
			Score:      w.Score,
			Total:      w.Total,
			Percentage: w.Percentage,
		})
	}
	return entries, nil
}

// SessionResult fetches the stored outcome of a past session for replaying
// its review.
func (c *Client) SessionResult(ctx context.Context, sessionID string) (*quiz.Result, error) {
	var result quiz.Result
	if err := c.getJSON(ctx, "/session/"+sessionID, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteSession removes a session and its attempts from the backend.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/session/"+sessionID, nil)
	if err != nil {
		return err
	}
	return c.doOnce(req, nil)
}

// Chat sends one discussion message grounded in the document and the
// session's mistakes, and returns the assistant reply.
func (c *Client) Chat(ctx context.Context, p ChatParams) (string, error) {
	body := map[string]any{
		"document_id":     p.DocumentID,
		"message":         p.Message,
		"history":         p.History,
		"wrong_questions": p.WrongQuestions,
		"language":        p.Language,
	}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/chat", body)
	if err != nil {
		return "", err
	}

	var wire struct {
		Response string `json:"response"`
	}
	if err := c.doOnce(req, &wire); err != nil {
		return "", err
	}
	return wire.Response, nil
}

// Analytics fetches the aggregate figures across all completed sessions.
func (c *Client) Analytics(ctx context.Context) (Analytics, error) {
	var a Analytics
	err := c.getJSON(ctx, "/analytics", &a)
	return a, err
}

// Health pings the backend. Used at startup to tell "backend down" apart
// from session errors.
func (c *Client) Health(ctx context.Context) error {
	return c.getJSON(ctx, "/health", nil)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := c.newRequest(ctx, method, path, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// doOnce executes a one-shot request and decodes a JSON response into out
// (nil to discard). Non-2xx becomes an *Error.
func (c *Client) doOnce(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return apiError(resp.StatusCode, body)
	}
	return decodeBody(resp.Body, out)
}

// getJSON executes a GET with retry on transient statuses.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := doWithRetry(ctx, c.httpc, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodGet, path, nil)
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return decodeBody(resp.Body, out)
}

func decodeBody(r io.Reader, out any) error {
	if out == nil {
		_, err := io.Copy(io.Discard, r)
		return err
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
