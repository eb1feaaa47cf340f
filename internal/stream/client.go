// Package stream consumes the backend's server-sent question feed. It is
// transport only: events are parsed, validated, and handed over a channel
// into the event loop; what they mean for the Session is decided by the
// quiz.Generation reducer.
package stream

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Client opens generation streams against the backend.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     zerolog.Logger
}

// NewClient creates a stream client for the given API base URL. The
// underlying HTTP client carries no timeout; the stream lives until a
// terminal event or the context is cancelled.
func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		log:     log.With().Str("component", "stream").Logger(),
	}
}

// GenerateParams parametrizes one generation attempt.
type GenerateParams struct {
	DocumentID string
	Count      int
	Difficulty string
	Language   string
	Attempt    int
}

// Stream is one open generation connection. Exactly one terminal event
// (done, error, or dropped) is emitted before the channel closes.
type Stream struct {
	events chan Event
	cancel context.CancelFunc
}

// Events returns the event channel. It is closed after the terminal event.
func (s *Stream) Events() <-chan Event {
	return s.events
}

// Close tears the connection down early. Safe to call more than once; any
// in-flight read unblocks and the reader goroutine exits.
func (s *Stream) Close() {
	s.cancel()
}

// OpenGeneration opens the event stream for a document. Only one stream is
// ever open at a time: callers close the previous attempt before starting
// the next one.
func (c *Client) OpenGeneration(ctx context.Context, p GenerateParams) (*Stream, error) {
	url := fmt.Sprintf("%s/generate-questions/%s?count=%s&difficulty=%s&language=%s",
		c.baseURL, p.DocumentID,
		strconv.Itoa(p.Count), p.Difficulty, p.Language)

	ctx, cancel := context.WithCancel(ctx)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("build stream request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpc.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("open stream: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("open stream: HTTP %d", resp.StatusCode)
	}

	s := &Stream{
		events: make(chan Event, 16),
		cancel: cancel,
	}
	go c.read(ctx, resp, s, p.Attempt)
	return s, nil
}

// read scans the SSE body line by line and forwards parsed events. The
// loop returns after the first terminal event; an EOF or read error before
// one becomes EventDropped.
func (c *Client) read(ctx context.Context, resp *http.Response, s *Stream, attempt int) {
	defer resp.Body.Close()
	defer close(s.events)

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" {
			continue
		}

		ev, err := parsePayload([]byte(payload))
		if err != nil {
			// A malformed event is skipped, not fatal; the browser
			// EventSource behaves the same way.
			c.log.Warn().Err(err).Int("attempt", attempt).Msg("skipping stream event")
			continue
		}
		ev.Attempt = attempt

		if !s.send(ctx, ev) {
			return
		}
		if ev.Kind == EventDone || ev.Kind == EventError {
			return
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		c.log.Warn().Err(err).Int("attempt", attempt).Msg("stream read failed")
	}
	s.send(ctx, Event{Attempt: attempt, Kind: EventDropped})
}

// send delivers an event unless the stream context is gone.
func (s *Stream) send(ctx context.Context, ev Event) bool {
	select {
	case s.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
