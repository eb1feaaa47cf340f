package stream

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/quizdeck/internal/quiz"
)

// EventKind classifies an inbound stream event.
type EventKind int

const (
	// EventQuestion carries one generated question.
	EventQuestion EventKind = iota
	// EventDone is the explicit completion signal. Terminal.
	EventDone
	// EventError is an explicit error signal with details. Terminal.
	EventError
	// EventDropped means the connection closed without a done or error
	// event. Terminal; there is no reconnect.
	EventDropped
)

// Event is one parsed occurrence on the generation stream, tagged with the
// attempt id of the connection that produced it.
type Event struct {
	Attempt  int
	Kind     EventKind
	Question quiz.Question
	Details  string
}

// questionSchema constrains inbound question payloads before they are
// allowed anywhere near Session state.
var questionSchema = map[string]any{
	"type":     "object",
	"required": []any{"id", "question", "options"},
	"properties": map[string]any{
		"id":       map[string]any{"type": []any{"integer", "string"}},
		"question": map[string]any{"type": "string", "minLength": 1},
		"options": map[string]any{
			"type":                 "object",
			"minProperties":        2,
			"additionalProperties": map[string]any{"type": "string"},
		},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func compiledQuestionSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://question.json", questionSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("schema://question.json")
	})
	return compiledSchema, compileErr
}

// wireQuestion is the backend's question event shape. The id is numeric in
// the backend's database but opaque to the client, so it is normalized to a
// string; option keys are sorted to fix the display order the JSON object
// cannot carry.
type wireQuestion struct {
	ID       json.RawMessage   `json:"id"`
	Question string            `json:"question"`
	Options  map[string]string `json:"options"`
}

// normalizeID flattens the id the schema admits (integer or string) to a
// string. Strings come through as-is, numbers keep their literal form.
func normalizeID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return string(raw)
}

// parsePayload turns one data payload into an Event (without attempt tag).
// A payload that is neither done, error, nor a schema-valid question is
// rejected with an error; the caller skips it.
func parsePayload(raw []byte) (Event, error) {
	var probe struct {
		Status string          `json:"status"`
		Error  json.RawMessage `json:"error"`
		Detail string          `json:"details"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Event{}, fmt.Errorf("invalid JSON: %w", err)
	}

	if probe.Status == "done" {
		return Event{Kind: EventDone}, nil
	}
	if len(probe.Error) > 0 && string(probe.Error) != "null" && string(probe.Error) != "false" {
		details := probe.Detail
		if details == "" {
			var msg string
			if err := json.Unmarshal(probe.Error, &msg); err == nil {
				details = msg
			} else {
				details = "question generation failed"
			}
		}
		return Event{Kind: EventError, Details: details}, nil
	}

	schema, err := compiledQuestionSchema()
	if err != nil {
		return Event{}, fmt.Errorf("compile question schema: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Event{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return Event{}, fmt.Errorf("question payload rejected: %w", err)
	}

	var wq wireQuestion
	if err := json.Unmarshal(raw, &wq); err != nil {
		return Event{}, fmt.Errorf("decode question: %w", err)
	}

	keys := make([]string, 0, len(wq.Options))
	for k := range wq.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	q := quiz.Question{
		ID:      normalizeID(wq.ID),
		Prompt:  wq.Question,
		Options: make([]quiz.Option, 0, len(keys)),
	}
	for _, k := range keys {
		q.Options = append(q.Options, quiz.Option{Key: k, Text: wq.Options[k]})
	}
	return Event{Kind: EventQuestion, Question: q}, nil
}
