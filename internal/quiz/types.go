package quiz

import "time"

// Phase is the coarse stage of the quiz progression. The ancillary views
// (settings, analytics, discussion) are screens, not phases; they can be
// entered and left without touching the Session.
type Phase string

const (
	PhaseUpload     Phase = "upload"
	PhaseGenerating Phase = "generating"
	PhaseAnswering  Phase = "answering"
	PhaseResults    Phase = "results"
)

// DocumentInfo describes the uploaded document as reported by the backend.
type DocumentInfo struct {
	Filename  string `json:"filename"`
	PageCount int    `json:"page_count,omitempty"`
	WordCount int    `json:"word_count,omitempty"`
}

// Option is a single answer choice. Options keep their arrival order;
// the key ("A", "B", ...) is what gets submitted.
type Option struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Question is one generated question. The correct answer stays server-side.
type Question struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"question"`
	Options []Option `json:"options"`
}

// WrongAnswer is one reviewed mistake from the submit response.
type WrongAnswer struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

// Result is the server-computed outcome of a submission. Immutable once
// received; only TimeTakenSecs is attached client-side.
type Result struct {
	Correct       int           `json:"correct"`
	Total         int           `json:"total"`
	Wrong         []WrongAnswer `json:"wrong"`
	TimeTakenSecs int           `json:"time_taken_secs"`
}

// Percentage returns the score as a rounded percentage.
func (r *Result) Percentage() int {
	if r.Total == 0 {
		return 0
	}
	return int(float64(r.Correct)/float64(r.Total)*100 + 0.5)
}

// ChatMessage is one turn of the discussion thread.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Settings are the generation preferences. They survive a hard reset.
type Settings struct {
	QuestionCount int    `json:"question_count"`
	Difficulty    string `json:"difficulty"`
	QuestionType  string `json:"question_type"`
	TimerMinutes  int    `json:"timer_minutes"`
}

// DefaultSettings returns the out-of-the-box generation preferences.
func DefaultSettings() Settings {
	return Settings{
		QuestionCount: 10,
		Difficulty:    "medium",
		QuestionType:  "mcq",
		TimerMinutes:  0,
	}
}

// Timer tracks the optional countdown for the answering phase.
// A zero StartedAt means the timer never started.
type Timer struct {
	StartedAt      time.Time `json:"-"`
	ElapsedSeconds int       `json:"elapsed_seconds"`
}

// Start records the countdown start time.
func (t *Timer) Start(now time.Time) {
	t.StartedAt = now
	t.ElapsedSeconds = 0
}

// Running reports whether the countdown has started and not been frozen.
func (t Timer) Running() bool {
	return !t.StartedAt.IsZero()
}

// Remaining returns the seconds left for the given limit. Tick-based
// recomputation from wall time keeps drift within one tick.
func (t Timer) Remaining(limitMinutes int, now time.Time) int {
	if limitMinutes <= 0 || t.StartedAt.IsZero() {
		return 0
	}
	elapsed := int(now.Sub(t.StartedAt).Seconds())
	return limitMinutes*60 - elapsed
}

// Freeze stops the countdown and fixes the elapsed time for display.
func (t *Timer) Freeze(now time.Time) {
	if t.StartedAt.IsZero() {
		return
	}
	t.ElapsedSeconds = int(now.Sub(t.StartedAt).Seconds())
	t.StartedAt = time.Time{}
}
