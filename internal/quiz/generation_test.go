package quiz

import "testing"

func q(id string) Question {
	return Question{
		ID:     id,
		Prompt: "prompt " + id,
		Options: []Option{
			{Key: "A", Text: "first"},
			{Key: "B", Text: "second"},
		},
	}
}

func TestGeneration_DoneAfterQuestions(t *testing.T) {
	g := NewGeneration(1)

	if !g.ApplyQuestion(q("q1")) {
		t.Fatal("first question rejected")
	}
	if !g.ApplyQuestion(q("q2")) {
		t.Fatal("second question rejected")
	}

	if got := g.ApplyDone(); got != OutcomeComplete {
		t.Errorf("ApplyDone = %v, want OutcomeComplete", got)
	}
	if len(g.Questions) != 2 {
		t.Errorf("questions = %d, want 2", len(g.Questions))
	}
	if g.Questions[0].ID != "q1" || g.Questions[1].ID != "q2" {
		t.Error("arrival order not preserved")
	}

	// A transport error after done must not fire a second transition.
	if got := g.ApplyDrop(); got != OutcomeNone {
		t.Errorf("ApplyDrop after done = %v, want OutcomeNone", got)
	}
}

func TestGeneration_DoneWithoutQuestions(t *testing.T) {
	g := NewGeneration(1)
	if got := g.ApplyDone(); got != OutcomeFailed {
		t.Errorf("ApplyDone = %v, want OutcomeFailed", got)
	}
}

func TestGeneration_ErrorDiscardsPartialAccumulation(t *testing.T) {
	g := NewGeneration(1)
	g.ApplyQuestion(q("q1"))

	if got := g.ApplyError("model overloaded"); got != OutcomeFailed {
		t.Errorf("ApplyError = %v, want OutcomeFailed", got)
	}
	if len(g.Questions) != 0 {
		t.Errorf("questions after error = %d, want 0 (discarded)", len(g.Questions))
	}
	if g.FailureMsg != "model overloaded" {
		t.Errorf("FailureMsg = %q", g.FailureMsg)
	}

	// Error wins over a racing done.
	if got := g.ApplyDone(); got != OutcomeNone {
		t.Errorf("ApplyDone after error = %v, want OutcomeNone", got)
	}
}

func TestGeneration_Drop(t *testing.T) {
	tests := []struct {
		name      string
		questions int
		want      Outcome
	}{
		{"no questions", 0, OutcomeFailed},
		{"one question", 1, OutcomeComplete},
		{"several questions", 3, OutcomeComplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGeneration(1)
			for i := 0; i < tt.questions; i++ {
				g.ApplyQuestion(q(string(rune('a' + i))))
			}
			if got := g.ApplyDrop(); got != tt.want {
				t.Errorf("ApplyDrop = %v, want %v", got, tt.want)
			}
			// Multiple transport error callbacks fire the transition once.
			if got := g.ApplyDrop(); got != OutcomeNone {
				t.Errorf("second ApplyDrop = %v, want OutcomeNone", got)
			}
		})
	}
}

func TestGeneration_QuestionAfterTerminalDropped(t *testing.T) {
	g := NewGeneration(1)
	g.ApplyDone()
	if g.ApplyQuestion(q("late")) {
		t.Error("question accepted after terminal transition")
	}
	if len(g.Questions) != 0 {
		t.Errorf("questions = %d, want 0", len(g.Questions))
	}
}
