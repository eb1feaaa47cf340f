package quiz

import "testing"

func sessionWithQuestions(n int) *Session {
	s := NewSession()
	for i := 0; i < n; i++ {
		s.Questions = append(s.Questions, q(string(rune('a'+i))))
	}
	return s
}

func TestRecordAnswer_LastWriteWins(t *testing.T) {
	s := sessionWithQuestions(3)

	s.RecordAnswer("a", "A")
	s.RecordAnswer("a", "B")
	s.RecordAnswer("a", "C")
	s.RecordAnswer("b", "A")

	if len(s.Answers) != 2 {
		t.Errorf("answers size = %d, want 2 (distinct ids only)", len(s.Answers))
	}
	if s.Answers["a"] != "C" {
		t.Errorf("answer for a = %q, want latest write C", s.Answers["a"])
	}
}

func TestRecordAnswer_UnknownQuestionIgnored(t *testing.T) {
	s := sessionWithQuestions(1)
	if s.RecordAnswer("nope", "A") {
		t.Error("unknown question id accepted")
	}
	if len(s.Answers) != 0 {
		t.Errorf("answers size = %d, want 0", len(s.Answers))
	}
}

func TestCanSubmit_RequiresAllAnswered(t *testing.T) {
	s := sessionWithQuestions(10)
	for i := 0; i < 9; i++ {
		s.RecordAnswer(string(rune('a'+i)), "A")
	}
	if s.CanSubmit() {
		t.Error("9/10 answered: submission must be disabled")
	}

	s.RecordAnswer("j", "B")
	if !s.CanSubmit() {
		t.Error("10/10 answered: submission must be enabled")
	}

	if s.CompletionRatio() != 1.0 {
		t.Errorf("completion ratio = %v, want 1.0", s.CompletionRatio())
	}
}

func TestCanSubmit_EmptyQuestionSet(t *testing.T) {
	s := NewSession()
	if s.CanSubmit() {
		t.Error("no questions: submission must be disabled")
	}
	if s.CompletionRatio() != 0 {
		t.Errorf("completion ratio = %v, want 0", s.CompletionRatio())
	}
}

func TestToggleBookmark(t *testing.T) {
	s := sessionWithQuestions(2)

	if !s.ToggleBookmark("a") {
		t.Error("first toggle should bookmark")
	}
	if s.ToggleBookmark("a") {
		t.Error("second toggle should remove the bookmark")
	}
	if len(s.Bookmarks) != 0 {
		t.Errorf("bookmarks = %v, want empty", s.Bookmarks)
	}
	if s.ToggleBookmark("ghost") {
		t.Error("unknown question id accepted")
	}
}

func TestClearProgress_KeepsQuestions(t *testing.T) {
	s := sessionWithQuestions(2)
	s.RecordAnswer("a", "A")
	s.ToggleBookmark("b")
	s.Results = &Result{Correct: 1, Total: 2}
	s.Timer.ElapsedSeconds = 42

	s.ClearProgress()

	if len(s.Questions) != 2 {
		t.Errorf("questions = %d, want 2 (retry keeps the set)", len(s.Questions))
	}
	if len(s.Answers) != 0 || len(s.Bookmarks) != 0 {
		t.Error("answers/bookmarks survived retry")
	}
	if s.Results != nil {
		t.Error("results survived retry")
	}
	if s.Timer.ElapsedSeconds != 0 {
		t.Error("elapsed time survived retry")
	}
}
