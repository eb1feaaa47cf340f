package results

import (
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens"
	"github.com/abhisek/quizdeck/internal/store"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testResult() *quiz.Result {
	return &quiz.Result{
		Correct:       2,
		Total:         4,
		TimeTakenSecs: 95,
		Wrong: []quiz.WrongAnswer{
			{Question: "first?", UserAnswer: "A", CorrectAnswer: "B", Explanation: "because"},
			{Question: "second?", UserAnswer: "C", CorrectAnswer: "D", Explanation: "also because"},
		},
	}
}

func testDeps(t *testing.T) *screens.Deps {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	log := zerolog.Nop()
	sess := quiz.NewSession()
	sess.DocumentID = "1"
	sess.SessionID = "7"
	sess.Document = &quiz.DocumentInfo{Filename: "notes.pdf"}
	sess.Questions = []quiz.Question{{ID: "q1", Prompt: "first?"}}
	sess.Results = testResult()
	sess.Phase = quiz.PhaseResults

	return &screens.Deps{
		Session:  sess,
		Sessions: st.SessionRepo(log),
		Prefs:    st.PrefsRepo(log),
		Log:      log,
	}
}

func TestResultsScreen_Display(t *testing.T) {
	s := New(testDeps(t))
	if s.View(80, 24) == "" {
		t.Error("expected non-empty results view")
	}
}

func TestResultsScreen_Scroll(t *testing.T) {
	s := New(testDeps(t))

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('j'))
	if scr.(*ResultsScreen).scroll != 1 {
		t.Errorf("scroll = %d, want 1", scr.(*ResultsScreen).scroll)
	}
	scr, _ = scr.Update(keyPress('j'))
	if scr.(*ResultsScreen).scroll != 1 {
		t.Error("scroll moved past last wrong answer")
	}
	scr, _ = scr.Update(keyPress('k'))
	if scr.(*ResultsScreen).scroll != 0 {
		t.Error("scroll did not move back")
	}
}

func TestResultsScreen_Retry(t *testing.T) {
	s := New(testDeps(t))
	_, cmd := s.Update(keyPress('r'))
	if cmd == nil {
		t.Fatal("expected retry command")
	}
	if _, ok := cmd().(screens.RetryQuizMsg); !ok {
		t.Error("expected RetryQuizMsg")
	}
}

func TestResultsScreen_NewQuiz_Resets(t *testing.T) {
	deps := testDeps(t)
	s := New(deps)
	_, cmd := s.Update(keyPress('n'))
	if cmd == nil {
		t.Fatal("expected navigation command")
	}
	if deps.Session.DocumentID != "" || deps.Session.Results != nil {
		t.Error("expected session reset")
	}
}

func TestResultsScreen_Discuss(t *testing.T) {
	s := New(testDeps(t))
	_, cmd := s.Update(keyPress('d'))
	if cmd == nil {
		t.Error("expected discussion navigation command")
	}
}

func TestReplay_ActionsDisabled(t *testing.T) {
	deps := testDeps(t)
	s := NewReplay(deps, testResult(), "old.pdf")

	for _, r := range []rune{'r', 'n', 'd'} {
		if _, cmd := s.Update(keyPress(r)); cmd != nil {
			t.Errorf("expected no command for %q in replay mode", r)
		}
	}
	if deps.Session.DocumentID == "" {
		t.Error("replay must not reset the live session")
	}
}

func TestScoreBand(t *testing.T) {
	if scoreBand(100) == scoreBand(10) {
		t.Error("expected distinct messages for distinct bands")
	}
}

func TestPerfectScore_NoReview(t *testing.T) {
	deps := testDeps(t)
	deps.Session.Results = &quiz.Result{Correct: 3, Total: 3}
	s := New(deps)
	if s.View(80, 24) == "" {
		t.Error("expected non-empty view for perfect score")
	}
}
