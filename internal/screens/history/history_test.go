package history

import (
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/quizdeck/internal/api"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens"
	"github.com/abhisek/quizdeck/internal/store"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testDeps(t *testing.T) *screens.Deps {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	log := zerolog.Nop()
	return &screens.Deps{
		Session:  quiz.NewSession(),
		Sessions: st.SessionRepo(log),
		Prefs:    st.PrefsRepo(log),
		Log:      log,
	}
}

func entries() []api.HistoryEntry {
	return []api.HistoryEntry{
		{ID: "3", FileName: "newest.pdf", Date: "2026-08-30", Score: 8, Total: 10, Percentage: 80},
		{ID: "2", FileName: "middle.pdf", Date: "2026-08-20", Score: 5, Total: 10, Percentage: 50},
		{ID: "1", FileName: "oldest.pdf", Date: "2026-08-10", Score: 9, Total: 10, Percentage: 90},
	}
}

func loaded(t *testing.T) *HistoryScreen {
	t.Helper()
	s := New(testDeps(t))
	scr, _ := s.Update(historyLoadedMsg{Entries: entries()})
	return scr.(*HistoryScreen)
}

func TestLoad_KeepsServerOrder(t *testing.T) {
	s := loaded(t)
	if s.entries[0].FileName != "newest.pdf" || s.entries[2].FileName != "oldest.pdf" {
		t.Error("history must keep the server's ordering")
	}
}

func TestNavigation_Clamps(t *testing.T) {
	s := loaded(t)

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('k'))
	if scr.(*HistoryScreen).cursor != 0 {
		t.Error("cursor moved above the first entry")
	}
	for i := 0; i < 5; i++ {
		scr, _ = scr.Update(keyPress('j'))
	}
	if got := scr.(*HistoryScreen).cursor; got != 2 {
		t.Errorf("cursor = %d, want 2", got)
	}
}

func TestOpen_FetchesResult(t *testing.T) {
	s := loaded(t)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected a fetch command on enter")
	}
	if !s.loading {
		t.Error("expected loading state while fetching")
	}
}

func TestReplayNavigation(t *testing.T) {
	s := loaded(t)
	res := &quiz.Result{Correct: 8, Total: 10}
	_, cmd := s.Update(resultLoadedMsg{Result: res, Title: "newest.pdf"})
	if cmd == nil {
		t.Error("expected navigation command to the replay view")
	}
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	s := loaded(t)

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('d'))
	ss := scr.(*HistoryScreen)
	if !ss.confirming {
		t.Fatal("expected confirmation prompt")
	}

	scr, cmd := ss.Update(keyPress('n'))
	if scr.(*HistoryScreen).confirming {
		t.Error("expected confirmation dismissed")
	}
	if cmd != nil {
		t.Error("dismissing must not delete")
	}
}

func TestDelete_Confirmed(t *testing.T) {
	s := loaded(t)

	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('d'))
	scr, cmd := scr.Update(keyPress('y'))
	if cmd == nil {
		t.Error("expected a delete command after confirmation")
	}
	if !scr.(*HistoryScreen).loading {
		t.Error("expected loading state during delete")
	}
}

func TestDeleteFailure_Surfaced(t *testing.T) {
	s := loaded(t)
	scr, _ := s.Update(deleteDoneMsg{Err: errFake})
	ss := scr.(*HistoryScreen)
	if ss.errMsg == "" {
		t.Error("expected delete failure surfaced")
	}
	if len(ss.entries) != 3 {
		t.Error("failed delete must not remove entries locally")
	}
}

func TestDeleteSuccess_Reloads(t *testing.T) {
	s := loaded(t)
	_, cmd := s.Update(deleteDoneMsg{})
	if cmd == nil {
		t.Error("expected a reload command after a successful delete")
	}
}

func TestLoadFailure_Surfaced(t *testing.T) {
	s := New(testDeps(t))
	scr, _ := s.Update(historyLoadedMsg{Err: errFake})
	if scr.(*HistoryScreen).errMsg == "" {
		t.Error("expected load failure surfaced")
	}
}

func TestView_Empty(t *testing.T) {
	s := New(testDeps(t))
	scr, _ := s.Update(historyLoadedMsg{})
	if scr.(*HistoryScreen).View(80, 24) == "" {
		t.Error("expected non-empty view for empty history")
	}
}

var errFake = &fakeError{}

type fakeError struct{}

func (*fakeError) Error() string { return "backend unavailable" }
