package quiz

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	s := populatedSession()
	s.Results = &Result{
		Correct: 1,
		Total:   2,
		Wrong: []WrongAnswer{{
			Question:      "prompt q2",
			UserAnswer:    "A",
			CorrectAnswer: "B",
			Explanation:   "because",
		}},
		TimeTakenSecs: 95,
	}
	s.Timer.ElapsedSeconds = 95
	s.Settings.TimerMinutes = 5

	raw, err := json.Marshal(s.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := FromSnapshot(snap)

	if got.SessionID != s.SessionID || got.DocumentID != s.DocumentID {
		t.Error("identifiers did not round-trip")
	}
	if !reflect.DeepEqual(got.Questions, s.Questions) {
		t.Errorf("questions = %+v, want %+v", got.Questions, s.Questions)
	}
	if !reflect.DeepEqual(got.Answers, s.Answers) {
		t.Errorf("answers = %v, want %v", got.Answers, s.Answers)
	}
	if !reflect.DeepEqual(got.Bookmarks, s.Bookmarks) {
		t.Errorf("bookmarks = %v, want %v", got.Bookmarks, s.Bookmarks)
	}
	if !reflect.DeepEqual(got.Results, s.Results) {
		t.Errorf("results = %+v, want %+v", got.Results, s.Results)
	}
	if !reflect.DeepEqual(got.Chat, s.Chat) {
		t.Errorf("chat = %+v, want %+v", got.Chat, s.Chat)
	}
	if got.Timer.ElapsedSeconds != 95 {
		t.Errorf("elapsed = %d, want 95", got.Timer.ElapsedSeconds)
	}
	if !reflect.DeepEqual(got.Settings, s.Settings) {
		t.Errorf("settings = %+v, want %+v", got.Settings, s.Settings)
	}
	// Results phase wins on load.
	if got.Phase != PhaseResults {
		t.Errorf("phase = %q, want results", got.Phase)
	}
}

func TestSnapshot_BookmarkSetSemantics(t *testing.T) {
	snap := Snapshot{
		Version:   SnapshotVersion,
		SessionID: "sess",
		Questions: []Question{q("q1"), q("q2")},
		// Duplicates and arbitrary order must collapse into a set.
		Bookmarks: []string{"q2", "q1", "q2", "q1"},
	}
	s := FromSnapshot(snap)
	if len(s.Bookmarks) != 2 {
		t.Errorf("bookmark set size = %d, want 2", len(s.Bookmarks))
	}
	if !s.Bookmarks["q1"] || !s.Bookmarks["q2"] {
		t.Errorf("bookmarks = %v, want q1 and q2", s.Bookmarks)
	}
}

func TestSnapshot_BookmarksSerializedOrdered(t *testing.T) {
	s := sessionWithQuestions(3)
	s.ToggleBookmark("c")
	s.ToggleBookmark("a")
	s.ToggleBookmark("b")

	snap := s.Snapshot()
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(snap.Bookmarks, want) {
		t.Errorf("bookmarks = %v, want sorted %v", snap.Bookmarks, want)
	}
}

func TestFromSnapshot_ZeroSettingsFallBackToDefaults(t *testing.T) {
	s := FromSnapshot(Snapshot{Version: SnapshotVersion})
	if !reflect.DeepEqual(s.Settings, DefaultSettings()) {
		t.Errorf("settings = %+v, want defaults", s.Settings)
	}
}
