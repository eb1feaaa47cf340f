package quiz

// RecordAnswer stores the chosen option for a question, overwriting any
// prior answer (last write wins). Unknown question ids are ignored so the
// answers map can never grow beyond the question set.
func (s *Session) RecordAnswer(questionID, optionKey string) bool {
	if !s.hasQuestion(questionID) {
		return false
	}
	s.Answers[questionID] = optionKey
	return true
}

// ToggleBookmark flips a question's membership in the bookmark set and
// returns the new state.
func (s *Session) ToggleBookmark(questionID string) bool {
	if !s.hasQuestion(questionID) {
		return false
	}
	if s.Bookmarks[questionID] {
		delete(s.Bookmarks, questionID)
		return false
	}
	s.Bookmarks[questionID] = true
	return true
}

// AnsweredCount returns the number of questions with a recorded answer.
func (s *Session) AnsweredCount() int {
	return len(s.Answers)
}

// CompletionRatio returns answered/total, or 0 for an empty question set.
func (s *Session) CompletionRatio() float64 {
	if len(s.Questions) == 0 {
		return 0
	}
	return float64(len(s.Answers)) / float64(len(s.Questions))
}

// CanSubmit reports whether submission is allowed: every question must be
// answered, partial submission is not.
func (s *Session) CanSubmit() bool {
	return len(s.Questions) > 0 && len(s.Answers) == len(s.Questions)
}

// ClearProgress resets answers, bookmarks, results and elapsed time for a
// retry. The question set is kept as-is; nothing is regenerated.
func (s *Session) ClearProgress() {
	s.Answers = make(map[string]string)
	s.Bookmarks = make(map[string]bool)
	s.Results = nil
	s.Timer = Timer{}
}

func (s *Session) hasQuestion(id string) bool {
	for _, q := range s.Questions {
		if q.ID == id {
			return true
		}
	}
	return false
}
