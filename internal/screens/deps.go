// Package screens holds the shared dependency bundle handed to every
// screen. Individual screens live in subpackages, one per view.
package screens

import (
	"github.com/rs/zerolog"

	"github.com/abhisek/quizdeck/internal/api"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/store"
	"github.com/abhisek/quizdeck/internal/stream"
)

// RetryQuizMsg asks the application root to restart the answering phase
// with the current question set. Handled at the root because the retry
// needs a fresh remote session before any screen can show the questions.
type RetryQuizMsg struct{}

// Deps carries the session and the service clients. The Session pointer is
// shared: screens mutate it and the application root persists it.
type Deps struct {
	Session  *quiz.Session
	Sessions *store.SessionRepo
	Prefs    *store.PrefsRepo
	API      *api.Client
	Stream   *stream.Client
	Log      zerolog.Logger
	Version  string
}
