package store

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/abhisek/quizdeck/internal/quiz"
)

const keySession = "session"

// SessionRepo persists the session snapshot. Writes log and swallow
// failures: a broken disk must never take the quiz down, the worst case is
// losing resume-on-restart. Reads degrade to "no saved session" the same
// way, including on a corrupt or unreadable snapshot.
type SessionRepo struct {
	store *Store
	log   zerolog.Logger
}

// SessionRepo returns a SessionRepo backed by this store.
func (s *Store) SessionRepo(log zerolog.Logger) *SessionRepo {
	return &SessionRepo{store: s, log: log.With().Str("component", "store").Logger()}
}

// Save writes the snapshot, replacing any previous one.
func (r *SessionRepo) Save(ctx context.Context, snap quiz.Snapshot) {
	raw, err := json.Marshal(snap)
	if err != nil {
		r.log.Error().Err(err).Msg("encode session snapshot")
		return
	}
	if err := r.store.set(ctx, keySession, string(raw)); err != nil {
		r.log.Error().Err(err).Msg("save session snapshot")
	}
}

// Load returns the saved snapshot, or nil when none exists or the stored
// value cannot be decoded.
func (r *SessionRepo) Load(ctx context.Context) *quiz.Snapshot {
	raw, ok, err := r.store.get(ctx, keySession)
	if err != nil {
		r.log.Error().Err(err).Msg("load session snapshot")
		return nil
	}
	if !ok {
		return nil
	}

	var snap quiz.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		r.log.Warn().Err(err).Msg("discarding corrupt session snapshot")
		return nil
	}
	if snap.Version != quiz.SnapshotVersion {
		r.log.Warn().Int("version", snap.Version).Msg("discarding snapshot from unknown version")
		return nil
	}
	return &snap
}

// Clear removes the saved snapshot.
func (r *SessionRepo) Clear(ctx context.Context) {
	if err := r.store.delete(ctx, keySession); err != nil {
		r.log.Error().Err(err).Msg("clear session snapshot")
	}
}
