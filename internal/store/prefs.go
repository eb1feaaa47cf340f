package store

import (
	"context"

	"github.com/rs/zerolog"
)

const (
	keyTheme    = "theme"
	keyLanguage = "language"

	DefaultTheme    = "dark"
	DefaultLanguage = "en"
)

// PrefsRepo persists the UI preferences that live outside the session and
// survive a hard reset. Same failure policy as SessionRepo: log and fall
// back to defaults.
type PrefsRepo struct {
	store *Store
	log   zerolog.Logger
}

// PrefsRepo returns a PrefsRepo backed by this store.
func (s *Store) PrefsRepo(log zerolog.Logger) *PrefsRepo {
	return &PrefsRepo{store: s, log: log.With().Str("component", "store").Logger()}
}

// Theme returns the saved theme name, defaulting to dark.
func (r *PrefsRepo) Theme(ctx context.Context) string {
	return r.load(ctx, keyTheme, DefaultTheme)
}

// SetTheme saves the theme name.
func (r *PrefsRepo) SetTheme(ctx context.Context, name string) {
	r.save(ctx, keyTheme, name)
}

// Language returns the saved quiz language code, defaulting to English.
func (r *PrefsRepo) Language(ctx context.Context) string {
	return r.load(ctx, keyLanguage, DefaultLanguage)
}

// SetLanguage saves the quiz language code.
func (r *PrefsRepo) SetLanguage(ctx context.Context, code string) {
	r.save(ctx, keyLanguage, code)
}

func (r *PrefsRepo) load(ctx context.Context, key, fallback string) string {
	value, ok, err := r.store.get(ctx, key)
	if err != nil {
		r.log.Error().Err(err).Str("key", key).Msg("load preference")
		return fallback
	}
	if !ok || value == "" {
		return fallback
	}
	return value
}

func (r *PrefsRepo) save(ctx context.Context, key, value string) {
	if err := r.store.set(ctx, key, value); err != nil {
		r.log.Error().Err(err).Str("key", key).Msg("save preference")
	}
}
