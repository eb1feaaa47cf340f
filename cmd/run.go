package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/api"
	"github.com/abhisek/quizdeck/internal/app"
	"github.com/abhisek/quizdeck/internal/config"
	"github.com/abhisek/quizdeck/internal/logx"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/screens"
	"github.com/abhisek/quizdeck/internal/store"
	"github.com/abhisek/quizdeck/internal/stream"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// runApp opens the store, restores the saved session, builds dependencies,
// and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, closeLog, err := logx.Open(cfg.LogPath, cfg.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	flagDB, _ := cmd.Flags().GetString("db")
	dbPath, err := resolveDBPath(flagDB, cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	sessions := st.SessionRepo(log)
	prefs := st.PrefsRepo(log)

	session := quiz.NewSession()
	if snap := sessions.Load(cmd.Context()); snap != nil {
		session = quiz.FromSnapshot(*snap)
	}

	theme.Apply(prefs.Theme(context.Background()))

	apiClient := api.NewClient(cfg.APIBaseURL, cfg.Timeout(), log)

	// A dead backend should show up in the log before the first screen
	// needs it; the TUI itself starts either way.
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := apiClient.Health(pingCtx); err != nil {
		log.Warn().Err(err).Str("api", cfg.APIBaseURL).Msg("backend unreachable at startup")
	}
	cancel()

	deps := &screens.Deps{
		Session:  session,
		Sessions: sessions,
		Prefs:    prefs,
		API:      apiClient,
		Stream:   stream.NewClient(cfg.APIBaseURL, log),
		Log:      log,
		Version:  version,
	}

	log.Info().Str("version", version).Str("api", cfg.APIBaseURL).Msg("starting")
	return app.Run(deps)
}
