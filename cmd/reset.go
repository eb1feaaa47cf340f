package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/config"
	"github.com/abhisek/quizdeck/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the saved local session",
	Long:  "Removes the locally saved quiz state so the next start begins fresh. Completed sessions on the backend are not touched.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
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

		st.SessionRepo(zerolog.Nop()).Clear(cmd.Context())
		fmt.Println("Saved session cleared.")
		return nil
	},
}
