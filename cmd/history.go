package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/api"
	"github.com/abhisek/quizdeck/internal/config"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent completed sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		client := api.NewClient(cfg.APIBaseURL, cfg.Timeout(), zerolog.Nop())

		entries, err := client.History(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch history: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No completed sessions yet.")
			return nil
		}

		fmt.Printf("%-30s  %-20s  %7s  %5s\n", "DOCUMENT", "DATE", "SCORE", "PCT")
		for _, e := range entries {
			fmt.Printf("%-30s  %-20s  %3d/%-3d  %4d%%\n",
				e.FileName, e.Date, e.Score, e.Total, e.Percentage)
		}
		return nil
	},
}
