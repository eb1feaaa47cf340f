package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/api"
	"github.com/abhisek/quizdeck/internal/config"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate quiz statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		client := api.NewClient(cfg.APIBaseURL, cfg.Timeout(), zerolog.Nop())

		stats, err := client.Analytics(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch analytics: %w", err)
		}

		fmt.Printf("Sessions completed:  %d\n", stats.TotalSessions)
		fmt.Printf("Questions answered:  %d\n", stats.TotalQuestions)
		fmt.Printf("Average score:       %.1f%%\n", stats.AvgScore)
		return nil
	},
}
