package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ridgeline-data/propmail/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "propmail",
	Short: "Property registry enrichment for direct-mail campaigns",
	Long:  "Links county property registries with distress lists and skip-trace results, assigns mailing priorities, and writes enriched campaign workbooks.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
