package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/agent"
	"github.com/singhxgaurav-code/viral-fashion-agent/pkg/config"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one daily workflow cycle",
	Long: `Detect trends, generate scripts and metadata, render videos, and
publish each one to every configured platform.`,
	RunE: runDaily,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runDaily(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	a, err := agent.Build(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Warn("Failed to close store", "error", err)
		}
	}()

	return a.Run(cmd.Context())
}
