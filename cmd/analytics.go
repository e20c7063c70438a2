package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/agent"
	"github.com/singhxgaurav-code/viral-fashion-agent/pkg/config"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Refresh engagement stats for published videos",
	Long: `Pull fresh view, like and comment counts from every platform for
previously published videos, then print the performance report.`,
	RunE: runAnalytics,
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
}

func runAnalytics(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	a, err := agent.Build(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if err := a.RefreshAnalytics(cmd.Context()); err != nil {
		return err
	}

	return a.Report(cmd.Context(), os.Stdout)
}
