package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/agent"
	"github.com/singhxgaurav-code/viral-fashion-agent/pkg/config"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the all-time performance report",
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	a, err := agent.Build(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	return a.Report(cmd.Context(), os.Stdout)
}
