package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/agent"
	"github.com/singhxgaurav-code/viral-fashion-agent/pkg/config"
)

var (
	scheduleDaily     string
	scheduleAnalytics string
	scheduleReport    string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run continuously on a cron schedule",
	Long: `Run the agent as a long-lived process: the daily workflow every
morning, analytics refreshes through the day, and a weekly report.
A failed cycle is logged and the schedule keeps running.`,
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleDaily, "daily", "0 6 * * *", "Cron expression for the daily workflow")
	scheduleCmd.Flags().StringVar(&scheduleAnalytics, "analytics", "0 */6 * * *", "Cron expression for analytics refreshes")
	scheduleCmd.Flags().StringVar(&scheduleReport, "report", "0 9 * * 1", "Cron expression for the weekly report")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	a, err := agent.Build(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// A panicking cycle must not take the scheduler down.
	scheduler := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))

	if _, err := scheduler.AddFunc(scheduleDaily, func() {
		if err := a.Run(ctx); err != nil {
			slog.Error("Daily workflow failed", "error", err)
		}
	}); err != nil {
		return err
	}

	if _, err := scheduler.AddFunc(scheduleAnalytics, func() {
		if err := a.RefreshAnalytics(ctx); err != nil {
			slog.Error("Analytics refresh failed", "error", err)
		}
	}); err != nil {
		return err
	}

	if _, err := scheduler.AddFunc(scheduleReport, func() {
		if err := a.Report(ctx, os.Stdout); err != nil {
			slog.Error("Report failed", "error", err)
		}
	}); err != nil {
		return err
	}

	scheduler.Start()
	slog.Info("Scheduler started",
		"daily", scheduleDaily,
		"analytics", scheduleAnalytics,
		"report", scheduleReport,
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		slog.Info("Shutting down...")
	case <-ctx.Done():
	}

	stopCtx := scheduler.Stop()
	<-stopCtx.Done()
	return nil
}
