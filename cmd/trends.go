package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/agent"
	"github.com/singhxgaurav-code/viral-fashion-agent/internal/model"
	"github.com/singhxgaurav-code/viral-fashion-agent/pkg/config"
)

var (
	trendsNiche string
	trendsLimit int
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Preview currently detected trends without generating videos",
	RunE:  runTrends,
}

func init() {
	trendsCmd.Flags().StringVarP(&trendsNiche, "niche", "n", "", "Restrict to a fashion niche (e.g. \"streetwear\")")
	trendsCmd.Flags().IntVarP(&trendsLimit, "limit", "l", 10, "Maximum trends to show")
	rootCmd.AddCommand(trendsCmd)
}

func runTrends(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	aggregator := agent.BuildTrendAggregator(cfg)

	var records []model.TrendRecord
	if trendsNiche != "" {
		records = aggregator.CollectNiche(cmd.Context(), trendsNiche, trendsLimit)
	} else {
		records = aggregator.Collect(cmd.Context(), trendsLimit)
	}

	if len(records) == 0 {
		fmt.Println("No trends detected.")
		return nil
	}

	for i, trend := range records {
		fmt.Printf("%2d. [%s] %s (score %d)\n", i+1, trend.Source, trend.Title, trend.Score)
		if len(trend.Keywords) > 0 {
			fmt.Printf("    keywords: %s\n", strings.Join(trend.Keywords, ", "))
		}
	}
	return nil
}
