package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/pitchsight/pitchsight/internal/app"
	"github.com/pitchsight/pitchsight/internal/config"
	"github.com/pitchsight/pitchsight/internal/platform/logging"
	"github.com/pitchsight/pitchsight/internal/usecase"
)

var (
	matchIDs   []int64
	batchSize  int
	maxWorkers int
	dryRun     bool

	competitionID int64
	seasonID      int64
)

var rootCmd = &cobra.Command{
	Use:   "pitchsight-etl",
	Short: "Pitchsight batch tooling",
	Long:  "Sync the match worklist from the StatsBomb open-data feed and recompute plot artifact bundles in batches.",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Recompute plot artifacts for a batch of matches",
	Long: `Recompute the full artifact bundle (heatmaps, xG and momentum graphs,
match summary, team stat tables, radar) for the given match IDs, or for
the next unprocessed matches in the worklist when no IDs are given.`,
	Args: cobra.NoArgs,
	RunE: runETL,
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the match worklist for a competition season",
	Args:  cobra.NoArgs,
	RunE:  runSync,
}

func init() {
	runCmd.Flags().Int64SliceVar(&matchIDs, "match-ids", nil, "explicit match IDs to recompute")
	runCmd.Flags().IntVar(&batchSize, "batch-size", 0, "max unprocessed matches to pick up (0 = configured default)")
	runCmd.Flags().IntVar(&maxWorkers, "workers", 0, "worker pool size (0 = configured default)")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute bundles without persisting them")

	syncCmd.Flags().Int64Var(&competitionID, "competition", 0, "StatsBomb competition ID")
	syncCmd.Flags().Int64Var(&seasonID, "season", 0, "StatsBomb season ID")
	_ = syncCmd.MarkFlagRequired("competition")
	_ = syncCmd.MarkFlagRequired("season")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(syncCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildApp(ctx context.Context) (*app.Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build app: %w", err)
	}
	return application, nil
}

func runETL(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	application, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = application.Close() }()

	started := time.Now()
	result, err := application.ETLService.Run(ctx, usecase.ETLInput{
		MatchIDs:   matchIDs,
		BatchSize:  batchSize,
		MaxWorkers: maxWorkers,
		DryRun:     dryRun,
	})
	if err != nil {
		return fmt.Errorf("run etl: %w", err)
	}

	fmt.Fprintf(os.Stdout, "\nrun %s: %d match(es), %d ok, %d failed, %d worker(s), %s\n\n",
		result.RunID,
		result.MatchCount,
		result.SuccessCount,
		result.FailedCount,
		result.WorkerCount,
		time.Since(started).Round(time.Millisecond),
	)

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	table.Header("MATCH ID", "STATUS", "ARTIFACTS", "DURATION (MS)", "MESSAGE")
	for _, task := range result.Tasks {
		table.Append(
			fmt.Sprintf("%d", task.MatchID),
			task.Status,
			fmt.Sprintf("%d", task.Artifacts),
			fmt.Sprintf("%d", task.DurationMs),
			task.Message,
		)
	}
	table.Render()

	if result.FailedCount > 0 {
		return fmt.Errorf("%d match(es) failed", result.FailedCount)
	}
	return nil
}

func runSync(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	application, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = application.Close() }()

	count, err := application.SyncService.SyncCompetition(ctx, competitionID, seasonID)
	if err != nil {
		return fmt.Errorf("sync competition %d season %d: %w", competitionID, seasonID, err)
	}

	fmt.Fprintf(os.Stdout, "synced %d match(es) for competition %d season %d\n", count, competitionID, seasonID)
	return nil
}
