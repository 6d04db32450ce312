package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vietddude/advisor/internal/core/config"
	redisclient "github.com/vietddude/advisor/internal/infra/redis"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Pop the next advisory decision awaiting triage",
	Run:   runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.Redis.URL == "" {
		slog.Error("Review queue requires redis to be configured")
		os.Exit(1)
	}

	client, err := redisclient.NewClient(cfg.Redis)
	if err != nil {
		slog.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = client.Close()
	}()

	ctx := context.Background()
	rec, found, err := client.PopReview(ctx)
	if err != nil {
		slog.Error("Failed to pop review", "error", err)
		os.Exit(1)
	}
	if !found {
		fmt.Println("review queue is empty")
		return
	}

	fmt.Printf("id:         %s\n", rec.ID)
	fmt.Printf("when:       %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("technique:  %s\n", rec.Decision.Technique)
	fmt.Printf("rationale:  %s\n", rec.Decision.Rationale)
	fmt.Printf("situation:  recoverable=%v programmer_error=%v component=%q\n",
		rec.Situation.Recoverable, rec.Situation.ProgrammerError, rec.Situation.Component)

	if tally, err := client.GetTally(ctx, rec.Decision.Technique); err == nil {
		fmt.Printf("seen:       %d decisions with this technique\n", tally)
	}

	if pending, err := client.PendingReviews(ctx); err == nil {
		fmt.Printf("remaining:  %d\n", pending)
	}
}
