package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vietddude/advisor/internal/core/config"
	"github.com/vietddude/advisor/internal/infra/storage/postgres"
)

var decisionsLimit int

var decisionsCmd = &cobra.Command{
	Use:   "decisions",
	Short: "Show recent advisory decisions from the audit log",
	Run:   runDecisions,
}

func init() {
	decisionsCmd.Flags().IntVar(&decisionsLimit, "limit", 20, "number of records to show")
	rootCmd.AddCommand(decisionsCmd)
}

func runDecisions(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = db.Close()
	}()

	repo := postgres.NewDecisionRepo(db)
	records, err := repo.Recent(ctx, decisionsLimit)
	if err != nil {
		slog.Error("Failed to query decisions", "error", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "WHEN\tTECHNIQUE\tADVISORY\tSOURCE\tCOMPONENT")

	for _, rec := range records {
		advisory := ""
		if rec.Decision.Advisory {
			advisory = "yes"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			rec.CreatedAt.Format("2006-01-02 15:04:05"),
			rec.Decision.Technique,
			advisory,
			rec.Source,
			rec.Situation.Component,
		)
	}

	_ = w.Flush()
}
