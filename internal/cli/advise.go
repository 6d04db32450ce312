package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vietddude/advisor/internal/advising"
	coreadvisor "github.com/vietddude/advisor/internal/core/advisor"
	"github.com/vietddude/advisor/internal/core/domain"
	"github.com/vietddude/advisor/internal/infra/storage/memory"
)

var (
	adviseRecoverable     bool
	adviseProgrammerErr   bool
	adviseCallPath        string
	adviseEnforcement     string
	adviseProcessBoundary bool
	adviseComponent       string
)

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Classify a failure situation from flags and print the recommendation",
	Run:   runAdvise,
}

func init() {
	adviseCmd.Flags().BoolVar(&adviseRecoverable, "recoverable", false, "caller can meaningfully continue")
	adviseCmd.Flags().BoolVar(&adviseProgrammerErr, "programmer-error", false, "condition stems from a logic or configuration defect")
	adviseCmd.Flags().StringVar(&adviseCallPath, "call-path", "", "sync or async (required with --recoverable)")
	adviseCmd.Flags().StringVar(&adviseEnforcement, "enforcement", "", "always or debug-only")
	adviseCmd.Flags().BoolVar(&adviseProcessBoundary, "process-boundary", false, "failure is handled at a process entry point")
	adviseCmd.Flags().StringVar(&adviseComponent, "component", "", "component label for the audit trail")
	rootCmd.AddCommand(adviseCmd)
}

func runAdvise(cmd *cobra.Command, args []string) {
	situation := domain.FailureSituation{
		Recoverable:       adviseRecoverable,
		ProgrammerError:   adviseProgrammerErr,
		CallPath:          domain.CallPath(adviseCallPath),
		Enforcement:       domain.Enforcement(adviseEnforcement),
		AtProcessBoundary: adviseProcessBoundary,
		Component:         adviseComponent,
	}

	// One-shot mode keeps its audit in memory only.
	svc := advising.NewService(memory.NewDecisionRepo(), nil)

	decision, err := svc.Advise(context.Background(), situation, domain.SourceCLI)
	if err != nil {
		slog.Error("Classification failed", "error", err)
		os.Exit(coreadvisor.ExitInvalidConfig)
	}

	fmt.Printf("technique:  %s\n", decision.Technique)
	if len(decision.Alternatives) > 0 {
		alts := make([]string, len(decision.Alternatives))
		for i, a := range decision.Alternatives {
			alts[i] = a.String()
		}
		fmt.Printf("also valid: %s\n", strings.Join(alts, ", "))
	}
	if decision.Advisory {
		fmt.Println("advisory:   yes (judgment call, queued branches go to review)")
	}
	fmt.Printf("rationale:  %s\n", decision.Rationale)

	// At a process boundary the advised exit status is the whole point.
	if adviseProcessBoundary {
		os.Exit(coreadvisor.ExitStatus(situation, decision))
	}
}
