package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"quiz-manager/core/config"
	"quiz-manager/core/database"
	"quiz-manager/core/logger"
	"quiz-manager/feature/quiz/reconcile"
	quizstore "quiz-manager/feature/quiz/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the cleanup command
	dryRunCleanup bool
	yesConfirm    bool
)

// cleanupCmd deduplicates the stored quiz collection.
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Deduplicate stored quizzes (report + optionally remove)",
	Long: `Scan the stored quiz collection and remove redundant records.

Duplicates are detected in three passes: shared uniqueId, identical content
fingerprint, and fuzzy title/question similarity. The newest record of each
duplicate group is retained.

Examples:
  # Report only
  cleanup --dry-run

  # Remove duplicates (with interactive confirmation)
  cleanup

  # Remove with auto-confirm (non-interactive)
  cleanup --yes`,
	RunE: runCleanup,
}

func init() {
	cleanupCmd.Flags().BoolVar(&dryRunCleanup, "dry-run", false, "Report the removal plan without deleting anything")
	cleanupCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm removals (non-interactive)")

	RootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	l.Info("Starting quiz cleanup")

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	st, err := quizstore.NewGorm(db)
	if err != nil {
		return fmt.Errorf("failed to initialize quiz store: %w", err)
	}

	// Step 1: Plan (always runs)
	quizzes, err := st.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load quizzes: %w", err)
	}
	plan := reconcile.BuildPlan(quizzes)

	// Step 2: Print report
	printCleanupReport(l, plan)

	if plan.Removals() == 0 {
		l.Info("No duplicates found.")
		return nil
	}

	// Step 3: Apply (if confirmed)
	if dryRunCleanup {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	if !confirmRemoval() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	l.Info("Removing duplicates...")
	removed, err := reconcile.ApplyPlan(ctx, st, plan)
	if err != nil {
		return fmt.Errorf("failed to apply removal plan: %w", err)
	}

	l.Info("Successfully removed duplicates", zap.Int("count", removed))
	return nil
}

// printCleanupReport prints a formatted removal plan using the logger.
func printCleanupReport(l *zap.Logger, plan *reconcile.Plan) {
	s := plan.Summary

	l.Info("Cleanup report",
		zap.Int("total_quizzes", s.TotalQuizzes),
		zap.Int("unique_id_losers", s.UniqueIDLosers),
		zap.Int("fingerprint_losers", s.FingerprintLosers),
		zap.Int("fuzzy_losers", s.FuzzyLosers),
		zap.Int("total_removals", plan.Removals()),
	)

	// Show a sample of planned removals (max 5 for logger)
	maxShow := 5
	if len(plan.Actions) < maxShow {
		maxShow = len(plan.Actions)
	}
	for i := 0; i < maxShow; i++ {
		action := plan.Actions[i]
		l.Info("Sample removal",
			zap.Int("quiz_id", action.QuizID),
			zap.String("title", action.Title),
			zap.String("reason", string(action.Reason)),
			zap.Int("kept_id", action.KeptID),
		)
	}
	if len(plan.Actions) > maxShow {
		l.Info("Additional removals not shown", zap.Int("count", len(plan.Actions)-maxShow))
	}
}

// confirmRemoval prompts the user for confirmation or uses the --yes flag.
func confirmRemoval() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm removal: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
