package cmd

import (
	"fmt"

	"quiz-manager/core/config"
	"quiz-manager/core/database"
	"quiz-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// dbCmd is the parent command for database operations.
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database utilities",
}

// dbInspectCmd prints the quizzes table schema and row count.
var dbInspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspect the quizzes table (columns + row count)",
	RunE:  runDBInspect,
}

func init() {
	dbCmd.AddCommand(dbInspectCmd)
	RootCmd.AddCommand(dbCmd)
}

func runDBInspect(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	stats, err := database.InspectTable(db, "quizzes")
	if err != nil {
		return fmt.Errorf("failed to inspect quizzes table: %w", err)
	}

	l.Info("Table stats",
		zap.String("table", stats.Table),
		zap.Int64("rows", stats.Rows),
		zap.Int("columns", len(stats.Columns)),
	)
	for _, col := range stats.Columns {
		l.Info("Column", zap.String("field", col.Field), zap.String("type", col.Type))
	}

	return nil
}
