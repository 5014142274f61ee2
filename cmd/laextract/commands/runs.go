package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/radlab-hd/laextract/internal/output"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded extraction runs",
	Long: `List the runs recorded in a SQLite database written with
"extract --db", newest first.`,
	RunE: runRuns,
}

func init() {
	rootCmd.AddCommand(runsCmd)

	runsCmd.Flags().String("db", "", "path to the SQLite database (required)")
	runsCmd.Flags().IntP("limit", "l", 20, "show at most N runs")
	_ = runsCmd.MarkFlagRequired("db")
}

func runRuns(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := output.OpenStore(dbPath)
	if err != nil {
		logError("%v", err)
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(context.Background(), limit)
	if err != nil {
		logError("%v", err)
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	fmt.Printf("%-36s  %-8s  %-20s  %-9s  %9s  %6s  %s\n",
		"ID", "STRATEGY", "MODEL", "STATUS", "SUCCEEDED", "FAILED", "STARTED")
	for _, r := range runs {
		fmt.Printf("%-36s  %-8s  %-20s  %-9s  %9d  %6d  %s\n",
			r.ID, r.Strategy, r.Model, r.Status, r.Succeeded, r.Failed,
			r.StartedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
