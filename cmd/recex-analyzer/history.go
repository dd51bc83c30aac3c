package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RecursivePineapple/recex-analyzer/internal/config"
	"github.com/RecursivePineapple/recex-analyzer/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent analyzer runs",
	Long: `List recent analyzer runs recorded in the local history database.

Examples:
  recex-analyzer history
  recex-analyzer history -n 5`,
	Args:          cobra.NoArgs,
	RunE:          runHistory,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	logger := newLogger(cfg)

	path := cfg.History.Path
	if path == "" {
		dir, err := config.Dir()
		if err != nil {
			return err
		}
		path = history.DefaultPath(dir)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	db, err := history.Open(path, logger)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	runs, err := db.Recent(historyLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		fmt.Println(history.Describe(run))
	}
	return nil
}
