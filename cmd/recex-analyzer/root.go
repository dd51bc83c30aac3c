package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/RecursivePineapple/recex-analyzer/internal/analyze"
	"github.com/RecursivePineapple/recex-analyzer/internal/config"
	"github.com/RecursivePineapple/recex-analyzer/internal/dump"
	"github.com/RecursivePineapple/recex-analyzer/internal/errors"
	"github.com/RecursivePineapple/recex-analyzer/internal/history"
	"github.com/RecursivePineapple/recex-analyzer/internal/index"
	"github.com/RecursivePineapple/recex-analyzer/internal/logging"
	"github.com/RecursivePineapple/recex-analyzer/internal/report"
	"github.com/RecursivePineapple/recex-analyzer/internal/version"
)

var (
	outputFlag    string
	blacklistFlag []string
	whitelistFlag []string
	formatFlag    string
	logLevelFlag  string
	logFormatFlag string
	noHistoryFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "recex-analyzer BEFORE [AFTER]",
	Short: "Compare two recex recipe dumps and classify every change",
	Long: `recex-analyzer compares two recipe database dumps (a "before" and an
"after") and writes a report classifying every change between them:
additions, removals, changed outputs, changed stats, and ambiguous states
where a machine has more than one recipe registered for the same inputs.

When AFTER is omitted the before dump is diffed against itself, which
surfaces only conflicts, duplicate registrations and unresolved-name
problems already present in the dump.

Dumps may be plain JSON, gzip-compressed or zstd-compressed.

Examples:
  recex-analyzer before.json after.json
  recex-analyzer before.json.gz after.json.gz -o report.json
  recex-analyzer dump.json --whitelist Conflicting --whitelist DuplicateRegistration
  recex-analyzer before.json after.json --blacklist Added --format yaml`,
	Args:          cobra.RangeArgs(1, 2),
	RunE:          runAnalyze,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("recex-analyzer version {{.Version}}\n")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Report output path (default: analysis.json)")
	rootCmd.Flags().StringArrayVarP(&blacklistFlag, "blacklist", "b", nil, "Status kinds to exclude from the report (repeatable)")
	rootCmd.Flags().StringArrayVarP(&whitelistFlag, "whitelist", "w", nil, "Status kinds to keep in the report (repeatable)")
	rootCmd.Flags().StringVar(&formatFlag, "format", "human", "Summary format: human, json or yaml")
	rootCmd.Flags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.Flags().StringVar(&logFormatFlag, "log-format", "", "Log format: human or json")
	rootCmd.Flags().BoolVar(&noHistoryFlag, "no-history", false, "Do not record this run in the local history database")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	logger := newLogger(cfg)

	beforePath := args[0]
	afterPath := ""
	if len(args) == 2 {
		afterPath = args[1]
	}

	outputPath := cfg.Output
	if cmd.Flags().Changed("output") {
		outputPath = outputFlag
	}

	blacklistNames := cfg.Blacklist
	whitelistNames := cfg.Whitelist
	if cmd.Flags().Changed("blacklist") || cmd.Flags().Changed("whitelist") {
		blacklistNames = blacklistFlag
		whitelistNames = whitelistFlag
	}

	// Filter validation happens before any file is touched.
	if len(blacklistNames) > 0 && len(whitelistNames) > 0 {
		return errors.New(errors.UsageError,
			"cannot use --blacklist and --whitelist at the same time", nil)
	}
	blacklist, err := analyze.ParseStatusSet(blacklistNames)
	if err != nil {
		return errors.New(errors.UsageError, "invalid --blacklist", err)
	}
	whitelist, err := analyze.ParseStatusSet(whitelistNames)
	if err != nil {
		return errors.New(errors.UsageError, "invalid --whitelist", err)
	}

	switch formatFlag {
	case "human", "json", "yaml":
	default:
		return errors.Newf(errors.UsageError, nil,
			"unknown summary format %q (valid formats: human, json, yaml)", formatFlag)
	}

	before, after, err := dump.LoadPair(context.Background(), beforePath, afterPath, logger)
	if err != nil {
		return err
	}

	logger.Info("indexing machine recipes", nil)

	beforeMachines, _ := before.Machines()
	afterMachines, _ := after.Machines()
	beforeIdx := index.Build(beforeMachines)
	afterIdx := index.Build(afterMachines)

	logger.Info("analyzing recipes", map[string]interface{}{
		"machines_before": len(beforeIdx),
		"machines_after":  len(afterIdx),
	})

	result := analyze.Run(beforeIdx, afterIdx)

	rep, err := report.Filter(result, whitelist, blacklist)
	if err != nil {
		return err
	}
	summary := report.Summarize(rep.Machines)

	logger.Info("writing report", map[string]interface{}{"path": outputPath})
	if err := rep.Write(outputPath); err != nil {
		return err
	}

	if err := renderSummary(summary); err != nil {
		return err
	}

	recordHistory(cfg, logger, beforePath, afterPath, len(rep.Machines), summary)

	return nil
}

func renderSummary(summary *report.Summary) error {
	switch formatFlag {
	case "json":
		return summary.RenderJSON(os.Stdout)
	case "yaml":
		return summary.RenderYAML(os.Stdout)
	default:
		return summary.RenderHuman(os.Stdout)
	}
}

// recordHistory is best-effort: the report is already on disk, so history
// failures only warn.
func recordHistory(cfg *config.Config, logger *logging.Logger, beforePath, afterPath string, machineCount int, summary *report.Summary) {
	if noHistoryFlag || !cfg.History.Enabled {
		return
	}

	path := cfg.History.Path
	if path == "" {
		dir, err := config.Dir()
		if err != nil {
			logger.Warn("cannot resolve history directory", map[string]interface{}{"error": err.Error()})
			return
		}
		path = history.DefaultPath(dir)
	}

	db, err := history.Open(path, logger)
	if err != nil {
		logger.Warn("cannot open history database", map[string]interface{}{"error": err.Error()})
		return
	}
	defer func() { _ = db.Close() }()

	id, err := db.RecordRun(beforePath, afterPath, machineCount, summary.Counts())
	if err != nil {
		logger.Warn("cannot record run in history", map[string]interface{}{"error": err.Error()})
		return
	}
	logger.Debug("run recorded", map[string]interface{}{"id": id})
}

func loadConfig() *config.Config {
	dir, err := config.Dir()
	if err != nil {
		return config.DefaultConfig()
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

func newLogger(cfg *config.Config) *logging.Logger {
	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	format := logging.HumanFormat
	if logFormatFlag == "json" || (logFormatFlag == "" && cfg.Logging.Format == "json") {
		format = logging.JSONFormat
	}
	return logging.NewLogger(logging.Config{
		Format: format,
		Level:  logging.ParseLevel(level),
	})
}
