package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/radlab-hd/laextract/internal/config"
	"github.com/radlab-hd/laextract/internal/extract"
	"github.com/radlab-hd/laextract/internal/logger"
	"github.com/radlab-hd/laextract/internal/output"
	"github.com/radlab-hd/laextract/internal/provider"
	"github.com/radlab-hd/laextract/internal/report"
	"github.com/radlab-hd/laextract/internal/run"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured fields from study reports",
	Long: `Extract structured data fields from the report corpus.

Exactly one strategy must be chosen: --rules for the deterministic rule
set, or --llm <model> for LLM extraction. Model names matching the
configured cloud patterns are sent to the cloud API; everything else is
sent to the local model server.

A failed report is recorded and the run continues; the command only
exits non-zero when the configuration is invalid, a requested study is
missing, the provider cannot be set up, or every report failed.

Examples:
  laextract extract --rules -f reports.csv
  laextract extract --llm falcon3:70b -f reports.csv -l 10 --format json
  laextract extract --llm gpt-4o -f reports.csv -s CBS0001 -s CBS0002 --db runs.db`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	flags := extractCmd.Flags()

	// Strategy selection
	flags.Bool("rules", false, "use the rule-based extraction strategy")
	flags.String("llm", "", "use the LLM strategy with this model")

	// Report selection
	flags.StringP("reports", "f", "", "path to the report corpus CSV file")
	flags.IntP("limit", "l", 0, "process at most N reports (0 = all)")
	flags.StringSliceP("study", "s", nil, "study ID to process (can be repeated)")
	flags.String("id-column", "", "corpus column holding the study ID")
	flags.String("report-column", "", "corpus column holding the report body")

	// Output settings
	flags.StringP("output", "o", "", "output directory (default: output)")
	flags.String("format", "csv", "output format: csv, json, jsonl, yaml")
	flags.Bool("no-timestamp", false, "omit the timestamp from the output file name")
	flags.String("db", "", "also record the run in this SQLite database")

	// Provider settings
	flags.Duration("timeout", 0, "provider request timeout")

	_ = viper.BindPFlag("reports_file", flags.Lookup("reports"))
	_ = viper.BindPFlag("study_id_column", flags.Lookup("id-column"))
	_ = viper.BindPFlag("report_column", flags.Lookup("report-column"))
	_ = viper.BindPFlag("output_dir", flags.Lookup("output"))
	_ = viper.BindPFlag("timeout", flags.Lookup("timeout"))
}

// storeSink forwards successful results to the SQLite store.
type storeSink struct {
	ctx   context.Context
	store *output.Store
	runID string
}

func (s *storeSink) Write(res extract.Result) error {
	return s.store.SaveResult(s.ctx, s.runID, res)
}

func runExtract(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	useRules, _ := cmd.Flags().GetBool("rules")
	model, _ := cmd.Flags().GetString("llm")
	if useRules == (model != "") {
		logError("choose exactly one strategy: --rules or --llm <model>")
		return fmt.Errorf("choose exactly one strategy: --rules or --llm <model>")
	}

	cfg := config.Load()
	if cfg.ReportsFile == "" {
		logError("a report corpus is required (-f or reports_file)")
		return fmt.Errorf("a report corpus is required")
	}

	limit, _ := cmd.Flags().GetInt("limit")
	studies, _ := cmd.Flags().GetStringSlice("study")

	runCfg := run.Config{
		Strategy: run.StrategyRules,
		Limit:    limit,
		StudyIDs: studies,
	}
	if !useRules {
		runCfg.Strategy = run.StrategyLLM
		runCfg.Model = model
	}
	if err := runCfg.Validate(); err != nil {
		logError("%v", err)
		return err
	}

	formatStr, _ := cmd.Flags().GetString("format")
	format := output.Format(formatStr)
	switch format {
	case output.FormatCSV, output.FormatJSON, output.FormatJSONL, output.FormatYAML:
	default:
		logError("unsupported output format: %s", formatStr)
		return fmt.Errorf("unsupported output format: %s", formatStr)
	}

	source := report.NewCSVSource(cfg.ReportsFile, cfg.StudyIDColumn, cfg.ReportColumn)

	var strategy extract.Extractor
	if useRules {
		strategy = extract.NewRuleStrategy()
	} else {
		binding, err := provider.Resolve(model, cfg)
		if err != nil {
			logError("%v", err)
			return err
		}
		client, err := provider.NewClient(binding, cfg.Timeout)
		if err != nil {
			logError("%v", err)
			return err
		}
		logger.Debug("provider resolved", "kind", binding.Kind, "model", model)
		strategy = extract.NewLLMStrategy(client, model)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		logError("failed to create output directory: %v", err)
		return err
	}

	base := "rules_results"
	if !useRules {
		base = model
	}
	ts := time.Now().UTC()
	if noTS, _ := cmd.Flags().GetBool("no-timestamp"); noTS {
		ts = time.Time{}
	}
	outPath := filepath.Join(cfg.OutputDir, output.Filename(base, format, ts))

	outFile, err := os.Create(outPath) //#nosec G304 -- CLI tool writes to user-specified output directory
	if err != nil {
		logError("failed to create output file: %v", err)
		return err
	}
	defer func() { _ = outFile.Close() }()

	writer, err := output.NewWriter(outFile, format)
	if err != nil {
		logError("%v", err)
		return err
	}

	sinks := []run.Sink{writer}

	var store *output.Store
	var runID string
	if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
		store, err = output.OpenStore(dbPath)
		if err != nil {
			logError("%v", err)
			return err
		}
		defer func() { _ = store.Close() }()

		runID, err = store.CreateRun(ctx, runCfg.Strategy, model)
		if err != nil {
			logError("%v", err)
			return err
		}
		sinks = append(sinks, &storeSink{ctx: ctx, store: store, runID: runID})
	}

	runner := &run.Runner{Source: source, Strategy: strategy, Sinks: sinks}
	summary, runErr := runner.Run(ctx, runCfg)

	if err := writer.Close(); err != nil {
		logError("failed to flush output: %v", err)
		return err
	}

	if store != nil {
		// The run record keeps failures too; failed reports never reach
		// the sinks, so they are saved from the summary here.
		for _, o := range summary.Outcomes {
			if o.Status == run.StatusFailed {
				if err := store.SaveFailure(context.Background(), runID, o.StudyID, o.Kind, o.Error); err != nil {
					logger.Error("failed to record failure", "study_id", o.StudyID, "error", err)
				}
			}
		}
		if err := store.FinishRun(context.Background(), runID, summary.Succeeded, summary.Failed); err != nil {
			logger.Error("failed to finish run record", "run_id", runID, "error", err)
		}
	}

	if runErr != nil {
		logError("%v", runErr)
		return runErr
	}

	logger.Info("results written", "path", outPath,
		"succeeded", summary.Succeeded, "failed", summary.Failed)
	return nil
}
