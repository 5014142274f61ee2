// Package run orchestrates one extraction run: it selects the reports,
// applies the chosen strategy to each one and records every outcome.
package run

import (
	"context"
	"errors"
	"fmt"

	"github.com/radlab-hd/laextract/internal/extract"
	"github.com/radlab-hd/laextract/internal/logger"
	"github.com/radlab-hd/laextract/internal/report"
)

// Strategy names selectable for a run.
const (
	StrategyRules = "rules"
	StrategyLLM   = "llm"
)

// Status is the lifecycle state of one report within a run.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

// Config selects what a run processes.
type Config struct {
	Strategy string
	Model    string   // required for the llm strategy
	Limit    int      // 0 means no limit
	StudyIDs []string // allow-list; order is preserved in the output
}

// Validate checks the run configuration before any report is touched.
func (c Config) Validate() error {
	switch c.Strategy {
	case StrategyRules:
		if c.Model != "" {
			return fmt.Errorf("the rules strategy does not take a model")
		}
	case StrategyLLM:
		if c.Model == "" {
			return fmt.Errorf("the llm strategy requires a model name")
		}
	default:
		return fmt.Errorf("unknown strategy: %q", c.Strategy)
	}
	if c.Limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", c.Limit)
	}
	return nil
}

// Outcome records the terminal state of one report.
type Outcome struct {
	StudyID string          `json:"study_id"`
	Status  Status          `json:"status"`
	Kind    string          `json:"error_kind,omitempty"`
	Error   string          `json:"error,omitempty"`
	Result  *extract.Result `json:"-"`
}

// Summary aggregates a completed run.
type Summary struct {
	Total     int       `json:"total"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Outcomes  []Outcome `json:"outcomes"`
}

// ErrAllFailed is returned when a run processed reports but none succeeded.
var ErrAllFailed = errors.New("no report was extracted successfully")

// Sink receives successful results as they are produced. Satisfied by the
// writers in internal/output.
type Sink interface {
	Write(res extract.Result) error
}

// Runner drives one extraction run over a report source.
type Runner struct {
	Source   report.Source
	Strategy extract.Extractor
	Sinks    []Sink
}

// Run selects the reports and processes them one at a time in source order.
// A failed report is recorded and never stops its siblings; selection errors
// and sink errors abort the run. Cancellation is honored between reports, so
// a cancelled report emits nothing.
func (r *Runner) Run(ctx context.Context, cfg Config) (Summary, error) {
	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}

	reports, err := r.Source.List(report.Selection{StudyIDs: cfg.StudyIDs, Limit: cfg.Limit})
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Total:    len(reports),
		Outcomes: make([]Outcome, 0, len(reports)),
	}

	logger.Info("starting run",
		"strategy", r.Strategy.Name(), "model", cfg.Model, "reports", len(reports))

	for _, rep := range reports {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		logger.Debug("extracting report", "study_id", rep.StudyID)

		res, err := r.Strategy.Extract(ctx, rep)
		if err != nil {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			kind := extract.ErrorKind(err)
			logger.Error("report failed", "study_id", rep.StudyID, "kind", kind, "error", err)
			summary.Failed++
			summary.Outcomes = append(summary.Outcomes, Outcome{
				StudyID: rep.StudyID,
				Status:  StatusFailed,
				Kind:    kind,
				Error:   err.Error(),
			})
			continue
		}

		for _, sink := range r.Sinks {
			if err := sink.Write(res); err != nil {
				return summary, fmt.Errorf("failed to write result for study %s: %w", rep.StudyID, err)
			}
		}

		summary.Succeeded++
		summary.Outcomes = append(summary.Outcomes, Outcome{
			StudyID: rep.StudyID,
			Status:  StatusSucceeded,
			Result:  &res,
		})
	}

	logger.Info("run finished",
		"total", summary.Total, "succeeded", summary.Succeeded, "failed", summary.Failed)

	if summary.Total > 0 && summary.Succeeded == 0 {
		return summary, ErrAllFailed
	}
	return summary, nil
}
