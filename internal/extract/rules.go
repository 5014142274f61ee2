package extract

import (
	"context"
	"time"

	"github.com/radlab-hd/laextract/internal/report"
	"github.com/radlab-hd/laextract/internal/rules"
)

// RuleStrategy runs the deterministic rule-based extraction.
type RuleStrategy struct{}

// NewRuleStrategy builds the rule-based strategy.
func NewRuleStrategy() *RuleStrategy {
	return &RuleStrategy{}
}

// Name returns the strategy identifier.
func (s *RuleStrategy) Name() string {
	return "rules"
}

// Extract evaluates the rule set against one report.
func (s *RuleStrategy) Extract(ctx context.Context, r report.StudyReport) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, &ExtractionFailedError{StudyID: r.StudyID, Strategy: s.Name(), Err: err}
	}

	ex, err := rules.Extract(r)
	if err != nil {
		return Result{}, &ExtractionFailedError{StudyID: r.StudyID, Strategy: s.Name(), Err: err}
	}

	return Result{
		StudyID:     r.StudyID,
		Strategy:    s.Name(),
		ExtractedAt: time.Now().UTC(),
		Rules:       &ex,
	}, nil
}
