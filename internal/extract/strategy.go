// Package extract defines the extraction strategies that turn a study
// report into structured data: a deterministic rule-based strategy and an
// LLM-backed strategy with retry on transient provider failures.
package extract

import (
	"context"
	"time"

	"github.com/radlab-hd/laextract/internal/lae"
	"github.com/radlab-hd/laextract/internal/report"
	"github.com/radlab-hd/laextract/internal/rules"
)

// Result is the extraction outcome for one study report. Exactly one of
// Data and Rules is set, depending on the strategy.
type Result struct {
	StudyID     string             `json:"study_id"`
	Strategy    string             `json:"strategy"`
	Model       string             `json:"model,omitempty"`
	ExtractedAt time.Time          `json:"extracted_at"`
	Data        *lae.ExtractedData `json:"data,omitempty"`
	Rules       *rules.Extraction  `json:"rules,omitempty"`

	// ClotBurdenScoreCalc is recomputed from the extracted occlusion
	// fields, independent of the score stated in the report.
	ClotBurdenScoreCalc *float64 `json:"clot_burden_score_calc,omitempty"`

	PromptTokens     int           `json:"prompt_tokens,omitempty"`
	CompletionTokens int           `json:"completion_tokens,omitempty"`
	Duration         time.Duration `json:"duration,omitempty"`
}

// Extractor turns one study report into a structured result.
type Extractor interface {
	// Name identifies the strategy for logging and provenance.
	Name() string

	// Extract processes a single report. Failures are reported through
	// the error taxonomy in this package and never affect other reports.
	Extract(ctx context.Context, r report.StudyReport) (Result, error)
}
