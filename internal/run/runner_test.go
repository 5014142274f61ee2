package run

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/radlab-hd/laextract/internal/extract"
	"github.com/radlab-hd/laextract/internal/report"
)

// fakeSource returns a fixed report set after applying the selection the
// way a real source would.
type fakeSource struct {
	reports []report.StudyReport
	err     error
	lastSel report.Selection
}

func (f *fakeSource) List(sel report.Selection) ([]report.StudyReport, error) {
	f.lastSel = sel
	if f.err != nil {
		return nil, f.err
	}
	return f.reports, nil
}

// fakeExtractor fails the study IDs listed in fail and can cancel a context
// mid-run to simulate an interrupt.
type fakeExtractor struct {
	fail   map[string]error
	cancel context.CancelFunc
	after  int
	calls  []string
}

func (f *fakeExtractor) Name() string { return "fake" }

func (f *fakeExtractor) Extract(ctx context.Context, r report.StudyReport) (extract.Result, error) {
	f.calls = append(f.calls, r.StudyID)
	if f.cancel != nil && len(f.calls) == f.after {
		f.cancel()
	}
	if err, ok := f.fail[r.StudyID]; ok {
		return extract.Result{}, err
	}
	return extract.Result{
		StudyID:     r.StudyID,
		Strategy:    f.Name(),
		ExtractedAt: time.Now().UTC(),
	}, nil
}

// collectSink records every result it receives.
type collectSink struct {
	results []extract.Result
	err     error
}

func (s *collectSink) Write(res extract.Result) error {
	if s.err != nil {
		return s.err
	}
	s.results = append(s.results, res)
	return nil
}

func corpus(ids ...string) []report.StudyReport {
	reports := make([]report.StudyReport, 0, len(ids))
	for _, id := range ids {
		reports = append(reports, report.StudyReport{StudyID: id, Body: "Befund: ..."})
	}
	return reports
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"rules", Config{Strategy: StrategyRules}, false},
		{"llm with model", Config{Strategy: StrategyLLM, Model: "falcon3:70b"}, false},
		{"llm without model", Config{Strategy: StrategyLLM}, true},
		{"rules with model", Config{Strategy: StrategyRules, Model: "gpt-4o"}, true},
		{"unknown strategy", Config{Strategy: "regex"}, true},
		{"negative limit", Config{Strategy: StrategyRules, Limit: -1}, true},
		{"limit with allow-list", Config{Strategy: StrategyRules, Limit: 2, StudyIDs: []string{"CBS0001"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRun_ProcessesInSourceOrder(t *testing.T) {
	source := &fakeSource{reports: corpus("CBS0001", "CBS0002", "CBS0003")}
	sink := &collectSink{}
	runner := &Runner{Source: source, Strategy: &fakeExtractor{}, Sinks: []Sink{sink}}

	summary, err := runner.Run(context.Background(), Config{Strategy: StrategyRules, Limit: 3})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Total != 3 || summary.Succeeded != 3 || summary.Failed != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if source.lastSel.Limit != 3 {
		t.Errorf("selection limit = %d, want 3", source.lastSel.Limit)
	}

	for i, want := range []string{"CBS0001", "CBS0002", "CBS0003"} {
		if summary.Outcomes[i].StudyID != want || summary.Outcomes[i].Status != StatusSucceeded {
			t.Errorf("outcome %d = %+v, want %s succeeded", i, summary.Outcomes[i], want)
		}
		if sink.results[i].StudyID != want {
			t.Errorf("sink result %d = %q, want %q", i, sink.results[i].StudyID, want)
		}
	}
}

func TestRun_FailureDoesNotStopSiblings(t *testing.T) {
	source := &fakeSource{reports: corpus("CBS0001", "CBS0002", "CBS0003")}
	strategy := &fakeExtractor{fail: map[string]error{
		"CBS0002": &extract.ProviderError{StudyID: "CBS0002", Model: "falcon3:70b", Err: errors.New("connection refused")},
	}}
	sink := &collectSink{}
	runner := &Runner{Source: source, Strategy: strategy, Sinks: []Sink{sink}}

	summary, err := runner.Run(context.Background(), Config{Strategy: StrategyLLM, Model: "falcon3:70b"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Succeeded != 2 || summary.Failed != 1 {
		t.Errorf("summary = %+v", summary)
	}

	failed := summary.Outcomes[1]
	if failed.StudyID != "CBS0002" || failed.Status != StatusFailed {
		t.Errorf("failed outcome = %+v", failed)
	}
	if failed.Kind != "provider_error" {
		t.Errorf("Kind = %q, want provider_error", failed.Kind)
	}

	// Only the successful reports reach the sink.
	if len(sink.results) != 2 {
		t.Fatalf("sink received %d results, want 2", len(sink.results))
	}
	if sink.results[0].StudyID != "CBS0001" || sink.results[1].StudyID != "CBS0003" {
		t.Errorf("sink results = %+v", sink.results)
	}
}

func TestRun_SelectionErrorAbortsWithNoOutcomes(t *testing.T) {
	source := &fakeSource{err: &report.NotFoundError{StudyID: "CBS0099"}}
	strategy := &fakeExtractor{}
	runner := &Runner{Source: source, Strategy: strategy}

	_, err := runner.Run(context.Background(), Config{Strategy: StrategyRules, StudyIDs: []string{"CBS0001", "CBS0099"}})

	var notFound *report.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if len(strategy.calls) != 0 {
		t.Errorf("no report may be processed after a selection error, got %v", strategy.calls)
	}
}

func TestRun_AllFailed(t *testing.T) {
	source := &fakeSource{reports: corpus("CBS0001", "CBS0002")}
	strategy := &fakeExtractor{fail: map[string]error{
		"CBS0001": &extract.ProviderError{StudyID: "CBS0001", Err: errors.New("refused")},
		"CBS0002": &extract.MalformedResponseError{StudyID: "CBS0002", Err: errors.New("bad json")},
	}}
	runner := &Runner{Source: source, Strategy: strategy}

	summary, err := runner.Run(context.Background(), Config{Strategy: StrategyLLM, Model: "falcon3:70b"})
	if !errors.Is(err, ErrAllFailed) {
		t.Fatalf("expected ErrAllFailed, got %v", err)
	}

	if summary.Failed != 2 || summary.Succeeded != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.Outcomes[1].Kind != "malformed_response" {
		t.Errorf("Kind = %q", summary.Outcomes[1].Kind)
	}
}

func TestRun_EmptySelection(t *testing.T) {
	source := &fakeSource{}
	runner := &Runner{Source: source, Strategy: &fakeExtractor{}}

	summary, err := runner.Run(context.Background(), Config{Strategy: StrategyRules})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Total != 0 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestRun_CancellationStopsBetweenReports(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	source := &fakeSource{reports: corpus("CBS0001", "CBS0002", "CBS0003")}
	strategy := &fakeExtractor{cancel: cancel, after: 1}
	sink := &collectSink{}
	runner := &Runner{Source: source, Strategy: strategy, Sinks: []Sink{sink}}

	summary, err := runner.Run(ctx, Config{Strategy: StrategyRules})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if len(strategy.calls) != 1 {
		t.Errorf("extractor calls = %v, want just the first report", strategy.calls)
	}
	if summary.Succeeded != 1 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestRun_SinkErrorAborts(t *testing.T) {
	source := &fakeSource{reports: corpus("CBS0001", "CBS0002")}
	sink := &collectSink{err: errors.New("disk full")}
	runner := &Runner{Source: source, Strategy: &fakeExtractor{}, Sinks: []Sink{sink}}

	_, err := runner.Run(context.Background(), Config{Strategy: StrategyRules})
	if err == nil || !errors.Is(err, sink.err) {
		t.Fatalf("expected sink error, got %v", err)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	source := &fakeSource{reports: corpus("CBS0001")}
	strategy := &fakeExtractor{}
	runner := &Runner{Source: source, Strategy: strategy}

	if _, err := runner.Run(context.Background(), Config{Strategy: StrategyLLM}); err == nil {
		t.Fatal("expected error for llm strategy without model")
	}
	if len(strategy.calls) != 0 {
		t.Errorf("no report may be processed with invalid config, got %v", strategy.calls)
	}
}
