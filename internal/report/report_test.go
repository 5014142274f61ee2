package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func corpus(ids ...string) []StudyReport {
	reports := make([]StudyReport, 0, len(ids))
	for _, id := range ids {
		reports = append(reports, StudyReport{StudyID: id, Body: "Befund " + id})
	}
	return reports
}

func studyIDs(reports []StudyReport) []string {
	ids := make([]string, 0, len(reports))
	for _, r := range reports {
		ids = append(ids, r.StudyID)
	}
	return ids
}

func TestApply_NoFilters(t *testing.T) {
	got, err := apply(corpus("CBS0001", "CBS0002", "CBS0003"), Selection{})
	if err != nil {
		t.Fatalf("apply() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(got))
	}
}

func TestApply_Limit(t *testing.T) {
	got, err := apply(corpus("CBS0001", "CBS0002", "CBS0003"), Selection{Limit: 2})
	if err != nil {
		t.Fatalf("apply() error = %v", err)
	}

	want := []string{"CBS0001", "CBS0002"}
	if ids := studyIDs(got); len(ids) != 2 || ids[0] != want[0] || ids[1] != want[1] {
		t.Errorf("apply() = %v, want %v", ids, want)
	}
}

func TestApply_AllowListOrderWins(t *testing.T) {
	got, err := apply(
		corpus("CBS0001", "CBS0002", "CBS0003"),
		Selection{StudyIDs: []string{"CBS0003", "CBS0001"}},
	)
	if err != nil {
		t.Fatalf("apply() error = %v", err)
	}

	ids := studyIDs(got)
	if len(ids) != 2 || ids[0] != "CBS0003" || ids[1] != "CBS0001" {
		t.Errorf("apply() = %v, want [CBS0003 CBS0001]", ids)
	}
}

func TestApply_LimitCapsAllowList(t *testing.T) {
	got, err := apply(
		corpus("CBS0001", "CBS0002", "CBS0003"),
		Selection{StudyIDs: []string{"CBS0003", "CBS0002", "CBS0001"}, Limit: 2},
	)
	if err != nil {
		t.Fatalf("apply() error = %v", err)
	}

	ids := studyIDs(got)
	if len(ids) != 2 || ids[0] != "CBS0003" || ids[1] != "CBS0002" {
		t.Errorf("apply() = %v, want [CBS0003 CBS0002]", ids)
	}
}

func TestApply_UnknownStudyID(t *testing.T) {
	_, err := apply(
		corpus("CBS0001", "CBS0002"),
		Selection{StudyIDs: []string{"CBS0001", "CBS0099"}},
	)

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.StudyID != "CBS0099" {
		t.Errorf("NotFoundError.StudyID = %q, want CBS0099", notFound.StudyID)
	}
}

func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reports.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write corpus: %v", err)
	}
	return path
}

func TestCSVSource_List(t *testing.T) {
	path := writeCorpus(t, "study_id,report\nCBS0002,\"Befund B\"\nCBS0001,\"Befund A\"\n")
	src := NewCSVSource(path, "study_id", "report")

	got, err := src.List(Selection{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	// Lexical enumeration order regardless of file order.
	ids := studyIDs(got)
	if len(ids) != 2 || ids[0] != "CBS0001" || ids[1] != "CBS0002" {
		t.Errorf("List() = %v, want [CBS0001 CBS0002]", ids)
	}
	if got[0].Body != "Befund A" {
		t.Errorf("Body = %q, want %q", got[0].Body, "Befund A")
	}
	if got[0].Source != path {
		t.Errorf("Source = %q, want %q", got[0].Source, path)
	}
}

func TestCSVSource_CustomColumns(t *testing.T) {
	path := writeCorpus(t, "id,befund,extra\nCBS0001,Inhalt,x\n")
	src := NewCSVSource(path, "id", "befund")

	got, err := src.List(Selection{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 || got[0].Body != "Inhalt" {
		t.Errorf("unexpected reports: %+v", got)
	}
}

func TestCSVSource_MissingColumn(t *testing.T) {
	path := writeCorpus(t, "study_id,text\nCBS0001,foo\n")
	src := NewCSVSource(path, "study_id", "report")

	if _, err := src.List(Selection{}); err == nil {
		t.Fatal("expected error for missing report column")
	}
}

func TestCSVSource_EmptyCorpus(t *testing.T) {
	path := writeCorpus(t, "study_id,report\n")
	src := NewCSVSource(path, "study_id", "report")

	if _, err := src.List(Selection{}); !errors.Is(err, ErrEmptyCorpus) {
		t.Fatalf("expected ErrEmptyCorpus, got %v", err)
	}
}
