package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"

	"github.com/radlab-hd/laextract/internal/logger"
)

// CSVSource reads the corpus from a CSV file. Column names are configurable
// because corpus exports differ between sites, so records are addressed by
// header position rather than struct tags.
type CSVSource struct {
	path       string
	studyIDCol string
	reportCol  string
}

// NewCSVSource creates a source for the given corpus file.
func NewCSVSource(path, studyIDCol, reportCol string) *CSVSource {
	return &CSVSource{
		path:       path,
		studyIDCol: studyIDCol,
		reportCol:  reportCol,
	}
}

// List loads the corpus, orders it lexically by study ID and applies the
// Selection. The corpus file is only ever read, never modified.
func (s *CSVSource) List(sel Selection) ([]StudyReport, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus %s: %w", s.path, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyCorpus
	}

	idIdx, bodyIdx := -1, -1
	for i, name := range rows[0] {
		switch name {
		case s.studyIDCol:
			idIdx = i
		case s.reportCol:
			bodyIdx = i
		}
	}
	if idIdx < 0 {
		return nil, fmt.Errorf("corpus %s has no column %q", s.path, s.studyIDCol)
	}
	if bodyIdx < 0 {
		return nil, fmt.Errorf("corpus %s has no column %q", s.path, s.reportCol)
	}

	reports := make([]StudyReport, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) <= idIdx || len(row) <= bodyIdx {
			continue
		}
		reports = append(reports, StudyReport{
			StudyID: row[idIdx],
			Body:    row[bodyIdx],
			Source:  s.path,
		})
	}
	if len(reports) == 0 {
		return nil, ErrEmptyCorpus
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].StudyID < reports[j].StudyID
	})

	logger.Debug("corpus loaded", "path", s.path, "reports", len(reports))

	return apply(reports, sel)
}
