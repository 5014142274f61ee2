// Package report loads the study report corpus and selects the reports a
// run should process.
package report

import (
	"errors"
	"fmt"
)

// StudyReport is a single document to be mined for field values. Reports are
// immutable once loaded.
type StudyReport struct {
	StudyID string
	Body    string
	Source  string // where the report was loaded from
}

// Selection narrows the corpus for one run. StudyIDs and Limit are
// independent filters: when both are set the allow-list is applied first and
// the limit caps the filtered result.
type Selection struct {
	StudyIDs []string // explicit allow-list, order preserved in the output
	Limit    int      // maximum number of reports, 0 means no limit
}

// Source enumerates study reports and applies a Selection.
type Source interface {
	List(sel Selection) ([]StudyReport, error)
}

// ErrEmptyCorpus is returned when the underlying corpus holds no reports.
var ErrEmptyCorpus = errors.New("report corpus is empty")

// NotFoundError reports an allow-listed study ID that is absent from the
// corpus. Listing fails before any extraction happens.
type NotFoundError struct {
	StudyID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("study %s not found in corpus", e.StudyID)
}

// apply filters reports per the Selection. Reports must already be in
// enumeration order; allow-list order wins over it when an allow-list is
// present.
func apply(reports []StudyReport, sel Selection) ([]StudyReport, error) {
	selected := reports

	if len(sel.StudyIDs) > 0 {
		byID := make(map[string]StudyReport, len(reports))
		for _, r := range reports {
			byID[r.StudyID] = r
		}

		selected = make([]StudyReport, 0, len(sel.StudyIDs))
		for _, id := range sel.StudyIDs {
			r, ok := byID[id]
			if !ok {
				return nil, &NotFoundError{StudyID: id}
			}
			selected = append(selected, r)
		}
	}

	if sel.Limit > 0 && len(selected) > sel.Limit {
		selected = selected[:sel.Limit]
	}

	return selected, nil
}
