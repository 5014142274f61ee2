// Package rules implements the deterministic rule-based field extraction.
// Report bodies are structured as "Label: value" lines; each rule looks up
// its label, records the raw input value and normalizes it into the closed
// value set, flagging missing or invalid inputs with an error code.
package rules

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/radlab-hd/laextract/internal/lae"
	"github.com/radlab-hd/laextract/internal/report"
)

// Code marks a field whose input could not be evaluated.
type Code string

const (
	CodeMissingField Code = "Missing field"
	CodeInvalidValue Code = "Invalid value"
)

// Values holds one canonical string per rule field: either the normalized
// value ("" for a stated null), or an error Code. The string form keeps the
// two exports (raw inputs, evaluated values) symmetric.
type Values struct {
	ECGSync             string `csv:"ecg_sync" json:"ecg_sync"`
	DensityTrPulmonalis string `csv:"density_tr_pulmonalis" json:"density_tr_pulmonalis"`
	ArtefactScore       string `csv:"artefact_score" json:"artefact_score"`
	LaePresence         string `csv:"lae_presence" json:"lae_presence"`
	LaeMainBranchRight  string `csv:"lae_main_branch_right" json:"lae_main_branch_right"`
	LaeUpperLobeRight   string `csv:"lae_upper_lobe_right" json:"lae_upper_lobe_right"`
	LaeLowerLobeRight   string `csv:"lae_lower_lobe_right" json:"lae_lower_lobe_right"`
	LaeMiddleLobeRight  string `csv:"lae_middle_lobe_right" json:"lae_middle_lobe_right"`
	LaeMainBranchLeft   string `csv:"lae_main_branch_left" json:"lae_main_branch_left"`
	LaeUpperLobeLeft    string `csv:"lae_upper_lobe_left" json:"lae_upper_lobe_left"`
	LaeLowerLobeLeft    string `csv:"lae_lower_lobe_left" json:"lae_lower_lobe_left"`
	ClotBurdenScore     string `csv:"clot_burden_score" json:"clot_burden_score"`
	PerfusionDeficit    string `csv:"perfusion_deficit" json:"perfusion_deficit"`
	RVLVQuotient        string `csv:"rv_lv_quotient" json:"rv_lv_quotient"`
}

// Extraction is the rule-based result for one study report.
type Extraction struct {
	StudyID   string `json:"study_id"`
	Input     Values `json:"input_values"`
	Evaluated Values `json:"evaluated_values"`
}

var (
	densityRe = regexp.MustCompile(`^\d+(,\d+)? HU$`)
	numberRe  = regexp.MustCompile(`^\d+(,\d+)?$`)
)

// ErrEmptyReport is returned when a report has no body to scan.
var ErrEmptyReport = errors.New("report body is empty")

// Extract evaluates all rule fields against one report. The same report
// always yields the same extraction.
func Extract(r report.StudyReport) (Extraction, error) {
	if strings.TrimSpace(r.Body) == "" {
		return Extraction{}, ErrEmptyReport
	}

	var in, ev Values

	in.ECGSync, ev.ECGSync = extractECGSync(r.Body)
	in.DensityTrPulmonalis, ev.DensityTrPulmonalis = extractDensity(r.Body)
	in.ArtefactScore, ev.ArtefactScore = extractArtefactScore(r.Body)
	in.LaePresence, ev.LaePresence = extractLaePresence(r.Body)
	in.LaeMainBranchRight, ev.LaeMainBranchRight = extractMainBranch(r.Body, "Rechts Pulmonalhauptarterie")
	in.LaeUpperLobeRight, ev.LaeUpperLobeRight = extractLobe(r.Body, "Rechts Oberlappen")
	in.LaeLowerLobeRight, ev.LaeLowerLobeRight = extractLobe(r.Body, "Rechts Unterlappen")
	in.LaeMiddleLobeRight, ev.LaeMiddleLobeRight = extractLobe(r.Body, "Mittellappen")
	in.LaeMainBranchLeft, ev.LaeMainBranchLeft = extractMainBranch(r.Body, "Links Pulmonalhauptarterie")
	in.LaeUpperLobeLeft, ev.LaeUpperLobeLeft = extractLobe(r.Body, "Links Oberlappen")
	in.LaeLowerLobeLeft, ev.LaeLowerLobeLeft = extractLobe(r.Body, "Links Unterlappen")
	in.ClotBurdenScore, ev.ClotBurdenScore = extractClotBurdenScore(r.Body)
	in.PerfusionDeficit, ev.PerfusionDeficit = extractPerfusionDeficit(r.Body)
	in.RVLVQuotient, ev.RVLVQuotient = extractRVLVQuotient(r.Body)

	// When every occlusion field is missing the report simply states no
	// thrombus burden, which means nothing is occluded.
	if allMissing(
		ev.LaeMainBranchRight, ev.LaeUpperLobeRight, ev.LaeLowerLobeRight,
		ev.LaeMiddleLobeRight, ev.LaeMainBranchLeft, ev.LaeUpperLobeLeft,
		ev.LaeLowerLobeLeft,
	) {
		ev.LaeMainBranchRight = string(lae.MainBranchNone)
		ev.LaeMainBranchLeft = string(lae.MainBranchNone)
		ev.LaeUpperLobeRight = string(lae.LobeNone)
		ev.LaeLowerLobeRight = string(lae.LobeNone)
		ev.LaeMiddleLobeRight = string(lae.LobeNone)
		ev.LaeUpperLobeLeft = string(lae.LobeNone)
		ev.LaeLowerLobeLeft = string(lae.LobeNone)
	}

	return Extraction{StudyID: r.StudyID, Input: in, Evaluated: ev}, nil
}

func allMissing(values ...string) bool {
	for _, v := range values {
		if v != string(CodeMissingField) {
			return false
		}
	}
	return true
}

// fieldValue finds a "Label: value" line and returns the text after the
// last colon. The second return reports whether the label was present.
func fieldValue(body, field string) (string, bool) {
	for _, line := range strings.Split(body, "\n") {
		if strings.Contains(line, field+":") {
			idx := strings.LastIndex(line, ":")
			return strings.TrimSpace(line[idx+1:]), true
		}
	}
	return "", false
}

func extractECGSync(body string) (string, string) {
	iv, ok := fieldValue(body, "EKG-Synchronisation")
	switch {
	case !ok:
		return "", string(CodeMissingField)
	case iv == "Ja":
		return iv, "true"
	case iv == "Nein" || iv == "" || iv == "-":
		return iv, "false"
	default:
		return iv, string(CodeInvalidValue)
	}
}

func extractDensity(body string) (string, string) {
	iv, ok := fieldValue(body, "CT-Dichte Truncus pulmonalis (Standard)")
	switch {
	case !ok:
		return "", string(CodeMissingField)
	case iv == "" || iv == "-":
		return iv, ""
	case densityRe.MatchString(iv):
		raw := strings.ReplaceAll(strings.Fields(iv)[0], ",", ".")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return iv, string(CodeInvalidValue)
		}
		return iv, strconv.Itoa(int(math.Round(v)))
	default:
		return iv, string(CodeInvalidValue)
	}
}

func extractArtefactScore(body string) (string, string) {
	iv, ok := fieldValue(body, "Artefakt-Score (0-5)")
	switch {
	case !ok:
		return "", string(CodeMissingField)
	case iv == "" || iv == "-":
		return iv, ""
	case iv == "0 (keine Artefakte)", iv == "1", iv == "2", iv == "3", iv == "4",
		iv == "5 (nicht beurteilbar)":
		return iv, iv[:1]
	default:
		return iv, string(CodeInvalidValue)
	}
}

func extractLaePresence(body string) (string, string) {
	iv, ok := fieldValue(body, "Nachweis einer Lungenarterienembolie")
	if !ok {
		return "", string(CodeMissingField)
	}
	switch iv {
	case "Nein":
		return iv, string(lae.LaePresenceNo)
	case "Ja":
		return iv, string(lae.LaePresenceYes)
	case "Verdacht auf Lungenarterienembolie":
		return iv, string(lae.LaePresenceSuspected)
	case "Nicht beurteilbar":
		return iv, string(lae.LaePresenceNotAssessable)
	default:
		return iv, string(CodeInvalidValue)
	}
}

func extractClotBurdenScore(body string) (string, string) {
	iv, ok := fieldValue(body, "Heidelberg Clot Burden Score (CBS, PMID: 34581626)")
	if !ok {
		return "", string(CodeMissingField)
	}
	if !numberRe.MatchString(iv) {
		return iv, string(CodeInvalidValue)
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(iv, ",", "."), 64)
	if err != nil || v < 0 || v > 40 {
		return iv, string(CodeInvalidValue)
	}
	return iv, strconv.FormatFloat(v, 'f', -1, 64)
}

func extractPerfusionDeficit(body string) (string, string) {
	iv, ok := fieldValue(body, "Perfusionsausfälle (DE-CT)")
	if !ok {
		return "", string(CodeMissingField)
	}
	switch iv {
	case "", "-":
		return iv, ""
	case "Keine":
		return iv, string(lae.PerfusionNone)
	case "<25%":
		return iv, string(lae.PerfusionLt25)
	case "≥25%", "=25%":
		return iv, string(lae.PerfusionGe25)
	default:
		return iv, string(CodeInvalidValue)
	}
}

func extractRVLVQuotient(body string) (string, string) {
	iv, ok := fieldValue(body, "RV/LV-Quotient")
	if !ok {
		return "", string(CodeMissingField)
	}
	switch iv {
	case "", "-":
		return iv, ""
	case "<1":
		return iv, string(lae.QuotientLt1)
	case "≥1", "=1":
		return iv, string(lae.QuotientGe1)
	default:
		return iv, string(CodeInvalidValue)
	}
}

func extractMainBranch(body, branch string) (string, string) {
	iv, ok := fieldValue(body, branch)
	if !ok {
		return "", string(CodeMissingField)
	}
	switch iv {
	case "", "-":
		return iv, string(lae.MainBranchNone)
	case "Total okkludiert":
		return iv, string(lae.MainBranchTotal)
	case "Partiell okkludiert":
		return iv, string(lae.MainBranchPartial)
	default:
		return iv, string(CodeInvalidValue)
	}
}

func extractLobe(body, lobe string) (string, string) {
	iv, ok := fieldValue(body, lobe)
	if !ok {
		return "", string(CodeMissingField)
	}
	switch iv {
	case "", "-":
		return iv, string(lae.LobeNone)
	case "Lappenarterie total okkludiert":
		return iv, string(lae.LobeTotal)
	case "Lappenarterie partiell okkludiert":
		return iv, string(lae.LobePartial)
	case "Segmentarterie(n)":
		return iv, string(lae.LobeSegmental)
	case "Subsegmentarterie(n)":
		return iv, string(lae.LobeSubsegmental)
	default:
		return iv, string(CodeInvalidValue)
	}
}
