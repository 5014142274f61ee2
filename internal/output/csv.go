package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jszwec/csvutil"

	"github.com/radlab-hd/laextract/internal/extract"
	"github.com/radlab-hd/laextract/internal/rules"
)

// CSVWriter writes flattened result rows. The column set follows the first
// result written: one wide row per report for LLM extractions, or one row
// per value set (raw input, evaluated) for rule-based extractions.
type CSVWriter struct {
	cw  *csv.Writer
	enc *csvutil.Encoder
}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter(w io.Writer) *CSVWriter {
	cw := csv.NewWriter(w)
	return &CSVWriter{
		cw:  cw,
		enc: csvutil.NewEncoder(cw),
	}
}

// llmRow flattens one LLM extraction into a single CSV record.
type llmRow struct {
	StudyID     string `csv:"study_id"`
	Model       string `csv:"model"`
	ExtractedAt string `csv:"extracted_at"`

	Keywords           string   `csv:"keywords"`
	Morbidity          int      `csv:"morbidity"`
	SymptomDuration    *int     `csv:"symptom_duration"`
	DeepVeinThrombosis bool     `csv:"deep_vein_thrombosis"`
	Dyspnea            bool     `csv:"dyspnea"`
	Tachycardia        bool     `csv:"tachycardia"`
	PO2Reduction       bool     `csv:"pO2_reduction"`
	PO2Percentage      *int     `csv:"pO2_percentage"`
	TroponinElevated   bool     `csv:"troponin_elevated"`
	TroponinValue      *float64 `csv:"troponin_value"`
	NTProBNPElevated   bool     `csv:"nt_pro_bnp_elevated"`
	NTProBNPValue      *float64 `csv:"nt_pro_bnp_value"`
	DDimersElevated    bool     `csv:"d_dimers_elevated"`
	DDimersValue       *float64 `csv:"d_dimers_value"`

	InflammationQuestion  bool `csv:"inflammation_question"`
	LungQuestion          bool `csv:"lung_question"`
	AortaQuestion         bool `csv:"aorta_question"`
	CardiacQuestion       bool `csv:"cardiac_question"`
	TripleRuleOutQuestion bool `csv:"triple_rule_out_question"`

	ECGSync             bool     `csv:"ecg_sync"`
	DensityTrPulmonalis *int     `csv:"density_tr_pulmonalis"`
	ArtefactScore       *int     `csv:"artefact_score"`
	PreviousExamination bool     `csv:"previous_examination"`
	LaePresence         string   `csv:"lae_presence"`
	LaeMainBranchRight  string   `csv:"lae_main_branch_right"`
	LaeUpperLobeRight   string   `csv:"lae_upper_lobe_right"`
	LaeLowerLobeRight   string   `csv:"lae_lower_lobe_right"`
	LaeMiddleLobeRight  string   `csv:"lae_middle_lobe_right"`
	LaeMainBranchLeft   string   `csv:"lae_main_branch_left"`
	LaeUpperLobeLeft    string   `csv:"lae_upper_lobe_left"`
	LaeLowerLobeLeft    string   `csv:"lae_lower_lobe_left"`
	ClotBurdenScore     *float64 `csv:"clot_burden_score"`
	PerfusionDeficit    string   `csv:"perfusion_deficit"`
	RVLVQuotient        string   `csv:"rv_lv_quotient"`
	Inflammation        bool     `csv:"inflammation"`
	Congestion          bool     `csv:"congestion"`
	SuspectFinding      bool     `csv:"suspect_finding"`
	HeartPathology      bool     `csv:"heart_pathology"`
	VascularPathology   bool     `csv:"vascular_pathology"`
	BonePathology       bool     `csv:"bone_pathology"`

	ClotBurdenScoreCalc *float64 `csv:"clot_burden_score_calc"`
	PromptTokens        int      `csv:"prompt_tokens"`
	CompletionTokens    int      `csv:"completion_tokens"`
	DurationMS          int64    `csv:"duration_ms"`
}

// rulesRow is one value set of a rule-based extraction.
type rulesRow struct {
	StudyID string `csv:"study_id"`
	Set     string `csv:"values"`
	rules.Values
}

// Write appends the CSV record(s) for one result.
func (w *CSVWriter) Write(res extract.Result) error {
	switch {
	case res.Data != nil:
		return w.enc.Encode(llmRowFrom(res))
	case res.Rules != nil:
		for _, row := range rulesRowsFrom(res) {
			if err := w.enc.Encode(row); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("result for study %s carries no extracted data", res.StudyID)
	}
}

// WriteAll appends records for multiple results.
func (w *CSVWriter) WriteAll(res []extract.Result) error {
	for _, item := range res {
		if err := w.Write(item); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes buffered records to the underlying writer.
func (w *CSVWriter) Flush() error {
	w.cw.Flush()
	return w.cw.Error()
}

// Close flushes the writer.
func (w *CSVWriter) Close() error {
	return w.Flush()
}

func llmRowFrom(res extract.Result) llmRow {
	ci := res.Data.ClinicalInformation
	in := res.Data.Indication
	f := res.Data.Findings

	return llmRow{
		StudyID:     res.StudyID,
		Model:       res.Model,
		ExtractedAt: res.ExtractedAt.Format(time.RFC3339),

		Keywords:           strings.Join(ci.Keywords, ";"),
		Morbidity:          ci.Morbidity,
		SymptomDuration:    ci.SymptomDuration,
		DeepVeinThrombosis: ci.DeepVeinThrombosis,
		Dyspnea:            ci.Dyspnea,
		Tachycardia:        ci.Tachycardia,
		PO2Reduction:       ci.PO2Reduction,
		PO2Percentage:      ci.PO2Percentage,
		TroponinElevated:   ci.TroponinElevated,
		TroponinValue:      ci.TroponinValue,
		NTProBNPElevated:   ci.NTProBNPElevated,
		NTProBNPValue:      ci.NTProBNPValue,
		DDimersElevated:    ci.DDimersElevated,
		DDimersValue:       ci.DDimersValue,

		InflammationQuestion:  in.InflammationQuestion,
		LungQuestion:          in.LungQuestion,
		AortaQuestion:         in.AortaQuestion,
		CardiacQuestion:       in.CardiacQuestion,
		TripleRuleOutQuestion: in.TripleRuleOutQuestion,

		ECGSync:             f.ECGSync,
		DensityTrPulmonalis: f.DensityTrPulmonalis,
		ArtefactScore:       f.ArtefactScore,
		PreviousExamination: f.PreviousExamination,
		LaePresence:         string(f.LaePresence),
		LaeMainBranchRight:  string(f.LaeMainBranchRight),
		LaeUpperLobeRight:   string(f.LaeUpperLobeRight),
		LaeLowerLobeRight:   string(f.LaeLowerLobeRight),
		LaeMiddleLobeRight:  string(f.LaeMiddleLobeRight),
		LaeMainBranchLeft:   string(f.LaeMainBranchLeft),
		LaeUpperLobeLeft:    string(f.LaeUpperLobeLeft),
		LaeLowerLobeLeft:    string(f.LaeLowerLobeLeft),
		ClotBurdenScore:     f.ClotBurdenScore,
		PerfusionDeficit:    string(f.PerfusionDeficit),
		RVLVQuotient:        string(f.RVLVQuotient),
		Inflammation:        f.Inflammation,
		Congestion:          f.Congestion,
		SuspectFinding:      f.SuspectFinding,
		HeartPathology:      f.HeartPathology,
		VascularPathology:   f.VascularPathology,
		BonePathology:       f.BonePathology,

		ClotBurdenScoreCalc: res.ClotBurdenScoreCalc,
		PromptTokens:        res.PromptTokens,
		CompletionTokens:    res.CompletionTokens,
		DurationMS:          res.Duration.Milliseconds(),
	}
}

func rulesRowsFrom(res extract.Result) []rulesRow {
	return []rulesRow{
		{StudyID: res.StudyID, Set: "input", Values: res.Rules.Input},
		{StudyID: res.StudyID, Set: "evaluated", Values: res.Rules.Evaluated},
	}
}
