// Package lae defines the extraction schema for pulmonary embolism (LAE)
// study reports: the structured fields mined from each report, the closed
// value sets for categorical findings, and the derived clot burden score.
package lae

// LaePresence answers whether a pulmonary embolism was found.
type LaePresence string

const (
	LaePresenceNotAssessable LaePresence = "Nicht beurteilbar"
	LaePresenceSuspected     LaePresence = "Verdacht auf LAE"
	LaePresenceNo            LaePresence = "Nein"
	LaePresenceYes           LaePresence = "Ja"
)

// MainBranchOcclusion describes occlusion of a pulmonary main branch.
type MainBranchOcclusion string

const (
	MainBranchNone    MainBranchOcclusion = "Keine Okklusion"
	MainBranchTotal   MainBranchOcclusion = "Totale Okklusion"
	MainBranchPartial MainBranchOcclusion = "Partielle Okklusion"
)

// LobeOcclusion describes occlusion of a lobe artery.
type LobeOcclusion string

const (
	LobeNone         LobeOcclusion = "Keine Okklusion"
	LobeTotal        LobeOcclusion = "Totale Okklusion"
	LobePartial      LobeOcclusion = "Partielle Okklusion"
	LobeSegmental    LobeOcclusion = "Segmentale Okklusion"
	LobeSubsegmental LobeOcclusion = "Subsegmentale Okklusion"
)

// PerfusionDeficit describes dual-energy CT perfusion deficits.
type PerfusionDeficit string

const (
	PerfusionNA   PerfusionDeficit = "NA"
	PerfusionNone PerfusionDeficit = "Keine"
	PerfusionLt25 PerfusionDeficit = "< 25%"
	PerfusionGe25 PerfusionDeficit = "≥ 25%"
)

// RightHeartQuotient describes the RV/LV quotient finding.
type RightHeartQuotient string

const (
	QuotientNA  RightHeartQuotient = "NA"
	QuotientLt1 RightHeartQuotient = "< 1"
	QuotientGe1 RightHeartQuotient = "≥ 1"
)

// ClinicalInformation holds fields extracted from the clinical details
// section. Optional numeric fields are pointers; nil means the report did
// not state a value.
type ClinicalInformation struct {
	Keywords           []string `json:"keywords" validate:"max=3"`
	Morbidity          int      `json:"morbidity" validate:"min=1,max=5"`
	SymptomDuration    *int     `json:"symptom_duration"`
	DeepVeinThrombosis bool     `json:"deep_vein_thrombosis"`
	Dyspnea            bool     `json:"dyspnea"`
	Tachycardia        bool     `json:"tachycardia"`
	PO2Reduction       bool     `json:"pO2_reduction"`
	PO2Percentage      *int     `json:"pO2_percentage"`
	TroponinElevated   bool     `json:"troponin_elevated"`
	TroponinValue      *float64 `json:"troponin_value"`
	NTProBNPElevated   bool     `json:"nt_pro_bnp_elevated"`
	NTProBNPValue      *float64 `json:"nt_pro_bnp_value"`
	DDimersElevated    bool     `json:"d_dimers_elevated"`
	DDimersValue       *float64 `json:"d_dimers_value"`
}

// Indication holds fields extracted from the referral question.
type Indication struct {
	InflammationQuestion  bool `json:"inflammation_question"`
	LungQuestion          bool `json:"lung_question"`
	AortaQuestion         bool `json:"aorta_question"`
	CardiacQuestion       bool `json:"cardiac_question"`
	TripleRuleOutQuestion bool `json:"triple_rule_out_question"`
}

// Findings holds fields extracted from the findings section.
type Findings struct {
	ECGSync             bool                `json:"ecg_sync"`
	DensityTrPulmonalis *int                `json:"density_tr_pulmonalis"`
	ArtefactScore       *int                `json:"artefact_score" validate:"omitempty,min=0,max=5"`
	PreviousExamination bool                `json:"previous_examination"`
	LaePresence         LaePresence         `json:"lae_presence" validate:"required"`
	LaeMainBranchRight  MainBranchOcclusion `json:"lae_main_branch_right" validate:"required"`
	LaeUpperLobeRight   LobeOcclusion       `json:"lae_upper_lobe_right" validate:"required"`
	LaeLowerLobeRight   LobeOcclusion       `json:"lae_lower_lobe_right" validate:"required"`
	LaeMiddleLobeRight  LobeOcclusion       `json:"lae_middle_lobe_right" validate:"required"`
	LaeMainBranchLeft   MainBranchOcclusion `json:"lae_main_branch_left" validate:"required"`
	LaeUpperLobeLeft    LobeOcclusion       `json:"lae_upper_lobe_left" validate:"required"`
	LaeLowerLobeLeft    LobeOcclusion       `json:"lae_lower_lobe_left" validate:"required"`
	ClotBurdenScore     *float64            `json:"clot_burden_score" validate:"omitempty,min=0,max=40"`
	PerfusionDeficit    PerfusionDeficit    `json:"perfusion_deficit" validate:"required"`
	RVLVQuotient        RightHeartQuotient  `json:"rv_lv_quotient" validate:"required"`
	Inflammation        bool                `json:"inflammation"`
	Congestion          bool                `json:"congestion"`
	SuspectFinding      bool                `json:"suspect_finding"`
	HeartPathology      bool                `json:"heart_pathology"`
	VascularPathology   bool                `json:"vascular_pathology"`
	BonePathology       bool                `json:"bone_pathology"`
}

// ExtractedData is the complete structured result for one study report.
type ExtractedData struct {
	ClinicalInformation ClinicalInformation `json:"clinical_information"`
	Indication          Indication          `json:"indication"`
	Findings            Findings            `json:"findings"`
}
