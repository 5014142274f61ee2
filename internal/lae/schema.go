package lae

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// JSONSchema returns the JSON Schema used to constrain structured output
// from the chat-completion providers. Optional numeric fields are nullable
// so the model can answer null instead of inventing a value.
func JSONSchema() map[string]any {
	clinical := objectSchema(map[string]any{
		"keywords": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"morbidity":            map[string]any{"type": "integer"},
		"symptom_duration":     nullable("integer"),
		"deep_vein_thrombosis": map[string]any{"type": "boolean"},
		"dyspnea":              map[string]any{"type": "boolean"},
		"tachycardia":          map[string]any{"type": "boolean"},
		"pO2_reduction":        map[string]any{"type": "boolean"},
		"pO2_percentage":       nullable("integer"),
		"troponin_elevated":    map[string]any{"type": "boolean"},
		"troponin_value":       nullable("number"),
		"nt_pro_bnp_elevated":  map[string]any{"type": "boolean"},
		"nt_pro_bnp_value":     nullable("number"),
		"d_dimers_elevated":    map[string]any{"type": "boolean"},
		"d_dimers_value":       nullable("number"),
	})

	indication := objectSchema(map[string]any{
		"inflammation_question":    map[string]any{"type": "boolean"},
		"lung_question":            map[string]any{"type": "boolean"},
		"aorta_question":           map[string]any{"type": "boolean"},
		"cardiac_question":         map[string]any{"type": "boolean"},
		"triple_rule_out_question": map[string]any{"type": "boolean"},
	})

	findings := objectSchema(map[string]any{
		"ecg_sync":              map[string]any{"type": "boolean"},
		"density_tr_pulmonalis": nullable("integer"),
		"artefact_score":        nullable("integer"),
		"previous_examination":  map[string]any{"type": "boolean"},
		"lae_presence": enumSchema(
			string(LaePresenceNotAssessable), string(LaePresenceSuspected),
			string(LaePresenceNo), string(LaePresenceYes)),
		"lae_main_branch_right": mainBranchSchema(),
		"lae_upper_lobe_right":  lobeSchema(),
		"lae_lower_lobe_right":  lobeSchema(),
		"lae_middle_lobe_right": lobeSchema(),
		"lae_main_branch_left":  mainBranchSchema(),
		"lae_upper_lobe_left":   lobeSchema(),
		"lae_lower_lobe_left":   lobeSchema(),
		"clot_burden_score":     nullable("number"),
		"perfusion_deficit": enumSchema(
			string(PerfusionNA), string(PerfusionNone),
			string(PerfusionLt25), string(PerfusionGe25)),
		"rv_lv_quotient": enumSchema(
			string(QuotientNA), string(QuotientLt1), string(QuotientGe1)),
		"inflammation":       map[string]any{"type": "boolean"},
		"congestion":         map[string]any{"type": "boolean"},
		"suspect_finding":    map[string]any{"type": "boolean"},
		"heart_pathology":    map[string]any{"type": "boolean"},
		"vascular_pathology": map[string]any{"type": "boolean"},
		"bone_pathology":     map[string]any{"type": "boolean"},
	})

	return objectSchema(map[string]any{
		"clinical_information": clinical,
		"indication":           indication,
		"findings":             findings,
	})
}

func objectSchema(properties map[string]any) map[string]any {
	required := make([]string, 0, len(properties))
	for name := range properties {
		required = append(required, name)
	}
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}

func nullable(typ string) map[string]any {
	return map[string]any{"type": []string{typ, "null"}}
}

func enumSchema(values ...string) map[string]any {
	return map[string]any{"type": "string", "enum": values}
}

func mainBranchSchema() map[string]any {
	return enumSchema(
		string(MainBranchNone), string(MainBranchTotal), string(MainBranchPartial))
}

func lobeSchema() map[string]any {
	return enumSchema(
		string(LobeNone), string(LobeTotal), string(LobePartial),
		string(LobeSegmental), string(LobeSubsegmental))
}

// Validate checks an extraction result against the schema's value ranges and
// closed enum sets. Providers occasionally return values outside the schema
// even with structured output enabled, so this is checked after decoding.
func Validate(d *ExtractedData) error {
	if err := validate.Struct(d); err != nil {
		return err
	}

	f := d.Findings
	checks := []struct {
		field string
		ok    bool
	}{
		{"lae_presence", validLaePresence(f.LaePresence)},
		{"lae_main_branch_right", validMainBranch(f.LaeMainBranchRight)},
		{"lae_main_branch_left", validMainBranch(f.LaeMainBranchLeft)},
		{"lae_upper_lobe_right", validLobe(f.LaeUpperLobeRight)},
		{"lae_lower_lobe_right", validLobe(f.LaeLowerLobeRight)},
		{"lae_middle_lobe_right", validLobe(f.LaeMiddleLobeRight)},
		{"lae_upper_lobe_left", validLobe(f.LaeUpperLobeLeft)},
		{"lae_lower_lobe_left", validLobe(f.LaeLowerLobeLeft)},
		{"perfusion_deficit", validPerfusion(f.PerfusionDeficit)},
		{"rv_lv_quotient", validQuotient(f.RVLVQuotient)},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("field %q has a value outside its allowed set", c.field)
		}
	}

	return nil
}

func validLaePresence(v LaePresence) bool {
	switch v {
	case LaePresenceNotAssessable, LaePresenceSuspected, LaePresenceNo, LaePresenceYes:
		return true
	}
	return false
}

func validMainBranch(v MainBranchOcclusion) bool {
	switch v {
	case MainBranchNone, MainBranchTotal, MainBranchPartial:
		return true
	}
	return false
}

func validLobe(v LobeOcclusion) bool {
	switch v {
	case LobeNone, LobeTotal, LobePartial, LobeSegmental, LobeSubsegmental:
		return true
	}
	return false
}

func validPerfusion(v PerfusionDeficit) bool {
	switch v {
	case PerfusionNA, PerfusionNone, PerfusionLt25, PerfusionGe25:
		return true
	}
	return false
}

func validQuotient(v RightHeartQuotient) bool {
	switch v {
	case QuotientNA, QuotientLt1, QuotientGe1:
		return true
	}
	return false
}
