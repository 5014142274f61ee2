package lae

import (
	"encoding/json"
	"testing"
)

func validData() *ExtractedData {
	return &ExtractedData{
		ClinicalInformation: ClinicalInformation{
			Keywords:  []string{"LAE", "Dyspnoe"},
			Morbidity: 3,
		},
		Findings: clearFindings(),
	}
}

func TestValidate_OK(t *testing.T) {
	if err := Validate(validData()); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidate_MorbidityOutOfRange(t *testing.T) {
	d := validData()
	d.ClinicalInformation.Morbidity = 6

	if err := Validate(d); err == nil {
		t.Fatal("expected error for morbidity > 5")
	}
}

func TestValidate_ClotBurdenScoreOutOfRange(t *testing.T) {
	d := validData()
	score := 41.0
	d.Findings.ClotBurdenScore = &score

	if err := Validate(d); err == nil {
		t.Fatal("expected error for clot burden score > 40")
	}
}

func TestValidate_UnknownEnumValue(t *testing.T) {
	d := validData()
	d.Findings.LaePresence = LaePresence("Vielleicht")

	if err := Validate(d); err == nil {
		t.Fatal("expected error for value outside the lae_presence set")
	}
}

func TestValidate_TooManyKeywords(t *testing.T) {
	d := validData()
	d.ClinicalInformation.Keywords = []string{"a", "b", "c", "d"}

	if err := Validate(d); err == nil {
		t.Fatal("expected error for more than 3 keywords")
	}
}

func TestJSONSchema_Shape(t *testing.T) {
	s := JSONSchema()

	if s["type"] != "object" {
		t.Errorf("schema type = %v, want object", s["type"])
	}

	props, ok := s["properties"].(map[string]any)
	if !ok {
		t.Fatalf("properties has unexpected type %T", s["properties"])
	}

	for _, section := range []string{"clinical_information", "indication", "findings"} {
		if _, ok := props[section]; !ok {
			t.Errorf("schema missing section %q", section)
		}
	}

	// Must serialize cleanly for the providers.
	if _, err := json.Marshal(s); err != nil {
		t.Fatalf("schema does not marshal: %v", err)
	}
}

func TestJSONSchema_OptionalFieldsNullable(t *testing.T) {
	s := JSONSchema()
	findings := s["properties"].(map[string]any)["findings"].(map[string]any)
	props := findings["properties"].(map[string]any)

	cbs, ok := props["clot_burden_score"].(map[string]any)
	if !ok {
		t.Fatal("findings missing clot_burden_score")
	}

	types, ok := cbs["type"].([]string)
	if !ok || len(types) != 2 || types[1] != "null" {
		t.Errorf("clot_burden_score type = %v, want [number null]", cbs["type"])
	}
}
