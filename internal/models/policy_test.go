package models

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestTagMap_YAMLOrderPreserved(t *testing.T) {
	input := `
Zebra: one
Alpha: two
Middle: three
`
	var tags TagMap
	if err := yaml.Unmarshal([]byte(input), &tags); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	want := []string{"Zebra", "Alpha", "Middle"}
	got := tags.Keys()
	if len(got) != len(want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q (document order)", i, got[i], want[i])
		}
	}
	if v, ok := tags.Get("Alpha"); !ok || v != "two" {
		t.Errorf("Alpha = %q, %v", v, ok)
	}
}

func TestTagMap_JSONRoundTrip(t *testing.T) {
	var tags TagMap
	if err := json.Unmarshal([]byte(`{"b":"2","a":"1","c":"3"}`), &tags); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	want := []string{"b", "a", "c"}
	for i, k := range tags.Keys() {
		if k != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, k, want[i])
		}
	}

	out, err := json.Marshal(tags)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `{"b":"2","a":"1","c":"3"}` {
		t.Errorf("marshal = %s, want insertion order preserved", out)
	}
}

func TestTagMap_SetOverwriteKeepsPosition(t *testing.T) {
	var tags TagMap
	tags.Set("a", "1")
	tags.Set("b", "2")
	tags.Set("a", "overwritten")

	if tags.Len() != 2 {
		t.Fatalf("Len = %d, want 2", tags.Len())
	}
	if tags.Keys()[0] != "a" {
		t.Errorf("overwriting must not move the key")
	}
	if v, _ := tags.Get("a"); v != "overwritten" {
		t.Errorf("a = %q", v)
	}
}

func TestSecurityDefaultHelpers(t *testing.T) {
	defaults := map[string]any{
		"flag":     true,
		"off":      false,
		"scheme":   "aws:kms",
		"days":     7,
		"ratio":    2.0,
		"not_bool": "yes",
	}

	if !BoolDefault(defaults, "flag") || BoolDefault(defaults, "off") {
		t.Error("BoolDefault misread declared booleans")
	}
	if BoolDefault(defaults, "missing") || BoolDefault(defaults, "not_bool") {
		t.Error("BoolDefault must be false for absent or non-bool values")
	}
	if StringDefault(defaults, "scheme") != "aws:kms" || StringDefault(defaults, "missing") != "" {
		t.Error("StringDefault misread values")
	}
	if IntDefault(defaults, "days", 0) != 7 {
		t.Error("IntDefault misread int")
	}
	if IntDefault(defaults, "ratio", 0) != 2 {
		t.Error("IntDefault misread float")
	}
	if IntDefault(defaults, "missing", 42) != 42 {
		t.Error("IntDefault must fall back for absent values")
	}
}

func TestNewValidationResult(t *testing.T) {
	if r := NewValidationResult(nil); !r.Valid || r.Violations == nil {
		t.Error("nil violations must become a valid result with an empty list")
	}

	warnOnly := []Violation{{RuleID: RuleS3SecurityDefault, Severity: SeverityWarn}}
	if r := NewValidationResult(warnOnly); !r.Valid {
		t.Error("warn-only results are valid")
	}

	withError := []Violation{
		{RuleID: RuleNamingConvention, Severity: SeverityInfo},
		{RuleID: RuleForbiddenPattern, Severity: SeverityError},
	}
	if r := NewValidationResult(withError); r.Valid {
		t.Error("any error severity makes the result invalid")
	}
}

func TestGenerateRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     GenerateRequest
		wantErr bool
	}{
		{"complete", GenerateRequest{ResourceKind: "s3", Environment: "prod", ServiceName: "svc"}, false},
		{"missing kind", GenerateRequest{Environment: "prod", ServiceName: "svc"}, true},
		{"missing environment", GenerateRequest{ResourceKind: "s3", ServiceName: "svc"}, true},
		{"missing service", GenerateRequest{ResourceKind: "s3", Environment: "prod"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.req.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
