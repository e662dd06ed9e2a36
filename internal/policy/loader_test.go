package policy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

const minimalPolicy = `
naming_format: "<env>-<component>"
required_tags:
  - Owner
`

func TestResolve_EnvOverrideWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".tfdialect.yaml", minimalPolicy)
	t.Setenv(EnvOverride, "/somewhere/else.yaml")

	path, ok := Resolve(dir)
	if !ok || path != "/somewhere/else.yaml" {
		t.Fatalf("Resolve = %q, %v; env override must win", path, ok)
	}
}

func TestResolve_ConventionalFilenameOrder(t *testing.T) {
	t.Setenv(EnvOverride, "")
	dir := t.TempDir()
	writeFile(t, dir, "policy.yaml", minimalPolicy)
	writeFile(t, dir, ".tfdialect.yaml", minimalPolicy)

	path, ok := Resolve(dir)
	if !ok {
		t.Fatal("expected a policy file to be found")
	}
	if filepath.Base(path) != ".tfdialect.yaml" {
		t.Errorf("Resolve = %q, want .tfdialect.yaml to win over policy.yaml", path)
	}
}

func TestResolve_NothingFound(t *testing.T) {
	t.Setenv(EnvOverride, "")
	if path, ok := Resolve(t.TempDir()); ok {
		t.Fatalf("Resolve = %q, want not found in empty dir", path)
	}
}

func TestLoad_ParsesDocument(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "p.yaml", `
naming_format: "<project>-<env>-<component>"
required_tags:
  - Environment
  - Owner
default_tags:
  ManagedBy: terraform
  Team: platform
forbidden_patterns:
  - description: "Hardcoded key"
    pattern: "AKIA[0-9A-Z]{16}"
security_defaults:
  aws_s3_bucket:
    versioning: true
    encryption: "aws:kms"
examples:
  s3_bucket: |
    resource "aws_s3_bucket" "b" {}
`)

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if doc.NamingFormat != "<project>-<env>-<component>" {
		t.Errorf("NamingFormat = %q", doc.NamingFormat)
	}
	if len(doc.RequiredTags) != 2 {
		t.Errorf("RequiredTags = %v", doc.RequiredTags)
	}
	if keys := doc.DefaultTags.Keys(); len(keys) != 2 || keys[0] != "ManagedBy" {
		t.Errorf("DefaultTags keys = %v, want document order", keys)
	}
	if len(doc.ForbiddenPatterns) != 1 || doc.ForbiddenPatterns[0].Description != "Hardcoded key" {
		t.Errorf("ForbiddenPatterns = %+v", doc.ForbiddenPatterns)
	}
	if doc.SecurityDefaultsFor("aws_s3_bucket") == nil {
		t.Error("missing aws_s3_bucket security defaults")
	}
	if _, ok := doc.Examples["s3_bucket"]; !ok {
		t.Error("missing s3_bucket example")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "::: not yaml {{{"},
		{"not a mapping", "- just\n- a\n- list"},
		{"pattern without description", "forbidden_patterns:\n  - pattern: \"x\""},
		{"custom rule without expr", "custom_rules:\n  - name: r\n    message: m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Errorf("Parse(%q) should fail", tt.data)
			}
		})
	}
}

func TestLoadOrDefault_FallsBackToPreset(t *testing.T) {
	t.Setenv(EnvOverride, "")
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	doc, path, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty for preset fallback", path)
	}
	if doc.NamingFormat == "" || len(doc.RequiredTags) == 0 {
		t.Error("default preset should carry a naming format and required tags")
	}
}

func TestLoadOrDefault_BrokenFileIsFatal(t *testing.T) {
	t.Setenv(EnvOverride, "")
	dir := t.TempDir()
	writeFile(t, dir, ".tfdialect.yaml", "::: broken {{{")

	if _, _, err := LoadOrDefault(dir); err == nil {
		t.Fatal("a present-but-invalid policy file must be an error, not a fallback")
	}
}

func TestGetPreset(t *testing.T) {
	if GetPreset("default") == nil {
		t.Fatal("default preset must exist")
	}
	if GetPreset("nonexistent") != nil {
		t.Fatal("unknown preset must return nil")
	}
	if names := ListPresetNames(); len(names) == 0 || !strings.Contains(strings.Join(names, ","), "default") {
		t.Errorf("ListPresetNames = %v", names)
	}
}
