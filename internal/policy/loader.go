// Package policy loads the organization policy document and provides the
// built-in preset. The document is parsed once at startup; a missing or
// structurally invalid document is fatal, never worked around.
package policy

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/UtpalJayNadiger/tf-dialect/internal/models"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvOverride names the environment variable that overrides path resolution.
const EnvOverride = "TFDIALECT_POLICY"

// candidateFiles are the conventional policy filenames, probed in order.
var candidateFiles = []string{
	".tfdialect.yaml",
	".tfdialect.yml",
	"tfdialect.yaml",
	"policy.yaml",
}

var validate = validator.New()

// Resolve returns the policy file path: the env override if set, otherwise
// the first conventional filename present in dir. An empty dir means the
// working directory. ok is false when nothing was found.
func Resolve(dir string) (path string, ok bool) {
	if override := os.Getenv(EnvOverride); override != "" {
		return override, true
	}
	if dir == "" {
		dir = "."
	}
	for _, name := range candidateFiles {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// Load reads and parses the policy document at path.
func Load(path string) (*models.PolicyDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("policy: failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a policy document and validates its structure.
func Parse(data []byte) (*models.PolicyDocument, error) {
	var doc models.PolicyDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("policy: invalid document: %w", err)
	}
	if err := validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("policy: invalid document: %w", err)
	}
	return &doc, nil
}

// LoadOrDefault resolves and loads the policy for dir, falling back to the
// embedded default preset when no policy file exists. Loading a file that
// does exist but fails to parse is still an error.
func LoadOrDefault(dir string) (*models.PolicyDocument, string, error) {
	path, ok := Resolve(dir)
	if !ok {
		doc := GetPreset(DefaultPreset)
		if doc == nil {
			return nil, "", fmt.Errorf("policy: no policy file found and no default preset")
		}
		return doc, "", nil
	}
	doc, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return doc, path, nil
}
