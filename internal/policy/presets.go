package policy

import (
	"embed"

	"github.com/UtpalJayNadiger/tf-dialect/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed presets/*.yaml
var presetFS embed.FS

// DefaultPreset is the preset used when no policy file is found.
const DefaultPreset = "default"

// presetCache holds loaded presets to avoid re-parsing
var presetCache = map[string]*models.PolicyDocument{}

// presetFiles maps preset names to embedded file paths
var presetFiles = map[string]string{
	"default": "presets/default.yaml",
}

// GetPreset returns a policy preset by name, or nil if not found
func GetPreset(name string) *models.PolicyDocument {
	if cached, ok := presetCache[name]; ok {
		return cached
	}

	path, ok := presetFiles[name]
	if !ok {
		return nil
	}

	data, err := presetFS.ReadFile(path)
	if err != nil {
		return nil
	}

	var doc models.PolicyDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil
	}

	presetCache[name] = &doc
	return &doc
}

// ListPresetNames returns the names of all available presets
func ListPresetNames() []string {
	names := make([]string, 0, len(presetFiles))
	for name := range presetFiles {
		names = append(names, name)
	}
	return names
}
