package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// PolicyDocument is the organization style/security ruleset. Loaded once at
// startup and never mutated afterwards, so concurrent reads need no locking.
type PolicyDocument struct {
	NamingFormat      string                    `yaml:"naming_format" json:"naming_format,omitempty"`
	RequiredTags      []string                  `yaml:"required_tags" json:"required_tags,omitempty"`
	DefaultTags       TagMap                    `yaml:"default_tags" json:"default_tags,omitempty"`
	ForbiddenPatterns []ForbiddenPattern        `yaml:"forbidden_patterns" json:"forbidden_patterns,omitempty" validate:"dive"`
	SecurityDefaults  map[string]map[string]any `yaml:"security_defaults" json:"security_defaults,omitempty"`
	Examples          map[string]string         `yaml:"examples" json:"examples,omitempty"`
	CustomRules       []CustomRule              `yaml:"custom_rules" json:"custom_rules,omitempty" validate:"dive"`
}

// ForbiddenPattern is a textual pattern whose presence is always an error.
type ForbiddenPattern struct {
	Description string `yaml:"description" json:"description" validate:"required"`
	Pattern     string `yaml:"pattern" json:"pattern" validate:"required"`
}

// CustomRule is a CEL expression evaluated against the snippet. A rule that
// evaluates to false produces one violation with the given message.
type CustomRule struct {
	Name     string   `yaml:"name" json:"name" validate:"required"`
	Expr     string   `yaml:"expr" json:"expr" validate:"required"`
	Message  string   `yaml:"message" json:"message" validate:"required"`
	Severity Severity `yaml:"severity" json:"severity,omitempty" validate:"omitempty,oneof=info warn error"`
}

// SecurityDefaultsFor returns the security defaults for a resource kind, or
// nil when the policy declares none.
func (p *PolicyDocument) SecurityDefaultsFor(kind string) map[string]any {
	if p.SecurityDefaults == nil {
		return nil
	}
	return p.SecurityDefaults[kind]
}

// BoolDefault reads a boolean security default, false when unset or not a bool.
func BoolDefault(defaults map[string]any, key string) bool {
	v, ok := defaults[key].(bool)
	return ok && v
}

// StringDefault reads a string security default, "" when unset or not a string.
func StringDefault(defaults map[string]any, key string) string {
	v, _ := defaults[key].(string)
	return v
}

// IntDefault reads a numeric security default, fallback when unset.
// YAML numbers decode as int, JSON numbers as float64; accept both.
func IntDefault(defaults map[string]any, key string, fallback int) int {
	switch v := defaults[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}

// TagMap is an insertion-ordered string mapping. Both YAML and JSON decoding
// preserve document key order, which the generator relies on for
// deterministic output.
type TagMap struct {
	keys   []string
	values map[string]string
}

// NewTagMap builds a TagMap from ordered key/value pairs.
func NewTagMap(pairs ...[2]string) TagMap {
	var t TagMap
	for _, p := range pairs {
		t.Set(p[0], p[1])
	}
	return t
}

// Set inserts or updates a key, preserving first-insertion order.
func (t *TagMap) Set(key, value string) {
	if t.values == nil {
		t.values = map[string]string{}
	}
	if _, exists := t.values[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}

// Get returns the value for key and whether it is present.
func (t TagMap) Get(key string) (string, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (t TagMap) Keys() []string {
	return t.keys
}

// Len reports the number of entries.
func (t TagMap) Len() int {
	return len(t.keys)
}

// UnmarshalYAML decodes a YAML mapping node keeping document order.
func (t *TagMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("tags: expected a mapping, got %s", node.Tag)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key, value string
		if err := node.Content[i].Decode(&key); err != nil {
			return fmt.Errorf("tags: bad key: %w", err)
		}
		if err := node.Content[i+1].Decode(&value); err != nil {
			return fmt.Errorf("tags: bad value for %q: %w", key, err)
		}
		t.Set(key, value)
	}
	return nil
}

// MarshalYAML renders the entries as a mapping in insertion order.
func (t TagMap) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range t.keys {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Value: t.values[k]},
		)
	}
	return node, nil
}

// UnmarshalJSON decodes a JSON object via the token stream so that key order
// survives (encoding/json maps do not preserve it).
func (t *TagMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != json.Delim('{') {
		return fmt.Errorf("tags: expected object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("tags: non-string key %v", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("tags: bad value for %q: %w", key, err)
		}
		t.Set(key, value)
	}
	_, err = dec.Token() // closing brace
	return err
}

// MarshalJSON renders the entries as an object in insertion order.
func (t TagMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(t.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
