package models

import "fmt"

// GenerateRequest describes the resource a caller wants synthesized.
// ResourceKind is open: kinds without a dedicated template fall back to a
// generic stub.
type GenerateRequest struct {
	ResourceKind string `json:"resource_kind"`
	Environment  string `json:"environment"`
	ServiceName  string `json:"service_name"`
	Purpose      string `json:"purpose,omitempty"`
	ExtraTags    TagMap `json:"extra_tags,omitempty"`
}

// Validate reports the first missing required field.
func (r GenerateRequest) Validate() error {
	switch {
	case r.ResourceKind == "":
		return fmt.Errorf("generate: resource_kind is required")
	case r.Environment == "":
		return fmt.Errorf("generate: environment is required")
	case r.ServiceName == "":
		return fmt.Errorf("generate: service_name is required")
	}
	return nil
}

// Example is one named policy example snippet.
type Example struct {
	Name string `json:"name"`
	Text string `json:"text"`
}
