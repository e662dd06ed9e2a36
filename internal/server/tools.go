package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/UtpalJayNadiger/tf-dialect/internal/examples"
	"github.com/UtpalJayNadiger/tf-dialect/internal/generator"
	"github.com/UtpalJayNadiger/tf-dialect/internal/models"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Tool names exposed over tools/list.
const (
	ToolGetPolicy        = "get_policy"
	ToolListExamples     = "list_examples"
	ToolValidateSnippet  = "validate_snippet"
	ToolGenerateResource = "generate_resource"
)

func toolDescriptors() []models.ToolDescriptor {
	return []models.ToolDescriptor{
		{
			Name:        ToolGetPolicy,
			Description: "Return the loaded style policy document.",
			InputSchema: models.InputSchema{Type: "object"},
		},
		{
			Name:        ToolListExamples,
			Description: "List the policy's example snippets, optionally filtered by resource kind or search term.",
			InputSchema: models.InputSchema{
				Type: "object",
				Properties: map[string]models.Property{
					"resource_kind": {Type: "string", Description: "Only examples whose name mentions this kind"},
					"search":        {Type: "string", Description: "Only examples whose name or text contains this term"},
				},
			},
		},
		{
			Name:        ToolValidateSnippet,
			Description: "Validate a Terraform-style snippet against the style policy.",
			InputSchema: models.InputSchema{
				Type: "object",
				Properties: map[string]models.Property{
					"text":      {Type: "string", Description: "Snippet to validate"},
					"file_path": {Type: "string", Description: "Caller context only; does not affect results"},
				},
				Required: []string{"text"},
			},
		},
		{
			Name:        ToolGenerateResource,
			Description: "Generate a policy-conformant snippet for a resource kind.",
			InputSchema: models.InputSchema{
				Type: "object",
				Properties: map[string]models.Property{
					"resource_kind": {Type: "string", Description: "Resource kind, e.g. aws_s3_bucket"},
					"environment":   {Type: "string", Description: "Deployment environment, e.g. prod"},
					"service_name":  {Type: "string", Description: "Owning service"},
					"purpose":       {Type: "string", Description: "Optional extra name segment"},
					"extra_tags":    {Type: "object", Description: "Additional tags; override policy defaults on collision"},
				},
				Required: []string{"resource_kind", "environment", "service_name"},
			},
		},
	}
}

type validateArgs struct {
	Text     string `json:"text"`
	FilePath string `json:"file_path,omitempty"`
}

type listExamplesArgs struct {
	ResourceKind string `json:"resource_kind,omitempty"`
	Search       string `json:"search,omitempty"`
}

// dispatch routes a tool call to the core. Argument errors are request-level:
// they surface to the caller and never tear the server down.
func (s *Server) dispatch(ctx context.Context, tool string, args json.RawMessage, span trace.Span) (interface{}, error) {
	switch tool {
	case ToolGetPolicy:
		return s.policy, nil

	case ToolListExamples:
		var a listExamplesArgs
		if err := unmarshalArgs(args, &a); err != nil {
			return nil, err
		}
		return examples.Filter(s.policy.Examples, a.ResourceKind, a.Search), nil

	case ToolValidateSnippet:
		var a validateArgs
		if err := unmarshalArgs(args, &a); err != nil {
			return nil, err
		}
		if a.Text == "" {
			return nil, fmt.Errorf("validate_snippet: text is required")
		}
		result := s.engine.Validate(a.Text, s.policy)
		span.SetAttributes(
			attribute.Bool("tfdialect.valid", result.Valid),
			attribute.Int("tfdialect.violations", len(result.Violations)),
		)
		return result, nil

	case ToolGenerateResource:
		var req models.GenerateRequest
		if err := unmarshalArgs(args, &req); err != nil {
			return nil, err
		}
		if err := req.Validate(); err != nil {
			return nil, err
		}
		span.SetAttributes(attribute.String("tfdialect.resource_kind", req.ResourceKind))
		return map[string]string{"text": generator.Generate(req, s.policy)}, nil

	default:
		return nil, fmt.Errorf("unknown tool: %s", tool)
	}
}

func unmarshalArgs(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}
