package tools

import (
	"context"
	"fmt"

	"github.com/watman/watman/internal/schema"
)

// CreateTemplate submits one template to Meta for review.
type CreateTemplate struct {
	api MetaAPI
}

func NewCreateTemplate(api MetaAPI) *CreateTemplate {
	return &CreateTemplate{api: api}
}

func (t *CreateTemplate) Name() string   { return "create_whatsapp_template" }
func (t *CreateTemplate) ReadOnly() bool { return false }
func (t *CreateTemplate) Description() string {
	return "Create ONE WhatsApp message template on Meta. Requires WABA ID and template definition. " +
		"Call get_template_format first to understand the correct structure."
}

func (t *CreateTemplate) Parameters() *ParamSchema {
	return &ParamSchema{
		Type: "object",
		Properties: map[string]*ParamSchema{
			"waba_id": wabaIDParam(),
			"template": {
				Type: "object",
				Properties: map[string]*ParamSchema{
					"name":     {Type: "string", Description: "Template name (lowercase_with_underscores)"},
					"category": {Type: "string", Enum: schema.Categories, Description: "Template category"},
					"language": {Type: "string", Description: "Language code (default: en)"},
					"components": {
						Type:        "array",
						Description: "Template components (BODY required)",
						Items: &ParamSchema{
							Type: "object",
							Properties: map[string]*ParamSchema{
								"type":   {Type: "string", Enum: schema.ComponentTypes},
								"text":   {Type: "string"},
								"format": {Type: "string", Enum: schema.HeaderFormats, Description: "Only for HEADER component"},
								"buttons": {
									Type: "array",
									Items: &ParamSchema{
										Type: "object",
										Properties: map[string]*ParamSchema{
											"type":         {Type: "string", Enum: schema.ButtonTypes},
											"text":         {Type: "string"},
											"url":          {Type: "string"},
											"phone_number": {Type: "string"},
										},
										Required: []string{"type", "text"},
									},
								},
								"example": {Type: "object", Description: "Example values for {{n}} variables, required for approval"},
							},
							Required: []string{"type"},
						},
					},
				},
				Required: []string{"name", "category", "components"},
			},
		},
		Required: []string{"waba_id", "template"},
	}
}

func (t *CreateTemplate) Execute(ctx context.Context, args map[string]any) (map[string]any, error) {
	in, violations := schema.ParseCreateInput(args)
	if violations != nil {
		return validationFailure(violations), nil
	}

	result, err := t.api.CreateTemplate(ctx, in.WABAID, &in.Template)
	if err != nil {
		if fatal(err) {
			return nil, err
		}
		return remoteFailure(err), nil
	}

	return map[string]any{
		"success":     true,
		"template_id": result.ID,
		"status":      result.Status,
		"message":     fmt.Sprintf("Template %q created successfully", in.Template.Name),
	}, nil
}

var _ Tool = (*CreateTemplate)(nil)
