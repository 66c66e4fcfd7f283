package tools

import (
	"context"

	"github.com/watman/watman/internal/schema"
)

// ListTemplates lists templates on a WABA, optionally filtered by status.
type ListTemplates struct {
	api MetaAPI
}

func NewListTemplates(api MetaAPI) *ListTemplates {
	return &ListTemplates{api: api}
}

func (t *ListTemplates) Name() string   { return "list_whatsapp_templates" }
func (t *ListTemplates) ReadOnly() bool { return true }
func (t *ListTemplates) Description() string {
	return "List all WhatsApp templates from a WABA account. Queries the Meta API directly."
}

func (t *ListTemplates) Parameters() *ParamSchema {
	return &ParamSchema{
		Type: "object",
		Properties: map[string]*ParamSchema{
			"waba_id": wabaIDParam(),
			"status":  {Type: "string", Enum: schema.TemplateStatuses, Description: "Filter by status"},
		},
		Required: []string{"waba_id"},
	}
}

func (t *ListTemplates) Execute(ctx context.Context, args map[string]any) (map[string]any, error) {
	in, violations := schema.ParseListInput(args)
	if violations != nil {
		return validationFailure(violations), nil
	}

	templates, err := t.api.ListTemplates(ctx, in.WABAID, in.Status)
	if err != nil {
		if fatal(err) {
			return nil, err
		}
		return remoteFailure(err), nil
	}

	items := make([]map[string]any, len(templates))
	for i, tmpl := range templates {
		items[i] = map[string]any{
			"name":     tmpl.Name,
			"status":   tmpl.Status,
			"category": tmpl.Category,
			"language": tmpl.Language,
			"id":       tmpl.ID,
		}
	}
	return map[string]any{
		"success":   true,
		"templates": items,
		"total":     len(items),
	}, nil
}

var _ Tool = (*ListTemplates)(nil)
