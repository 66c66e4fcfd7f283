package tools

import (
	"context"
	"fmt"

	"github.com/watman/watman/internal/schema"
)

// DeleteTemplate removes one template from a WABA by name.
type DeleteTemplate struct {
	api MetaAPI
}

func NewDeleteTemplate(api MetaAPI) *DeleteTemplate {
	return &DeleteTemplate{api: api}
}

func (t *DeleteTemplate) Name() string   { return "delete_whatsapp_template" }
func (t *DeleteTemplate) ReadOnly() bool { return false }
func (t *DeleteTemplate) Description() string {
	return "Delete ONE WhatsApp template from Meta."
}

func (t *DeleteTemplate) Parameters() *ParamSchema {
	return &ParamSchema{
		Type: "object",
		Properties: map[string]*ParamSchema{
			"waba_id":       wabaIDParam(),
			"template_name": {Type: "string", Description: "Name of the template to delete"},
		},
		Required: []string{"waba_id", "template_name"},
	}
}

func (t *DeleteTemplate) Execute(ctx context.Context, args map[string]any) (map[string]any, error) {
	in, violations := schema.ParseDeleteInput(args)
	if violations != nil {
		return validationFailure(violations), nil
	}

	if err := t.api.DeleteTemplate(ctx, in.WABAID, in.TemplateName); err != nil {
		if fatal(err) {
			return nil, err
		}
		return remoteFailure(err), nil
	}

	return map[string]any{
		"success": true,
		"message": fmt.Sprintf("Template %q deleted successfully", in.TemplateName),
	}, nil
}

var _ Tool = (*DeleteTemplate)(nil)
