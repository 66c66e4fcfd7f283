package tools

import (
	"context"
	"fmt"

	"github.com/watman/watman/internal/schema"
)

// GetTemplateStatus reports the review status of one template, including the
// rejection reason and a suggested fix when Meta rejected it.
type GetTemplateStatus struct {
	api MetaAPI
}

func NewGetTemplateStatus(api MetaAPI) *GetTemplateStatus {
	return &GetTemplateStatus{api: api}
}

func (t *GetTemplateStatus) Name() string   { return "get_template_status" }
func (t *GetTemplateStatus) ReadOnly() bool { return true }
func (t *GetTemplateStatus) Description() string {
	return "Get detailed status of a specific template, including rejection reason and suggested fix."
}

func (t *GetTemplateStatus) Parameters() *ParamSchema {
	return &ParamSchema{
		Type: "object",
		Properties: map[string]*ParamSchema{
			"waba_id":       wabaIDParam(),
			"template_name": {Type: "string", Description: "Name of the template"},
		},
		Required: []string{"waba_id", "template_name"},
	}
}

func (t *GetTemplateStatus) Execute(ctx context.Context, args map[string]any) (map[string]any, error) {
	in, violations := schema.ParseStatusInput(args)
	if violations != nil {
		return validationFailure(violations), nil
	}

	tmpl, err := t.api.GetTemplateByName(ctx, in.WABAID, in.TemplateName)
	if err != nil {
		if fatal(err) {
			return nil, err
		}
		return remoteFailure(err), nil
	}
	if tmpl == nil {
		return map[string]any{
			"success": false,
			"error":   ErrNotFound,
			"details": []string{fmt.Sprintf("Template %q not found on WABA %s", in.TemplateName, in.WABAID)},
		}, nil
	}

	info := map[string]any{
		"name":     tmpl.Name,
		"status":   tmpl.Status,
		"category": tmpl.Category,
		"language": tmpl.Language,
		"id":       tmpl.ID,
	}
	if tmpl.RejectedReason != "" {
		info["rejection_reason"] = tmpl.RejectedReason
		info["suggested_fix"] = SuggestedFix(tmpl.RejectedReason)
	}
	return map[string]any{
		"success":  true,
		"template": info,
	}, nil
}

var _ Tool = (*GetTemplateStatus)(nil)
