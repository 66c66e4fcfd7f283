package tools

import (
	"context"

	"github.com/watman/watman/internal/schema"
)

// ListConnectedWABAs lists the WhatsApp Business Accounts the configured
// access token can manage, along with the system user it belongs to.
type ListConnectedWABAs struct {
	api MetaAPI
}

func NewListConnectedWABAs(api MetaAPI) *ListConnectedWABAs {
	return &ListConnectedWABAs{api: api}
}

func (t *ListConnectedWABAs) Name() string   { return "list_connected_wabas" }
func (t *ListConnectedWABAs) ReadOnly() bool { return true }
func (t *ListConnectedWABAs) Description() string {
	return "List the WhatsApp Business Accounts (WABAs) assigned to the configured access token. " +
		"Use this to discover WABA IDs for the other tools."
}

func (t *ListConnectedWABAs) Parameters() *ParamSchema {
	return &ParamSchema{
		Type: "object",
		Properties: map[string]*ParamSchema{
			"limit": {Type: "integer", Description: "Maximum number of accounts to return", Default: 25},
		},
	}
}

func (t *ListConnectedWABAs) Execute(ctx context.Context, args map[string]any) (map[string]any, error) {
	in, violations := schema.ParseListWABAsInput(args)
	if violations != nil {
		return validationFailure(violations), nil
	}

	me, err := t.api.GetMe(ctx)
	if err != nil {
		if fatal(err) {
			return nil, err
		}
		return remoteFailure(err), nil
	}

	wabas, err := t.api.GetAssignedWABAs(ctx, me.ID)
	if err != nil {
		if fatal(err) {
			return nil, err
		}
		return remoteFailure(err), nil
	}
	if len(wabas) > *in.Limit {
		wabas = wabas[:*in.Limit]
	}

	items := make([]map[string]any, len(wabas))
	for i, w := range wabas {
		items[i] = map[string]any{
			"id":        w.ID,
			"name":      w.Name,
			"currency":  w.Currency,
			"timezone":  w.TimezoneID,
			"namespace": w.MessageTemplateNamespace,
		}
	}
	return map[string]any{
		"success": true,
		"user":    map[string]any{"id": me.ID, "name": me.Name},
		"wabas":   items,
		"count":   len(items),
	}, nil
}

var _ Tool = (*ListConnectedWABAs)(nil)
