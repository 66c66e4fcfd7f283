package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watman/watman/internal/meta"
)

func TestCreateTemplateSuccess(t *testing.T) {
	stub := &stubMetaAPI{
		createResult: &meta.CreateTemplateResult{ID: "123", Status: "PENDING", Category: "UTILITY"},
	}
	tool := NewCreateTemplate(stub)

	envelope, err := tool.Execute(context.Background(), validCreateArgs())
	require.NoError(t, err)

	assert.Equal(t, true, envelope["success"])
	assert.Equal(t, "123", envelope["template_id"])
	assert.Equal(t, "PENDING", envelope["status"])
	assert.Contains(t, envelope["message"], "order_confirmation")
	assert.Equal(t, 1, stub.calls)
}

func TestCreateTemplateValidationFailureSkipsRemoteCall(t *testing.T) {
	stub := &stubMetaAPI{}
	tool := NewCreateTemplate(stub)

	args := validCreateArgs()
	args["template"].(map[string]any)["name"] = "Order_Confirmation"

	envelope, err := tool.Execute(context.Background(), args)
	require.NoError(t, err)

	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, ErrValidation, envelope["error"])
	details, ok := envelope["details"].([]string)
	require.True(t, ok)
	require.NotEmpty(t, details)
	assert.Contains(t, details[0], "template.name: ")
	assert.Zero(t, stub.calls, "remote client must not be invoked on validation failure")
}

func TestCreateTemplateRemoteFailure(t *testing.T) {
	stub := &stubMetaAPI{
		createErr: &meta.APIError{
			StatusCode: 400,
			Code:       100,
			Message:    "Template name already exists",
			Suggestion: "Template may already exist. Try a different name or delete the existing one first.",
		},
	}
	tool := NewCreateTemplate(stub)

	envelope, err := tool.Execute(context.Background(), validCreateArgs())
	require.NoError(t, err)

	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, ErrMetaAPI, envelope["error"])
	details := envelope["details"].([]string)
	require.Len(t, details, 1)
	assert.Contains(t, details[0], "Meta API Error (100)")
	assert.Contains(t, details[0], "Suggestion:")
}
