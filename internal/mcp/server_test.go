package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/watman/watman/internal/meta"
	"github.com/watman/watman/internal/schema"
	"github.com/watman/watman/internal/tools"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubMetaAPI struct {
	createResult *meta.CreateTemplateResult
}

func (s *stubMetaAPI) CreateTemplate(context.Context, string, *schema.Template) (*meta.CreateTemplateResult, error) {
	return s.createResult, nil
}
func (s *stubMetaAPI) ListTemplates(context.Context, string, string) ([]meta.TemplateInfo, error) {
	return nil, nil
}
func (s *stubMetaAPI) DeleteTemplate(context.Context, string, string) error { return nil }
func (s *stubMetaAPI) GetTemplateByName(context.Context, string, string) (*meta.TemplateInfo, error) {
	return nil, nil
}
func (s *stubMetaAPI) GetMe(context.Context) (*meta.BusinessUser, error)          { return nil, nil }
func (s *stubMetaAPI) GetAssignedWABAs(context.Context, string) ([]meta.WABA, error) { return nil, nil }

// serveSession runs one scripted stdio session and returns the decoded
// responses in order.
func serveSession(t *testing.T, requests ...string) []map[string]any {
	t.Helper()

	registry := tools.BuildRegistry(&stubMetaAPI{
		createResult: &meta.CreateTemplateResult{ID: "123", Status: "PENDING", Category: "UTILITY"},
	})

	in := strings.NewReader(strings.Join(requests, "\n") + "\n")
	var out bytes.Buffer
	srv := NewServer("whatsapp-template-manager", "1.0.0", registry, in, &out)
	require.NoError(t, srv.Serve(context.Background()))

	var responses []map[string]any
	scanner := bufio.NewScanner(&out)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		var resp map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &resp))
		responses = append(responses, resp)
	}
	require.NoError(t, scanner.Err())
	return responses
}

func TestInitializeHandshake(t *testing.T) {
	responses := serveSession(t,
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26"}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"ping"}`,
	)
	require.Len(t, responses, 2, "notifications get no response")

	result := responses[0]["result"].(map[string]any)
	assert.Equal(t, "2025-03-26", result["protocolVersion"])
	info := result["serverInfo"].(map[string]any)
	assert.Equal(t, "whatsapp-template-manager", info["name"])
}

func TestToolsList(t *testing.T) {
	responses := serveSession(t,
		`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`,
	)
	require.Len(t, responses, 1)

	result := responses[0]["result"].(map[string]any)
	list := result["tools"].([]any)
	require.Len(t, list, 6)

	names := make([]string, len(list))
	for i, entry := range list {
		tool := entry.(map[string]any)
		names[i] = tool["name"].(string)
		assert.NotEmpty(t, tool["description"])
		assert.Contains(t, tool, "inputSchema")
	}
	assert.Contains(t, names, "create_whatsapp_template")
	assert.Contains(t, names, "get_template_format")
}

func TestToolsCallCreate(t *testing.T) {
	responses := serveSession(t,
		`{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"create_whatsapp_template","arguments":{"waba_id":"278469610073775","template":{"name":"order_confirmation","category":"UTILITY","components":[{"type":"BODY","text":"Hi {{1}}!"}]}}}}`,
	)
	require.Len(t, responses, 1)

	result := responses[0]["result"].(map[string]any)
	content := result["content"].([]any)
	require.Len(t, content, 1)
	text := content[0].(map[string]any)["text"].(string)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &envelope))
	assert.Equal(t, true, envelope["success"])
	assert.Equal(t, "123", envelope["template_id"])
	assert.Equal(t, "PENDING", envelope["status"])
}

func TestToolsCallValidationFailure(t *testing.T) {
	responses := serveSession(t,
		`{"jsonrpc":"2.0","id":8,"method":"tools/call","params":{"name":"delete_whatsapp_template","arguments":{"waba_id":"abc"}}}`,
	)
	require.Len(t, responses, 1)

	result := responses[0]["result"].(map[string]any)
	text := result["content"].([]any)[0].(map[string]any)["text"].(string)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &envelope))
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "VALIDATION_ERROR", envelope["error"])
}

func TestUnknownToolIsProtocolError(t *testing.T) {
	responses := serveSession(t,
		`{"jsonrpc":"2.0","id":9,"method":"tools/call","params":{"name":"send_message","arguments":{}}}`,
	)
	require.Len(t, responses, 1)

	rpcErr := responses[0]["error"].(map[string]any)
	assert.Equal(t, float64(codeInternalError), rpcErr["code"])
	assert.Contains(t, rpcErr["message"], "unknown tool")
}

func TestUnknownMethod(t *testing.T) {
	responses := serveSession(t,
		`{"jsonrpc":"2.0","id":10,"method":"resources/list"}`,
	)
	require.Len(t, responses, 1)
	rpcErr := responses[0]["error"].(map[string]any)
	assert.Equal(t, float64(codeMethodNotFound), rpcErr["code"])
}

func TestMalformedLine(t *testing.T) {
	responses := serveSession(t, `{not json`)
	require.Len(t, responses, 1)
	rpcErr := responses[0]["error"].(map[string]any)
	assert.Equal(t, float64(codeParseError), rpcErr["code"])
}
