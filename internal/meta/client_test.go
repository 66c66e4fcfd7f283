package meta

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watman/watman/internal/schema"
)

func TestCreateTemplate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/278469610073775/message_templates", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "order_confirmation", payload["name"])
		assert.Equal(t, "UTILITY", payload["category"])
		assert.Equal(t, "en", payload["language"])

		json.NewEncoder(w).Encode(map[string]any{"id": "123", "status": "PENDING", "category": "UTILITY"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticTokenSource("test-token"))
	result, err := c.CreateTemplate(context.Background(), "278469610073775", &schema.Template{
		Name:       "order_confirmation",
		Category:   "UTILITY",
		Language:   "en",
		Components: []schema.Component{{Type: "BODY", Text: "Hi {{1}}"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "123", result.ID)
	assert.Equal(t, "PENDING", result.Status)
}

func TestListTemplatesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "name,status,category,language,id,rejected_reason", r.URL.Query().Get("fields"))
		assert.Equal(t, "REJECTED", r.URL.Query().Get("status"))
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"name": "promo_blast", "status": "REJECTED", "category": "MARKETING", "language": "en", "id": "9", "rejected_reason": "PROMOTIONAL"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticTokenSource("test-token"))
	templates, err := c.ListTemplates(context.Background(), "123", "REJECTED")
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "promo_blast", templates[0].Name)
	assert.Equal(t, "PROMOTIONAL", templates[0].RejectedReason)
}

func TestListTemplatesOmitsEmptyStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.URL.Query()["status"]
		assert.False(t, present, "empty status filter must not be sent")
		json.NewEncoder(w).Encode(map[string]any{"data": []map[string]any{}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticTokenSource("test-token"))
	templates, err := c.ListTemplates(context.Background(), "123", "")
	require.NoError(t, err)
	assert.Empty(t, templates)
}

func TestDeleteTemplate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "old_template", r.URL.Query().Get("name"))
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticTokenSource("test-token"))
	require.NoError(t, c.DeleteTemplate(context.Background(), "123", "old_template"))
}

func TestGetTemplateByName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"name": "foo_bar", "status": "APPROVED", "category": "UTILITY", "language": "en", "id": "1"},
				{"name": "foo_baz", "status": "PENDING", "category": "UTILITY", "language": "en", "id": "2"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticTokenSource("test-token"))

	tmpl, err := c.GetTemplateByName(context.Background(), "123", "foo_baz")
	require.NoError(t, err)
	require.NotNil(t, tmpl)
	assert.Equal(t, "2", tmpl.ID)

	// The scan is case-sensitive: FOO_BAR does not match foo_bar.
	tmpl, err = c.GetTemplateByName(context.Background(), "123", "FOO_BAR")
	require.NoError(t, err)
	assert.Nil(t, tmpl)

	tmpl, err = c.GetTemplateByName(context.Background(), "123", "missing")
	require.NoError(t, err)
	assert.Nil(t, tmpl)
}

func TestGetMeAndAssignedWABAs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/me":
			json.NewEncoder(w).Encode(map[string]any{"id": "42", "name": "System User"})
		case "/42/assigned_whatsapp_business_accounts":
			assert.Equal(t, "id,name,currency,timezone_id,message_template_namespace", r.URL.Query().Get("fields"))
			json.NewEncoder(w).Encode(map[string]any{
				"data": []map[string]any{
					{"id": "278469610073775", "name": "Acme", "currency": "USD", "timezone_id": "1", "message_template_namespace": "ns_abc"},
				},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticTokenSource("test-token"))

	me, err := c.GetMe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "42", me.ID)

	wabas, err := c.GetAssignedWABAs(context.Background(), me.ID)
	require.NoError(t, err)
	require.Len(t, wabas, 1)
	assert.Equal(t, "Acme", wabas[0].Name)
	assert.Equal(t, "ns_abc", wabas[0].MessageTemplateNamespace)
}

func TestMissingTokenMakesNoRequest(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticTokenSource(""))
	_, err := c.ListTemplates(context.Background(), "123", "")
	require.ErrorIs(t, err, ErrMissingToken)
	assert.Zero(t, hits.Load())
}

func TestErrorResponseIsTranslated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "Invalid OAuth token", "type": "OAuthException", "code": 190},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, StaticTokenSource("stale-token"))
	_, err := c.ListTemplates(context.Background(), "123", "")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 190, apiErr.Code)
	assert.Contains(t, err.Error(), "Meta API Error (190): Invalid OAuth token")
}
