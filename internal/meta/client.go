package meta

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/watman/watman/internal/schema"
)

const defaultBaseURL = "https://graph.facebook.com/v21.0"

// TokenSource resolves the bearer token for a single request. The token is
// resolved at the start of every operation, before any network attempt.
type TokenSource interface {
	AccessToken() (string, error)
}

// EnvTokenSource reads WHATSAPP_ACCESS_TOKEN fresh from the environment on
// every call.
type EnvTokenSource struct{}

func (EnvTokenSource) AccessToken() (string, error) {
	token := os.Getenv("WHATSAPP_ACCESS_TOKEN")
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// StaticTokenSource holds a pre-resolved token. An empty value reports
// ErrMissingToken, which lets tests exercise the missing-credential path.
type StaticTokenSource string

func (s StaticTokenSource) AccessToken() (string, error) {
	if s == "" {
		return "", ErrMissingToken
	}
	return string(s), nil
}

// Client talks to the Graph API message template endpoints. It holds no
// mutable state, so one Client is safe for concurrent use.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
}

func NewClient(baseURL string, tokens TokenSource) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateTemplate submits a template for review on the given WABA.
func (c *Client) CreateTemplate(ctx context.Context, wabaID string, t *schema.Template) (*CreateTemplateResult, error) {
	body, err := c.do(ctx, http.MethodPost, wabaID+"/message_templates", nil, t)
	if err != nil {
		return nil, err
	}
	var result CreateTemplateResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding create response: %w", err)
	}
	return &result, nil
}

// ListTemplates returns the templates on a WABA. A non-empty status filter is
// passed to the Graph API; templates are not re-filtered locally.
func (c *Client) ListTemplates(ctx context.Context, wabaID, status string) ([]TemplateInfo, error) {
	query := url.Values{}
	query.Set("fields", "name,status,category,language,id,rejected_reason")
	if status != "" {
		query.Set("status", status)
	}
	body, err := c.do(ctx, http.MethodGet, wabaID+"/message_templates", query, nil)
	if err != nil {
		return nil, err
	}
	var result listTemplatesResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding list response: %w", err)
	}
	return result.Data, nil
}

// DeleteTemplate removes a template by name.
func (c *Client) DeleteTemplate(ctx context.Context, wabaID, name string) error {
	query := url.Values{}
	query.Set("name", name)
	_, err := c.do(ctx, http.MethodDelete, wabaID+"/message_templates", query, nil)
	return err
}

// GetTemplateByName fetches the full template list and scans for an exact,
// case-sensitive name match. Returns (nil, nil) when no template matches.
// The Graph API has no name filter on this endpoint, so this stays O(n) in
// the account's template count.
func (c *Client) GetTemplateByName(ctx context.Context, wabaID, name string) (*TemplateInfo, error) {
	templates, err := c.ListTemplates(ctx, wabaID, "")
	if err != nil {
		return nil, err
	}
	for i := range templates {
		if templates[i].Name == name {
			return &templates[i], nil
		}
	}
	return nil, nil
}

// GetMe returns the system user the access token belongs to.
func (c *Client) GetMe(ctx context.Context) (*BusinessUser, error) {
	body, err := c.do(ctx, http.MethodGet, "me", nil, nil)
	if err != nil {
		return nil, err
	}
	var user BusinessUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("decoding me response: %w", err)
	}
	return &user, nil
}

// GetAssignedWABAs lists the WhatsApp Business Accounts assigned to a system
// user.
func (c *Client) GetAssignedWABAs(ctx context.Context, userID string) ([]WABA, error) {
	query := url.Values{}
	query.Set("fields", "id,name,currency,timezone_id,message_template_namespace")
	body, err := c.do(ctx, http.MethodGet, userID+"/assigned_whatsapp_business_accounts", query, nil)
	if err != nil {
		return nil, err
	}
	var result assignedWABAsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding assigned WABAs response: %w", err)
	}
	return result.Data, nil
}

// do resolves the token, performs one request, and translates non-2xx
// responses into *APIError. Transport failures come back wrapped so callers
// can still inspect them with errors.Is.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	token, err := c.tokens.AccessToken()
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	endpoint := c.baseURL + "/" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("meta API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading meta API response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, translateError(resp.StatusCode, body)
	}
	return body, nil
}
