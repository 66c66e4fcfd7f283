package tools

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sort"
	"time"

	"github.com/watman/watman/internal/meta"
	"github.com/watman/watman/internal/schema"
)

// Per-tool execution timeout
const toolTimeout = 30 * time.Second

// Error kinds carried in failure envelopes. Every recoverable failure is one
// of these; the only condition allowed past a tool is a missing access token.
const (
	ErrValidation = "VALIDATION_ERROR"
	ErrMetaAPI    = "META_API_ERROR"
	ErrNotFound   = "NOT_FOUND"
	ErrTimeout    = "TIMEOUT"
)

// MetaAPI is the slice of the Graph API client the tools need. Tests swap in
// a stub to count calls and script responses.
type MetaAPI interface {
	CreateTemplate(ctx context.Context, wabaID string, t *schema.Template) (*meta.CreateTemplateResult, error)
	ListTemplates(ctx context.Context, wabaID, status string) ([]meta.TemplateInfo, error)
	DeleteTemplate(ctx context.Context, wabaID, name string) error
	GetTemplateByName(ctx context.Context, wabaID, name string) (*meta.TemplateInfo, error)
	GetMe(ctx context.Context) (*meta.BusinessUser, error)
	GetAssignedWABAs(ctx context.Context, userID string) ([]meta.WABA, error)
}

var _ MetaAPI = (*meta.Client)(nil)

// ParamSchema describes tool parameters using JSON Schema conventions.
type ParamSchema struct {
	Type        string                  `json:"type"`
	Description string                  `json:"description,omitempty"`
	Properties  map[string]*ParamSchema `json:"properties,omitempty"`
	Required    []string                `json:"required,omitempty"`
	Enum        []string                `json:"enum,omitempty"`
	Items       *ParamSchema            `json:"items,omitempty"`
	Default     any                     `json:"default,omitempty"`
}

// Map renders the schema as a plain map for tool-definition payloads.
func (s *ParamSchema) Map() map[string]any {
	m := map[string]any{"type": s.Type}
	if s.Description != "" {
		m["description"] = s.Description
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any)
		for k, v := range s.Properties {
			props[k] = v.Map()
		}
		m["properties"] = props
	}
	if len(s.Required) > 0 {
		m["required"] = s.Required
	}
	if len(s.Enum) > 0 {
		m["enum"] = s.Enum
	}
	if s.Items != nil {
		m["items"] = s.Items.Map()
	}
	if s.Default != nil {
		m["default"] = s.Default
	}
	return m
}

// Tool is a single operation exposed to the calling agent. Execute returns
// the operation envelope; the error return is reserved for the fatal
// missing-credential condition and context cancellation — every recoverable
// failure becomes a success:false envelope instead.
type Tool interface {
	Name() string
	Description() string
	Parameters() *ParamSchema
	Execute(ctx context.Context, args map[string]any) (map[string]any, error)
	// ReadOnly returns true if the tool cannot mutate remote state.
	ReadOnly() bool
}

// Registry holds all registered tools.
type Registry struct {
	tools map[string]Tool
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

func (r *Registry) Register(t Tool) {
	r.tools[t.Name()] = t
}

func (r *Registry) Get(name string) (Tool, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
	return t, nil
}

// List returns all registered tools sorted by name.
func (r *Registry) List() []Tool {
	out := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Execute applies a timeout, runs the tool, and logs execution duration.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (map[string]any, error) {
	t, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	toolCtx, cancel := context.WithTimeout(ctx, toolTimeout)
	defer cancel()

	start := time.Now()
	result, err := t.Execute(toolCtx, args)
	log.Printf("tool: %s completed in %dms", name, time.Since(start).Milliseconds())
	return result, err
}

// --- envelope shaping ---

func validationFailure(vs []schema.Violation) map[string]any {
	return map[string]any{
		"success": false,
		"error":   ErrValidation,
		"details": schema.Messages(vs),
	}
}

func remoteFailure(err error) map[string]any {
	kind := ErrMetaAPI
	if isTimeout(err) {
		kind = ErrTimeout
	}
	return map[string]any{
		"success": false,
		"error":   kind,
		"details": []string{err.Error()},
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// fatal reports whether an error must escape the tool boundary instead of
// being folded into an envelope.
func fatal(err error) bool {
	return errors.Is(err, meta.ErrMissingToken)
}
