package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"unicode/utf8"
)

const (
	maxNameLen       = 512
	maxButtonTextLen = 25
	defaultWABALimit = 25
)

var (
	nameRe    = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	numericRe = regexp.MustCompile(`^[0-9]+$`)
)

// Violation is a single field-level validation failure. Violations are
// reported in field declaration order so output stays deterministic.
type Violation struct {
	Path    string
	Message string
}

func (v Violation) String() string { return v.Path + ": " + v.Message }

// Messages renders violations as "path: message" strings for envelopes.
func Messages(vs []Violation) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

// --- Tool input shapes ---

type CreateInput struct {
	WABAID   string   `json:"waba_id"`
	Template Template `json:"template"`
}

type ListInput struct {
	WABAID string `json:"waba_id"`
	Status string `json:"status,omitempty"`
}

type DeleteInput struct {
	WABAID       string `json:"waba_id"`
	TemplateName string `json:"template_name"`
}

type StatusInput struct {
	WABAID       string `json:"waba_id"`
	TemplateName string `json:"template_name"`
}

type ListWABAsInput struct {
	Limit *int `json:"limit,omitempty"`
}

// ParseCreateInput validates the create_whatsapp_template arguments. On
// success the returned template has its language defaulted to "en".
func ParseCreateInput(args map[string]any) (*CreateInput, []Violation) {
	var in CreateInput
	if vs := decode(args, &in); vs != nil {
		return nil, vs
	}
	vs := checkWABAID(in.WABAID)
	vs = append(vs, validateTemplate(&in.Template)...)
	if len(vs) > 0 {
		return nil, vs
	}
	if in.Template.Language == "" {
		in.Template.Language = "en"
	}
	return &in, nil
}

func ParseListInput(args map[string]any) (*ListInput, []Violation) {
	var in ListInput
	if vs := decode(args, &in); vs != nil {
		return nil, vs
	}
	vs := checkWABAID(in.WABAID)
	if in.Status != "" && !inList(in.Status, TemplateStatuses) {
		vs = append(vs, Violation{"status", "status must be APPROVED, PENDING, or REJECTED"})
	}
	if len(vs) > 0 {
		return nil, vs
	}
	return &in, nil
}

func ParseDeleteInput(args map[string]any) (*DeleteInput, []Violation) {
	var in DeleteInput
	if vs := decode(args, &in); vs != nil {
		return nil, vs
	}
	vs := checkWABAID(in.WABAID)
	if in.TemplateName == "" {
		vs = append(vs, Violation{"template_name", "template name is required"})
	}
	if len(vs) > 0 {
		return nil, vs
	}
	return &in, nil
}

func ParseStatusInput(args map[string]any) (*StatusInput, []Violation) {
	var in StatusInput
	if vs := decode(args, &in); vs != nil {
		return nil, vs
	}
	vs := checkWABAID(in.WABAID)
	if in.TemplateName == "" {
		vs = append(vs, Violation{"template_name", "template name is required"})
	}
	if len(vs) > 0 {
		return nil, vs
	}
	return &in, nil
}

// ParseListWABAsInput validates list_connected_wabas arguments. A missing
// limit defaults to 25.
func ParseListWABAsInput(args map[string]any) (*ListWABAsInput, []Violation) {
	var in ListWABAsInput
	if vs := decode(args, &in); vs != nil {
		return nil, vs
	}
	if in.Limit == nil {
		n := defaultWABALimit
		in.Limit = &n
	} else if *in.Limit <= 0 {
		return nil, []Violation{{"limit", "limit must be a positive integer"}}
	}
	return &in, nil
}

// decode round-trips untyped tool arguments through JSON into a typed input
// struct. Shape mismatches come back as a single violation on the offending
// field rather than a raw unmarshal error.
func decode(args map[string]any, dst any) []Violation {
	data, err := json.Marshal(args)
	if err != nil {
		return []Violation{{"input", "arguments are not a JSON object"}}
	}
	if err := json.Unmarshal(data, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			path := typeErr.Field
			if path == "" {
				path = "input"
			}
			return []Violation{{path, "must be of type " + typeErr.Type.String()}}
		}
		return []Violation{{"input", "malformed input: " + err.Error()}}
	}
	return nil
}

func checkWABAID(id string) []Violation {
	if id == "" {
		return []Violation{{"waba_id", "WABA ID is required"}}
	}
	if !numericRe.MatchString(id) {
		return []Violation{{"waba_id", `WABA ID must be numeric (e.g. "278469610073775")`}}
	}
	return nil
}

func validateTemplate(t *Template) []Violation {
	var vs []Violation
	switch {
	case t.Name == "":
		vs = append(vs, Violation{"template.name", "name is required"})
	case len(t.Name) > maxNameLen:
		vs = append(vs, Violation{"template.name", fmt.Sprintf("name max %d chars", maxNameLen)})
	case !nameRe.MatchString(t.Name):
		vs = append(vs, Violation{"template.name", "name must be lowercase with underscores only (e.g. my_template_name)"})
	}
	if !inList(t.Category, Categories) {
		vs = append(vs, Violation{"template.category", "category must be UTILITY, MARKETING, or AUTHENTICATION"})
	}
	if len(t.Components) == 0 {
		vs = append(vs, Violation{"template.components", "at least one component is required"})
	}
	for i := range t.Components {
		path := fmt.Sprintf("template.components.%d", i)
		vs = append(vs, validateComponent(path, &t.Components[i])...)
	}
	return vs
}

func validateComponent(path string, c *Component) []Violation {
	var vs []Violation
	if !inList(c.Type, ComponentTypes) {
		vs = append(vs, Violation{path + ".type", "type must be HEADER, BODY, FOOTER, or BUTTONS"})
	}
	if c.Format != "" && !inList(c.Format, HeaderFormats) {
		vs = append(vs, Violation{path + ".format", "format must be TEXT, IMAGE, VIDEO, or DOCUMENT"})
	}
	for i := range c.Buttons {
		vs = append(vs, validateButton(fmt.Sprintf("%s.buttons.%d", path, i), &c.Buttons[i])...)
	}
	return vs
}

func validateButton(path string, b *Button) []Violation {
	var vs []Violation
	if !inList(b.Type, ButtonTypes) {
		vs = append(vs, Violation{path + ".type", "type must be URL, PHONE_NUMBER, or QUICK_REPLY"})
	}
	if utf8.RuneCountInString(b.Text) > maxButtonTextLen {
		vs = append(vs, Violation{path + ".text", fmt.Sprintf("button text max %d chars", maxButtonTextLen)})
	}
	if b.URL != "" && !validURL(b.URL) {
		vs = append(vs, Violation{path + ".url", "url must be a well-formed URL"})
	}
	return vs
}

func validURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func inList(val string, list []string) bool {
	for _, v := range list {
		if val == v {
			return true
		}
	}
	return false
}
