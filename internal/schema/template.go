package schema

// --- Template payload sent to the Graph API ---
// Reference: https://developers.facebook.com/docs/whatsapp/business-management-api/message-templates

type Template struct {
	Name       string      `json:"name"`
	Category   string      `json:"category"`
	Language   string      `json:"language"`
	Components []Component `json:"components"`
}

type Component struct {
	Type    string   `json:"type"`
	Format  string   `json:"format,omitempty"`
	Text    string   `json:"text,omitempty"`
	Buttons []Button `json:"buttons,omitempty"`
	Example *Example `json:"example,omitempty"`
}

type Button struct {
	Type        string `json:"type"`
	Text        string `json:"text"`
	URL         string `json:"url,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// Example carries sample values for {{n}} placeholders. Meta requires them
// before a template is reviewed.
type Example struct {
	BodyText     [][]string `json:"body_text,omitempty"`
	HeaderText   []string   `json:"header_text,omitempty"`
	HeaderHandle []string   `json:"header_handle,omitempty"`
}

var (
	Categories       = []string{"UTILITY", "MARKETING", "AUTHENTICATION"}
	ComponentTypes   = []string{"HEADER", "BODY", "FOOTER", "BUTTONS"}
	HeaderFormats    = []string{"TEXT", "IMAGE", "VIDEO", "DOCUMENT"}
	ButtonTypes      = []string{"URL", "PHONE_NUMBER", "QUICK_REPLY"}
	TemplateStatuses = []string{"APPROVED", "PENDING", "REJECTED"}
)
