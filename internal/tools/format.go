package tools

import "context"

// GetTemplateFormat serves the static template format reference. No
// validation, no remote call; output is identical on every invocation.
type GetTemplateFormat struct{}

func NewGetTemplateFormat() *GetTemplateFormat {
	return &GetTemplateFormat{}
}

func (t *GetTemplateFormat) Name() string   { return "get_template_format" }
func (t *GetTemplateFormat) ReadOnly() bool { return true }
func (t *GetTemplateFormat) Description() string {
	return "Get the required format for creating WhatsApp templates. " +
		"Call this first to understand the correct structure before creating templates."
}

func (t *GetTemplateFormat) Parameters() *ParamSchema {
	return &ParamSchema{Type: "object"}
}

func (t *GetTemplateFormat) Execute(_ context.Context, _ map[string]any) (map[string]any, error) {
	return templateFormat, nil
}

var _ Tool = (*GetTemplateFormat)(nil)

// templateFormat documents the template shape, the review rules, and worked
// examples. Served verbatim so the calling agent can learn the structure
// without a remote call.
var templateFormat = map[string]any{
	"format": map[string]any{
		"name": map[string]any{
			"type": "string",
			"rules": []any{
				"Must be lowercase letters and underscores only",
				"Must start with a letter",
				"Maximum 512 characters",
				"Example: booking_confirmation, otp_verification",
			},
		},
		"category": map[string]any{
			"type":   "enum",
			"values": []any{"UTILITY", "MARKETING", "AUTHENTICATION"},
			"descriptions": map[string]any{
				"UTILITY":        "Transactional messages like order updates, booking confirmations",
				"MARKETING":      "Promotional messages, offers, announcements",
				"AUTHENTICATION": "OTP and verification codes (max 1 variable allowed)",
			},
		},
		"language": map[string]any{
			"type":        "string",
			"default":     "en",
			"description": "ISO language code",
		},
		"components": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"type": map[string]any{
						"enum":        []any{"HEADER", "BODY", "FOOTER", "BUTTONS"},
						"description": "BODY is required, others are optional",
					},
					"text": map[string]any{
						"type":        "string",
						"description": "The message text. Use {{1}}, {{2}}, etc. for variables.",
					},
					"format": map[string]any{
						"enum":        []any{"TEXT", "IMAGE", "VIDEO", "DOCUMENT"},
						"description": "Only for HEADER component",
					},
					"buttons": map[string]any{
						"type":        "array",
						"description": "Only for BUTTONS component",
						"items": map[string]any{
							"type": []any{"URL", "PHONE_NUMBER", "QUICK_REPLY"},
						},
					},
					"example": map[string]any{
						"description": "Required for approval. Provide example values for variables.",
						"body_text":   `Array of arrays: [["value1", "value2"]]`,
					},
				},
			},
		},
	},

	"rules": []any{
		"Template name must be lowercase with underscores only (e.g. order_confirmation)",
		"Variables must use {{1}}, {{2}}, {{3}} format (numbered, not named)",
		"Maximum 10 variables per template",
		"AUTHENTICATION category allows maximum 1 variable (for OTP)",
		"Example values are required for Meta approval",
		"URLs in body text require a URL button component",
		"Button text maximum 25 characters",
	},

	"examples": []any{
		map[string]any{
			"description": "Simple notification template",
			"template": map[string]any{
				"name":     "order_confirmation",
				"category": "UTILITY",
				"language": "en",
				"components": []any{
					map[string]any{
						"type": "BODY",
						"text": "Hi {{1}}! Your order {{2}} has been confirmed. Total: {{3}}",
						"example": map[string]any{
							"body_text": []any{[]any{"John", "ORD-12345", "$99.00"}},
						},
					},
				},
			},
		},
		map[string]any{
			"description": "OTP verification template",
			"template": map[string]any{
				"name":     "otp_verification",
				"category": "AUTHENTICATION",
				"language": "en",
				"components": []any{
					map[string]any{
						"type": "BODY",
						"text": "Your verification code is {{1}}. Do not share this code.",
						"example": map[string]any{
							"body_text": []any{[]any{"123456"}},
						},
					},
				},
			},
		},
		map[string]any{
			"description": "Template with URL button",
			"template": map[string]any{
				"name":     "booking_reminder",
				"category": "UTILITY",
				"language": "en",
				"components": []any{
					map[string]any{
						"type": "BODY",
						"text": "Hi {{1}}! Your booking for {{2}} is tomorrow at {{3}}.",
						"example": map[string]any{
							"body_text": []any{[]any{"John", "Yoga Class", "10:00 AM"}},
						},
					},
					map[string]any{
						"type": "BUTTONS",
						"buttons": []any{
							map[string]any{
								"type": "URL",
								"text": "View Details",
								"url":  "https://example.com/booking/{{1}}",
							},
						},
					},
				},
			},
		},
	},
}
