package meta

// --- Graph API message template endpoints ---
// Reference: https://developers.facebook.com/docs/whatsapp/business-management-api/message-templates

// CreateTemplateResult is the response to a template creation request.
type CreateTemplateResult struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Category string `json:"category"`
}

// TemplateInfo is one template record as returned by the listing endpoint.
type TemplateInfo struct {
	Name           string `json:"name"`
	Status         string `json:"status"`
	Category       string `json:"category"`
	Language       string `json:"language"`
	ID             string `json:"id"`
	RejectedReason string `json:"rejected_reason,omitempty"`
}

type listTemplatesResponse struct {
	Data   []TemplateInfo `json:"data"`
	Paging *paging        `json:"paging,omitempty"`
}

type paging struct {
	Cursors struct {
		Before string `json:"before"`
		After  string `json:"after"`
	} `json:"cursors"`
	Next string `json:"next,omitempty"`
}

// BusinessUser identifies the system user the access token belongs to.
type BusinessUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// WABA is one WhatsApp Business Account assigned to the system user.
type WABA struct {
	ID                       string `json:"id"`
	Name                     string `json:"name"`
	Currency                 string `json:"currency"`
	TimezoneID               string `json:"timezone_id"`
	MessageTemplateNamespace string `json:"message_template_namespace"`
}

type assignedWABAsResponse struct {
	Data []WABA `json:"data"`
}

// errorEnvelope is the Graph API error body shape.
type errorEnvelope struct {
	Error *graphError `json:"error"`
}

type graphError struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode,omitempty"`
	FBTraceID    string `json:"fbtrace_id,omitempty"`
}
