package meta

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingToken means no access token is configured. This is a fatal
// configuration problem, raised before any network attempt, and is distinct
// from an APIError returned by the Graph API.
var ErrMissingToken = errors.New("WHATSAPP_ACCESS_TOKEN not found in environment")

// APIError is a classified Graph API failure. Code and Message come verbatim
// from the error body; Suggestion is the action hint for the known error
// classes. Code 0 means the response carried no structured error body.
type APIError struct {
	StatusCode int
	Code       int
	Message    string
	Suggestion string
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("Meta API Error (%d): %s. Suggestion: %s", e.Code, e.Message, e.Suggestion)
	}
	return fmt.Sprintf("HTTP Error: status %d: %s", e.StatusCode, e.Message)
}

// translateError classifies a non-2xx Graph API response body. Pure function
// of the response; performs no I/O.
func translateError(statusCode int, body []byte) *APIError {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error == nil {
		return &APIError{StatusCode: statusCode, Message: string(body)}
	}
	ge := envelope.Error
	return &APIError{
		StatusCode: statusCode,
		Code:       ge.Code,
		Message:    ge.Message,
		Suggestion: suggestionForCode(ge.Code),
	}
}

func suggestionForCode(code int) string {
	switch code {
	case 100:
		return "Template may already exist. Try a different name or delete the existing one first."
	case 190:
		return "Access token is invalid or expired. Generate a new one from Meta Developers."
	case 368:
		return "Rate limited. Wait 60 seconds and try again."
	case 131000:
		return "Invalid template format. Check body text, variables, and component structure."
	default:
		return fmt.Sprintf("Check Meta API documentation for error code %d", code)
	}
}
