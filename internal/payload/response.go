package payload

// MessageResponse is the canonical body for status-only responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationErrorResponse carries per-field validation messages.
type ValidationErrorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}
