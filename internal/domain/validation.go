package domain

// ValidationError reports a single failing form field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
