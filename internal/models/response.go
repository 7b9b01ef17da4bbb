package models

// Airport is one static suggestion record.
type Airport struct {
	Name string `json:"name"`
	Code string `json:"code"`
	City string `json:"city"`
}

// ErrorResponse is the uniform failure body. Every failure mode is reported
// the same way regardless of cause.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports whether the active provider handed out a token.
type HealthResponse struct {
	Status   string `json:"status"`
	HasToken bool   `json:"hasToken"`
}
