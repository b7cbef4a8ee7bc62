package dto

// ErrorResponse is the uniform failure payload: a machine-stable kind
// plus a human-readable message. Stack traces and storage detail are
// never serialized here.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
