// Package api defines the contracts for API requests and responses.
// It decouples the API structure from the internal domain models.
package api

// ItemRequest is the expected body for POST /items and PUT /items/{id}.
// Price is a pointer so a missing key can be told apart from an explicit zero.
type ItemRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"required"`
}

// ItemResponse is the API representation of a single item.
type ItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string  `json:"status"`
	Timestamp float64 `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
	Version   string  `json:"version"`
}

// ServiceInfoResponse is the static service descriptor returned by GET /.
type ServiceInfoResponse struct {
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Status    string            `json:"status"`
	Endpoints map[string]string `json:"endpoints"`
}

// DetailResponse is the standard error body for 404s and similar failures.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// ValidationError describes a single failed field check in a 422 response.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ValidationFailureResponse is the body of a 422 response.
type ValidationFailureResponse struct {
	Detail []ValidationError `json:"detail"`
}

// InternalErrorResponse is the fixed-shape body produced by the panic handler.
type InternalErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
	Detail    string `json:"detail"`
}
