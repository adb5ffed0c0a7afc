package dtos

import "time"

// APIResponse is the envelope every endpoint returns.
type APIResponse[T any] struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Data      *T        `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// RegisterResponse returns the server-assigned identifier of a newly
// registered entity.
type RegisterResponse struct {
	ID string `json:"id"`
}

// ServiceStatus is one dependency's health in a health check response.
type ServiceStatus struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}

// HealthCheckResponse reports overall service health.
type HealthCheckResponse struct {
	Status   string                   `json:"status"`
	Uptime   string                   `json:"uptime"`
	Services map[string]ServiceStatus `json:"services"`
}
