package dtos

// RegisterOperatorPayload is the request body for operator creation, used
// by bootstrap and test environments.
type RegisterOperatorPayload struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}
