package api

// LoginRequest defines the payload for the login endpoint. Username is the
// user's email address. Blank credentials are not a validation failure: they
// are rejected as invalid credentials like any other mismatch.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}
