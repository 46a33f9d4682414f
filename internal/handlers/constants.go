package handlers

const (
	SessionCookieName = "session_id"

	ErrInvalidFormData     = "Invalid form data"
	ErrInvalidRequestBody  = "Invalid request body"
	ErrUnauthorized        = "Unauthorized"
	ErrInternalServerError = "Internal server error"
)
