package models

// User is the authenticated customer exactly as the backend reports it.
// It is persisted verbatim (serialized) in session storage next to the
// bearer token and rebuilt from there on every request.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
}
