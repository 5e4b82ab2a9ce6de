package models

// Session is the payload stored in Redis by the external auth
// collaborator. Only the fields this service reads are modelled.
type Session struct {
	SessionID      string `json:"session_id"`
	UserID         string `json:"user_id"`
	RoleName       string `json:"role_name"`
	PractitionerID string `json:"practitioner_id,omitempty"`
}
