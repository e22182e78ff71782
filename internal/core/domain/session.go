package domain

import "time"

// Session is the record of an authenticated identity. It lives in the
// durable session slot (Redis) and is mirrored into the signed bearer
// token handed to the client; the slot is the source consulted on every
// guarded request so logout takes effect immediately.
type Session struct {
	SubjectID     string    `json:"subject_id"`
	Email         string    `json:"email"`
	DisplayName   string    `json:"display_name"`
	Role          Role      `json:"role"`
	RoleAttribute string    `json:"role_attribute,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewSession builds a session from a verified user record.
func NewSession(u *User) *Session {
	return &Session{
		SubjectID:     u.ID,
		Email:         u.Email,
		DisplayName:   u.Name,
		Role:          u.Role,
		RoleAttribute: u.RoleAttribute(),
		CreatedAt:     time.Now().UTC(),
	}
}
