package domain

import "time"

type Role string

const (
	RoleSuperAdmin Role = "super-admin"
	RoleDoctor     Role = "doctor"
	RoleNurse      Role = "nurse"
	RolePatient    Role = "patient"
)

// Roles is the closed set of portal roles. Iterate this instead of
// hard-coding role strings at call sites.
var Roles = []Role{RoleSuperAdmin, RoleDoctor, RoleNurse, RolePatient}

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleDoctor, RoleNurse, RolePatient:
		return true
	}
	return false
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`

	// Role-dependent attribute: at most one of these is set.
	// Specialty for doctors, department for nurses, patient number
	// for patients. All empty for super-admin.
	Specialty  string `json:"specialty,omitempty"`
	Department string `json:"department,omitempty"`
	PatientID  string `json:"patient_id,omitempty"`
}

// RoleAttribute returns the attribute that qualifies the user's role.
func (u *User) RoleAttribute() string {
	switch u.Role {
	case RoleDoctor:
		return u.Specialty
	case RoleNurse:
		return u.Department
	case RolePatient:
		return u.PatientID
	case RoleSuperAdmin:
		return ""
	}
	return ""
}
