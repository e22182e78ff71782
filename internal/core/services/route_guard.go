package services

import (
	"github.com/medora-health/portal-access-service/internal/core/domain"
)

// GuardState is the route guard's decision for a page request.
type GuardState int

const (
	// StateLoading: session hydration has not finished. Render a
	// placeholder, never redirect.
	StateLoading GuardState = iota
	// StateUnauthenticated: no session. Redirect to the public entry page.
	StateUnauthenticated
	// StateDenied: a session exists but its role is not in the page's
	// allowed set. Redirects silently to the entry page rather than a
	// forbidden page.
	StateDenied
	// StateAllowed: render the page.
	StateAllowed
)

func (s GuardState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateDenied:
		return "denied"
	case StateAllowed:
		return "allowed"
	}
	return "unknown"
}

// Decide is a pure function of (hydration-complete, session,
// allowed-role-set). It has no side effects; the HTTP adapter turns
// non-allowed states into redirects.
func Decide(hydrated bool, sess *domain.Session, allowed []domain.Role) GuardState {
	if !hydrated {
		return StateLoading
	}
	if sess == nil {
		return StateUnauthenticated
	}
	for _, role := range allowed {
		if sess.Role == role {
			return StateAllowed
		}
	}
	return StateDenied
}

// PageRoles maps each guarded page to its allowed-role set. Every page
// carries a non-empty set and every role reaches its own dashboard.
var PageRoles = map[string][]domain.Role{
	"/dashboard/super-admin": {domain.RoleSuperAdmin},
	"/dashboard/doctor":      {domain.RoleDoctor},
	"/dashboard/nurse":       {domain.RoleNurse},
	"/dashboard/patient":     {domain.RolePatient},
	"/tasks":                 {domain.RoleNurse, domain.RoleDoctor},
	"/nurse-assignment":      {domain.RoleNurse, domain.RoleSuperAdmin},
	"/doctor-availability":   {domain.RoleDoctor, domain.RoleNurse, domain.RoleSuperAdmin},
	"/appointments":          {domain.RolePatient},
	"/prescriptions":         {domain.RolePatient},
}

// AllowedRoles returns the allowed-role set for a page path, or nil for
// unguarded pages.
func AllowedRoles(page string) []domain.Role {
	return PageRoles[page]
}
