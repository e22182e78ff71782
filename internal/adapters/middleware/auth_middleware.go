package middleware

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/medora-health/portal-access-service/internal/core/domain"
	"github.com/medora-health/portal-access-service/internal/core/ports"
	"github.com/medora-health/portal-access-service/internal/core/services"
	"github.com/medora-health/portal-access-service/internal/logger"
)

// AuthMiddleware is the HTTP adapter for the route guard: it parses the
// bearer token, hydrates the session from the durable slot, and maps
// the guard decision onto the response. Unauthenticated and denied
// requests get a silent redirect to the public entry page rather than
// an error page.
type AuthMiddleware struct {
	publicKey *rsa.PublicKey
	sessions  ports.SessionStore
	log       *logger.Logger
}

func NewAuthMiddleware(publicKey *rsa.PublicKey, sessions ports.SessionStore, log *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		publicKey: publicKey,
		sessions:  sessions,
		log:       log,
	}
}

type contextKey string

const sessionKey contextKey = "session"

// SessionFromContext returns the session placed by RequireRoles.
func SessionFromContext(ctx context.Context) (*domain.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*domain.Session)
	return sess, ok
}

const entryPage = "/"

// RequireRoles gates next behind the allowed-role set.
func (m *AuthMiddleware) RequireRoles(allowed []domain.Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, hydrated := m.hydrate(r)

		switch services.Decide(hydrated, sess, allowed) {
		case services.StateLoading:
			// The durable slot did not answer; a placeholder, never a
			// redirect that would bounce a logged-in user.
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "loading"})
			return

		case services.StateUnauthenticated:
			http.Redirect(w, r, entryPage, http.StatusFound)
			return

		case services.StateDenied:
			m.log.WithSubject(sess.SubjectID).Debugf("role %s not allowed for %s", sess.Role, r.URL.Path)
			http.Redirect(w, r, entryPage, http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePage gates next behind the static page table.
func (m *AuthMiddleware) RequirePage(page string, next http.Handler) http.Handler {
	return m.RequireRoles(services.AllowedRoles(page), next)
}

// hydrate resolves the caller's session. The second return reports
// whether hydration finished: false means the slot could not be
// consulted, which is distinct from a confirmed-absent session.
func (m *AuthMiddleware) hydrate(r *http.Request) (*domain.Session, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, true
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, true
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.publicKey, nil
	})
	if err != nil || !token.Valid {
		return nil, true
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, true
	}
	subjectID, ok := claims["sub"].(string)
	if !ok || subjectID == "" {
		return nil, true
	}

	sess, err := m.sessions.Get(r.Context(), subjectID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, true
		}
		m.log.WithError(err).Warn("session hydration failed")
		return nil, false
	}
	return sess, true
}
