package services

import (
	"crypto/rsa"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/medora-health/portal-access-service/internal/core/domain"
)

const sessionTokenTTL = 24 * time.Hour

// signSession mints the RS256 bearer token handed to the client after a
// successful login or signup. The token carries only the subject and
// role; the full session lives in the durable slot.
func signSession(privateKey *rsa.PrivateKey, sess *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sub":  sess.SubjectID,
		"role": string(sess.Role),
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(sessionTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(privateKey)
}
