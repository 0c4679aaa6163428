package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Info is what the client can learn from a stored bearer token without the
// backend's signing key: expiry and subject, when the token happens to be
// a JWT.
type Info struct {
	Subject   string
	ExpiresAt time.Time
	HasExpiry bool
}

// Inspect parses token as an unverified JWT and extracts claims relevant
// to client-side bookkeeping. Verification is the backend's job — the
// client only uses this to avoid sending a token it can already prove is
// expired. An opaque or malformed token yields (Info{}, false), never an
// error.
func Inspect(token string) (Info, bool) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return Info{}, false
	}

	var info Info
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
		info.HasExpiry = true
	}

	return info, true
}

// Expired reports whether the token is a JWT whose exp claim is in the
// past. Opaque tokens and JWTs without exp are never considered expired —
// only the backend can judge those.
func Expired(token string, now time.Time) bool {
	info, ok := Inspect(token)
	if !ok || !info.HasExpiry {
		return false
	}
	return !now.Before(info.ExpiresAt)
}
