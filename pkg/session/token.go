package session

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"

	v1 "github.com/agentdeck/agentdeck/api/v1"
)

// DefaultExpirySkew is subtracted from the token expiry so a token about to
// expire is refreshed before the backend starts rejecting it.
const DefaultExpirySkew = 30 * time.Second

// Expired reports whether the session's access token is expired or expires
// within skew. A session whose expiry cannot be determined is treated as
// expired, forcing a refresh attempt.
func Expired(session *v1.Session, skew time.Duration) bool {
	if session == nil || session.AccessToken == "" {
		return true
	}

	expiry, err := Expiry(session)
	if err != nil {
		return true
	}

	if expiry.IsZero() {
		// Token carries no expiry; assume it stays valid.
		return false
	}

	return time.Now().Add(skew).After(expiry)
}

// Expiry resolves the session expiry from the session record, falling back to
// the JWT exp claim. The token is parsed without signature verification: the
// client only inspects expiry, validity is the backend's call.
func Expiry(session *v1.Session) (time.Time, error) {
	if session.ExpiresAt > 0 {
		return time.Unix(session.ExpiresAt, 0), nil
	}

	claims := jwt.RegisteredClaims{}

	_, _, err := jwt.NewParser().ParseUnverified(session.AccessToken, &claims)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "failed to parse access token")
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}

	return claims.ExpiresAt.Time, nil
}
