package web

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName carries the signed session token between requests.
const CookieName = "session"

var errBadCookie = errors.New("session cookie is missing or invalid")

// SessionCookies signs and verifies the browser half of a session. The cookie
// payload is a JWT whose ID claim is the opaque server-side token; the
// signature stops clients from minting or altering tokens, the server-side
// store stops them from replaying revoked ones.
type SessionCookies struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionCookies(secret string, ttl time.Duration) *SessionCookies {
	return &SessionCookies{secret: []byte(secret), ttl: ttl}
}

// Write sets the session cookie for a freshly started session.
func (c *SessionCookies) Write(w http.ResponseWriter, token string) error {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        token,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(c.ttl.Seconds()),
	})
	return nil
}

// Read extracts and verifies the session token from the request. Any problem
// (no cookie, bad signature, expired) is errBadCookie; the caller treats the
// request as anonymous.
func (c *SessionCookies) Read(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", errBadCookie
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(cookie.Value, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid || claims.ID == "" {
		return "", errBadCookie
	}
	return claims.ID, nil
}

// Clear expires the session cookie.
func (c *SessionCookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
