package auth

import (
	"net/http"
	"time"

	"github.com/GlebRadaev/payroll/internal/domain"
)

const CookieName = "payroll.sid"

// SessionCookies moves the session id between the client and the server as a signed token.
type SessionCookies struct {
	tokens TokenServiceInterface
	secure bool
}

func NewSessionCookies(tokens TokenServiceInterface, secure bool) *SessionCookies {
	return &SessionCookies{
		tokens: tokens,
		secure: secure,
	}
}

func (c *SessionCookies) Issue(w http.ResponseWriter, sess *domain.Session) error {
	token, err := c.tokens.GenerateToken(sess.ID, sess.ExpiresAt)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (c *SessionCookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionID returns the session id of a request whose cookie carries a valid signature.
func (c *SessionCookies) SessionID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	claims, err := c.tokens.ValidateToken(cookie.Value)
	if err != nil {
		return "", false
	}
	return claims.SessionID, true
}
