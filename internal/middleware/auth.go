package middleware

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cema-health/program-manager/internal/authz"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/session"
	"github.com/cema-health/program-manager/internal/token"
)

const (
	ContextPrincipal = "principal"
	ContextSessionID = "sessionID"
)

type Authenticator struct {
	sessions   session.Store
	tokens     *token.Issuer
	cookieName string
	log        *slog.Logger
}

func NewAuthenticator(
	sessions session.Store,
	tokens *token.Issuer,
	cookieName string,
	log *slog.Logger,
) *Authenticator {
	return &Authenticator{
		sessions:   sessions,
		tokens:     tokens,
		cookieName: cookieName,
		log:        log,
	}
}

// Required resolves the principal from the session cookie, falling back to a
// bearer token. A bearer token is honoured only while the session it was
// issued with still exists. Requests with neither are rejected with 401.
func (a *Authenticator) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sid, err := c.Cookie(a.cookieName); err == nil && sid != "" {
			if p, ok := a.lookup(c, sid); ok {
				a.authenticate(c, p, sid)
				return
			}
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_credentials")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid_authorization_header")
			return
		}

		id, err := a.tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			abortUnauthorized(c, "invalid_token")
			return
		}

		p, ok := a.lookup(c, id.SessionID)
		if !ok || p.UserID != id.Principal.UserID {
			abortUnauthorized(c, "invalid_token")
			return
		}

		a.authenticate(c, p, id.SessionID)
	}
}

// lookup returns the principal of a live session. Store failures are logged
// and treated as no session.
func (a *Authenticator) lookup(c *gin.Context, sid string) (authz.Principal, bool) {
	sess, err := a.sessions.Get(c.Request.Context(), sid)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			a.log.WarnContext(c.Request.Context(), "session lookup failed", slog.Any("error", err))
		}
		return authz.Principal{}, false
	}

	p, err := sess.Principal()
	if err != nil {
		return authz.Principal{}, false
	}
	return p, true
}

func (a *Authenticator) authenticate(c *gin.Context, p authz.Principal, sid string) {
	c.Set(ContextPrincipal, p)
	c.Set(ContextSessionID, sid)
	c.Next()
}

func abortUnauthorized(c *gin.Context, code string) {
	httperr.Unauthorized(c, code, "Authentication required.")
	c.Abort()
}

// PrincipalFrom returns the authenticated caller or the zero Principal.
func PrincipalFrom(c *gin.Context) authz.Principal {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return authz.Principal{}
	}
	p, _ := v.(authz.Principal)
	return p
}

func SessionIDFrom(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}
