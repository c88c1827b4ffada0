package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/rupaykg-biomass/internal/application"
	"github.com/oksasatya/rupaykg-biomass/pkg/response"
)

const (
	CtxPrincipalKey = "principal"
	CtxSubjectKey   = "subject"
)

// TokenVerifier turns a bearer token into the calling principal.
type TokenVerifier interface {
	Verify(token string) (application.Principal, error)
}

// Auth requires an "Authorization: Bearer <token>" header. On success the
// principal and its subject are stored in the Gin context.
func Auth(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "missing bearer token", nil)
			return
		}
		p, err := v.Verify(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid or expired token", nil)
			return
		}
		c.Set(CtxPrincipalKey, p)
		c.Set(CtxSubjectKey, p.Subject)
		c.Next()
	}
}

// PrincipalFrom returns the principal set by Auth.
func PrincipalFrom(c *gin.Context) (application.Principal, bool) {
	v, ok := c.Get(CtxPrincipalKey)
	if !ok {
		return application.Principal{}, false
	}
	p, ok := v.(application.Principal)
	return p, ok
}

func bearerToken(h string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(h), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
