package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/14kear/online_elections/internal/entity"
	"github.com/14kear/online_elections/internal/lib/response"
	sl "github.com/14kear/sso-prettyslog/slogpretty/errors"
	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

type Resolver interface {
	Resolve(ctx context.Context, credential string) (entity.Principal, error)
}

type AuthMiddleware struct {
	log      *slog.Logger
	resolver Resolver
}

func NewAuthMiddleware(log *slog.Logger, resolver Resolver) *AuthMiddleware {
	return &AuthMiddleware{log: log, resolver: resolver}
}

// Middleware resolves the bearer token and stores the principal in the gin
// context. Requests without a usable principal are aborted.
func (m *AuthMiddleware) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractTokenFromHeader(c.GetHeader("Authorization"))
		if token == "" {
			response.Fail(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		principal, err := m.resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			if response.StatusOf(err) == http.StatusInternalServerError {
				m.log.Error("failed to resolve principal", slog.String("path", c.FullPath()), sl.Err(err))
			}
			response.Error(c, err)
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// Principal returns the principal stored by the auth middleware.
func Principal(c *gin.Context) (entity.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return entity.Principal{}, false
	}
	p, ok := v.(entity.Principal)
	return p, ok
}

func extractTokenFromHeader(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
