package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/edusphere/backend/internal/app/models"
	"github.com/edusphere/backend/internal/config"
)

// PrincipalKey is the gin context key the principal is stored under.
const PrincipalKey = "principal"

// Development principal headers. Outside production mode a caller can shape
// the fabricated principal with these; absent headers fall back to a default
// development user.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserName = "X-User-Name"
	HeaderUserRole = "X-User-Role"
)

// AuthMiddleware resolves the request principal. Token verification is a
// stub: outside production mode every request gets a fabricated principal so
// the authorization policy downstream always has something to decide over.
// In production mode no principal is attached and protected mutations fail
// with 401 at the policy check.
type AuthMiddleware struct {
	cfg    *config.Config
	logger zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(cfg *config.Config, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg, logger: logger}
}

// Principal attaches the resolved principal to the gin context.
func (m *AuthMiddleware) Principal() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.cfg.IsProduction() {
			c.Next()
			return
		}

		user := &models.User{
			Username: "dev-user",
			Email:    "dev-user@edusphere.local",
			Role:     models.RoleInstructor,
		}
		user.ID = "doc_dev"
		user.Kind = models.KindUser

		if id := c.GetHeader(HeaderUserID); id != "" {
			user.ID = id
		}
		if name := c.GetHeader(HeaderUserName); name != "" {
			user.Username = name
			user.Email = name + "@edusphere.local"
		}
		if role := c.GetHeader(HeaderUserRole); role != "" {
			if r := models.Role(role); r.Valid() {
				user.Role = r
			} else {
				m.logger.Warn().Str("role", role).Msg("Ignoring unknown role header")
			}
		}

		c.Set(PrincipalKey, user)
		c.Next()
	}
}

// CurrentPrincipal extracts the principal set by Principal, or nil.
func CurrentPrincipal(c *gin.Context) *models.User {
	value, exists := c.Get(PrincipalKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
