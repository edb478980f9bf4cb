package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wyckoffpro-backend/internal/infra/identity"
)

const identityKey = "identity_user"

// Profiles is the slice of the identity client the middleware needs.
type Profiles interface {
	User(ctx context.Context, id string) (*identity.User, error)
}

// IdentityResolver authenticates requests against the external identity
// provider: verify the bearer session token, then fetch the full profile.
type IdentityResolver struct {
	verifier identity.Verifier
	profiles Profiles
	log      *slog.Logger
}

func NewIdentityResolver(v identity.Verifier, p Profiles, log *slog.Logger) *IdentityResolver {
	return &IdentityResolver{verifier: v, profiles: p, log: log}
}

// Require aborts with 401 when no identity can be resolved.
func (r *IdentityResolver) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := r.resolve(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		SetCurrentUser(c, user)
		c.Next()
	}
}

// Optional resolves best-effort and always continues. The subscription read
// fails open toward "new user", so an unauthenticated dashboard poll must
// not 401.
func (r *IdentityResolver) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := r.resolve(c); err == nil {
			SetCurrentUser(c, user)
		}
		c.Next()
	}
}

func (r *IdentityResolver) resolve(c *gin.Context) (*identity.User, error) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" || token == authHeader {
		return nil, identity.ErrInvalidToken
	}

	subject, err := r.verifier.Verify(c.Request.Context(), token)
	if err != nil {
		return nil, err
	}

	user, err := r.profiles.User(c.Request.Context(), subject)
	if err != nil {
		r.log.Warn("identity profile fetch failed", "subject", subject, "error", err)
		return nil, err
	}
	return user, nil
}

// SetCurrentUser stores the resolved identity on the request context.
func SetCurrentUser(c *gin.Context, user *identity.User) {
	c.Set(identityKey, user)
}

// CurrentUser returns the resolved identity, or nil on soft-auth routes
// where resolution failed.
func CurrentUser(c *gin.Context) *identity.User {
	value, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	user, _ := value.(*identity.User)
	return user
}
