package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/property-marketplace/internal/domain/entity"
	"github.com/oksasatya/property-marketplace/internal/domain/errs"
	"github.com/oksasatya/property-marketplace/internal/domain/repository"
	"github.com/oksasatya/property-marketplace/pkg/helpers"
	"github.com/oksasatya/property-marketplace/pkg/response"
)

const (
	CtxPrincipalKey = "principal"
	CtxUserIDKey    = "userID"
)

// IdentityResolver turns an Authorization header value into a principal.
// It decodes the bearer token, cross-checks the claimed email against the
// user directory, and confirms the binding between the two.
type IdentityResolver struct {
	Users repository.UserRepository
	JWT   *helpers.JWTManager
}

func NewIdentityResolver(users repository.UserRepository, jwt *helpers.JWTManager) *IdentityResolver {
	return &IdentityResolver{Users: users, JWT: jwt}
}

// Resolve maps a raw Authorization header value to a principal.
//
// A missing header or one without the Bearer prefix is not an error: the
// request simply stays unauthenticated (nil, nil). A token that fails
// verification is the one hard failure and returns errs.TokenInvalid.
// A directory miss, or a directory record whose email does not match the
// token's claim, silently leaves the request unauthenticated as well;
// the directory record's role wins over the token's when they differ.
func (r *IdentityResolver) Resolve(ctx context.Context, header string) (*entity.UserClaims, error) {
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return nil, nil
	}

	claims, err := r.JWT.ParseAccessToken(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return nil, err
	}

	u, err := r.Users.GetByEmail(ctx, claims.Email)
	if err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if claims.Email != u.Email {
		return nil, nil
	}

	claims.Role = u.Role
	return &claims, nil
}

// Auth installs the resolved principal into the Gin context and always
// lets the request continue, except when the token itself is invalid.
// Handlers that need a caller use RequireAuth behind this.
func Auth(resolver *IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := resolver.Resolve(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			response.DomainError(c, err)
			c.Abort()
			return
		}
		if principal != nil {
			c.Set(CtxPrincipalKey, principal)
			c.Set(CtxUserIDKey, principal.ID.String())
		}
		c.Next()
	}
}

// Principal returns the authenticated caller installed by Auth, if any.
func Principal(c *gin.Context) (*entity.UserClaims, bool) {
	v, ok := c.Get(CtxPrincipalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*entity.UserClaims)
	return p, ok
}

// RequireAuth rejects requests that reached this point unauthenticated.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := Principal(c); !ok {
			response.Error[any](c, 401, "authentication required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole gates a route group on the flat role tag.
func RequireRole(role entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := Principal(c)
		if !ok {
			response.Error[any](c, 401, "authentication required", nil)
			c.Abort()
			return
		}
		if p.Role != role {
			response.Error[any](c, 403, "insufficient role", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
