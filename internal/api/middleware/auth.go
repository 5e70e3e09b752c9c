package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oaktheatre/boxoffice/internal/api/handler/v1/response"
	"github.com/oaktheatre/boxoffice/internal/domain"
	"github.com/oaktheatre/boxoffice/internal/pkg/jwthelper"
)

// UserKey is the gin context key holding the authenticated domain.User.
const UserKey = "user"

var (
	errMissingToken = errors.New("missing or malformed authorization header")
	errNoUser       = errors.New("no authenticated user in context")
	errWrongRole    = errors.New("insufficient role for this resource")
)

type AuthUserService interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type Authenticator struct {
	signingKey string
	users      AuthUserService
}

func NewAuthenticator(signingKey string, users AuthUserService) *Authenticator {
	return &Authenticator{
		signingKey: signingKey,
		users:      users,
	}
}

// VerifyJWT validates the bearer token and loads the user into the context.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		claims, err := jwthelper.ParseToken([]byte(a.signingKey), token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		user, err := a.users.FindByID(ctx.Request.Context(), claims.UserID)
		if err != nil || !user.IsActive {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		ctx.Set(UserKey, user)
		ctx.Next()
	}
}

// RequireRoles rejects authenticated users whose role is not in the list.
// It must run after VerifyJWT.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := GetUser(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized(errNoUser))
			return
		}

		for _, role := range roles {
			if user.Role == role {
				ctx.Next()
				return
			}
		}

		response.RenderErr(ctx, response.ErrPermissionDenied(errWrongRole))
	}
}

// GetUser returns the authenticated user set by VerifyJWT.
func GetUser(ctx *gin.Context) (domain.User, bool) {
	value, exists := ctx.Get(UserKey)
	if !exists {
		return domain.User{}, false
	}

	user, ok := value.(domain.User)

	return user, ok
}
