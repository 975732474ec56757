package jwtmw

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"task_backend/internal/api"
	"task_backend/internal/feature/auth/domain"
	"task_backend/internal/feature/auth/domain/entity"
)

// contextUserKey is the gin context key holding the resolved *entity.User.
const contextUserKey = "currentUser"

// UserResolver re-resolves the current user record for a verified token.
// Claims alone are a stale snapshot; authorization decisions run against the
// live record.
type UserResolver interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// SetCurrentUser attaches the user to the request context. AuthRequired
// calls it after token validation; handler tests use it to fake a session.
func SetCurrentUser(c *gin.Context, user *entity.User) {
	c.Set(contextUserKey, user)
}

// CurrentUser returns the user attached to the request by AuthRequired.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok
}

// AuthRequired returns a gin middleware that validates the bearer token,
// re-resolves the user from the store and attaches it to the context.
func AuthRequired(issuer *Issuer, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				api.Fail("NO_TOKEN", "No token provided. Authorization denied."))
			return
		}
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				api.Fail("INVALID_TOKEN_FORMAT", "Token must be in Bearer format"))
			return
		}

		claims, err := issuer.Verify(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			code := "INVALID_TOKEN"
			msg := "Token is not valid"
			if errors.Is(err, ErrTokenExpired) {
				code = "TOKEN_EXPIRED"
				msg = "Token has expired. Please login again."
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Fail(code, msg))
			return
		}

		id, err := claims.UserID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Fail("INVALID_TOKEN", "Token is not valid"))
			return
		}

		user, err := users.FindByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				// The token is cryptographically fine but the account is gone.
				c.AbortWithStatusJSON(http.StatusUnauthorized, api.Fail("USER_NOT_FOUND", "User not found"))
				return
			}
			slog.Error("auth middleware user lookup failed", "error", err, "user_id", id)
			c.AbortWithStatusJSON(http.StatusInternalServerError, api.Fail("SERVER_ERROR", "Server error in auth middleware"))
			return
		}

		SetCurrentUser(c, user)
		c.Next()
	}
}

// AdminRequired gates admin-only routes. It must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, api.Fail("ACCESS_DENIED", "Admin access required"))
			return
		}
		c.Next()
	}
}
