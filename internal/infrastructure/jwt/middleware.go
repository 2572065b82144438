// Package jwtmw provides JWT issuance and the authentication/authorization
// middleware for the HTTP surface.
package jwtmw

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"hrm_backend/internal/api"
	"hrm_backend/internal/feature/auth/domain/entity"
)

// ContextUser is the gin context key under which the authenticated user is stored.
const ContextUser = "currentUser"

// UserFinder resolves the user referenced by a token's subject claim.
// Following Go convention: the interface is defined by the consumer (middleware),
// not the provider (auth adapters).
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// AuthRequired returns a Gin middleware that validates the bearer token and
// attaches the resolved user to the request context. Requests with a missing
// or invalid token, or whose user no longer exists, are rejected with 401.
func AuthRequired(users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Fail("you are not logged in"))
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. Load secret key from environment variable
		secret := os.Getenv(EnvKeyJWTSecret)
		if secret == "" {
			// Server misconfiguration (JWT_SECRET not set)
			c.AbortWithStatusJSON(http.StatusInternalServerError, api.Error("server misconfigured"))
			return
		}

		// 3. Parse and verify JWT signature
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			// Check signing algorithm (only HMAC allowed)
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Fail("invalid or expired token"))
			return
		}

		// 4. Extract the subject claim and resolve the user
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Fail("invalid or expired token"))
			return
		}
		sub, ok := claims["sub"].(float64) // JWT numbers are decoded as float64
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Fail("invalid or expired token"))
			return
		}

		user, err := users.FindByID(c.Request.Context(), uint(sub))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Fail("user no longer exists"))
			return
		}

		c.Set(ContextUser, user)
		// 5. Pass control to the next handler
		c.Next()
	}
}

// RestrictTo returns a middleware that rejects requests whose authenticated
// user's role is not in the allowed set. It must run after AuthRequired.
func RestrictTo(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.Fail("you are not logged in"))
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			api.Fail("you do not have permission to perform this action"))
	}
}

// CurrentUser returns the authenticated user attached by AuthRequired,
// or nil when the request is unauthenticated.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	user, ok := v.(*entity.User)
	if !ok {
		return nil
	}
	return user
}
