package middleware

import (
	"net/http"
	"strings"
	"time"

	"carrental/internal/domain/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	authUserIDKey = "auth_user_id"
	authEmailKey  = "auth_email"
	authRoleKey   = "auth_role"
)

// SignToken issues an HS256 token carrying the identity the owner checks
// compare against.
func SignToken(secret string, u models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"role":    u.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// RequireAuth validates the bearer token and stores the caller identity in
// the request context.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}
		if v, ok := claims["user_id"].(float64); ok {
			c.Set(authUserIDKey, int64(v))
		}
		if v, ok := claims["email"].(string); ok {
			c.Set(authEmailKey, v)
		}
		if v, ok := claims["role"].(string); ok {
			c.Set(authRoleKey, v)
		}
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the caller carries the admin role.
// Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetAuthRole(c) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}

func GetAuthUserID(c *gin.Context) int64 {
	if v, ok := c.Get(authUserIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

func GetAuthEmail(c *gin.Context) string {
	if v, ok := c.Get(authEmailKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func GetAuthRole(c *gin.Context) string {
	if v, ok := c.Get(authRoleKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func IsAdmin(c *gin.Context) bool {
	return GetAuthRole(c) == models.RoleAdmin
}
