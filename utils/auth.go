// utils/auth.go
package utils

import (
	"errors"
	"net/http"
	"os"
	"time"

	"salondesk-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const SessionCookieName = "session"

// Hash PIN
func HashPIN(pin string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(pin), 12)
	return string(bytes), err
}

// Check PIN
func CheckPINHash(pin, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin))
	return err == nil
}

// GenerateSessionToken issues the signed token stored in the session cookie.
func GenerateSessionToken(role *models.AdminRole) (string, error) {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return "", errors.New("SESSION_SECRET not set")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":         role.ID.String(),
		"name":        role.Name,
		"role":        role.Role,
		"permissions": []string(role.Permissions),
		"exp":         time.Now().Add(12 * time.Hour).Unix(),
		"iat":         time.Now().Unix(),
	})

	return token.SignedString([]byte(secret))
}

// SetSessionCookie attaches the session token as an httpOnly cookie.
func SetSessionCookie(c *gin.Context, token string) {
	c.SetCookie(SessionCookieName, token, 12*3600, "/", "", false, true)
}

// ClearSessionCookie logs the session out.
func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}

// AuthMiddleware requires a valid session cookie. Missing or invalid
// session -> 401.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(SessionCookieName)
		if err != nil || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(os.Getenv("SESSION_SECRET")), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid session claims"})
			return
		}

		permissions := []string{}
		if raw, ok := claims["permissions"].([]interface{}); ok {
			for _, p := range raw {
				if s, ok := p.(string); ok {
					permissions = append(permissions, s)
				}
			}
		}

		c.Set("roleId", claims["sub"])
		c.Set("roleName", claims["name"])
		c.Set("role", claims["role"])
		c.Set("permissions", permissions)

		c.Next()
	}
}

// RequirePermission gates a route on a permission string. An empty
// permission list on the session means unrestricted access ("no
// restrictions configured yet"), so a role with an empty list gets full
// access, not none.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("permissions")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		permissions, ok := value.([]string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		if len(permissions) == 0 {
			c.Next()
			return
		}

		for _, p := range permissions {
			if p == permission {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Permission denied: " + permission})
	}
}
