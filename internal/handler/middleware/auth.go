package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"wild-oasis-api/internal/pkg/cookie"
	"wild-oasis-api/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator commands.TokenValidator
}

const (
	ctxGuestIDKey    = "guest_id"
	ctxGuestEmailKey = "guest_email"
	ctxGuestNameKey  = "guest_name"
)

func NewAuthMiddleware(tokenValidator commands.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		guest, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxGuestIDKey, guest.ID)
		c.Set(ctxGuestEmailKey, guest.Email)
		c.Set(ctxGuestNameKey, guest.Name)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if token := cookie.GetAccessToken(c); token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func GetGuestID(c *gin.Context) (uuid.UUID, bool) {
	guestID, exists := c.Get(ctxGuestIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := guestID.(uuid.UUID)
	return id, ok
}

// GetGuestInfo rebuilds the authenticated guest identity from context.
func GetGuestInfo(c *gin.Context) (commands.GuestInfo, bool) {
	id, ok := GetGuestID(c)
	if !ok {
		return commands.GuestInfo{}, false
	}

	email, _ := c.Get(ctxGuestEmailKey)
	name, _ := c.Get(ctxGuestNameKey)

	emailStr, emailOK := email.(string)
	nameStr, nameOK := name.(string)
	if !emailOK || !nameOK {
		return commands.GuestInfo{}, false
	}

	return commands.GuestInfo{ID: id, Email: emailStr, Name: nameStr}, true
}
