package cookie

import (
	"github.com/gin-gonic/gin"
)

// Token cookies are set by the main application on its own domain; this
// service only reads the access token when present.
const AccessTokenCookieName = "access_token"

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}
