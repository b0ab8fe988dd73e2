package middleware

import (
	"net/http"
	"strings"

	"media-uploader/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// authenticate resolves the request identity from the session or, failing
// that, from a Bearer token, and loads it into the context.
func authenticate(c *gin.Context) bool {
	session := sessions.Default(c)
	id := session.Get("id")
	username := session.Get("username")
	if username != nil {
		userID, idOk := id.(int64)
		name, nameOk := username.(string)
		if idOk && nameOk {
			c.Set("id", userID)
			c.Set("username", name)
			c.Set("authByToken", false)
			return true
		}
	}

	token := c.Request.Header.Get("Authorization")
	token = strings.TrimPrefix(token, "Bearer ")
	if token == "" {
		return false
	}
	claims, err := service.ValidateToken(token)
	if err != nil {
		return false
	}
	c.Set("id", claims.UserID)
	c.Set("username", claims.Username)
	c.Set("authByToken", true)
	return true
}

// WebAuth guards page routes, sending anonymous visitors to the login form.
func WebAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c) {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// APIAuth guards JSON routes, answering 401 instead of redirecting.
func APIAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "not logged in or invalid token",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// SessionUsername returns the logged-in username without enforcing auth.
// Used by routes that behave differently for authenticated visitors.
func SessionUsername(c *gin.Context) string {
	session := sessions.Default(c)
	if username, ok := session.Get("username").(string); ok {
		return username
	}
	return ""
}
