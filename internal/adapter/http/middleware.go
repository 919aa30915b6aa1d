package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// sessionEmailKey is the gin context key carrying the authenticated email.
const sessionEmailKey = "sessionEmail"

// requireSession validates the bearer session token and stores the
// authenticated email on the request context.
func (s *Server) requireSession(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	email, err := s.tokens.Verify(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	c.Set(sessionEmailKey, email)
	c.Next()
}

// sessionEmail returns the authenticated email set by requireSession.
func sessionEmail(c *gin.Context) string {
	return c.GetString(sessionEmailKey)
}
