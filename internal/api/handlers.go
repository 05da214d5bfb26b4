package api

import (
	"log"
	"net/http"

	"blogify/internal/apperr"
	"blogify/internal/auth"

	"github.com/gin-gonic/gin"
)

// GET /health
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// securityHeaders sets the response headers every route carries.
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("Referrer-Policy", "no-referrer")
		h.Del("X-Powered-By")
		c.Next()
	}
}

// respondError writes err using its kind. Internal errors are logged and
// answered with fallback so their detail never reaches the client.
func respondError(c *gin.Context, err error, fallback string) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("[API] %s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, gin.H{"error": gin.H{"message": apperr.PublicMessage(err, fallback)}})
}

// currentUserID returns the principal attached by the guard, answering 401
// when the route was wired without one.
func currentUserID(c *gin.Context) (uint, bool) {
	p, ok := auth.PrincipalFrom(c)
	if !ok {
		respondError(c, auth.ErrUnauthorized, "unauthorized")
		return 0, false
	}
	return p.SubjectID, true
}
