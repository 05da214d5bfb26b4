package api

import (
	"net/http"

	"blogify/internal/auth"
	"blogify/internal/request"

	"github.com/gin-gonic/gin"
)

type SignInRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// POST /auth
// Every failure, malformed bodies included, is answered with the same 401.
func SignInHandler(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignInRequest
		if err := request.DecodeJSON(c.Request.Body, &req); err != nil {
			respondError(c, auth.ErrUnauthorized, "unauthorized")
			return
		}
		token, err := svc.SignIn(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, auth.ErrUnauthorized, "unauthorized")
			return
		}
		c.JSON(http.StatusOK, gin.H{"access_token": token})
	}
}
