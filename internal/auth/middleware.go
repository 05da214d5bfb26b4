package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// Guard failures are kept apart for logging but answered identically.
var (
	errUnauthenticated = errors.New("unauthenticated")
	errNotAdmin        = errors.New("not an admin")
)

type Guard struct {
	tokens   *TokenService
	users    CredentialStore
	presence *Presence
}

func NewGuard(tokens *TokenService, users CredentialStore, presence *Presence) *Guard {
	return &Guard{tokens: tokens, users: users, presence: presence}
}

// RequireUser admits any request bearing a valid token for an existing user.
func (g *Guard) RequireUser() gin.HandlerFunc {
	return g.middleware(false)
}

// RequireAdmin additionally requires the user to be an admin.
func (g *Guard) RequireAdmin() gin.HandlerFunc {
	return g.middleware(true)
}

func (g *Guard) middleware(requireAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := g.authorize(c, requireAdmin)
		if err != nil {
			if errors.Is(err, errNotAdmin) {
				log.Printf("[Auth] user %d denied admin route %s", p.SubjectID, c.FullPath())
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": ErrUnauthorized.Message}})
			return
		}
		SetPrincipal(c, p)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 200*time.Millisecond)
		if err := g.presence.MarkActive(ctx, p.SubjectID); err != nil {
			log.Printf("[Auth] presence update failed: %v", err)
		}
		cancel()

		c.Next()
	}
}

func (g *Guard) authorize(c *gin.Context, requireAdmin bool) (Principal, error) {
	tokenStr, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		return Principal{}, errUnauthenticated
	}
	p, err := g.tokens.Verify(tokenStr)
	if err != nil {
		return Principal{}, errUnauthenticated
	}
	u, err := g.users.FindByID(c.Request.Context(), p.SubjectID)
	if err != nil {
		return Principal{}, errUnauthenticated
	}
	if requireAdmin && !u.IsAdmin {
		return p, errNotAdmin
	}
	return p, nil
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" value.
func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// PrincipalFrom returns the principal attached by a guard.
func PrincipalFrom(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

// SetPrincipal attaches p to the request; the guards and tests use it.
func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
}
