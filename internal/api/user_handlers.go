package api

import (
	"net/http"

	"blogify/internal/auth"
	"blogify/internal/pagination"
	"blogify/internal/request"
	"blogify/internal/user"

	"github.com/gin-gonic/gin"
)

// POST /users/user
func SignUpHandler(users *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in user.CreateInput
		if err := request.DecodeJSON(c.Request.Body, &in); err != nil {
			respondError(c, err, "failed to create user")
			return
		}
		u, err := users.SignUp(c.Request.Context(), in)
		if err != nil {
			respondError(c, err, "failed to create user")
			return
		}
		c.JSON(http.StatusCreated, u.View())
	}
}

// GET /users  [admin only]
func ListUsersHandler(users *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Request.URL.Query()
		if err := request.Strict(q, "page", "pageSize"); err != nil {
			respondError(c, err, "failed to get users")
			return
		}
		page, err := pagination.Parse(q)
		if err != nil {
			respondError(c, err, "failed to get users")
			return
		}
		list, total, err := users.List(c.Request.Context(), page)
		if err != nil {
			respondError(c, err, "failed to get users")
			return
		}
		if len(list) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "no users found"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": user.Views(list), "meta": page.Meta(total)})
	}
}

// GET /users/user?id|uuid|email
func GetUserHandler(users *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		l, err := request.ParseUserLookup(c.Request.URL.Query())
		if err != nil {
			respondError(c, err, "failed to get user")
			return
		}
		u, err := users.Get(c.Request.Context(), l)
		if err != nil {
			respondError(c, err, "failed to get user")
			return
		}
		c.JSON(http.StatusOK, u.View())
	}
}

// PATCH /users/user?id|uuid  [admin only]
func PatchUserHandler(users *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		l, err := request.ParseLookup(c.Request.URL.Query(), "user")
		if err != nil {
			respondError(c, err, "failed to update user")
			return
		}
		var patch user.Patch
		if err := request.DecodeJSON(c.Request.Body, &patch); err != nil {
			respondError(c, err, "failed to update user")
			return
		}
		updateUser(c, users, l, patch)
	}
}

// PUT /users/user?id|uuid  [admin only]
func PutUserHandler(users *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		l, err := request.ParseLookup(c.Request.URL.Query(), "user")
		if err != nil {
			respondError(c, err, "failed to update user")
			return
		}
		var full user.FullUpdate
		if err := request.DecodeJSON(c.Request.Body, &full); err != nil {
			respondError(c, err, "failed to update user")
			return
		}
		updateUser(c, users, l, full.Patch())
	}
}

// GET /users/current
func GetCurrentUserHandler(users *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := currentUserID(c)
		if !ok {
			return
		}
		u, err := users.Get(c.Request.Context(), request.UserLookup{Lookup: request.Lookup{ID: id}})
		if err != nil {
			respondError(c, err, "failed to get user")
			return
		}
		c.JSON(http.StatusOK, u.View())
	}
}

// PATCH /users/current
func UpdateCurrentUserHandler(users *user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := currentUserID(c)
		if !ok {
			return
		}
		var profile user.ProfilePatch
		if err := request.DecodeJSON(c.Request.Body, &profile); err != nil {
			respondError(c, err, "failed to update user")
			return
		}
		updateUser(c, users, request.Lookup{ID: id}, profile.Patch())
	}
}

func updateUser(c *gin.Context, users *user.Service, l request.Lookup, patch user.Patch) {
	u, err := users.Update(c.Request.Context(), l, patch)
	if err != nil {
		respondError(c, err, "failed to update user")
		return
	}
	c.JSON(http.StatusOK, u.View())
}

// GET /users/online  [admin only]
func OnlineUserCountHandler(presence *auth.Presence) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := presence.OnlineCount(c.Request.Context())
		if err != nil {
			respondError(c, err, "failed to count online users")
			return
		}
		c.JSON(http.StatusOK, gin.H{"online": count})
	}
}
