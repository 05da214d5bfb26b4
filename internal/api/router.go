package api

import (
	"blogify/internal/auth"
	"blogify/internal/comment"
	"blogify/internal/config"
	"blogify/internal/post"
	"blogify/internal/user"

	"github.com/gin-gonic/gin"
)

// Deps are the services the handlers are built from.
type Deps struct {
	Auth     *auth.Service
	Guard    *auth.Guard
	Presence *auth.Presence
	Users    *user.Service
	Posts    *post.Service
	Comments *comment.Service
}

func SetupRouter(cfg *config.Config, d Deps) *gin.Engine {
	r := gin.Default()
	r.Use(securityHeaders())

	requireUser := d.Guard.RequireUser()
	requireAdmin := d.Guard.RequireAdmin()

	// API routes, e.g. /api/v1/posts
	group := r.Group(cfg.Server.Subpath)
	{
		group.GET("/health", healthHandler)

		group.POST("/auth", SignInHandler(d.Auth))

		// Users
		group.POST("/users/user", SignUpHandler(d.Users))
		group.GET("/users", requireAdmin, ListUsersHandler(d.Users))
		group.GET("/users/user", requireUser, GetUserHandler(d.Users))
		group.PATCH("/users/user", requireAdmin, PatchUserHandler(d.Users))
		group.PUT("/users/user", requireAdmin, PutUserHandler(d.Users))
		group.GET("/users/current", requireUser, GetCurrentUserHandler(d.Users))
		group.PATCH("/users/current", requireUser, UpdateCurrentUserHandler(d.Users))
		group.GET("/users/online", requireAdmin, OnlineUserCountHandler(d.Presence))

		// Posts
		group.GET("/posts", requireAdmin, ListPostsHandler(d.Posts))
		group.GET("/posts/user", requireUser, ListUserPostsHandler(d.Posts))
		group.POST("/posts/post", requireUser, CreatePostHandler(d.Posts))
		group.GET("/posts/post", GetPostHandler(d.Posts))
		group.PATCH("/posts/post", requireUser, UpdatePostHandler(d.Posts))
		group.DELETE("/posts/post", requireUser, DeletePostHandler(d.Posts))

		// Comments
		group.GET("/comments", requireUser, ListCommentsHandler(d.Comments))
		group.POST("/comments/comment", requireUser, CreateCommentHandler(d.Comments))
		group.GET("/comments/comment", requireUser, GetCommentHandler(d.Comments))
		group.DELETE("/comments/comment", requireAdmin, DeleteCommentHandler(d.Comments))
	}

	return r
}
