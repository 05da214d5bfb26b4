package api

import (
	"net/http"

	"blogify/internal/pagination"
	"blogify/internal/post"
	"blogify/internal/request"

	"github.com/gin-gonic/gin"
)

// GET /posts?page&pageSize&userId  [admin only]
func ListPostsHandler(posts *post.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Request.URL.Query()
		if err := request.Strict(q, "page", "pageSize", "userId"); err != nil {
			respondError(c, err, "failed to retrieve posts")
			return
		}
		var authorID uint
		if raw, ok := q["userId"]; ok {
			id, err := request.PositiveID(raw)
			if err != nil {
				respondError(c, err, "failed to retrieve posts")
				return
			}
			authorID = id
		}
		listPosts(c, posts, authorID)
	}
}

// GET /posts/user?page&pageSize
func ListUserPostsHandler(posts *post.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := currentUserID(c)
		if !ok {
			return
		}
		if err := request.Strict(c.Request.URL.Query(), "page", "pageSize"); err != nil {
			respondError(c, err, "failed to retrieve posts")
			return
		}
		listPosts(c, posts, id)
	}
}

func listPosts(c *gin.Context, posts *post.Service, authorID uint) {
	page, err := pagination.Parse(c.Request.URL.Query())
	if err != nil {
		respondError(c, err, "failed to retrieve posts")
		return
	}
	list, total, err := posts.List(c.Request.Context(), page, authorID)
	if err != nil {
		respondError(c, err, "failed to retrieve posts")
		return
	}
	if len(list) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "no posts found"}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": list, "meta": page.Meta(total)})
}

// POST /posts/post
func CreatePostHandler(posts *post.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := currentUserID(c)
		if !ok {
			return
		}
		var in post.CreateInput
		if err := request.DecodeJSON(c.Request.Body, &in); err != nil {
			respondError(c, err, "failed to create post")
			return
		}
		p, err := posts.Create(c.Request.Context(), id, in)
		if err != nil {
			respondError(c, err, "failed to create post")
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

// GET /posts/post?id|uuid
func GetPostHandler(posts *post.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		l, err := request.ParseLookup(c.Request.URL.Query(), "post")
		if err != nil {
			respondError(c, err, "failed to get post")
			return
		}
		p, err := posts.Get(c.Request.Context(), l)
		if err != nil {
			respondError(c, err, "failed to get post")
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// PATCH /posts/post?id|uuid
func UpdatePostHandler(posts *post.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := currentUserID(c)
		if !ok {
			return
		}
		l, err := request.ParseLookup(c.Request.URL.Query(), "post")
		if err != nil {
			respondError(c, err, "failed to update post")
			return
		}
		var patch post.Patch
		if err := request.DecodeJSON(c.Request.Body, &patch); err != nil {
			respondError(c, err, "failed to update post")
			return
		}
		p, err := posts.Update(c.Request.Context(), id, l, patch)
		if err != nil {
			respondError(c, err, "failed to update post")
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// DELETE /posts/post?id|uuid
func DeletePostHandler(posts *post.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := currentUserID(c)
		if !ok {
			return
		}
		l, err := request.ParseLookup(c.Request.URL.Query(), "post")
		if err != nil {
			respondError(c, err, "failed to delete post")
			return
		}
		if err := posts.Delete(c.Request.Context(), id, l); err != nil {
			respondError(c, err, "failed to delete post")
			return
		}
		c.Status(http.StatusNoContent)
	}
}
