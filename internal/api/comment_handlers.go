package api

import (
	"net/http"

	"blogify/internal/comment"
	"blogify/internal/pagination"
	"blogify/internal/request"

	"github.com/gin-gonic/gin"
)

// GET /comments?page&pageSize
func ListCommentsHandler(comments *comment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := currentUserID(c)
		if !ok {
			return
		}
		q := c.Request.URL.Query()
		if err := request.Strict(q, "page", "pageSize"); err != nil {
			respondError(c, err, "failed to retrieve comments")
			return
		}
		page, err := pagination.Parse(q)
		if err != nil {
			respondError(c, err, "failed to retrieve comments")
			return
		}
		list, total, err := comments.ListByAuthor(c.Request.Context(), id, page)
		if err != nil {
			respondError(c, err, "failed to retrieve comments")
			return
		}
		if len(list) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "no comments found"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"comments": list, "meta": page.Meta(total)})
	}
}

// POST /comments/comment
func CreateCommentHandler(comments *comment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := currentUserID(c)
		if !ok {
			return
		}
		var in comment.CreateInput
		if err := request.DecodeJSON(c.Request.Body, &in); err != nil {
			respondError(c, err, "failed to create comment")
			return
		}
		cm, err := comments.Create(c.Request.Context(), id, in)
		if err != nil {
			respondError(c, err, "failed to create comment")
			return
		}
		c.JSON(http.StatusCreated, cm)
	}
}

// GET /comments/comment?id|uuid
func GetCommentHandler(comments *comment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		l, err := request.ParseLookup(c.Request.URL.Query(), "comment")
		if err != nil {
			respondError(c, err, "failed to get comment")
			return
		}
		cm, err := comments.Get(c.Request.Context(), l)
		if err != nil {
			respondError(c, err, "failed to get comment")
			return
		}
		c.JSON(http.StatusOK, cm)
	}
}

// DELETE /comments/comment?id|uuid  [admin only]
func DeleteCommentHandler(comments *comment.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		l, err := request.ParseLookup(c.Request.URL.Query(), "comment")
		if err != nil {
			respondError(c, err, "failed to delete comment")
			return
		}
		if err := comments.Delete(c.Request.Context(), l); err != nil {
			respondError(c, err, "failed to delete comment")
			return
		}
		c.Status(http.StatusNoContent)
	}
}
