package comment

import (
	"context"
	"errors"

	"blogify/internal/apperr"
	"blogify/internal/pagination"
	"blogify/internal/request"
)

// PostChecker reports whether a post exists.
type PostChecker interface {
	PostExists(ctx context.Context, id uint) (bool, error)
}

type CreateInput struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
	PostID  uint   `json:"postId" validate:"required,gt=0"`
}

type Service struct {
	store *Store
	posts PostChecker
}

func NewService(store *Store, posts PostChecker) *Service {
	return &Service{store: store, posts: posts}
}

func (s *Service) Create(ctx context.Context, authorID uint, in CreateInput) (*Comment, error) {
	ok, err := s.posts.PostExists(ctx, in.PostID)
	if err != nil {
		return nil, apperr.Internal("check post", err)
	}
	if !ok {
		return nil, apperr.BadRequest("invalid post")
	}
	c := &Comment{Content: in.Content, UserID: authorID, PostID: in.PostID}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, apperr.Internal("create comment", err)
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, l request.Lookup) (*Comment, error) {
	c, err := s.store.Find(ctx, l)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("comment not found")
		}
		return nil, apperr.Internal("find comment", err)
	}
	return c, nil
}

func (s *Service) ListByAuthor(ctx context.Context, authorID uint, p pagination.Page) ([]Comment, int64, error) {
	comments, total, err := s.store.ListByUser(ctx, authorID, p)
	if err != nil {
		return nil, 0, apperr.Internal("list comments", err)
	}
	return comments, total, nil
}

// Delete removes the comment selected by l. Callers are admin-gated, so no
// ownership check applies.
func (s *Service) Delete(ctx context.Context, l request.Lookup) error {
	c, err := s.store.Find(ctx, l)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("failed to retrieve comment to be deleted")
		}
		return apperr.Internal("find comment", err)
	}
	if err := s.store.Delete(ctx, c.ID); err != nil {
		return apperr.Internal("delete comment", err)
	}
	return nil
}
