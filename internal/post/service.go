package post

import (
	"context"
	"errors"
	"fmt"

	"blogify/internal/apperr"
	"blogify/internal/config"
	"blogify/internal/pagination"
	"blogify/internal/request"
	"blogify/internal/user"
)

// DeleteRule decides who may delete a post.
type DeleteRule string

const (
	// DeleteOwnerOrAdmin lets the author or any admin delete a post.
	DeleteOwnerOrAdmin DeleteRule = config.DeleteRuleOwnerOrAdmin
	// DeleteAdminAndOwner requires the actor to be an admin and the author.
	DeleteAdminAndOwner DeleteRule = config.DeleteRuleAdminAndOwner
)

func ParseDeleteRule(s string) (DeleteRule, error) {
	switch r := DeleteRule(s); r {
	case DeleteOwnerOrAdmin, DeleteAdminAndOwner:
		return r, nil
	}
	return "", fmt.Errorf("unknown delete rule %q", s)
}

// Allows reports whether actor may delete p under rule r.
func (r DeleteRule) Allows(p *Post, actor *user.User) bool {
	owner := actor.ID == p.UserID
	if r == DeleteAdminAndOwner {
		return owner && actor.IsAdmin
	}
	return owner || actor.IsAdmin
}

// CanUpdate reports whether actor may edit p: its author or an admin.
func CanUpdate(p *Post, actor *user.User) bool {
	return actor.ID == p.UserID || actor.IsAdmin
}

// UserFinder resolves the acting user for role checks.
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*user.User, error)
}

type CreateInput struct {
	Title   string `json:"title" validate:"required,min=1,max=50"`
	Content string `json:"content" validate:"required,min=1"`
}

type Patch struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=50"`
	Content *string `json:"content" validate:"omitempty,min=1"`
}

func (p Patch) Empty() bool {
	return p.Title == nil && p.Content == nil
}

type Service struct {
	store      *Store
	users      UserFinder
	deleteRule DeleteRule
}

func NewService(store *Store, users UserFinder, rule DeleteRule) *Service {
	return &Service{store: store, users: users, deleteRule: rule}
}

func (s *Service) Create(ctx context.Context, authorID uint, in CreateInput) (*Post, error) {
	p := &Post{Title: in.Title, Content: in.Content, UserID: authorID}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, apperr.Internal("create post", err)
	}
	return p, nil
}

// Get returns the post with its comments.
func (s *Service) Get(ctx context.Context, l request.Lookup) (*Post, error) {
	return s.find(ctx, l, true, "post not found")
}

// List pages through all posts, or only authorID's when it is non-zero.
func (s *Service) List(ctx context.Context, p pagination.Page, authorID uint) ([]Post, int64, error) {
	posts, total, err := s.store.List(ctx, p, authorID)
	if err != nil {
		return nil, 0, apperr.Internal("list posts", err)
	}
	return posts, total, nil
}

// Update changes the supplied fields of the post if actorID owns it or is an admin.
func (s *Service) Update(ctx context.Context, actorID uint, l request.Lookup, patch Patch) (*Post, error) {
	if patch.Empty() {
		return nil, apperr.BadRequest("kindly provide one or both of post title or post content")
	}
	p, err := s.find(ctx, l, false, "cannot update post")
	if err != nil {
		return nil, err
	}
	if p.UserID != actorID {
		actor, err := s.actor(ctx, actorID, "cannot update post")
		if err != nil {
			return nil, err
		}
		if !CanUpdate(p, actor) {
			return nil, apperr.Forbidden("cannot update post")
		}
	}
	fields := map[string]any{}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Content != nil {
		fields["content"] = *patch.Content
	}
	if err := s.store.Update(ctx, p.ID, fields); err != nil {
		return nil, apperr.Internal("update post", err)
	}
	return s.find(ctx, request.Lookup{ID: p.ID}, false, "post not found")
}

// Delete removes the post if the configured rule allows actorID to.
func (s *Service) Delete(ctx context.Context, actorID uint, l request.Lookup) error {
	p, err := s.find(ctx, l, false, "failed to delete post")
	if err != nil {
		return err
	}
	actor, err := s.actor(ctx, actorID, "cannot delete post")
	if err != nil {
		return err
	}
	if !s.deleteRule.Allows(p, actor) {
		return apperr.Forbidden("cannot delete post")
	}
	if err := s.store.Delete(ctx, p.ID); err != nil {
		return apperr.Internal("delete post", err)
	}
	return nil
}

func (s *Service) find(ctx context.Context, l request.Lookup, withComments bool, notFound string) (*Post, error) {
	p, err := s.store.Find(ctx, l, withComments)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound(notFound)
		}
		return nil, apperr.Internal("find post", err)
	}
	return p, nil
}

// actor loads the acting user. A missing record is a permission failure.
func (s *Service) actor(ctx context.Context, id uint, forbidden string) (*user.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, apperr.Forbidden(forbidden)
		}
		return nil, apperr.Internal("find acting user", err)
	}
	return u, nil
}
