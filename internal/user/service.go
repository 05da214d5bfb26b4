package user

import (
	"context"
	"errors"
	"log"

	"blogify/internal/apperr"
	"blogify/internal/pagination"
	"blogify/internal/request"
)

type CreateInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"required,min=1"`
	LastName  string `json:"lastName" validate:"required,min=1"`
}

// Patch carries the fields to change; nil fields are left alone.
type Patch struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"firstName" validate:"omitempty,min=1"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1"`
	IsAdmin   *bool   `json:"isAdmin"`
}

func (p Patch) Empty() bool {
	return p.Email == nil && p.FirstName == nil && p.LastName == nil && p.IsAdmin == nil
}

func (p Patch) columns() map[string]any {
	fields := map[string]any{}
	if p.Email != nil {
		fields["email"] = *p.Email
	}
	if p.FirstName != nil {
		fields["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		fields["last_name"] = *p.LastName
	}
	if p.IsAdmin != nil {
		fields["is_admin"] = *p.IsAdmin
	}
	return fields
}

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// SignUp creates a user. The very first account becomes the admin.
func (s *Service) SignUp(ctx context.Context, in CreateInput) (*User, error) {
	if _, err := s.store.FindByEmail(ctx, in.Email); err == nil {
		return nil, apperr.BadRequest(ErrEmailTaken.Error())
	} else if !errors.Is(err, ErrNotFound) {
		return nil, apperr.Internal("lookup user by email", err)
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal("hash password", err)
	}
	u := &User{
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
	}
	if err := s.store.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, apperr.BadRequest(ErrEmailTaken.Error())
		}
		return nil, apperr.Internal("create user", err)
	}
	if u.IsAdmin {
		log.Printf("[Users] first account %d registered as admin", u.ID)
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, l request.UserLookup) (*User, error) {
	u, err := s.store.Find(ctx, l)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("find user", err)
	}
	return u, nil
}

func (s *Service) List(ctx context.Context, p pagination.Page) ([]User, int64, error) {
	users, total, err := s.store.List(ctx, p)
	if err != nil {
		return nil, 0, apperr.Internal("list users", err)
	}
	return users, total, nil
}

// Update applies patch to the user selected by l and returns the new state.
func (s *Service) Update(ctx context.Context, l request.Lookup, patch Patch) (*User, error) {
	if patch.Empty() {
		return nil, apperr.BadRequest("One of the fields must be defined")
	}
	u, err := s.Get(ctx, request.UserLookup{Lookup: l})
	if err != nil {
		return nil, err
	}
	if patch.Email != nil && *patch.Email != u.Email {
		if _, err := s.store.FindByEmail(ctx, *patch.Email); err == nil {
			return nil, apperr.BadRequest(ErrEmailTaken.Error())
		} else if !errors.Is(err, ErrNotFound) {
			return nil, apperr.Internal("lookup user by email", err)
		}
	}
	if err := s.store.Update(ctx, u.ID, patch.columns()); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, apperr.BadRequest(ErrEmailTaken.Error())
		}
		return nil, apperr.Internal("update user", err)
	}
	return s.Get(ctx, request.UserLookup{Lookup: request.Lookup{ID: u.ID}})
}

// FullUpdate requires every mutable field.
type FullUpdate struct {
	Email     *string `json:"email" validate:"required,email"`
	FirstName *string `json:"firstName" validate:"required,min=1"`
	LastName  *string `json:"lastName" validate:"required,min=1"`
	IsAdmin   *bool   `json:"isAdmin" validate:"required"`
}

func (f FullUpdate) Patch() Patch {
	return Patch{Email: f.Email, FirstName: f.FirstName, LastName: f.LastName, IsAdmin: f.IsAdmin}
}

// ProfilePatch is what users may change on their own account.
type ProfilePatch struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1"`
}

func (p ProfilePatch) Patch() Patch {
	return Patch{FirstName: p.FirstName, LastName: p.LastName}
}
