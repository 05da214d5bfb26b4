package user

import (
	"context"
	"errors"

	"blogify/internal/pagination"
	"blogify/internal/request"

	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("user already exists")
)

// Store is the gorm-backed credential store.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindByID(ctx context.Context, id uint) (*User, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *Store) FindByUUID(ctx context.Context, id string) (*User, error) {
	return s.first(ctx, "uuid = ?", id)
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.first(ctx, "email = ?", email)
}

// Find resolves whichever field of l is set.
func (s *Store) Find(ctx context.Context, l request.UserLookup) (*User, error) {
	switch {
	case l.Email != "":
		return s.FindByEmail(ctx, l.Email)
	case l.ByUUID():
		return s.FindByUUID(ctx, l.UUID)
	default:
		return s.FindByID(ctx, l.ID)
	}
}

func (s *Store) first(ctx context.Context, query string, arg any) (*User, error) {
	var u User
	if err := s.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts u and makes it an admin when the table is empty. The count
// and insert share a transaction; on Postgres the table is locked so
// concurrent first sign-ups cannot both see zero rows. A violation of the
// email unique index is reported as ErrEmailTaken.
func (s *Store) Create(ctx context.Context, u *User) error {
	db := s.db.WithContext(ctx)
	err := db.Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("LOCK TABLE users IN SHARE ROW EXCLUSIVE MODE").Error; err != nil {
				return err
			}
		}
		var count int64
		if err := tx.Model(&User{}).Count(&count).Error; err != nil {
			return err
		}
		u.IsAdmin = count == 0
		return tx.Create(u).Error
	})
	return s.translateCreate(db, err, u.Email)
}

func (s *Store) translateCreate(db *gorm.DB, err error, email string) error {
	if err != nil && s.emailConflict(db, err, email) {
		return ErrEmailTaken
	}
	return err
}

// Update writes the given columns of user id.
func (s *Store) Update(ctx context.Context, id uint, fields map[string]any) error {
	db := s.db.WithContext(ctx)
	res := db.Model(&User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		if email, ok := fields["email"].(string); ok && s.emailConflict(db, res.Error, email) {
			return ErrEmailTaken
		}
		return res.Error
	}
	return nil
}

func (s *Store) List(ctx context.Context, p pagination.Page) ([]User, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []User
	if err := s.db.WithContext(ctx).Scopes(p.Scope()).Order("id").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// emailConflict reports whether err is a unique violation caused by email
// already being registered, as opposed to another unique column.
func (s *Store) emailConflict(db *gorm.DB, err error, email string) bool {
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return false
	}
	var n int64
	if db.Session(&gorm.Session{NewDB: true}).Model(&User{}).Where("email = ?", email).Count(&n).Error != nil {
		return false
	}
	return n > 0
}
