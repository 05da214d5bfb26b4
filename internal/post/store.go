package post

import (
	"context"
	"errors"

	"blogify/internal/comment"
	"blogify/internal/pagination"
	"blogify/internal/request"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("post not found")

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, p *Post) error {
	return s.db.WithContext(ctx).Create(p).Error
}

// Find loads the post selected by l, with its comments when withComments is set.
func (s *Store) Find(ctx context.Context, l request.Lookup, withComments bool) (*Post, error) {
	q := s.db.WithContext(ctx)
	if withComments {
		q = q.Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("id") })
	}
	if l.ByUUID() {
		q = q.Where("uuid = ?", l.UUID)
	} else {
		q = q.Where("id = ?", l.ID)
	}
	var p Post
	if err := q.First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// PostExists satisfies comment.PostChecker.
func (s *Store) PostExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Post{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// List returns one page of posts, restricted to userID when it is non-zero.
func (s *Store) List(ctx context.Context, p pagination.Page, userID uint) ([]Post, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		if userID != 0 {
			return db.Where("user_id = ?", userID)
		}
		return db
	}
	var total int64
	if err := s.db.WithContext(ctx).Model(&Post{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var posts []Post
	if err := s.db.WithContext(ctx).Scopes(filter, p.Scope()).Order("id").Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *Store) Update(ctx context.Context, id uint, fields map[string]any) error {
	return s.db.WithContext(ctx).Model(&Post{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes the post and its comments in one transaction.
func (s *Store) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&comment.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Post{}, id).Error
	})
}
