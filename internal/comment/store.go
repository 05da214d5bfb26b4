package comment

import (
	"context"
	"errors"

	"blogify/internal/pagination"
	"blogify/internal/request"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("comment not found")

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, c *Comment) error {
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *Store) Find(ctx context.Context, l request.Lookup) (*Comment, error) {
	q := s.db.WithContext(ctx)
	if l.ByUUID() {
		q = q.Where("uuid = ?", l.UUID)
	} else {
		q = q.Where("id = ?", l.ID)
	}
	var c Comment
	if err := q.First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListByUser returns one page of the user's comments and the user's total.
func (s *Store) ListByUser(ctx context.Context, userID uint, p pagination.Page) ([]Comment, int64, error) {
	base := s.db.WithContext(ctx).Model(&Comment{}).Where("user_id = ?", userID)
	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var comments []Comment
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).
		Scopes(p.Scope()).Order("id").Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (s *Store) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&Comment{}, id).Error
}
