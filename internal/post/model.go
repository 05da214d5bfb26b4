package post

import (
	"time"

	"blogify/internal/comment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Post struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	UUID      string            `gorm:"type:varchar(36);uniqueIndex;not null" json:"uuid"`
	Title     string            `gorm:"size:50;not null" json:"title"`
	Content   string            `gorm:"type:text;not null" json:"content"`
	UserID    uint              `gorm:"not null;index" json:"userId"`
	Comments  []comment.Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.UUID == "" {
		p.UUID = uuid.NewString()
	}
	return nil
}
