package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UUID         string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"uuid"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"-"`
	FirstName    string    `gorm:"size:100;not null" json:"firstName"`
	LastName     string    `gorm:"size:100;not null" json:"lastName"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// BeforeCreate assigns the public UUID. It is never changed afterwards.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UUID == "" {
		u.UUID = uuid.NewString()
	}
	return nil
}

// View is the client-facing shape of a user.
type View struct {
	ID        uint   `json:"id"`
	UUID      string `json:"uuid"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (u *User) View() View {
	return View{
		ID:        u.ID,
		UUID:      u.UUID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func Views(users []User) []View {
	out := make([]View, 0, len(users))
	for i := range users {
		out = append(out, users[i].View())
	}
	return out
}
