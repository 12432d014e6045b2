package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserName     string    `json:"userName" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Age          int       `json:"age,omitempty"`
	Address      string    `json:"address,omitempty"`

	// Denormalized ids of books whose Author field points back at this
	// user. Maintained best-effort by the relationship synchronizer; the
	// Book.AuthorID column is the source of truth.
	AuthoredBooks datatypes.JSONSlice[uuid.UUID] `json:"authorOfBooks"`

	// The one currently valid session token. Overwritten on every login
	// and registration, cleared on logout.
	SessionToken *string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnsBook reports whether bookID is present in the denormalized list.
func (u *User) OwnsBook(bookID uuid.UUID) bool {
	for _, id := range u.AuthoredBooks {
		if id == bookID {
			return true
		}
	}
	return false
}
