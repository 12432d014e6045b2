package domain

import (
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryAdventure Category = "Adventure"
	CategoryClassics  Category = "Classics"
	CategoryCrime     Category = "Crime"
	CategoryFantasy   Category = "Fantasy"
)

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryAdventure, CategoryClassics, CategoryCrime, CategoryFantasy:
		return true
	}
	return false
}

type Book struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	AuthorID    uuid.UUID `json:"author" gorm:"type:uuid;not null;index"`
	Description string    `json:"description" gorm:"default:'No description available'"`
	Price       float64   `json:"price" gorm:"default:100"`
	Category    Category  `json:"category" gorm:"not null;default:'Classics'"`

	RatingCount   int     `json:"ratingCount"`
	RatingAverage float64 `json:"ratingAverage"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Author *User `json:"-" gorm:"foreignKey:AuthorID"`
}
