package models

import (
	"time"

	"gorm.io/gorm"
)

// Deck represents a named, ordered collection of flashcards belonging to
// one user. A deck is created atomically with its full flashcard list and
// is immutable afterwards except for per-card status changes.
type Deck struct {
	gorm.Model
	PublicID string `gorm:"size:100;uniqueIndex" json:"id"`
	Title    string `gorm:"not null;size:200" json:"title"`
	UserID   uint   `gorm:"not null;index" json:"-"`
	User     User   `gorm:"foreignKey:UserID" json:"-"`

	Flashcards   []Flashcard   `gorm:"foreignKey:DeckID" json:"flashcards"`
	SourceImages []SourceImage `gorm:"foreignKey:DeckID" json:"sourceImages,omitempty"`

	LastStudied *time.Time `gorm:"default:null" json:"lastStudied,omitempty"`
}
