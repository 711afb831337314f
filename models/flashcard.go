package models

import (
	"time"

	"gorm.io/gorm"
)

// CardStatus tracks how well the user knows a card.
type CardStatus string

const (
	StatusNew      CardStatus = "new"
	StatusLearning CardStatus = "learning"
	StatusMastered CardStatus = "mastered"
)

// Valid reports whether s is one of the known statuses.
func (s CardStatus) Valid() bool {
	switch s {
	case StatusNew, StatusLearning, StatusMastered:
		return true
	}
	return false
}

// Flashcard represents an individual question/answer card
type Flashcard struct {
	gorm.Model
	PublicID string     `gorm:"size:100;uniqueIndex" json:"id"`
	Question string     `gorm:"not null;size:1000" json:"question"`
	Answer   string     `gorm:"not null;size:2000" json:"answer"`
	Status   CardStatus `gorm:"not null;size:20;default:new" json:"status"`

	DeckID uint `gorm:"not null;index" json:"-"`
	Deck   Deck `gorm:"foreignKey:DeckID" json:"-"`

	// Optional tracking fields
	TimesReviewed int        `gorm:"default:0" json:"timesReviewed"`
	LastReviewed  *time.Time `gorm:"default:null" json:"lastReviewed,omitempty"`
}
