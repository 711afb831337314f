package models

import "gorm.io/gorm"

// User represents a user in the system. The username is the sole identity
// key and is always stored lowercase.
type User struct {
	gorm.Model
	Username string `gorm:"unique;not null;size:100" json:"username"`
	Decks    []Deck `gorm:"foreignKey:UserID" json:"decks"`
}
