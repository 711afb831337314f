package models

import "gorm.io/gorm"

// SourceImage is one of the note photographs a deck was generated from,
// kept so the user can revisit the original upload.
type SourceImage struct {
	gorm.Model
	DeckID   uint   `gorm:"not null;index" json:"-"`
	Data     string `gorm:"type:text;not null" json:"base64"`
	MimeType string `gorm:"not null;size:100" json:"mimeType"`
}
