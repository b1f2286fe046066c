package models

import (
	"time"
)

type User struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time    `json:"created_at"`
	OrganisationID uint         `gorm:"not null;index" json:"organisation_id"`
	Organisation   Organisation `gorm:"foreignKey:OrganisationID" json:"organisation,omitempty"`
	Email          string       `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordHash   string       `gorm:"not null" json:"-"`
	Name           string       `gorm:"not null;size:200" json:"name"`
}
