package models

import (
	"time"
)

type Team struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	OrganisationID uint      `gorm:"not null;index" json:"organisation_id"`
	Name           string    `gorm:"not null;size:200" json:"name"`
	Description    *string   `gorm:"size:1000" json:"description"`
}
