package models

import (
	"time"
)

type Employee struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	OrganisationID uint      `gorm:"not null;index" json:"organisation_id"`
	FirstName      string    `gorm:"not null;size:100" json:"first_name"`
	LastName       string    `gorm:"not null;size:100" json:"last_name"`
	Email          string    `gorm:"not null;size:255" json:"email"`
	Phone          *string   `gorm:"size:50" json:"phone"`
	Position       *string   `gorm:"size:200" json:"position"`
	Department     *string   `gorm:"size:200" json:"department"`
}

func (e *Employee) DisplayName() string {
	return e.FirstName + " " + e.LastName
}
