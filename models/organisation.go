package models

import (
	"time"
)

// Organisation is the tenant boundary. It is created once at registration
// and never updated or deleted afterwards.
type Organisation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `gorm:"not null;size:200" json:"name"`
}
