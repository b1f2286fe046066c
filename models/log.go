package models

import (
	"time"

	"gorm.io/datatypes"
)

// Log is the append-only audit trail. Rows are never updated or deleted.
// Meta carries denormalized context (names, emails) so entries stay readable
// after the referenced entity is gone.
type Log struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	OrganisationID uint              `gorm:"not null;index" json:"organisation_id"`
	UserID         uint              `gorm:"not null" json:"user_id"`
	Action         string            `gorm:"not null;size:100;index" json:"action"`
	Meta           datatypes.JSONMap `gorm:"type:jsonb" json:"meta"`
	Timestamp      time.Time         `gorm:"autoCreateTime;index" json:"timestamp"`
}
