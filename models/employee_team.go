package models

import (
	"time"
)

// EmployeeTeam is the many-to-many join between employees and teams. The
// composite unique index rejects a second assignment of the same pair even
// when two requests race past the handler's existence check.
type EmployeeTeam struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EmployeeID uint      `gorm:"not null;uniqueIndex:idx_employee_team" json:"employee_id"`
	TeamID     uint      `gorm:"not null;uniqueIndex:idx_employee_team" json:"team_id"`
	AssignedAt time.Time `gorm:"autoCreateTime" json:"assigned_at"`
}
