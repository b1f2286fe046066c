package store

import (
	"context"
	"errors"
	"time"

	"hrms/models"
)

// Sentinel errors returned by store implementations. Handlers translate
// them into HTTP statuses; nothing below the transport layer knows about
// status codes.
var (
	ErrNotFound        = errors.New("record not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrAlreadyAssigned = errors.New("employee already assigned to team")
	ErrNotAssigned     = errors.New("assignment not found")
)

// EmployeeWithTeams is the list shape: team summaries without relation
// metadata.
type EmployeeWithTeams struct {
	models.Employee
	Teams []models.Team `json:"teams"`
}

// EmployeeDetail is the get-by-id shape: each team carries the
// assignment timestamp.
type EmployeeDetail struct {
	models.Employee
	Teams []TeamAssignment `json:"teams"`
}

type TeamAssignment struct {
	models.Team
	AssignedAt time.Time `json:"assigned_at"`
}

type TeamWithEmployees struct {
	models.Team
	Employees []models.Employee `json:"employees"`
}

type TeamDetail struct {
	models.Team
	Employees []EmployeeAssignment `json:"employees"`
}

type EmployeeAssignment struct {
	models.Employee
	AssignedAt time.Time `json:"assigned_at"`
}

// LogFilter narrows and pages the audit trail listing.
type LogFilter struct {
	Action string
	Limit  int
	Offset int
}

// Store is the persistence boundary. Queries are typed per access pattern
// so handlers never shape relations ad hoc, and every read or write that
// touches tenant data takes the organisation id it must be scoped to.
type Store interface {
	// Register atomically creates the organisation, its admin user and the
	// first audit entry. A duplicate email leaves nothing behind and
	// returns ErrEmailTaken.
	Register(ctx context.Context, org *models.Organisation, user *models.User, entry *models.Log) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id uint) (*models.User, error)

	CreateEmployee(ctx context.Context, employee *models.Employee) error
	ListEmployees(ctx context.Context, orgID uint) ([]EmployeeWithTeams, error)
	EmployeeByID(ctx context.Context, orgID, id uint) (*EmployeeDetail, error)
	UpdateEmployee(ctx context.Context, employee *models.Employee) error
	DeleteEmployee(ctx context.Context, orgID, id uint) error

	CreateTeam(ctx context.Context, team *models.Team) error
	ListTeams(ctx context.Context, orgID uint) ([]TeamWithEmployees, error)
	TeamByID(ctx context.Context, orgID, id uint) (*TeamDetail, error)
	UpdateTeam(ctx context.Context, team *models.Team) error
	DeleteTeam(ctx context.Context, orgID, id uint) error

	Assign(ctx context.Context, employeeID, teamID uint) error
	Unassign(ctx context.Context, employeeID, teamID uint) error

	AppendLog(ctx context.Context, entry *models.Log) error
	ListLogs(ctx context.Context, orgID uint, filter LogFilter) ([]models.Log, int64, error)
}
