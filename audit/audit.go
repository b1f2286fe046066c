package audit

import (
	"context"

	"hrms/models"

	"go.uber.org/zap"
)

// Action tags recorded in the audit trail.
const (
	ActionOrganisationCreated = "organisation_created"
	ActionUserLogin           = "user_login"
	ActionUserLogout          = "user_logout"
	ActionEmployeeCreated     = "employee_created"
	ActionEmployeeUpdated     = "employee_updated"
	ActionEmployeeDeleted     = "employee_deleted"
	ActionTeamCreated         = "team_created"
	ActionTeamUpdated         = "team_updated"
	ActionTeamDeleted         = "team_deleted"
	ActionEmployeeAssigned    = "employee_assigned_to_team"
	ActionEmployeeUnassigned  = "employee_unassigned_from_team"
)

// Appender is the slice of the store the recorder needs.
type Appender interface {
	AppendLog(ctx context.Context, entry *models.Log) error
}

// Recorder appends one Log row per mutating action. The append is part of
// the request's unit of work: a failed write is reported to the caller
// even when the primary mutation already committed.
type Recorder struct {
	store  Appender
	logger *zap.Logger
}

func NewRecorder(store Appender, logger *zap.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// NewEntry builds the Log row for an action without persisting it; the
// registration flow hands it to the store so it commits in the same
// transaction as the organisation and user.
func NewEntry(orgID, userID uint, action string, meta map[string]interface{}) *models.Log {
	return &models.Log{
		OrganisationID: orgID,
		UserID:         userID,
		Action:         action,
		Meta:           meta,
	}
}

func (r *Recorder) Record(ctx context.Context, orgID, userID uint, action string, meta map[string]interface{}) error {
	entry := NewEntry(orgID, userID, action, meta)
	if err := r.store.AppendLog(ctx, entry); err != nil {
		r.logger.Error("failed to append audit log",
			zap.String("action", action),
			zap.Uint("organisation_id", orgID),
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
