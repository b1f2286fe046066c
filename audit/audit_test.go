package audit_test

import (
	"context"
	"errors"
	"testing"

	"hrms/audit"
	"hrms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type captureAppender struct {
	entries []*models.Log
	err     error
}

func (a *captureAppender) AppendLog(_ context.Context, entry *models.Log) error {
	if a.err != nil {
		return a.err
	}
	a.entries = append(a.entries, entry)
	return nil
}

func TestRecorderRecord(t *testing.T) {
	appender := &captureAppender{}
	recorder := audit.NewRecorder(appender, zap.NewNop())

	err := recorder.Record(context.Background(), 3, 7, audit.ActionEmployeeCreated, map[string]interface{}{
		"employeeId": 12,
	})
	require.NoError(t, err)

	require.Len(t, appender.entries, 1)
	entry := appender.entries[0]
	assert.Equal(t, uint(3), entry.OrganisationID)
	assert.Equal(t, uint(7), entry.UserID)
	assert.Equal(t, audit.ActionEmployeeCreated, entry.Action)
	assert.Equal(t, 12, entry.Meta["employeeId"])
}

func TestRecorderPropagatesAppendFailure(t *testing.T) {
	boom := errors.New("write failed")
	recorder := audit.NewRecorder(&captureAppender{err: boom}, zap.NewNop())

	err := recorder.Record(context.Background(), 1, 1, audit.ActionTeamCreated, nil)
	assert.ErrorIs(t, err, boom)
}

func TestNewEntryDoesNotPersist(t *testing.T) {
	entry := audit.NewEntry(2, 5, audit.ActionOrganisationCreated, map[string]interface{}{"orgName": "Acme"})
	assert.Zero(t, entry.ID)
	assert.Equal(t, uint(2), entry.OrganisationID)
	assert.Equal(t, "Acme", entry.Meta["orgName"])
}
