package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"hrms/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogList(t *testing.T) {
	e := newEnv(t)
	token, _ := e.register(t, "Acme", "Ada", "ada@acme.test")

	teamID := e.createTeam(t, token, "Platform")
	empID := e.createEmployee(t, token, "Bob", "Builder", "bob@acme.test")
	require.Equal(t, http.StatusCreated, e.assign(t, token, teamID, empID).Code)

	rr := e.do(t, http.MethodGet, "/logs", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	// organisation_created, team_created, employee_created, employee_assigned_to_team.
	assert.EqualValues(t, 4, body["total"])
	assert.EqualValues(t, 100, body["limit"])
	assert.EqualValues(t, 0, body["offset"])

	logs := body["logs"].([]interface{})
	require.Len(t, logs, 4)

	// Newest first: the assignment is the last mutation.
	first := logs[0].(map[string]interface{})
	assert.Equal(t, audit.ActionEmployeeAssigned, first["action"])
	meta := first["meta"].(map[string]interface{})
	assert.Equal(t, "Bob Builder", meta["employeeName"])
	assert.Equal(t, "Platform", meta["teamName"])

	last := logs[3].(map[string]interface{})
	assert.Equal(t, audit.ActionOrganisationCreated, last["action"])
}

func TestLogListActionFilter(t *testing.T) {
	e := newEnv(t)
	token, _ := e.register(t, "Acme", "Ada", "ada@acme.test")
	e.createEmployee(t, token, "Bob", "Builder", "bob@acme.test")
	e.createEmployee(t, token, "Carol", "Coder", "carol@acme.test")

	rr := e.do(t, http.MethodGet, "/logs?action="+audit.ActionEmployeeCreated, token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	assert.EqualValues(t, 2, body["total"])
	for _, raw := range body["logs"].([]interface{}) {
		assert.Equal(t, audit.ActionEmployeeCreated, raw.(map[string]interface{})["action"])
	}
}

func TestLogListPagination(t *testing.T) {
	e := newEnv(t)
	token, _ := e.register(t, "Acme", "Ada", "ada@acme.test")
	for i := 0; i < 5; i++ {
		e.createEmployee(t, token, "Emp", fmt.Sprintf("N%d", i), fmt.Sprintf("emp%d@acme.test", i))
	}

	rr := e.do(t, http.MethodGet, "/logs?limit=2&offset=1", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	// Total counts all matches regardless of the page.
	assert.EqualValues(t, 6, body["total"])
	assert.EqualValues(t, 2, body["limit"])
	assert.EqualValues(t, 1, body["offset"])
	assert.Len(t, body["logs"].([]interface{}), 2)
}

func TestLogListTenantScoped(t *testing.T) {
	e := newEnv(t)
	tokenA, _ := e.register(t, "Acme", "Ada", "ada@acme.test")
	tokenB, _ := e.register(t, "Globex", "Gus", "gus@globex.test")
	e.createEmployee(t, tokenA, "Bob", "Builder", "bob@acme.test")

	body := decodeBody(t, e.do(t, http.MethodGet, "/logs", tokenB, nil))
	assert.EqualValues(t, 1, body["total"])
	logs := body["logs"].([]interface{})
	require.Len(t, logs, 1)
	assert.Equal(t, audit.ActionOrganisationCreated, logs[0].(map[string]interface{})["action"])
}
