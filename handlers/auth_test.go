package handlers_test

import (
	"net/http"
	"testing"

	"hrms/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	e := newEnv(t)

	rr := e.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"orgName":   "Acme",
		"adminName": "Ada Admin",
		"email":     "ada@acme.test",
		"password":  "secret123",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	body := decodeBody(t, rr)
	assert.NotEmpty(t, body["token"])

	user := body["user"].(map[string]interface{})
	assert.Equal(t, "Ada Admin", user["name"])
	assert.Equal(t, "ada@acme.test", user["email"])
	assert.Equal(t, "Acme", user["organisationName"])
	assert.NotContains(t, rr.Body.String(), "password")

	assert.EqualValues(t, 1, e.countLogs(t, 1, audit.ActionOrganisationCreated))
}

func TestRegisterValidation(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing org name", map[string]string{"adminName": "A", "email": "a@b.c", "password": "secret123"}},
		{"missing admin name", map[string]string{"orgName": "Acme", "email": "a@b.c", "password": "secret123"}},
		{"missing email", map[string]string{"orgName": "Acme", "adminName": "A", "password": "secret123"}},
		{"missing password", map[string]string{"orgName": "Acme", "adminName": "A", "email": "a@b.c"}},
		{"short password", map[string]string{"orgName": "Acme", "adminName": "A", "email": "a@b.c", "password": "12345"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := e.do(t, http.MethodPost, "/auth/register", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestRegisterDuplicateEmailIsAtomic(t *testing.T) {
	e := newEnv(t)
	e.register(t, "Acme", "Ada", "ada@acme.test")

	rr := e.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"orgName":   "Imposter Inc",
		"adminName": "Eve",
		"email":     "ada@acme.test",
		"password":  "different9",
	})
	require.Equal(t, http.StatusConflict, rr.Code)

	// The failed registration must not have created a usable account.
	rr = e.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "ada@acme.test",
		"password": "different9",
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogin(t *testing.T) {
	e := newEnv(t)
	_, orgID := e.register(t, "Acme", "Ada", "ada@acme.test")

	rr := e.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "ada@acme.test",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	assert.NotEmpty(t, body["token"])
	assert.EqualValues(t, 1, e.countLogs(t, orgID, audit.ActionUserLogin))
}

func TestLoginInvalidCredentialsIndistinguishable(t *testing.T) {
	e := newEnv(t)
	e.register(t, "Acme", "Ada", "ada@acme.test")

	wrongPassword := e.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "ada@acme.test",
		"password": "wrong-password",
	})
	unknownEmail := e.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "nobody@acme.test",
		"password": "secret123",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestLoginValidation(t *testing.T) {
	e := newEnv(t)

	rr := e.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "a@b.c"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = e.do(t, http.MethodPost, "/auth/login", "", map[string]string{"password": "secret123"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLogout(t *testing.T) {
	e := newEnv(t)
	token, orgID := e.register(t, "Acme", "Ada", "ada@acme.test")

	rr := e.do(t, http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.EqualValues(t, 1, e.countLogs(t, orgID, audit.ActionUserLogout))

	rr = e.do(t, http.MethodPost, "/auth/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMe(t *testing.T) {
	e := newEnv(t)
	token, _ := e.register(t, "Acme", "Ada Admin", "ada@acme.test")

	rr := e.do(t, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	assert.Equal(t, "Ada Admin", body["name"])
	assert.Equal(t, "ada@acme.test", body["email"])
	assert.Equal(t, "Acme", body["organisationName"])
	assert.NotContains(t, rr.Body.String(), "password")
}

func TestBearerGate(t *testing.T) {
	e := newEnv(t)

	rr := e.do(t, http.MethodGet, "/employees", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = e.do(t, http.MethodGet, "/employees", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
