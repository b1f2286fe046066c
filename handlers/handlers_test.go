package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hrms/audit"
	"hrms/auth"
	"hrms/router"
	"hrms/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type env struct {
	store  *store.MemoryStore
	router http.Handler
}

func newEnv(t *testing.T) *env {
	t.Helper()

	st := store.NewMemory()
	logger := zap.NewNop()
	tokens := auth.NewTokenService("test-secret", time.Hour)
	recorder := audit.NewRecorder(st, logger)

	return &env{
		store: st,
		router: router.New(router.Deps{
			Store:    st,
			Tokens:   tokens,
			Recorder: recorder,
			Logger:   logger,
		}),
	}
}

// do executes a JSON request against the router; token is optional.
func (e *env) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func decodeList(t *testing.T, rr *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

// register creates an organisation via the API and returns the session
// token and organisation id.
func (e *env) register(t *testing.T, orgName, adminName, email string) (string, uint) {
	t.Helper()

	rr := e.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"orgName":   orgName,
		"adminName": adminName,
		"email":     email,
		"password":  "secret123",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	body := decodeBody(t, rr)
	token, ok := body["token"].(string)
	require.True(t, ok)
	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	orgID, ok := user["organisationId"].(float64)
	require.True(t, ok)
	return token, uint(orgID)
}

// countLogs returns the number of audit rows for one action tag.
func (e *env) countLogs(t *testing.T, orgID uint, action string) int64 {
	t.Helper()

	_, total, err := e.store.ListLogs(context.Background(), orgID, store.LogFilter{Action: action, Limit: 1})
	require.NoError(t, err)
	return total
}
