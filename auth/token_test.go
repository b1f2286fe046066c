package auth

import (
	"testing"
	"time"

	"hrms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	return &models.User{
		ID:             7,
		OrganisationID: 3,
		Email:          "admin@acme.test",
		Name:           "Ada Admin",
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", 8*time.Hour)

	token, err := svc.Generate(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, uint(3), claims.OrgID)
	assert.Equal(t, "admin@acme.test", claims.Email)
	assert.Equal(t, "Ada Admin", claims.Name)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Generate(testUser())
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-one", 8*time.Hour)
	verifier := NewTokenService("secret-two", 8*time.Hour)

	token, err := issuer.Generate(testUser())
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", 8*time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
