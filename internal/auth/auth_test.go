package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grievancehub/internal/auth"
	"grievancehub/internal/model"
)

func TestIssueAndParse(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour)
	parser := auth.NewParser("secret")

	user := &model.User{ID: uuid.New(), Email: "ada@example.com", Role: model.UserRoleAdmin}
	token, err := issuer.Issue(user)
	require.NoError(t, err)

	claims, err := parser.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, model.UserRoleAdmin, claims.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour)
	parser := auth.NewParser("other-secret")

	token, err := issuer.Issue(&model.User{ID: uuid.New(), Role: model.UserRoleUser})
	require.NoError(t, err)

	_, err = parser.Parse(token)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuer := auth.NewIssuer("secret", -time.Minute)
	parser := auth.NewParser("secret")

	token, err := issuer.Issue(&model.User{ID: uuid.New(), Role: model.UserRoleUser})
	require.NoError(t, err)

	_, err = parser.Parse(token)
	assert.Error(t, err)
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.NoError(t, auth.CheckPassword("hunter22", hash))
	assert.Error(t, auth.CheckPassword("hunter23", hash))
}
