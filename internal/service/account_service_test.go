package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grievancehub/internal/auth"
	"grievancehub/internal/model"
	"grievancehub/internal/service"
)

func newAccounts(store *memUserStore) (*service.AccountService, *auth.Parser) {
	const secret = "test-secret"
	issuer := auth.NewIssuer(secret, time.Hour)
	return service.NewAccountService(store, issuer), auth.NewParser(secret)
}

func TestRegisterAndLogin(t *testing.T) {
	store := newMemUserStore()
	svc, parser := newAccounts(store)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, service.RegisterInput{
		Name:     "Ada",
		Email:    "Ada@Example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email, "email is normalized")
	assert.Equal(t, model.UserRoleUser, user.Role, "self-registration never grants Admin")
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	claims, err := parser.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.UserRoleUser, claims.Role)

	_, loginToken, err := svc.Login(ctx, "ada@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newMemUserStore()
	svc, _ := newAccounts(store)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, service.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, service.RegisterInput{Name: "Ada Again", Email: "ada@example.com", Password: "hunter23"})
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestRegisterValidation(t *testing.T) {
	store := newMemUserStore()
	svc, _ := newAccounts(store)

	_, _, err := svc.Register(context.Background(), service.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "short"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, _, err = svc.Register(context.Background(), service.RegisterInput{Name: "", Email: "ada@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	store := newMemUserStore()
	svc, _ := newAccounts(store)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, service.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}
