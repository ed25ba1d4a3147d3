package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finlite/internal/repository/sqlite"
)

func newUserService(t *testing.T) UserService {
	t.Helper()

	db, err := sqlite.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := sqlite.NewUserRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return NewUserService(repo)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	users := newUserService(t)
	ctx := context.Background()

	user, err := users.Register(ctx, "Bob", "bob@x.com", "pw")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "bob@x.com", user.Email)
	assert.Empty(t, user.PasswordHash, "password hash must not leave the service")

	authed, err := users.Authenticate(ctx, "bob@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)
	assert.Empty(t, authed.PasswordHash)
}

func TestRegisterDuplicateEmailKeepsOriginalCredential(t *testing.T) {
	users := newUserService(t)
	ctx := context.Background()

	_, err := users.Register(ctx, "Bob", "bob@x.com", "original")
	require.NoError(t, err)

	_, err = users.Register(ctx, "Impostor", "bob@x.com", "hijacked")
	assert.ErrorIs(t, err, ErrEmailTaken)

	// the first credential still works, the second never took effect
	_, err = users.Authenticate(ctx, "bob@x.com", "original")
	assert.NoError(t, err)
	_, err = users.Authenticate(ctx, "bob@x.com", "hijacked")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	users := newUserService(t)
	ctx := context.Background()

	_, err := users.Register(ctx, "Bob", "bob@x.com", "pw")
	require.NoError(t, err)

	_, unknownErr := users.Authenticate(ctx, "nobody@x.com", "pw")
	_, mismatchErr := users.Authenticate(ctx, "bob@x.com", "wrong")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, mismatchErr, ErrInvalidCredentials)
}

func TestRegisterValidation(t *testing.T) {
	users := newUserService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		userName string
		email    string
		password string
		field    string
	}{
		{"missing name", "", "bob@x.com", "pw", "name"},
		{"missing email", "Bob", "", "pw", "email"},
		{"bad email", "Bob", "not-an-email", "pw", "email"},
		{"missing password", "Bob", "bob@x.com", "", "password"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := users.Register(ctx, tc.userName, tc.email, tc.password)
			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tc.field, validation.Field)
		})
	}
}

func TestRegisterNormalizesEmail(t *testing.T) {
	users := newUserService(t)
	ctx := context.Background()

	_, err := users.Register(ctx, "Bob", "  Bob@X.com ", "pw")
	require.NoError(t, err)

	_, err = users.Authenticate(ctx, "bob@x.com", "pw")
	assert.NoError(t, err)

	_, err = users.Register(ctx, "Bob2", "BOB@x.com", "pw2")
	assert.ErrorIs(t, err, ErrEmailTaken)
}
