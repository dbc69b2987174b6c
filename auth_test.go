package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(t *testing.T, db *DB) *Auth {
	t.Helper()
	a := NewAuth(db)
	a.cost = bcrypt.MinCost
	return a
}

func TestOperatorLogin(t *testing.T) {
	db := openTestDB(t)
	auth := newTestAuth(t, db)
	require.NoError(t, auth.EnsureOperator("admin", "secret"))
	require.NoError(t, auth.EnsureOperator("admin", "ignored"), "existing operator is kept")

	_, err := auth.Login("admin", "ignored", "1.2.3.4")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, err = auth.Login("nobody", "secret", "1.2.3.4")
	assert.ErrorIs(t, err, ErrBadCredentials)

	tok, err := auth.Login("admin", "secret", "1.2.3.4")
	require.NoError(t, err)
	user, err := auth.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", user)

	// The signing secret survives a restart
	again := NewAuth(db)
	user, err = again.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", user)

	_, err = auth.ValidateToken("garbage")
	assert.Error(t, err)
}

func TestOperatorValidation(t *testing.T) {
	auth := newTestAuth(t, openTestDB(t))
	assert.Error(t, auth.EnsureOperator("a", "secret"))
	assert.Error(t, auth.EnsureOperator("admin", "abc"))
}

func TestLoginRateLimit(t *testing.T) {
	auth := newTestAuth(t, openTestDB(t))
	require.NoError(t, auth.EnsureOperator("admin", "secret"))
	for i := 0; i < maxLoginAttempts; i++ {
		_, err := auth.Login("admin", "wrong", "9.9.9.9")
		require.ErrorIs(t, err, ErrBadCredentials)
	}
	_, err := auth.Login("admin", "secret", "9.9.9.9")
	assert.ErrorIs(t, err, ErrRateLimited)

	_, err = auth.Login("admin", "secret", "8.8.8.8")
	assert.NoError(t, err, "limits are per IP")
}
