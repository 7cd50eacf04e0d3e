package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/union-tracker/internal/pkg/auth"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	t.Cleanup(func() {
		tokenAdmin = false
		tokenTTL = 0
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return strings.TrimSpace(out.String())
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "app-secret")
	t.Setenv("JWT_ADMIN_SECRET", "admin-secret")
	tokens := auth.NewTokenService()

	standard := runCLI(t, "token")
	claims, err := tokens.Verify(standard, "app-secret")
	require.NoError(t, err)
	assert.Equal(t, auth.GuestUser, claims.User)
	_, err = tokens.Verify(standard, "admin-secret")
	assert.Error(t, err)

	elevated := runCLI(t, "token", "--admin", "--ttl", "1h")
	claims, err = tokens.Verify(elevated, "admin-secret")
	require.NoError(t, err)
	assert.WithinDuration(t, claims.IssuedAt.Add(time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestSeedRequiresPersistentStore(t *testing.T) {
	t.Setenv("JWT_SECRET", "app-secret")
	t.Setenv("JWT_ADMIN_SECRET", "admin-secret")
	t.Setenv("STORE_DRIVER", "memory")

	_, err := newSeedEnv()
	assert.ErrorContains(t, err, "STORE_DRIVER=mongo")
}
