package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediseek-io/mediseek-client/pkg/mediseek"
)

func TestSessionTokenManager_Lifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	manager := NewSessionTokenManager("", "")

	token, err := manager.GetToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	manager.SetSession("access-1", "refresh-1")

	token, err = manager.GetToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-1", token)
	assert.Equal(t, "refresh-1", manager.RefreshTokenValue())

	// ClearToken drops only the access token.
	manager.ClearToken()

	token, err = manager.GetToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Equal(t, "refresh-1", manager.RefreshTokenValue())

	manager.ClearSession()
	assert.Empty(t, manager.RefreshTokenValue())
}

func TestSessionTokenManager_SetSessionKeepsRefreshToken(t *testing.T) {
	t.Parallel()

	manager := NewSessionTokenManager("", "refresh-1")

	// A rotation that omits the refresh token keeps the old one.
	manager.SetSession("access-2", "")
	assert.Equal(t, "refresh-1", manager.RefreshTokenValue())

	manager.SetSession("access-3", "refresh-2")
	assert.Equal(t, "refresh-2", manager.RefreshTokenValue())
}

func TestSessionTokenManager_Refresh(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("no refresh token", func(t *testing.T) {
		t.Parallel()

		manager := NewSessionTokenManager("", "")
		_, err := manager.Refresh(ctx)
		assert.ErrorIs(t, err, mediseek.ErrNoRefreshToken)
	})

	t.Run("no refresh func wired", func(t *testing.T) {
		t.Parallel()

		manager := NewSessionTokenManager("", "refresh-1")
		_, err := manager.Refresh(ctx)
		assert.ErrorIs(t, err, mediseek.ErrNotAuthenticated)
	})

	t.Run("installs refreshed session", func(t *testing.T) {
		t.Parallel()

		manager := NewSessionTokenManager("stale", "refresh-1")
		manager.SetRefreshFunc(func(ctx context.Context, refreshToken string) (*mediseek.AuthSession, error) {
			assert.Equal(t, "refresh-1", refreshToken)

			return &mediseek.AuthSession{
				User: mediseek.User{ID: "u1", Email: "amina@example.com"},
				Tokens: map[string]string{
					mediseek.AccessTokenKey:  "fresh-access",
					mediseek.RefreshTokenKey: "fresh-refresh",
				},
			}, nil
		})

		session, err := manager.Refresh(ctx)
		require.NoError(t, err)
		assert.Equal(t, "fresh-access", session.AccessToken())

		token, err := manager.GetToken(ctx)
		require.NoError(t, err)
		assert.Equal(t, "fresh-access", token)
		assert.Equal(t, "fresh-refresh", manager.RefreshTokenValue())
	})

	t.Run("exchange failure leaves session untouched", func(t *testing.T) {
		t.Parallel()

		manager := NewSessionTokenManager("stale", "refresh-1")
		manager.SetRefreshFunc(func(ctx context.Context, refreshToken string) (*mediseek.AuthSession, error) {
			return nil, errors.New("refresh rejected")
		})

		_, err := manager.Refresh(ctx)
		require.Error(t, err)
		assert.Equal(t, "refresh-1", manager.RefreshTokenValue())
	})
}
