// Package auth holds the bearer-token lifecycle for a MediSeek client
// instance. Token state is owned by a SessionTokenManager constructed per
// client, never by package-level state, so independent clients carry
// independent sessions.
package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/mediseek-io/mediseek-client/pkg/mediseek"
)

// TokenManager is the transport-facing view of the token lifecycle.
type TokenManager interface {
	// GetToken returns the current bearer token, or "" when unauthenticated.
	GetToken(ctx context.Context) (string, error)

	// SetToken installs a bearer token for subsequent requests.
	SetToken(token string)

	// ClearToken removes the installed token. Called on logout and on 401.
	ClearToken()
}

// RefreshFunc exchanges a refresh token for a fresh session. Wired by the
// client layer to POST /auth/refresh.
type RefreshFunc func(ctx context.Context, refreshToken string) (*mediseek.AuthSession, error)

// SessionTokenManager holds the access/refresh token pair for one client.
// Reads and writes are synchronous under the mutex; nothing suspends while
// holding it, so token state is never observed mid-mutation.
type SessionTokenManager struct {
	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	refreshFunc  RefreshFunc
}

// NewSessionTokenManager creates a manager preloaded with optional tokens.
func NewSessionTokenManager(accessToken, refreshToken string) *SessionTokenManager {
	return &SessionTokenManager{
		accessToken:  accessToken,
		refreshToken: refreshToken,
	}
}

// SetRefreshFunc wires the refresh exchange. Call before Refresh.
func (m *SessionTokenManager) SetRefreshFunc(fn RefreshFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.refreshFunc = fn
}

// GetToken implements TokenManager.
func (m *SessionTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.accessToken, nil
}

// SetToken implements TokenManager.
func (m *SessionTokenManager) SetToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.accessToken = token
}

// SetSession installs both tokens of a fresh session.
func (m *SessionTokenManager) SetSession(accessToken, refreshToken string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.accessToken = accessToken
	if refreshToken != "" {
		m.refreshToken = refreshToken
	}
}

// ClearToken implements TokenManager. The refresh token survives so an
// explicit Refresh can recover the session after a 401.
func (m *SessionTokenManager) ClearToken() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.accessToken = ""
}

// ClearSession drops both tokens. Called on logout.
func (m *SessionTokenManager) ClearSession() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.accessToken = ""
	m.refreshToken = ""
}

// RefreshTokenValue returns the stored refresh token, or "".
func (m *SessionTokenManager) RefreshTokenValue() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.refreshToken
}

// Refresh exchanges the stored refresh token for a fresh session and
// installs it.
func (m *SessionTokenManager) Refresh(ctx context.Context) (*mediseek.AuthSession, error) {
	m.mu.RLock()
	refreshToken := m.refreshToken
	refreshFunc := m.refreshFunc
	m.mu.RUnlock()

	if refreshToken == "" {
		return nil, mediseek.ErrNoRefreshToken
	}

	if refreshFunc == nil {
		return nil, mediseek.ErrNotAuthenticated
	}

	session, err := refreshFunc(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("refreshing session: %w", err)
	}

	m.SetSession(session.AccessToken(), session.RefreshToken())

	return session, nil
}
