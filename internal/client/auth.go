package client

import (
	"context"
	"fmt"

	"github.com/mediseek-io/mediseek-client/internal/auth"
	internalhttp "github.com/mediseek-io/mediseek-client/internal/http"
	"github.com/mediseek-io/mediseek-client/pkg/mediseek"
)

// AuthClient implements mediseek.AuthClient.
type AuthClient struct {
	httpClient *internalhttp.Client
	tokens     *auth.SessionTokenManager
}

// NewAuthClient creates a new auth client.
func NewAuthClient(httpClient *internalhttp.Client, tokens *auth.SessionTokenManager) *AuthClient {
	return &AuthClient{
		httpClient: httpClient,
		tokens:     tokens,
	}
}

// Login implements mediseek.AuthClient.Login. On success the session's
// access token is installed for all subsequent requests.
func (c *AuthClient) Login(ctx context.Context, request *mediseek.LoginRequest) (*mediseek.Envelope[mediseek.AuthSession], error) {
	if request == nil {
		return nil, mediseek.ErrRequestRequired
	}

	err := request.Validate()
	if err != nil {
		return nil, err
	}

	envelope, err := decodeEnvelope[mediseek.AuthSession](c.httpClient.Post(ctx, pathLogin, request))
	if err != nil {
		return nil, err
	}

	err = c.installSession(envelope)
	if err != nil {
		return nil, err
	}

	return envelope, nil
}

// Signup implements mediseek.AuthClient.Signup. On success the session's
// access token is installed, same as Login.
func (c *AuthClient) Signup(ctx context.Context, request *mediseek.SignupRequest) (*mediseek.Envelope[mediseek.AuthSession], error) {
	if request == nil {
		return nil, mediseek.ErrRequestRequired
	}

	err := request.Validate()
	if err != nil {
		return nil, err
	}

	envelope, err := decodeEnvelope[mediseek.AuthSession](c.httpClient.Post(ctx, pathSignup, request))
	if err != nil {
		return nil, err
	}

	err = c.installSession(envelope)
	if err != nil {
		return nil, err
	}

	return envelope, nil
}

// Refresh implements mediseek.AuthClient.Refresh.
func (c *AuthClient) Refresh(ctx context.Context) (*mediseek.Envelope[mediseek.AuthSession], error) {
	session, err := c.tokens.Refresh(ctx)
	if err != nil {
		if mediseek.IsValidation(err) {
			return nil, err
		}

		return mediseek.Failure[mediseek.AuthSession](err), nil
	}

	return &mediseek.Envelope[mediseek.AuthSession]{Success: true, Data: session}, nil
}

// Logout implements mediseek.AuthClient.Logout: both tokens are dropped
// locally. The server holds no session state to tear down.
func (c *AuthClient) Logout() {
	c.tokens.ClearSession()
}

// installSession validates a successful auth payload and installs its tokens.
// The authoritative bearer token is the "access_token" entry; a payload
// without one violates the server contract.
func (c *AuthClient) installSession(envelope *mediseek.Envelope[mediseek.AuthSession]) error {
	if !envelope.Success || envelope.Data == nil {
		return nil
	}

	session := envelope.Data

	err := session.Validate()
	if err != nil {
		return err
	}

	c.tokens.SetSession(session.AccessToken(), session.RefreshToken())

	return nil
}

// exchangeRefreshToken calls POST /auth/refresh. Wired into the token
// manager as its RefreshFunc; token installation is the manager's job.
func (c *AuthClient) exchangeRefreshToken(ctx context.Context, refreshToken string) (*mediseek.AuthSession, error) {
	request := &mediseek.RefreshRequest{RefreshToken: refreshToken}

	err := request.Validate()
	if err != nil {
		return nil, err
	}

	envelope, err := decodeEnvelope[mediseek.AuthSession](c.httpClient.Post(ctx, pathRefresh, request))
	if err != nil {
		return nil, err
	}

	if !envelope.Success || envelope.Data == nil {
		return nil, fmt.Errorf("%w: %s", mediseek.ErrNotAuthenticated, envelope.Error)
	}

	err = envelope.Data.Validate()
	if err != nil {
		return nil, err
	}

	return envelope.Data, nil
}
