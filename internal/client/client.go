// Package client implements the mediseek.Client interface: one resource
// client per API domain sharing a single transport and token manager.
package client

import (
	"context"
	"fmt"

	"github.com/mediseek-io/mediseek-client/internal/auth"
	"github.com/mediseek-io/mediseek-client/internal/constants"
	internalhttp "github.com/mediseek-io/mediseek-client/internal/http"
	"github.com/mediseek-io/mediseek-client/pkg/mediseek"
)

// Client implements the mediseek.Client interface.
type Client struct {
	httpClient *internalhttp.Client
	tokens     *auth.SessionTokenManager
	baseURL    string
	logger     mediseek.Logger

	// Resource clients
	authClient mediseek.AuthClient
	profile    mediseek.ProfileClient
	clinics    mediseek.ClinicsClient
	bookings   mediseek.BookingsClient
	chat       mediseek.ChatClient
}

// createHTTPClientOptions builds transport options from config.
func createHTTPClientOptions(config *mediseek.Config) ([]internalhttp.Option, error) {
	var httpOpts []internalhttp.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, internalhttp.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, internalhttp.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, internalhttp.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	chain, err := createInterceptorChain(config)
	if err != nil {
		return nil, err
	}

	if chain != nil {
		httpOpts = append(httpOpts, internalhttp.WithInterceptors(chain))
	}

	return httpOpts, nil
}

// createInterceptorChain assembles the caller-provided interceptors and the
// response cache bridge. Returns nil when the config asks for neither.
func createInterceptorChain(config *mediseek.Config) (*mediseek.InterceptorChain, error) {
	if config.Interceptors == nil && config.Cache == nil {
		return nil, nil
	}

	chain := mediseek.NewInterceptorChain()

	if config.Interceptors != nil {
		extra := config.Interceptors
		chain.AddRequestInterceptor(extra.ExecuteRequestInterceptors)
		chain.AddResponseInterceptor(extra.ExecuteResponseInterceptors)
	}

	if config.Cache != nil {
		backend, err := mediseek.NewCacheFromConfig(config.Cache)
		if err != nil {
			return nil, fmt.Errorf("creating cache backend: %w", err)
		}

		manager := mediseek.NewCacheManager(backend, config.Cache.Options)

		policy := config.CachePolicy
		if policy == nil {
			policy = mediseek.DefaultCachingPolicy()
		}

		reqInterceptor, respInterceptor := mediseek.CacheInterceptor(manager, policy)
		chain.AddRequestInterceptor(reqInterceptor)
		chain.AddResponseInterceptor(respInterceptor)
	}

	return chain, nil
}

// New creates a new MediSeek API client.
func New(config *mediseek.Config) (*Client, error) {
	if config.APIEndpoint == "" {
		return nil, mediseek.ErrAPIEndpointRequired
	}

	httpOpts, err := createHTTPClientOptions(config)
	if err != nil {
		return nil, err
	}

	tokens := auth.NewSessionTokenManager(config.AccessToken, config.RefreshToken)
	httpClient := internalhttp.NewClient(config.APIEndpoint, tokens, httpOpts...)

	client := &Client{
		httpClient: httpClient,
		tokens:     tokens,
		baseURL:    config.APIEndpoint,
		logger:     config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	authClient := NewAuthClient(c.httpClient, c.tokens)
	c.tokens.SetRefreshFunc(authClient.exchangeRefreshToken)

	c.authClient = authClient
	c.profile = NewProfileClient(c.httpClient)
	c.clinics = NewClinicsClient(c.httpClient)
	c.bookings = NewBookingsClient(c.httpClient)
	c.chat = NewChatClient(c.httpClient)
}

// Auth implements mediseek.Client.Auth.
func (c *Client) Auth() mediseek.AuthClient {
	return c.authClient
}

// Profile implements mediseek.Client.Profile.
func (c *Client) Profile() mediseek.ProfileClient {
	return c.profile
}

// Clinics implements mediseek.Client.Clinics.
func (c *Client) Clinics() mediseek.ClinicsClient {
	return c.clinics
}

// Bookings implements mediseek.Client.Bookings.
func (c *Client) Bookings() mediseek.BookingsClient {
	return c.bookings
}

// Chat implements mediseek.Client.Chat.
func (c *Client) Chat() mediseek.ChatClient {
	return c.chat
}

// SetAuthToken implements mediseek.Client.SetAuthToken.
func (c *Client) SetAuthToken(token string) {
	c.tokens.SetToken(token)
}

// ClearAuthToken implements mediseek.Client.ClearAuthToken.
func (c *Client) ClearAuthToken() {
	c.tokens.ClearToken()
}

// Token implements mediseek.Client.Token.
func (c *Client) Token(ctx context.Context) (string, error) {
	return c.tokens.GetToken(ctx)
}

// loggerAdapter adapts mediseek.Logger to the transport Logger.
type loggerAdapter struct {
	logger mediseek.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
