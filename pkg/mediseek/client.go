package mediseek

import (
	"context"
	"time"
)

// AuthClient provides access to authentication operations. Login and Signup
// install the returned access token on the owning client; Refresh exchanges
// the stored refresh token for a new session.
type AuthClient interface {
	Login(ctx context.Context, request *LoginRequest) (*Envelope[AuthSession], error)
	Signup(ctx context.Context, request *SignupRequest) (*Envelope[AuthSession], error)
	Refresh(ctx context.Context) (*Envelope[AuthSession], error)
	Logout()
}

// ProfileClient provides access to user profile operations.
type ProfileClient interface {
	Get(ctx context.Context) (*Envelope[Profile], error)
	Update(ctx context.Context, request *UpdateProfileRequest) (*Envelope[Profile], error)
	Create(ctx context.Context, request *CreateProfileRequest) (*Envelope[Profile], error)
}

// ClinicsClient provides access to clinic discovery operations.
type ClinicsClient interface {
	List(ctx context.Context, params *QueryParams) (*Envelope[ClinicList], error)
	Get(ctx context.Context, clinicID string) (*Envelope[Clinic], error)
	Search(ctx context.Context, params *QueryParams) (*Envelope[ClinicList], error)
}

// BookingsClient provides access to booking operations.
type BookingsClient interface {
	Create(ctx context.Context, request *CreateBookingRequest) (*Envelope[Booking], error)
	List(ctx context.Context, params *QueryParams) (*Envelope[BookingList], error)
	Get(ctx context.Context, bookingID string) (*Envelope[Booking], error)
	Cancel(ctx context.Context, bookingID string) (*Envelope[Booking], error)
}

// ChatClient provides access to the chat assistant.
type ChatClient interface {
	Send(ctx context.Context, request *ChatRequest) (*Envelope[ChatMessage], error)
	History(ctx context.Context, params *QueryParams) (*Envelope[ChatHistory], error)
}

// Client is the full MediSeek API surface.
type Client interface {
	Auth() AuthClient
	Profile() ProfileClient
	Clinics() ClinicsClient
	Bookings() BookingsClient
	Chat() ChatClient

	// SetAuthToken installs a bearer token for all subsequent requests.
	SetAuthToken(token string)

	// ClearAuthToken removes the installed bearer token.
	ClearAuthToken()

	// Token returns the currently installed bearer token, or "".
	Token(ctx context.Context) (string, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a mediseek.Client.
//
// Auth state is owned by the constructed client instance, not by package
// state: two clients built from two Configs hold independent sessions.
type Config struct {
	// APIEndpoint: base URL for the MediSeek API (e.g. "https://api.mediseek.io").
	// msclient.New normalizes this value by trimming a trailing slash and
	// adding "https://" if no scheme is present.
	APIEndpoint string

	// AccessToken: if set, installed as the initial bearer token.
	AccessToken string

	// RefreshToken: optional refresh token used by Auth().Refresh.
	RefreshToken string

	// HTTPTimeout: per-request timeout. Defaults to 10 s.
	HTTPTimeout time.Duration

	// RetryMax: maximum number of transport retries for transient failures
	// (>=500, 429, and connection errors). If 0, a default is used.
	RetryMax int

	// RetryWaitMin: minimum backoff between transport retries.
	RetryWaitMin time.Duration

	// RetryWaitMax: maximum backoff between transport retries.
	RetryWaitMax time.Duration

	// Cache, when set, enables the response cache on the transport: eligible
	// GET responses are stored in the configured backend and replayed without
	// a network round trip. CachePolicy decides eligibility.
	Cache *CacheConfig

	// CachePolicy overrides the caching policy. Ignored unless Cache is set;
	// defaults to DefaultCachingPolicy().
	CachePolicy *CachingPolicy

	// Interceptors: optional extra interceptor chain run on every request,
	// e.g. HeaderInterceptor or the metrics interceptors.
	Interceptors *InterceptorChain

	// Debug enables verbose HTTP request/response logging when a Logger is set.
	Debug bool

	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger

	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
