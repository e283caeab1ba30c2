package mediseek

import (
	"time"
)

// Envelope is the fixed wire shape every MediSeek endpoint responds with, and
// the shape resource clients normalize transport failures into. Exactly one of
// Data or Error is meaningful depending on Success; both may be absent in
// degenerate empty responses.
type Envelope[T any] struct {
	Success bool    `json:"success"           yaml:"success"`
	Data    *T      `json:"data,omitempty"    yaml:"data,omitempty"`
	Message string  `json:"message,omitempty" yaml:"message,omitempty"`
	Error   string  `json:"error,omitempty"   yaml:"error,omitempty"`
}

// Pagination represents pagination information for list payloads.
type Pagination struct {
	Total   int `json:"total"    yaml:"total"`
	Page    int `json:"page"     yaml:"page"`
	PerPage int `json:"per_page" yaml:"per_page"`
}

// ListPayload represents a paginated list payload inside an Envelope.
type ListPayload[T any] struct {
	Pagination Pagination `json:"pagination" yaml:"pagination"`
	Items      []T        `json:"items"      yaml:"items"`
}

// User represents an account record.
type User struct {
	ID        string    `json:"id"                   yaml:"id"`
	Email     string    `json:"email"                yaml:"email"`
	Nickname  string    `json:"nickname"             yaml:"nickname"`
	CountryID string    `json:"country_id,omitempty" yaml:"country_id,omitempty"`
	CreatedAt time.Time `json:"created_at"           yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at"           yaml:"updated_at"`
}

// Profile represents the extended user profile.
type Profile struct {
	UserID    string `json:"user_id"              yaml:"user_id"`
	Nickname  string `json:"nickname"             yaml:"nickname"`
	CountryID string `json:"country_id,omitempty" yaml:"country_id,omitempty"`
	BirthDate string `json:"birth_date,omitempty" yaml:"birth_date,omitempty"`
	Gender    string `json:"gender,omitempty"     yaml:"gender,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty" yaml:"avatar_url,omitempty"`
}

// AuthSession is the payload returned by login and signup. Tokens is a named
// token map; "access_token" is the authoritative bearer token.
type AuthSession struct {
	User   User              `json:"user"   yaml:"user"`
	Tokens map[string]string `json:"tokens" yaml:"tokens"`
}

// AccessTokenKey names the authoritative entry in AuthSession.Tokens.
const AccessTokenKey = "access_token"

// RefreshTokenKey names the refresh entry in AuthSession.Tokens, when present.
const RefreshTokenKey = "refresh_token"

// AccessToken returns the bearer token from the session, or "" if absent.
func (s *AuthSession) AccessToken() string {
	return s.Tokens[AccessTokenKey]
}

// RefreshToken returns the refresh token from the session, or "" if absent.
func (s *AuthSession) RefreshToken() string {
	return s.Tokens[RefreshTokenKey]
}

// Clinic represents a clinic record.
type Clinic struct {
	ID          string   `json:"id"                    yaml:"id"`
	Name        string   `json:"name"                  yaml:"name"`
	Address     string   `json:"address"               yaml:"address"`
	Phone       string   `json:"phone,omitempty"       yaml:"phone,omitempty"`
	Specialties []string `json:"specialties,omitempty" yaml:"specialties,omitempty"`
	Rating      float64  `json:"rating"                yaml:"rating"`
	ReviewCount int      `json:"review_count"          yaml:"review_count"`
	Latitude    float64  `json:"latitude,omitempty"    yaml:"latitude,omitempty"`
	Longitude   float64  `json:"longitude,omitempty"   yaml:"longitude,omitempty"`
}

// Booking statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// Booking represents a booking record. Date is "YYYY-MM-DD", Time is "HH:MM".
type Booking struct {
	ID         string    `json:"id"             yaml:"id"`
	ClinicID   string    `json:"clinic_id"      yaml:"clinic_id"`
	ClinicName string    `json:"clinic_name"    yaml:"clinic_name"`
	Date       string    `json:"date"           yaml:"date"`
	Time       string    `json:"time"           yaml:"time"`
	Status     string    `json:"status"         yaml:"status"`
	Note       string    `json:"note,omitempty" yaml:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"     yaml:"created_at"`
}

// Chat message roles.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage represents one message in the assistant conversation.
type ChatMessage struct {
	ID        string    `json:"id"         yaml:"id"`
	Role      string    `json:"role"       yaml:"role"`
	Content   string    `json:"content"    yaml:"content"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// ClinicList is a paginated list of clinics.
type ClinicList = ListPayload[Clinic]

// BookingList is a paginated list of bookings.
type BookingList = ListPayload[Booking]

// ChatHistory is a paginated list of chat messages.
type ChatHistory = ListPayload[ChatMessage]
