package mediseek

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Wire formats for calendar fields.
var (
	dateFormat = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeFormat = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// Shared field rules.
var (
	dateRule     = validation.Match(dateFormat).Error("must be in YYYY-MM-DD format")
	timeRule     = validation.Match(timeFormat).Error("must be in HH:MM format")
	passwordRule = validation.Length(6, 0).Error("minimum 6 characters")
	emailRule    = is.Email.Error("must be a valid email")
	ratingMin    = validation.Min(0.0).Error("must be at least 0")
	ratingMax    = validation.Max(5.0).Error("must be at most 5")
)

// wrapValidation converts an ozzo validation result into a *ValidationError
// with flattened (path, message) pairs. A nil input stays nil so Validate
// methods can return it directly.
func wrapValidation(err error) error {
	if err == nil {
		return nil
	}

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return &ValidationError{Fields: []FieldError{{Path: "", Message: err.Error()}}}
	}

	fields := map[string]string{}
	flattenErrors("", verrs, fields)

	return NewValidationError(fields)
}

func flattenErrors(prefix string, verrs validation.Errors, out map[string]string) {
	for field, err := range verrs {
		path := field
		if prefix != "" {
			path = prefix + "." + field
		}

		var nested validation.Errors
		if errors.As(err, &nested) {
			flattenErrors(path, nested, out)

			continue
		}

		out[path] = err.Error()
	}
}

// LoginRequest is the body of POST /auth/email/login.
type LoginRequest struct {
	Email    string `json:"email"    yaml:"email"`
	Password string `json:"password" yaml:"password"`
}

// Validate checks the request before it leaves the process.
func (r LoginRequest) Validate() error {
	return wrapValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, emailRule),
		validation.Field(&r.Password, validation.Required, passwordRule),
	))
}

// SignupRequest is the body of POST /auth/email/register.
type SignupRequest struct {
	Email              string `json:"email"                         yaml:"email"`
	Password           string `json:"password"                      yaml:"password"`
	ConfirmPassword    string `json:"confirm_password"              yaml:"confirm_password"`
	Nickname           string `json:"nickname"                      yaml:"nickname"`
	CountryID          string `json:"country_id"                    yaml:"country_id"`
	TermsAgreement     bool   `json:"terms_agreement"               yaml:"terms_agreement"`
	MarketingAgreement bool   `json:"marketing_agreement,omitempty" yaml:"marketing_agreement,omitempty"`
}

// Validate checks the request before it leaves the process.
func (r SignupRequest) Validate() error {
	return wrapValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, emailRule),
		validation.Field(&r.Password, validation.Required, passwordRule),
		validation.Field(&r.ConfirmPassword, validation.Required,
			validation.By(func(interface{}) error {
				if r.ConfirmPassword != r.Password {
					return errors.New("must match password")
				}

				return nil
			})),
		validation.Field(&r.Nickname, validation.Required, validation.Length(1, 30)),
		validation.Field(&r.CountryID, validation.Required),
		validation.Field(&r.TermsAgreement,
			validation.By(func(interface{}) error {
				if !r.TermsAgreement {
					return errors.New("must be accepted")
				}

				return nil
			})),
	))
}

// RefreshRequest is the body of POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" yaml:"refresh_token"`
}

// Validate checks the request before it leaves the process.
func (r RefreshRequest) Validate() error {
	return wrapValidation(validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required),
	))
}

// CreateProfileRequest is the body of POST /profile/create.
type CreateProfileRequest struct {
	Nickname  string `json:"nickname"             yaml:"nickname"`
	CountryID string `json:"country_id"           yaml:"country_id"`
	BirthDate string `json:"birth_date,omitempty" yaml:"birth_date,omitempty"`
	Gender    string `json:"gender,omitempty"     yaml:"gender,omitempty"`
}

// Validate checks the request before it leaves the process.
func (r CreateProfileRequest) Validate() error {
	return wrapValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Nickname, validation.Required, validation.Length(1, 30)),
		validation.Field(&r.CountryID, validation.Required),
		validation.Field(&r.BirthDate, dateRule),
		validation.Field(&r.Gender, validation.In("male", "female", "other").Error("must be one of male, female, other")),
	))
}

// UpdateProfileRequest is the body of PUT /user/profile. All fields optional;
// empty values are left untouched server-side.
type UpdateProfileRequest struct {
	Nickname  string `json:"nickname,omitempty"   yaml:"nickname,omitempty"`
	CountryID string `json:"country_id,omitempty" yaml:"country_id,omitempty"`
	BirthDate string `json:"birth_date,omitempty" yaml:"birth_date,omitempty"`
	Gender    string `json:"gender,omitempty"     yaml:"gender,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty" yaml:"avatar_url,omitempty"`
}

// Validate checks the request before it leaves the process.
func (r UpdateProfileRequest) Validate() error {
	return wrapValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Nickname, validation.Length(1, 30)),
		validation.Field(&r.BirthDate, dateRule),
		validation.Field(&r.Gender, validation.In("male", "female", "other").Error("must be one of male, female, other")),
		validation.Field(&r.AvatarURL, is.URL.Error("must be a valid URL")),
	))
}

// CreateBookingRequest is the body of POST /bookings.
type CreateBookingRequest struct {
	ClinicID string `json:"clinic_id"      yaml:"clinic_id"`
	Date     string `json:"date"           yaml:"date"`
	Time     string `json:"time"           yaml:"time"`
	Note     string `json:"note,omitempty" yaml:"note,omitempty"`
}

// Validate checks the request before it leaves the process.
func (r CreateBookingRequest) Validate() error {
	return wrapValidation(validation.ValidateStruct(&r,
		validation.Field(&r.ClinicID, validation.Required),
		validation.Field(&r.Date, validation.Required, dateRule),
		validation.Field(&r.Time, validation.Required, timeRule),
		validation.Field(&r.Note, validation.Length(0, 500)),
	))
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Question string `json:"question" yaml:"question"`
}

// Validate checks the request before it leaves the process.
func (r ChatRequest) Validate() error {
	return wrapValidation(validation.ValidateStruct(&r,
		validation.Field(&r.Question, validation.Required, validation.Length(1, 2000)),
	))
}

// Inbound contract checks. Resource clients run these on decoded payloads so
// a server that violates its own contract fails loudly instead of leaking
// malformed records into caller state.

// Validate checks a decoded User record.
func (u User) Validate() error {
	return wrapValidation(validation.ValidateStruct(&u,
		validation.Field(&u.ID, validation.Required),
		validation.Field(&u.Email, validation.Required, emailRule),
	))
}

// Validate checks a decoded AuthSession payload.
func (s AuthSession) Validate() error {
	return wrapValidation(validation.ValidateStruct(&s,
		validation.Field(&s.User),
		validation.Field(&s.Tokens, validation.Required,
			validation.By(func(interface{}) error {
				if s.Tokens[AccessTokenKey] == "" {
					return errors.New("missing " + AccessTokenKey)
				}

				return nil
			})),
	))
}

// Validate checks a decoded Clinic record.
func (c Clinic) Validate() error {
	return wrapValidation(validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required),
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Rating, ratingMin, ratingMax),
	))
}

// Validate checks a decoded Booking record.
func (b Booking) Validate() error {
	return wrapValidation(validation.ValidateStruct(&b,
		validation.Field(&b.ID, validation.Required),
		validation.Field(&b.ClinicID, validation.Required),
		validation.Field(&b.Date, validation.Required, dateRule),
		validation.Field(&b.Time, validation.Required, timeRule),
		validation.Field(&b.Status, validation.Required,
			validation.In(BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted).
				Error("unknown booking status")),
	))
}

// Validate checks a decoded ChatMessage record.
func (m ChatMessage) Validate() error {
	return wrapValidation(validation.ValidateStruct(&m,
		validation.Field(&m.Role, validation.Required,
			validation.In(ChatRoleUser, ChatRoleAssistant).Error("unknown chat role")),
		validation.Field(&m.Content, validation.Required),
	))
}
