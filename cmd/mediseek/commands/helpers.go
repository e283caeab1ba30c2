package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mediseek-io/mediseek-client/pkg/mediseek"
	"github.com/mediseek-io/mediseek-client/pkg/msclient"
)

// Common string constants used throughout the commands package.
const (
	// Output formats.
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	maskedValue = "***"
)

// Common static errors used throughout the commands package.
var (
	ErrAPIEndpointRequired = errors.New("API endpoint is required (use --api or 'mediseek config set api')")
	ErrEmailRequired       = errors.New("email is required")
	ErrUnknownConfigKey    = errors.New("unknown configuration key")
	ErrRequestFailed       = errors.New("request failed")
	ErrNotLoggedIn         = errors.New("not logged in (run 'mediseek login')")
)

// createClient builds an API client from the active configuration.
func createClient() (mediseek.Client, error) {
	config := loadConfig()
	if config.API == "" {
		return nil, ErrAPIEndpointRequired
	}

	return msclient.New(&mediseek.Config{
		APIEndpoint:  config.API,
		AccessToken:  config.Token,
		RefreshToken: config.RefreshToken,
		Debug:        viper.GetBool("verbose"),
	})
}

// envelopeFailure converts a failed envelope into a command error so the
// CLI exits non-zero with the server's message.
func envelopeFailure[T any](envelope *mediseek.Envelope[T]) error {
	message := envelope.Error
	if message == "" {
		message = envelope.Message
	}

	if message == "" {
		return ErrRequestFailed
	}

	return fmt.Errorf("%w: %s", ErrRequestFailed, message)
}

// renderJSON writes v as indented JSON to stdout.
func renderJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}

// renderYAML writes v as YAML to stdout.
func renderYAML(v interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)

	return encoder.Encode(v)
}

// persistSession stores the session installed on the client after a
// successful login or signup.
func persistSession(session *mediseek.AuthSession) error {
	config := loadConfig()
	config.Token = session.AccessToken()
	config.RefreshToken = session.RefreshToken()
	config.Email = session.User.Email

	return saveConfigStruct(config)
}
