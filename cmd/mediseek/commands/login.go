package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mediseek-io/mediseek-client/pkg/mediseek"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to MediSeek",
		Long:  "Authenticate with email and password and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = loadConfig().Email
			}

			if email == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Email: ")
				email, _ = reader.ReadString('\n')
				email = strings.TrimSpace(email)
			}

			if email == "" {
				return ErrEmailRequired
			}

			if password == "" {
				fmt.Print("Password: ")

				bytePassword, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				password = string(bytePassword)

				fmt.Println()
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			envelope, err := client.Auth().Login(context.Background(), &mediseek.LoginRequest{
				Email:    email,
				Password: password,
			})
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			if !envelope.Success || envelope.Data == nil {
				return envelopeFailure(envelope)
			}

			if err := persistSession(envelope.Data); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			fmt.Printf("Logged in as %s\n", envelope.Data.User.Email)

			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")

	return cmd
}

// NewSignupCommand creates the signup command
func NewSignupCommand() *cobra.Command {
	var (
		email     string
		password  string
		nickname  string
		countryID string
	)

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a MediSeek account",
		Long:  "Register a new account and store the resulting session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				return ErrEmailRequired
			}

			if password == "" {
				fmt.Print("Password: ")

				bytePassword, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				password = string(bytePassword)

				fmt.Println()
				fmt.Print("Confirm password: ")

				byteConfirm, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				fmt.Println()

				if string(byteConfirm) != password {
					return fmt.Errorf("%w: passwords do not match", ErrRequestFailed)
				}
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			envelope, err := client.Auth().Signup(context.Background(), &mediseek.SignupRequest{
				Email:           email,
				Password:        password,
				ConfirmPassword: password,
				Nickname:        nickname,
				CountryID:       countryID,
				TermsAgreement:  true,
			})
			if err != nil {
				return fmt.Errorf("signup failed: %w", err)
			}

			if !envelope.Success || envelope.Data == nil {
				return envelopeFailure(envelope)
			}

			if err := persistSession(envelope.Data); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			fmt.Printf("Account created for %s\n", envelope.Data.User.Email)

			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	cmd.Flags().StringVarP(&nickname, "nickname", "n", "", "display name")
	cmd.Flags().StringVar(&countryID, "country", "", "country code")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from MediSeek",
		Long:  "Drop the stored session tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.Token = ""
			config.RefreshToken = ""

			if err := saveConfigStruct(config); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Println("Logged out")

			return nil
		},
	}
}
