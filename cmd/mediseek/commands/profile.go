package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mediseek-io/mediseek-client/pkg/mediseek"
)

// NewProfileCommand creates the profile command group.
func NewProfileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage your profile",
	}

	cmd.AddCommand(newProfileShowCommand())
	cmd.AddCommand(newProfileCreateCommand())
	cmd.AddCommand(newProfileUpdateCommand())

	return cmd
}

func newProfileShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if loadConfig().Token == "" {
				return ErrNotLoggedIn
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			envelope, err := client.Profile().Get(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get profile: %w", err)
			}

			if !envelope.Success || envelope.Data == nil {
				return envelopeFailure(envelope)
			}

			profile := envelope.Data

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(profile)
			case OutputFormatYAML:
				return renderYAML(profile)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("Nickname", profile.Nickname)
				_ = table.Append("Country", profile.CountryID)
				_ = table.Append("Birth Date", profile.BirthDate)
				_ = table.Append("Gender", profile.Gender)

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}

func newProfileCreateCommand() *cobra.Command {
	var (
		nickname  string
		countryID string
		birthDate string
		gender    string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if loadConfig().Token == "" {
				return ErrNotLoggedIn
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			envelope, err := client.Profile().Create(context.Background(), &mediseek.CreateProfileRequest{
				Nickname:  nickname,
				CountryID: countryID,
				BirthDate: birthDate,
				Gender:    gender,
			})
			if err != nil {
				return fmt.Errorf("failed to create profile: %w", err)
			}

			if !envelope.Success {
				return envelopeFailure(envelope)
			}

			fmt.Println("Profile created")

			return nil
		},
	}

	cmd.Flags().StringVarP(&nickname, "nickname", "n", "", "display name")
	cmd.Flags().StringVar(&countryID, "country", "", "country code")
	cmd.Flags().StringVar(&birthDate, "birth-date", "", "birth date, YYYY-MM-DD")
	cmd.Flags().StringVar(&gender, "gender", "", "gender (male, female, other)")
	_ = cmd.MarkFlagRequired("nickname")
	_ = cmd.MarkFlagRequired("country")

	return cmd
}

func newProfileUpdateCommand() *cobra.Command {
	var (
		nickname  string
		countryID string
		birthDate string
		gender    string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if loadConfig().Token == "" {
				return ErrNotLoggedIn
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			envelope, err := client.Profile().Update(context.Background(), &mediseek.UpdateProfileRequest{
				Nickname:  nickname,
				CountryID: countryID,
				BirthDate: birthDate,
				Gender:    gender,
			})
			if err != nil {
				return fmt.Errorf("failed to update profile: %w", err)
			}

			if !envelope.Success {
				return envelopeFailure(envelope)
			}

			fmt.Println("Profile updated")

			return nil
		},
	}

	cmd.Flags().StringVarP(&nickname, "nickname", "n", "", "display name")
	cmd.Flags().StringVar(&countryID, "country", "", "country code")
	cmd.Flags().StringVar(&birthDate, "birth-date", "", "birth date, YYYY-MM-DD")
	cmd.Flags().StringVar(&gender, "gender", "", "gender (male, female, other)")

	return cmd
}
