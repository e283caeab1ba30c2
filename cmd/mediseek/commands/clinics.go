package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mediseek-io/mediseek-client/pkg/mediseek"
)

// NewClinicsCommand creates the clinics command group.
func NewClinicsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clinics",
		Short: "Discover clinics",
		Long:  "List, search, and inspect clinics",
	}

	cmd.AddCommand(newClinicsListCommand())
	cmd.AddCommand(newClinicsSearchCommand())
	cmd.AddCommand(newClinicsGetCommand())

	return cmd
}

func newClinicsListCommand() *cobra.Command {
	var (
		page      int
		perPage   int
		specialty string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clinics",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			params := mediseek.NewQueryParams().WithPage(page, perPage)
			params.Specialty = specialty

			envelope, err := client.Clinics().List(context.Background(), params)
			if err != nil {
				return fmt.Errorf("failed to list clinics: %w", err)
			}

			return renderClinics(envelope)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 20, "results per page")
	cmd.Flags().StringVarP(&specialty, "specialty", "s", "", "filter by specialty")

	return cmd
}

func newClinicsSearchCommand() *cobra.Command {
	var (
		page    int
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search clinics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			params := mediseek.NewQueryParams().WithPage(page, perPage)
			params.Search = strings.Join(args, " ")

			envelope, err := client.Clinics().Search(context.Background(), params)
			if err != nil {
				return fmt.Errorf("failed to search clinics: %w", err)
			}

			return renderClinics(envelope)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 20, "results per page")

	return cmd
}

func newClinicsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CLINIC_ID",
		Short: "Show clinic details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			envelope, err := client.Clinics().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get clinic: %w", err)
			}

			if !envelope.Success || envelope.Data == nil {
				return envelopeFailure(envelope)
			}

			clinic := envelope.Data

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(clinic)
			case OutputFormatYAML:
				return renderYAML(clinic)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", clinic.ID)
				_ = table.Append("Name", clinic.Name)
				_ = table.Append("Address", clinic.Address)
				_ = table.Append("Phone", clinic.Phone)
				_ = table.Append("Specialties", strings.Join(clinic.Specialties, ", "))
				_ = table.Append("Rating", fmt.Sprintf("%.1f (%d reviews)", clinic.Rating, clinic.ReviewCount))

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}

func renderClinics(envelope *mediseek.Envelope[mediseek.ClinicList]) error {
	if !envelope.Success || envelope.Data == nil {
		return envelopeFailure(envelope)
	}

	list := envelope.Data

	switch viper.GetString("output") {
	case OutputFormatJSON:
		return renderJSON(list.Items)
	case OutputFormatYAML:
		return renderYAML(list.Items)
	default:
		if len(list.Items) == 0 {
			fmt.Println("No clinics found")

			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("ID", "Name", "Address", "Specialties", "Rating")

		for _, clinic := range list.Items {
			_ = table.Append([]string{
				clinic.ID,
				clinic.Name,
				clinic.Address,
				strings.Join(clinic.Specialties, ", "),
				strconv.FormatFloat(clinic.Rating, 'f', 1, 64),
			})
		}

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		fmt.Printf("\nPage %d of %d clinics\n", list.Pagination.Page, list.Pagination.Total)

		return nil
	}
}
