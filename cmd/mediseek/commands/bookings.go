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

// NewBookingsCommand creates the bookings command group.
func NewBookingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Manage bookings",
		Long:  "Create, list, inspect, and cancel clinic bookings",
	}

	cmd.AddCommand(newBookingsListCommand())
	cmd.AddCommand(newBookingsCreateCommand())
	cmd.AddCommand(newBookingsGetCommand())
	cmd.AddCommand(newBookingsCancelCommand())

	return cmd
}

func newBookingsListCommand() *cobra.Command {
	var (
		status  string
		page    int
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			params := mediseek.NewQueryParams().WithPage(page, perPage)
			params.Status = status

			envelope, err := client.Bookings().List(context.Background(), params)
			if err != nil {
				return fmt.Errorf("failed to list bookings: %w", err)
			}

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
					fmt.Println("No bookings found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Clinic", "Date", "Time", "Status")

				for _, booking := range list.Items {
					_ = table.Append([]string{
						booking.ID,
						booking.ClinicName,
						booking.Date,
						booking.Time,
						booking.Status,
					})
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (pending, confirmed, cancelled, completed)")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 20, "results per page")

	return cmd
}

func newBookingsCreateCommand() *cobra.Command {
	var (
		clinicID string
		date     string
		timeSlot string
		note     string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Book a clinic visit",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			envelope, err := client.Bookings().Create(context.Background(), &mediseek.CreateBookingRequest{
				ClinicID: clinicID,
				Date:     date,
				Time:     timeSlot,
				Note:     note,
			})
			if err != nil {
				return fmt.Errorf("failed to create booking: %w", err)
			}

			if !envelope.Success || envelope.Data == nil {
				return envelopeFailure(envelope)
			}

			booking := envelope.Data
			fmt.Printf("Booked %s on %s at %s (%s), booking ID %s\n",
				booking.ClinicName, booking.Date, booking.Time, booking.Status, booking.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&clinicID, "clinic", "", "clinic ID (required)")
	cmd.Flags().StringVar(&date, "date", "", "visit date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&timeSlot, "time", "", "visit time, HH:MM (required)")
	cmd.Flags().StringVar(&note, "note", "", "note for the clinic")
	_ = cmd.MarkFlagRequired("clinic")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}

func newBookingsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get BOOKING_ID",
		Short: "Show booking details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			envelope, err := client.Bookings().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get booking: %w", err)
			}

			if !envelope.Success || envelope.Data == nil {
				return envelopeFailure(envelope)
			}

			booking := envelope.Data

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(booking)
			case OutputFormatYAML:
				return renderYAML(booking)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("ID", booking.ID)
				_ = table.Append("Clinic", booking.ClinicName)
				_ = table.Append("Date", booking.Date)
				_ = table.Append("Time", booking.Time)
				_ = table.Append("Status", booking.Status)
				_ = table.Append("Note", booking.Note)

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}

func newBookingsCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel BOOKING_ID",
		Short: "Cancel a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			envelope, err := client.Bookings().Cancel(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to cancel booking: %w", err)
			}

			if !envelope.Success {
				return envelopeFailure(envelope)
			}

			fmt.Printf("Booking %s cancelled\n", args[0])

			return nil
		},
	}
}
