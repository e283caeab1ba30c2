package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mediseek-io/mediseek-client/pkg/mediseek"
)

// NewChatCommand creates the chat command group.
func NewChatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the health assistant",
	}

	cmd.AddCommand(newChatAskCommand())
	cmd.AddCommand(newChatHistoryCommand())

	return cmd
}

func newChatAskCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ask QUESTION",
		Short: "Ask the health assistant a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			envelope, err := client.Chat().Send(context.Background(), &mediseek.ChatRequest{
				Question: strings.Join(args, " "),
			})
			if err != nil {
				return fmt.Errorf("failed to send question: %w", err)
			}

			if !envelope.Success || envelope.Data == nil {
				return envelopeFailure(envelope)
			}

			fmt.Println(envelope.Data.Content)

			return nil
		},
	}
}

func newChatHistoryCommand() *cobra.Command {
	var (
		page    int
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			envelope, err := client.Chat().History(context.Background(),
				mediseek.NewQueryParams().WithPage(page, perPage))
			if err != nil {
				return fmt.Errorf("failed to load history: %w", err)
			}

			if !envelope.Success || envelope.Data == nil {
				return envelopeFailure(envelope)
			}

			history := envelope.Data

			switch viper.GetString("output") {
			case OutputFormatJSON:
				return renderJSON(history.Items)
			case OutputFormatYAML:
				return renderYAML(history.Items)
			default:
				if len(history.Items) == 0 {
					fmt.Println("No messages yet")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Role", "Message", "Sent")

				for _, message := range history.Items {
					sent := ""
					if !message.CreatedAt.IsZero() {
						sent = message.CreatedAt.Format("2006-01-02 15:04")
					}

					_ = table.Append([]string{message.Role, message.Content, sent})
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 20, "messages per page")

	return cmd
}
