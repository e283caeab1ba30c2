package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mediseek-io/mediseek-client/internal/constants"
)

// Config represents the CLI configuration persisted under ~/.mediseek.
type Config struct {
	API          string `json:"api,omitempty"           yaml:"api,omitempty"`
	Token        string `json:"token,omitempty"         yaml:"token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty" yaml:"refresh_token,omitempty"`
	Email        string `json:"email,omitempty"         yaml:"email,omitempty"`

	// Global settings
	Output string `json:"output" yaml:"output"`
}

// loadConfig builds the configuration from viper state.
func loadConfig() *Config {
	config := &Config{
		API:          viper.GetString("api"),
		Token:        viper.GetString("token"),
		RefreshToken: viper.GetString("refresh_token"),
		Email:        viper.GetString("email"),
		Output:       viper.GetString("output"),
	}

	if config.Output == "" {
		config.Output = "table"
	}

	return config
}

// saveConfigStruct writes the configuration back to the active config file,
// creating ~/.mediseek/config.yml when none is in use yet.
func saveConfigStruct(config *Config) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		configDir := filepath.Join(home, ".mediseek")

		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		configFile = filepath.Join(configDir, "config.yml")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Keep the in-memory view in sync with what was written.
	viper.Set("api", config.API)
	viper.Set("token", config.Token)
	viper.Set("refresh_token", config.RefreshToken)
	viper.Set("email", config.Email)

	return nil
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage MediSeek CLI configuration including the API endpoint and session",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			// Never print the stored tokens.
			display := *config
			if display.Token != "" {
				display.Token = maskedValue
			}

			if display.RefreshToken != "" {
				display.RefreshToken = maskedValue
			}

			switch viper.GetString("output") {
			case OutputFormatJSON:
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")

				return encoder.Encode(display)
			case OutputFormatYAML:
				encoder := yaml.NewEncoder(os.Stdout)

				return encoder.Encode(display)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("API", display.API)
				_ = table.Append("Email", display.Email)
				_ = table.Append("Token", display.Token)
				_ = table.Append("Output", display.Output)

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			config := loadConfig()

			switch key {
			case "api":
				config.API = value
			case "output":
				config.Output = value
			case "email":
				config.Email = value
			default:
				return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
			}

			if err := saveConfigStruct(config); err != nil {
				return err
			}

			fmt.Printf("Set %s\n", key)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Remove a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			config := loadConfig()

			switch key {
			case "api":
				config.API = ""
			case "output":
				config.Output = "table"
			case "email":
				config.Email = ""
			case "token":
				config.Token = ""
				config.RefreshToken = ""
			default:
				return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
			}

			if err := saveConfigStruct(config); err != nil {
				return err
			}

			fmt.Printf("Unset %s\n", key)

			return nil
		},
	}
}
