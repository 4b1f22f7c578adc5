package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/teamforge-io/ctf/internal/constants"
	"github.com/teamforge-io/ctf/pkg/ctf"
	"github.com/teamforge-io/ctf/pkg/ctfclient"
)

// Config represents the CLI configuration persisted at ~/.ctf/config.yml.
type Config struct {
	Servers       map[string]*ServerConfig `json:"servers,omitempty"        yaml:"servers,omitempty"`
	CurrentServer string                   `json:"current_server,omitempty" yaml:"current_server,omitempty"`
	Output        string                   `json:"output,omitempty"         yaml:"output,omitempty"`
}

// ServerConfig represents one saved TeamForge server.
type ServerConfig struct {
	URL      string `json:"url"                yaml:"url"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Token    string `json:"token,omitempty"    yaml:"token,omitempty"`
}

func configFilePath() (string, error) {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		return cfgFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}

	return filepath.Join(home, ".ctf", "config.yml"), nil
}

func loadConfig() (*Config, error) {
	path, err := configFilePath()
	if err != nil {
		return nil, err
	}

	config := &Config{Servers: map[string]*ServerConfig{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}

		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if config.Servers == nil {
		config.Servers = map[string]*ServerConfig{}
	}

	return config, nil
}

func saveConfigStruct(config *Config) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// currentServer resolves the server to use: the --server flag (either a
// saved server name or a URL) or the config's current server.
func currentServer(config *Config) (*ServerConfig, error) {
	flagValue := viper.GetString("server")

	if flagValue != "" {
		if saved, ok := config.Servers[flagValue]; ok {
			return saved, nil
		}

		return &ServerConfig{URL: flagValue}, nil
	}

	if config.CurrentServer != "" {
		if saved, ok := config.Servers[config.CurrentServer]; ok {
			return saved, nil
		}

		return nil, fmt.Errorf("%q: %w", config.CurrentServer, ErrServerNotFound)
	}

	return nil, ErrServerRequired
}

// CreateClient builds an API client for the selected server. A --token flag
// overrides any saved session token.
func CreateClient(ctx context.Context) (ctf.Client, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}

	server, err := currentServer(config)
	if err != nil {
		return nil, err
	}

	token := viper.GetString("token")
	if token == "" {
		token = server.Token
	}

	return ctfclient.New(ctx, &ctf.Config{
		ServerURL:   server.URL,
		Username:    server.Username,
		AccessToken: token,
		RetryMax:    constants.DefaultRetryMax,
		Debug:       viper.GetBool("verbose"),
		Logger:      verboseLogger(),
	})
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "View and modify saved servers and defaults",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigTargetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			// Tokens stay out of the terminal.
			redacted := &Config{
				Servers:       map[string]*ServerConfig{},
				CurrentServer: config.CurrentServer,
				Output:        config.Output,
			}
			for name, server := range config.Servers {
				redacted.Servers[name] = &ServerConfig{
					URL:      server.URL,
					Username: server.Username,
				}
			}

			if done, err := renderStructured(redacted); done {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Server", "URL", "Username", "Current")

			for name, server := range redacted.Servers {
				current := ""
				if name == config.CurrentServer {
					current = "*"
				}

				_ = table.Append(name, server.URL, orNA(server.Username), current)
			}

			_ = table.Render()

			return nil
		},
	}
}

func newConfigTargetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "target SERVER_NAME",
		Short: "Switch the current server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			name := args[0]
			if _, ok := config.Servers[name]; !ok {
				return fmt.Errorf("%q: %w", name, ErrServerNotFound)
			}

			config.CurrentServer = name
			if err := saveConfigStruct(config); err != nil {
				return err
			}

			cmd.Printf("Now targeting server '%s'\n", name)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset SERVER_NAME",
		Short: "Remove a saved server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			name := args[0]
			if _, ok := config.Servers[name]; !ok {
				return fmt.Errorf("%q: %w", name, ErrServerNotFound)
			}

			delete(config.Servers, name)
			if config.CurrentServer == name {
				config.CurrentServer = ""
			}

			if err := saveConfigStruct(config); err != nil {
				return err
			}

			cmd.Printf("Removed server '%s'\n", name)

			return nil
		},
	}
}
