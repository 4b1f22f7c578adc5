package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/teamforge-io/ctf/internal/constants"
	"github.com/teamforge-io/ctf/pkg/ctf"
	"github.com/teamforge-io/ctf/pkg/ctfclient"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		serverName   string
		username     string
		password     string
		oneTimeToken string
	)

	cmd := &cobra.Command{
		Use:   "login [SERVER_URL]",
		Short: "Log in to a TeamForge server",
		Long: `Authenticate against a TeamForge server and save the session.

The session token is stored in the CLI config under a server name, so
later commands can run without credentials until the token expires.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)

			serverURL := viper.GetString("server")
			if len(args) > 0 {
				serverURL = args[0]
			}

			if serverURL == "" {
				fmt.Print("Server URL: ")

				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("reading server URL: %w", err)
				}

				serverURL = strings.TrimSpace(line)
			}

			if serverURL == "" {
				return ErrServerRequired
			}

			if oneTimeToken == "" {
				if username == "" {
					fmt.Print("Username: ")

					line, err := reader.ReadString('\n')
					if err != nil {
						return fmt.Errorf("reading username: %w", err)
					}

					username = strings.TrimSpace(line)
				}

				if username == "" {
					return ErrUsernameRequired
				}

				if password == "" {
					if !term.IsTerminal(int(syscall.Stdin)) {
						return ErrPasswordNotInteractive
					}

					fmt.Print("Password: ")

					raw, err := term.ReadPassword(int(syscall.Stdin))

					fmt.Println()

					if err != nil {
						return fmt.Errorf("reading password: %w", err)
					}

					password = string(raw)
				}
			}

			client, err := ctfclient.New(cmd.Context(), &ctf.Config{
				ServerURL:    serverURL,
				Username:     username,
				Password:     password,
				OneTimeToken: oneTimeToken,
				RetryMax:     constants.DefaultRetryMax,
				Debug:        viper.GetBool("verbose"),
				Logger:       verboseLogger(),
			})
			if err != nil {
				return err
			}

			if err := client.Login(cmd.Context()); err != nil {
				return err
			}

			config, err := loadConfig()
			if err != nil {
				return err
			}

			if serverName == "" {
				serverName = "default"
			}

			config.Servers[serverName] = &ServerConfig{
				URL:      client.ServerURL(),
				Username: username,
				Token:    client.SessionID(),
			}
			config.CurrentServer = serverName

			if err := saveConfigStruct(config); err != nil {
				return err
			}

			cmd.Printf("Logged in to %s as '%s'\n", client.ServerURL(), orNA(username))

			return nil
		},
	}

	cmd.Flags().StringVar(&serverName, "name", "", "name to save the server under (default \"default\")")
	cmd.Flags().StringVarP(&username, "username", "u", "", "username for the password grant")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&oneTimeToken, "one-time-token", "", "SSO one-time token to exchange for a session")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the saved session for the current server",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}

			server, err := currentServer(config)
			if err != nil {
				return err
			}

			if server.Token == "" {
				return ctf.ErrNotAuthenticated
			}

			server.Token = ""

			if err := saveConfigStruct(config); err != nil {
				return err
			}

			cmd.Printf("Logged out of %s\n", server.URL)

			return nil
		},
	}
}
