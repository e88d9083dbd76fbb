package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ad-tracker/hookctl/pkg/api"
	"github.com/ad-tracker/hookctl/pkg/config"
)

type configureFlags struct {
	url      string
	apiKey   string
	noVerify bool
}

func newConfigureCmd(a *app) *cobra.Command {
	var flags configureFlags
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Connect to a webhook-ingestion backend",
		Long: strings.TrimSpace(`
Store the API base URL and key used by every other command.

Values not passed as flags are prompted for; the key prompt does not echo
when run from a terminal. Unless --no-verify is set the credential is
checked against the server with a minimal request before it is saved.

The environment variables ` + config.EnvAPIURL + ` and ` + config.EnvAPIKey + `
override the stored profile for a single run without touching it.`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// One scanner for both prompts: a second scanner over the same
			// reader would lose lines the first one buffered.
			scanner := bufio.NewScanner(a.stdin)

			if flags.url == "" {
				value, err := promptLine(scanner, "API URL: ")
				if err != nil {
					return err
				}
				flags.url = value
			}
			if flags.apiKey == "" {
				value, err := a.promptSecret(scanner, "API key: ")
				if err != nil {
					return err
				}
				flags.apiKey = value
			}

			cred := config.Credential{BaseURL: flags.url, APIKey: flags.apiKey}
			if err := cred.Validate(); err != nil {
				return err
			}

			if !flags.noVerify {
				client := api.New(cred.BaseURL, cred.APIKey, api.WithLogger(a.logger))
				if err := client.Verify(cmd.Context()); err != nil {
					return fmt.Errorf("could not verify the connection: %w", err)
				}
			}

			if err := a.config.Save(cred); err != nil {
				return err
			}
			a.client = nil
			fmt.Fprintf(a.stdout, "Connected to %s (key %s).\n", cred.BaseURL, config.RedactKey(cred.APIKey))
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.url, "url", "", "API base URL")
	cmd.Flags().StringVar(&flags.apiKey, "api-key", "", "API key")
	cmd.Flags().BoolVar(&flags.noVerify, "no-verify", false, "Save without checking the connection")
	return cmd
}

func newStatusCmd(a *app) *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the configured connection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cred := a.config.Load()
			if cred == nil {
				fmt.Fprintln(a.stdout, `Not connected. Run "hookctl configure" to connect.`)
				return nil
			}
			if check {
				client := api.New(cred.BaseURL, cred.APIKey, api.WithLogger(a.logger))
				if err := client.Verify(cmd.Context()); err != nil {
					return fmt.Errorf("connection check failed: %w", err)
				}
			}
			status := struct {
				BaseURL string `json:"base_url" yaml:"base_url"`
				APIKey  string `json:"api_key" yaml:"api_key"`
				Profile string `json:"profile" yaml:"profile"`
			}{cred.BaseURL, config.RedactKey(cred.APIKey), a.config.Path()}
			return a.writeDetails(status, [][2]string{
				{"API URL", status.BaseURL},
				{"API key", status.APIKey},
				{"Profile", status.Profile},
			})
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "Verify the connection against the server")
	return cmd
}

func newDisconnectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "Forget the stored credential and drop cached data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.config.Clear()
			if err := a.cacheStore().Clear(); err != nil {
				a.logger.Warn("cache clear failed", "error", err)
			}
			fmt.Fprintln(a.stdout, "Disconnected.")
			return nil
		},
	}
}

// promptLine writes a prompt to stderr and reads one trimmed line.
func promptLine(scanner *bufio.Scanner, prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("no input")
	}
	return strings.TrimSpace(scanner.Text()), nil
}

// promptSecret reads without echo when stdin is a terminal, otherwise it
// falls back to a plain line read so piped input keeps working.
func (a *app) promptSecret(scanner *bufio.Scanner, prompt string) (string, error) {
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(os.Stderr, prompt)
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}
	return promptLine(scanner, prompt)
}
