package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/getset-tui/api"
	"github.com/getset-tui/auth"
	"github.com/getset-tui/config"
	"github.com/getset-tui/inbox"
	"github.com/getset-tui/logging"
	"github.com/getset-tui/tui"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "getset-tui",
		Short: "Terminal client for the GetSet rental platform",
		RunE:  runTUI,
	}
	root.AddCommand(loginCmd(), registerCmd())
	return root
}

// initLogging sends logs to a file; the TUI owns the terminal.
func initLogging(level string) func() {
	f, err := logging.OpenLogFile(".getset-tui.log")
	if err != nil {
		return func() {}
	}
	logging.Init(logging.Config{Level: level, Output: f})
	return func() { f.Close() }
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	closeLog := initLogging(cfg.LogLevel)
	defer closeLog()

	client := api.NewClient(cfg.ServerURL, cfg.AccessToken, cfg.RequestTimeout())
	if !client.Authenticated() {
		return fmt.Errorf("not logged in; run `getset-tui login` first")
	}

	identity := auth.DecodeClaims(cfg.AccessToken)
	logging.Logger.Info().
		Str("server", cfg.ServerURL).
		Str("user", identity.ID).
		Str("role", identity.Role).
		Msg("starting")

	pingCtx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
	err = client.Ping(pingCtx)
	cancel()
	if err != nil {
		return err
	}

	poller := inbox.NewPoller(inbox.NewFetcher(client), inbox.PollerConfig{
		Interval:       cfg.PollInterval(),
		RequestTimeout: cfg.RequestTimeout(),
	})
	defer poller.Stop()

	p := tea.NewProgram(tui.NewAppModel(client, poller, identity), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store the access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			email, password, err := promptCredentials()
			if err != nil {
				return err
			}

			client := api.NewClient(cfg.ServerURL, "", cfg.RequestTimeout())
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			token, err := client.Login(ctx, email, password)
			if err != nil {
				return err
			}
			if err := config.SaveToken(token); err != nil {
				return fmt.Errorf("login succeeded but saving the token failed: %v", err)
			}

			identity := auth.DecodeClaims(token)
			fmt.Printf("Logged in as %s (%s)\n", identity.Name, identity.Role)
			return nil
		},
	}
}

func registerCmd() *cobra.Command {
	var name, role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			role = strings.ToUpper(role)
			if role != "RENTER" && role != "OWNER" {
				return fmt.Errorf("--role must be renter or owner")
			}

			email, password, err := promptCredentials()
			if err != nil {
				return err
			}
			if name == "" {
				name = email
			}

			client := api.NewClient(cfg.ServerURL, "", cfg.RequestTimeout())
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			token, err := client.Register(ctx, email, password, name, role)
			if err != nil {
				return err
			}
			if token != "" {
				if err := config.SaveToken(token); err != nil {
					return err
				}
				fmt.Println("Registered and logged in.")
				return nil
			}
			fmt.Println("Registered. Run `getset-tui login` to sign in.")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&role, "role", "renter", "account role: renter or owner")
	return cmd
}

func promptCredentials() (string, string, error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return "", "", err
	}
	email = strings.TrimSpace(email)

	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", "", err
	}

	return email, strings.TrimSpace(string(raw)), nil
}
