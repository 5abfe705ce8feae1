// Package cli defines Cobra command definitions for the tutor CLI.
// This file contains the root command, which launches the chat TUI.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tutorterm/tutor/internal/api"
	"github.com/tutorterm/tutor/internal/chat"
	"github.com/tutorterm/tutor/internal/config"
	"github.com/tutorterm/tutor/internal/session"
	"github.com/tutorterm/tutor/internal/state"
	"github.com/tutorterm/tutor/internal/styles"
	"github.com/tutorterm/tutor/internal/tui"
	"github.com/tutorterm/tutor/internal/version"
)

var (
	serverFlag string
	debugFlag  bool
	plainFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "tutor",
	Short: "Terminal client for the tutor streaming chat service",
	Long: `Tutor is a terminal chat client for an AI tutoring service.
It streams replies token by token, renders them as markdown, and keeps
your login, personas and uploaded files manageable from the command line.

Run with no arguments to open the interactive chat.`,
	Version:       version.Effective(),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runChat,
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return cmd.Help()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if plainFlag {
		cfg.UI.PlainText = true
	}

	// Anonymous chat is allowed: without a stored token the request
	// simply carries no user id and no bearer header.
	st, err := state.Load()
	if err != nil {
		return fmt.Errorf("cli: loading state: %w", err)
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	styles.ApplyTheme(cfg.UI.Theme)

	client := api.New(cfg.Server.URL, st.AccessToken)
	client.SetTimeout(cfg.Server.RequestTimeout)
	keygen := session.NewGenerator()
	events := tui.NewEventChannel()

	controller := chat.NewController(client, chat.IdentityFunc(st.Identity), tui.Sink(events), keygen.Generate(), logger)

	model := tui.New(cfg, controller, keygen, st.Username, events, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("cli: running chat: %w", err)
	}
	return nil
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cli: loading config: %w", err)
	}
	if serverFlag != "" {
		cfg.Server.URL = serverFlag
	}
	return cfg, nil
}

// newLogger returns a logger for the TUI session. Logging to stderr would
// corrupt the alternate-screen output, so debug logs go to a file and
// everything is discarded otherwise.
func newLogger() (*slog.Logger, func(), error) {
	if !debugFlag {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	path := filepath.Join(filepath.Dir(config.Path()), "debug.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cli: opening debug log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	return logger, func() { f.Close() }, nil
}

// newClient builds an API client for the non-interactive subcommands.
func newClient() (*api.Client, *state.State, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	st, err := state.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cli: loading state: %w", err)
	}
	client := api.New(cfg.Server.URL, st.AccessToken)
	client.SetTimeout(cfg.Server.RequestTimeout)
	return client, st, nil
}

// requireAuth is newClient for subcommands that need a logged-in user.
func requireAuth() (*api.Client, *state.State, error) {
	client, st, err := newClient()
	if err != nil {
		return nil, nil, err
	}
	if !st.Authenticated() {
		return nil, nil, fmt.Errorf("not logged in; run: tutor login <username>")
	}
	return client, st, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "Tutor service URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Write debug logs to the config directory")
	rootCmd.PersistentFlags().BoolVar(&plainFlag, "plain", false, "Disable markdown rendering")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(personasCmd)
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(versionCmd)
}
