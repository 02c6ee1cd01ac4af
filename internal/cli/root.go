package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	cfg     *Config
	client  *Client
	session Session
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()
	session = Session{}

	rootCmd := &cobra.Command{
		Use:   "tdctl",
		Short: "CLI tool for the truth or dare room API",
		Long: `tdctl is a CLI tool for interacting with the truth or dare JSON API.

It supports room management, turn and question actions, admin controls,
and real-time SSE event streaming. The room created or joined last is
remembered so later commands can omit the room arguments.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			session, err = cfg.LoadSession()
			if err != nil {
				return err
			}

			token := cfg.AdminToken
			if token == "" {
				token = session.AdminToken
			}
			client = NewClient(cfg.ServerURL, token)
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: TDCTL_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.AdminToken, "admin-token", cfg.AdminToken, "Room admin token (env: TDCTL_ADMIN_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.SessionFile, "session-file", cfg.SessionFile, "Session file path (env: TDCTL_SESSION_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	rootCmd.AddCommand(newRoomCmd())
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newAdminCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

var (
	errNoRoomID   = errors.New("no room id given and no saved session")
	errNoRoomCode = errors.New("no room code given and no saved session")
)

func roomIDArg(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if session.RoomID == "" {
		return "", errNoRoomID
	}
	return session.RoomID, nil
}

func roomCodeArg(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return strings.ToUpper(strings.TrimSpace(args[0])), nil
	}
	if session.RoomCode == "" {
		return "", errNoRoomCode
	}
	return session.RoomCode, nil
}

func output(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout())
}
