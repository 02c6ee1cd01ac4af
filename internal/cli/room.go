package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Room management commands",
	}

	cmd.AddCommand(newRoomCreateCmd())
	cmd.AddCommand(newRoomJoinCmd())
	cmd.AddCommand(newRoomLeaveCmd())
	cmd.AddCommand(newRoomStateCmd())

	return cmd
}

func newRoomCreateCmd() *cobra.Command {
	var mode, name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new room and become its admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"game_mode":   strings.ToUpper(mode),
				"player_name": name,
			}

			var result CreateRoomResult
			if err := client.Post(cmd.Context(), "/api/v1/rooms", req, &result); err != nil {
				return err
			}

			if err := cfg.SaveSession(Session{
				RoomID:     result.RoomID,
				RoomCode:   result.RoomCode,
				PlayerID:   result.AdminPlayerID,
				AdminToken: result.AdminToken,
			}); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "TRUTH_AND_DARE", "Game mode: TRUTH_ONLY, DARE_ONLY, TRUTH_AND_DARE")
	cmd.Flags().StringVar(&name, "name", "", "Admin player name (default: Admin)")

	return cmd
}

func newRoomJoinCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "join <code>",
		Short: "Join a room by its code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"room_code":   strings.ToUpper(strings.TrimSpace(args[0])),
				"player_name": name,
			}

			var result JoinRoomResult
			if err := client.Post(cmd.Context(), "/api/v1/rooms/join", req, &result); err != nil {
				return err
			}

			next := Session{RoomID: result.RoomID, RoomCode: result.RoomCode, PlayerID: result.PlayerID}
			if session.RoomID == result.RoomID {
				next.AdminToken = session.AdminToken
			}
			if err := cfg.SaveSession(next); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newRoomLeaveCmd() *cobra.Command {
	var playerID string

	cmd := &cobra.Command{
		Use:   "leave [code]",
		Short: "Leave a room",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := roomCodeArg(args)
			if err != nil {
				return err
			}
			if playerID == "" {
				playerID = session.PlayerID
			}
			if playerID == "" {
				return fmt.Errorf("--player is required without a saved session")
			}

			req := map[string]string{"player_id": playerID}
			if err := client.Post(cmd.Context(), fmt.Sprintf("/api/v1/rooms/%s/leave", code), req, nil); err != nil {
				return err
			}

			output(cmd).PrintMessage(fmt.Sprintf("Player %s left room %s", playerID, code))
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player", "", "Player ID (default: saved session player)")

	return cmd
}

func newRoomStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state [code]",
		Short: "Show the public state of a room",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := roomCodeArg(args)
			if err != nil {
				return err
			}

			var result RoomState
			if err := client.Get(cmd.Context(), fmt.Sprintf("/api/v1/rooms/%s/state", code), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
