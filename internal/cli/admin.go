package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin commands (require the room admin token)",
	}

	cmd.AddCommand(newAdminInjectCmd())
	cmd.AddCommand(newAdminModeCmd())
	cmd.AddCommand(newAdminForceNextTurnCmd())

	return cmd
}

func newAdminInjectCmd() *cobra.Command {
	var text, questionType, target string

	cmd := &cobra.Command{
		Use:   "inject [room-id]",
		Short: "Queue a custom question",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID, err := roomIDArg(args)
			if err != nil {
				return err
			}

			req := map[string]string{
				"question_text": text,
				"question_type": strings.ToUpper(questionType),
			}
			if target != "" {
				req["target_player_id"] = target
			}

			var result Question
			if err := client.Post(cmd.Context(), fmt.Sprintf("/api/v1/admin/%s/inject-question", roomID), req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Question text (required)")
	cmd.Flags().StringVar(&questionType, "type", "", "Question type: TRUTH or DARE (required)")
	cmd.Flags().StringVar(&target, "target", "", "Target player ID (default: current player)")
	_ = cmd.MarkFlagRequired("text")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newAdminModeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mode <game-mode> [room-id]",
		Short: "Change the room's game mode",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID, err := roomIDArg(args[1:])
			if err != nil {
				return err
			}

			req := map[string]string{"game_mode": strings.ToUpper(args[0])}

			var result RoomState
			if err := client.Put(cmd.Context(), fmt.Sprintf("/api/v1/admin/%s/game-mode", roomID), req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newAdminForceNextTurnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "force-next-turn [room-id]",
		Short: "Skip the current player",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID, err := roomIDArg(args)
			if err != nil {
				return err
			}

			var result RoomState
			if err := client.Post(cmd.Context(), fmt.Sprintf("/api/v1/admin/%s/force-next-turn", roomID), nil, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
