package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Turn and question commands",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameQuestionCmd())
	cmd.AddCommand(newGameNextTurnCmd())

	return cmd
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start [room-id]",
		Short: "Start the game (admin only)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID, err := roomIDArg(args)
			if err != nil {
				return err
			}

			var result StartResult
			if err := client.Post(cmd.Context(), fmt.Sprintf("/api/v1/game/%s/start", roomID), nil, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newGameQuestionCmd() *cobra.Command {
	var questionType string

	cmd := &cobra.Command{
		Use:   "question [room-id]",
		Short: "Draw the next question for the current player",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID, err := roomIDArg(args)
			if err != nil {
				return err
			}

			path := fmt.Sprintf("/api/v1/game/%s/question", roomID)
			if questionType != "" {
				path += "?type=" + url.QueryEscape(strings.ToUpper(questionType))
			}

			var result Question
			if err := client.Get(cmd.Context(), path, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&questionType, "type", "", "Preferred type: TRUTH or DARE")

	return cmd
}

func newGameNextTurnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next-turn [room-id]",
		Short: "Advance to the next player",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID, err := roomIDArg(args)
			if err != nil {
				return err
			}

			var result RoomState
			if err := client.Post(cmd.Context(), fmt.Sprintf("/api/v1/game/%s/next-turn", roomID), nil, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
