package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newTapCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "tap",
		Short: "Tap the egg",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}

			req := map[string]int{"count": count}
			var result TapResult

			if err := client.Post(cmd.Context(), "/api/v1/tap", req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of taps")

	return cmd
}

func newLeaderboardCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the top players",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Leaderboard

			path := "/api/v1/leaderboard?limit=" + strconv.Itoa(limit)
			if err := client.Get(cmd.Context(), path, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of players to show")

	return cmd
}

func newLevelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "level <n>",
		Short: "Show the egg for a level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("level must be an integer: %w", err)
			}

			var result Egg
			if err := client.Get(cmd.Context(), "/api/v1/levels/"+strconv.Itoa(n), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show server status and whether accounts are available",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HealthResult
			if err := client.Get(cmd.Context(), "/api/v1/health", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
