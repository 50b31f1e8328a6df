package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gitbattle/internal/battle"
	"gitbattle/internal/ui/views"
)

// battleCmd compares two GitHub users
var battleCmd = &cobra.Command{
	Use:   "battle <playerOne> <playerTwo>",
	Short: "Compare two GitHub users",
	Long: `Compare two GitHub users. The score is three points per follower
plus one point per star across their public repositories.

Examples:
  gitbattle battle torvalds gaearon`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		a, err := setup(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = a.logger.Sync() }()

		return printBattle(ctx, cmd.OutOrStdout(), a.client, a.logger, args[0], args[1])
	},
}

// printBattle fills a selection panel with both players, runs the battle and
// writes the outcome to w
func printBattle(ctx context.Context, w io.Writer, fetcher battle.ProfileFetcher, logger *zap.Logger, one, two string) error {
	panel := battle.NewPanel()
	if err := panel.Submit(battle.SlotA, strings.TrimSpace(one)); err != nil {
		return err
	}
	if err := panel.Submit(battle.SlotB, strings.TrimSpace(two)); err != nil {
		return err
	}
	target, _ := panel.Target()
	logger.Info("starting battle", zap.String("target", target.String()))
	fmt.Fprintln(w, target.String())

	players, err := battle.Fight(ctx, fetcher, target)
	if err != nil {
		return err
	}

	labels := [2]string{"Winner", "Loser"}
	if players[0].Score == players[1].Score {
		labels = [2]string{"Tie", "Tie"}
	}
	for i, p := range players {
		fmt.Fprintf(w, "%-6s  %-20s score %s (%s followers)\n",
			labels[i], p.Profile.Login, views.FormatCount(p.Score), views.FormatCount(p.Profile.Followers))
	}
	return nil
}
