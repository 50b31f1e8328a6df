package main

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gitbattle/internal/domain"
	"gitbattle/internal/popular"
	"gitbattle/internal/ui/views"
)

var popularLanguage string

// popularCmd prints the ranked repositories of one language
var popularCmd = &cobra.Command{
	Use:   "popular",
	Short: "Print the most starred repositories for a language",
	Long: `Print the most starred repositories for a language.

Examples:
  # All languages
  gitbattle popular

  # Only Ruby
  gitbattle popular --language Ruby`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		a, err := setup(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = a.logger.Sync() }()

		lang := a.cfg.UI.DefaultLanguage
		if popularLanguage != "" {
			lang = domain.Language(popularLanguage)
		}
		if !slices.Contains(a.cfg.UI.Languages, lang) {
			a.logger.Warn("language is not in the configured list", zap.String("language", string(lang)))
		}
		return printPopular(ctx, cmd.OutOrStdout(), a.client.FetchPopularRepos, a.logger, lang)
	},
}

func init() {
	popularCmd.Flags().StringVarP(&popularLanguage, "language", "l", "", "language to rank (default from config)")
}

// printPopular fetches lang through a coordinator and writes the ranking to w
func printPopular(ctx context.Context, w io.Writer, fetch popular.FetchFunc, logger *zap.Logger, lang domain.Language) error {
	coord := popular.NewCoordinator(ctx, fetch, logger)
	defer coord.Teardown()

	if dispatch := coord.Select(lang); dispatch != nil {
		if _, err := coord.Settle(dispatch()); err != nil {
			return err
		}
	}

	state := coord.Snapshot()
	if msg, failed := state.LastError(); failed {
		return fmt.Errorf("fetching %s: %s", lang, msg)
	}
	repos, _ := state.Repos(lang)
	for i, r := range repos {
		fmt.Fprintf(w, "#%-3d %-45s %12s stars %10s forks %8s open\n",
			i+1,
			r.Owner.Login+"/"+r.Name,
			views.FormatCount(r.Stars),
			views.FormatCount(r.Forks),
			views.FormatCount(r.OpenIssues),
		)
	}
	return nil
}
