package battle

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"gitbattle/internal/domain"
)

// followerWeight is how many stars one follower is worth
const followerWeight = 3

// ProfileFetcher loads what a battle needs to know about a player
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, login string) (domain.Profile, error)
	FetchRepos(ctx context.Context, login string) ([]domain.Repo, error)
}

// Player is a scored battle participant
type Player struct {
	Profile domain.Profile
	Score   int
}

// Score weighs followers against the stars of all repos
func Score(profile domain.Profile, repos []domain.Repo) int {
	stars := 0
	for _, r := range repos {
		stars += r.Stars
	}
	return profile.Followers*followerWeight + stars
}

// Fight scores both players of target and returns them winner first.
// On a tie player one stays first.
func Fight(ctx context.Context, fetcher ProfileFetcher, target Target) ([]Player, error) {
	logins := []string{target.PlayerOne, target.PlayerTwo}
	players := make([]Player, len(logins))

	g, ctx := errgroup.WithContext(ctx)
	for i, login := range logins {
		g.Go(func() error {
			p, err := getUserData(ctx, fetcher, login)
			if err != nil {
				return err
			}
			players[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Score > players[j].Score
	})
	return players, nil
}

func getUserData(ctx context.Context, fetcher ProfileFetcher, login string) (Player, error) {
	var (
		profile domain.Profile
		repos   []domain.Repo
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = fetcher.FetchProfile(ctx, login)
		return err
	})
	g.Go(func() error {
		var err error
		repos, err = fetcher.FetchRepos(ctx, login)
		return err
	})
	if err := g.Wait(); err != nil {
		return Player{}, err
	}
	return Player{Profile: profile, Score: Score(profile, repos)}, nil
}
