package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v57/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"gitbattle/internal/domain"
)

const userReposPerPage = 100

// Options configures a Client
type Options struct {
	// BaseURL overrides the GitHub API endpoint, mainly for GitHub Enterprise and tests
	BaseURL string
	// Token authenticates requests when set
	Token string
	// PerPage is the number of popular repositories requested per language
	PerPage int
	// RequestsPerSecond paces outgoing requests; zero disables pacing
	RequestsPerSecond float64
	// HTTPClient is used for unauthenticated requests when set
	HTTPClient *http.Client
}

// Client fetches repositories and profiles from the GitHub API
type Client struct {
	api      *gh.Client
	limiter  *rate.Limiter
	perPage  int
	logger   *zap.Logger
	profiles singleflight.Group
}

// NewClient creates a GitHub client
func NewClient(ctx context.Context, opts Options, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	httpClient := opts.HTTPClient
	if opts.Token != "" {
		if httpClient != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		}
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
		httpClient = oauth2.NewClient(ctx, ts)
	}

	api := gh.NewClient(httpClient)
	if opts.BaseURL != "" {
		base := opts.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", opts.BaseURL, err)
		}
		api.BaseURL = u
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = 30
	}

	return &Client{
		api:     api,
		limiter: limiter,
		perPage: perPage,
		logger:  logger.Named("github"),
	}, nil
}

// PopularQuery returns the search query ranking repositories of lang
func PopularQuery(lang domain.Language) string {
	if lang == domain.AllLanguages || lang == "" {
		return "stars:>1"
	}
	return fmt.Sprintf("stars:>1 language:%s", lang)
}

// FetchPopularRepos returns the most starred repositories for lang
func (c *Client) FetchPopularRepos(ctx context.Context, lang domain.Language) ([]domain.Repo, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	query := PopularQuery(lang)
	c.logger.Debug("searching repositories", zap.String("query", query))
	result, _, err := c.api.Search.Repositories(ctx, query, &gh.SearchOptions{
		Sort:        "stars",
		Order:       "desc",
		ListOptions: gh.ListOptions{PerPage: c.perPage},
	})
	if err != nil {
		return nil, errorMessage(err, "")
	}

	repos := make([]domain.Repo, 0, len(result.Repositories))
	for _, r := range result.Repositories {
		repos = append(repos, toRepo(r))
	}
	return repos, nil
}

// FetchProfile returns the profile of login. Concurrent lookups of the same
// login share one request.
func (c *Client) FetchProfile(ctx context.Context, login string) (domain.Profile, error) {
	v, err, shared := c.profiles.Do(login, func() (interface{}, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return domain.Profile{}, err
		}
		u, _, err := c.api.Users.Get(ctx, login)
		if err != nil {
			return domain.Profile{}, errorMessage(err, login)
		}
		return toProfile(u), nil
	})
	if shared {
		c.logger.Debug("profile lookup shared", zap.String("login", login))
	}
	if err != nil {
		return domain.Profile{}, err
	}
	return v.(domain.Profile), nil
}

// FetchRepos returns the first page of public repositories owned by login
func (c *Client) FetchRepos(ctx context.Context, login string) ([]domain.Repo, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	list, _, err := c.api.Repositories.List(ctx, login, &gh.RepositoryListOptions{
		ListOptions: gh.ListOptions{PerPage: userReposPerPage},
	})
	if err != nil {
		return nil, errorMessage(err, login)
	}

	repos := make([]domain.Repo, 0, len(list))
	for _, r := range list {
		repos = append(repos, toRepo(r))
	}
	return repos, nil
}

// errorMessage turns an API error into the message shown to the user
func errorMessage(err error, login string) error {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return errors.New(rateErr.Message)
	}
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return errors.New(abuseErr.Message)
	}
	var respErr *gh.ErrorResponse
	if errors.As(err, &respErr) {
		if login != "" && respErr.Response != nil && respErr.Response.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s doesn't exist", login)
		}
		if respErr.Message != "" {
			return errors.New(respErr.Message)
		}
	}
	return err
}

func toRepo(r *gh.Repository) domain.Repo {
	return domain.Repo{
		Name: r.GetName(),
		Owner: domain.Owner{
			Login:     r.GetOwner().GetLogin(),
			AvatarURL: r.GetOwner().GetAvatarURL(),
		},
		HTMLURL:    r.GetHTMLURL(),
		Stars:      r.GetStargazersCount(),
		Forks:      r.GetForksCount(),
		OpenIssues: r.GetOpenIssuesCount(),
	}
}

func toProfile(u *gh.User) domain.Profile {
	return domain.Profile{
		Login:       u.GetLogin(),
		Name:        u.GetName(),
		Location:    u.GetLocation(),
		Company:     u.GetCompany(),
		Followers:   u.GetFollowers(),
		Following:   u.GetFollowing(),
		PublicRepos: u.GetPublicRepos(),
		AvatarURL:   u.GetAvatarURL(),
		HTMLURL:     u.GetHTMLURL(),
	}
}
