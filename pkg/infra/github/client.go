package github

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/Proximyst/typewriters/pkg/domain/interfaces"
	"github.com/Proximyst/typewriters/pkg/domain/model"
	"github.com/Proximyst/typewriters/pkg/domain/types"
	"github.com/Proximyst/typewriters/pkg/utils/logging"
	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"
)

const (
	DefaultAPIURL = "https://api.github.com/"

	// GitHub caps per_page at 100.
	maxPerPage = 100
)

// Client reads commits of GitHub repositories. Without credentials it uses anonymous access,
// which is rate limited to 60 requests per hour.
type Client struct {
	client *github.Client
}

var _ interfaces.GitHub = (*Client)(nil)

type config struct {
	baseURL    string
	userAgent  string
	token      types.GitHubToken
	appID      types.GitHubAppID
	installID  types.GitHubAppInstallID
	privateKey types.GitHubAppPrivateKey
	transport  http.RoundTripper
}

type Option func(*config)

// WithBaseURL points the client to a GitHub Enterprise API or a test server.
func WithBaseURL(baseURL string) Option {
	return func(cfg *config) {
		cfg.baseURL = baseURL
	}
}

func WithUserAgent(ua string) Option {
	return func(cfg *config) {
		cfg.userAgent = ua
	}
}

func WithTransport(tr http.RoundTripper) Option {
	return func(cfg *config) {
		cfg.transport = tr
	}
}

func WithToken(token types.GitHubToken) Option {
	return func(cfg *config) {
		cfg.token = token
	}
}

// WithAppInstallation authenticates as a GitHub App installation.
func WithAppInstallation(appID types.GitHubAppID, installID types.GitHubAppInstallID, privateKey types.GitHubAppPrivateKey) Option {
	return func(cfg *config) {
		cfg.appID = appID
		cfg.installID = installID
		cfg.privateKey = privateKey
	}
}

func New(options ...Option) (*Client, error) {
	cfg := &config{
		baseURL:   DefaultAPIURL,
		transport: http.DefaultTransport,
	}
	for _, opt := range options {
		opt(cfg)
	}

	if cfg.token != "" && cfg.appID != 0 {
		return nil, goerr.Wrap(types.ErrInvalidOption, "token and GitHub App credentials are exclusive")
	}

	baseURL, err := url.Parse(cfg.baseURL)
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "invalid GitHub API URL", goerr.V("url", cfg.baseURL))
	}
	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}

	tr := cfg.transport
	if cfg.token != "" {
		tr = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: string(cfg.token)}),
			Base:   tr,
		}
	}
	if cfg.appID != 0 {
		if cfg.installID == 0 {
			return nil, goerr.Wrap(types.ErrInvalidOption, "installation ID is required for GitHub App")
		}
		if cfg.privateKey == "" {
			return nil, goerr.Wrap(types.ErrInvalidOption, "private key is required for GitHub App")
		}

		itr, err := ghinstallation.New(tr, int64(cfg.appID), int64(cfg.installID), []byte(cfg.privateKey))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create GitHub App transport")
		}
		itr.BaseURL = strings.TrimSuffix(baseURL.String(), "/")
		tr = itr
	}

	client := github.NewClient(&http.Client{Transport: tr})
	client.BaseURL = baseURL
	if cfg.userAgent != "" {
		client.UserAgent = cfg.userAgent
	}

	return &Client{client: client}, nil
}

func (x *Client) ListCommits(ctx context.Context, repo model.GitHubRepo, branch types.BranchName, limit int) ([]*model.Commit, error) {
	if limit <= 0 || limit > maxPerPage {
		limit = maxPerPage
	}

	opt := &github.CommitsListOptions{
		SHA:         string(branch),
		ListOptions: github.ListOptions{PerPage: limit},
	}

	// https://docs.github.com/en/rest/commits/commits#list-commits
	commits, resp, err := x.client.Repositories.ListCommits(ctx, repo.Owner, repo.Name, opt)
	if err != nil {
		sentinel := types.ErrTransport
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			sentinel = types.ErrNotFound
		}
		return nil, goerr.Wrap(sentinel, "failed to list commits",
			goerr.V("repository", repo.String()),
			goerr.V("branch", branch),
			goerr.V("cause", err.Error()),
		)
	}

	logging.From(ctx).Debug("Listed commits",
		slog.String("repository", repo.String()),
		slog.String("branch", string(branch)),
		slog.Int("count", len(commits)),
	)

	result := make([]*model.Commit, 0, len(commits))
	for _, c := range commits {
		commit := c.GetCommit()
		result = append(result, &model.Commit{
			SHA:     types.CommitSHA(c.GetSHA()),
			Message: commit.GetMessage(),
			Author:  commit.GetAuthor().GetName(),
			Time:    commit.GetAuthor().GetDate().Time,
			URL:     c.GetHTMLURL(),
		})
	}

	return result, nil
}
