package config

import (
	"log/slog"

	"github.com/Proximyst/typewriters/pkg/domain/types"
	"github.com/Proximyst/typewriters/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

type GitHub struct {
	repository string
	apiURL     string
	token      types.GitHubToken `masq:"secret"`

	appID      types.GitHubAppID
	installID  types.GitHubAppInstallID
	privateKey types.GitHubAppPrivateKey `masq:"secret"`
}

func (x *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-repository",
			Usage:       "Repository whose commits are watched, as owner/name",
			Category:    "GitHub",
			Value:       "PaperMC/Paper",
			Destination: &x.repository,
			Sources:     cli.EnvVars("TYPEWRITERS_GITHUB_REPOSITORY", "GITHUB_REPOSITORY"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "Base URL of the GitHub REST API",
			Category:    "GitHub",
			Value:       github.DefaultAPIURL,
			Destination: &x.apiURL,
			Sources:     cli.EnvVars("TYPEWRITERS_GITHUB_API_URL", "GITHUB_API_DOMAIN"),
		},
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token; anonymous access is used when neither token nor App is set",
			Category:    "GitHub",
			Destination: (*string)(&x.token),
			Sources:     cli.EnvVars("TYPEWRITERS_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID",
			Category:    "GitHub App",
			Destination: (*int64)(&x.appID),
			Sources:     cli.EnvVars("TYPEWRITERS_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-app-install-id",
			Usage:       "GitHub App installation ID",
			Category:    "GitHub App",
			Destination: (*int64)(&x.installID),
			Sources:     cli.EnvVars("TYPEWRITERS_GITHUB_APP_INSTALL_ID"),
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "GitHub App Private Key",
			Category:    "GitHub App",
			Destination: (*string)(&x.privateKey),
			Sources:     cli.EnvVars("TYPEWRITERS_GITHUB_APP_PRIVATE_KEY"),
		},
	}
}

func (x *GitHub) New(userAgent string) (*github.Client, error) {
	options := []github.Option{
		github.WithBaseURL(x.apiURL),
		github.WithUserAgent(userAgent),
	}
	if x.token != "" {
		options = append(options, github.WithToken(x.token))
	}
	if x.appID != 0 {
		options = append(options, github.WithAppInstallation(x.appID, x.installID, x.privateKey))
	}

	return github.New(options...)
}

func (x *GitHub) Repository() string {
	return x.repository
}

func (x GitHub) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("Repository", x.repository),
		slog.String("APIURL", x.apiURL),
		slog.Int("token.len", len(x.token)),
		slog.Int64("AppID", int64(x.appID)),
		slog.Int64("InstallID", int64(x.installID)),
		slog.Int("privateKey.len", len(x.privateKey)),
	)
}
