package config

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Proximyst/typewriters/pkg/domain/types"
	"github.com/Proximyst/typewriters/pkg/infra/paper"
	"github.com/urfave/cli/v3"
)

type Paper struct {
	apiURL    string
	project   string
	userAgent string
	timeout   time.Duration
}

func (x *Paper) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "paper-api-url",
			Usage:       "Base URL of the PaperMC downloads API",
			Category:    "Paper",
			Value:       paper.DefaultBaseURL,
			Destination: &x.apiURL,
			Sources:     cli.EnvVars("TYPEWRITERS_PAPER_API_URL", "PAPER_API_DOMAIN"),
		},
		&cli.StringFlag{
			Name:        "paper-project",
			Usage:       "Project ID to watch",
			Category:    "Paper",
			Value:       "paper",
			Destination: &x.project,
			Sources:     cli.EnvVars("TYPEWRITERS_PAPER_PROJECT", "PAPER_PROJECT"),
		},
		&cli.StringFlag{
			Name:        "user-agent",
			Usage:       "User-Agent sent to remote APIs",
			Category:    "Paper",
			Value:       paper.DefaultUserAgent,
			Destination: &x.userAgent,
			Sources:     cli.EnvVars("TYPEWRITERS_USER_AGENT", "USER_AGENT"),
		},
		&cli.DurationFlag{
			Name:        "paper-timeout",
			Usage:       "Timeout of a single API request",
			Category:    "Paper",
			Value:       30 * time.Second,
			Destination: &x.timeout,
			Sources:     cli.EnvVars("TYPEWRITERS_PAPER_TIMEOUT"),
		},
	}
}

func (x *Paper) New() *paper.Client {
	return paper.New(x.apiURL,
		paper.WithUserAgent(x.userAgent),
		paper.WithHTTPClient(&http.Client{Timeout: x.timeout}),
	)
}

func (x *Paper) Project() types.ProjectID {
	return types.ProjectID(x.project)
}

func (x *Paper) UserAgent() string {
	return x.userAgent
}

func (x *Paper) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("APIURL", x.apiURL),
		slog.String("Project", x.project),
		slog.String("UserAgent", x.userAgent),
		slog.Duration("Timeout", x.timeout),
	)
}
