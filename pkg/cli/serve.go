package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Proximyst/typewriters/pkg/cli/config"
	"github.com/Proximyst/typewriters/pkg/controller/server"
	"github.com/Proximyst/typewriters/pkg/infra"
	"github.com/Proximyst/typewriters/pkg/stream"
	"github.com/Proximyst/typewriters/pkg/usecase"
	"github.com/Proximyst/typewriters/pkg/utils/logging"
	"github.com/Proximyst/typewriters/pkg/utils/metrics"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var (
		addr             string
		fetchBuildDetail bool
		commitWindow     int64
		concurrency      int64

		paper   config.Paper
		github  config.GitHub
		targets config.Targets
		sentry  config.Sentry
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("TYPEWRITERS_ADDR"),
			Destination: &addr,
		},
		&cli.BoolFlag{
			Name:        "fetch-build-detail",
			Usage:       "Fetch the full build record for every new build",
			Sources:     cli.EnvVars("TYPEWRITERS_FETCH_BUILD_DETAIL"),
			Destination: &fetchBuildDetail,
		},
		&cli.Int64Flag{
			Name:        "commit-window",
			Usage:       "Number of newest commits fetched per poll",
			Value:       stream.DefaultCommitWindow,
			Sources:     cli.EnvVars("TYPEWRITERS_COMMIT_WINDOW"),
			Destination: &commitWindow,
		},
		&cli.Int64Flag{
			Name:        "concurrency",
			Usage:       "Maximum number of targets polled at once (0: unlimited)",
			Sources:     cli.EnvVars("TYPEWRITERS_CONCURRENCY"),
			Destination: &concurrency,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serve poll endpoint for an external scheduler",
		Flags: slice.Flatten(
			serveFlags,
			paper.Flags(),
			github.Flags(),
			targets.Flags(),
			sentry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Any("Paper", &paper),
				slog.Any("GitHub", github),
				slog.Any("Targets", &targets),
				slog.Any("Sentry", &sentry),
			)

			if err := sentry.Configure(ctx); err != nil {
				return err
			}

			ghClient, err := github.New(paper.UserAgent())
			if err != nil {
				return err
			}
			clients := infra.New(
				infra.WithPaper(paper.New()),
				infra.WithGitHub(ghClient),
			)

			m := metrics.New()
			uc := usecase.New(clients,
				usecase.WithMetrics(m),
				usecase.WithFetchBuildDetail(fetchBuildDetail),
				usecase.WithCommitWindow(int(commitWindow)),
				usecase.WithConcurrency(int(concurrency)),
			)

			loaded, err := targets.Load(paper.Project(), github.Repository())
			if err != nil {
				return err
			}
			for _, target := range loaded {
				if err := uc.AddTarget(target); err != nil {
					return err
				}
			}
			if len(loaded) == 0 {
				logging.Default().Warn("no targets configured; poll cycles will be empty")
			}

			s := server.New(uc, server.WithMetrics(m))

			serverErr := make(chan error, 1)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Mux(),

				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				// a poll cycle waits for every target
				WriteTimeout: 5 * time.Minute,
			}

			go func() {
				logging.Default().Info("starting http server", "addr", addr, "targets", len(loaded))
				if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
					serverErr <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErr:
				return err

			case sig := <-quit:
				logging.Default().Info("shutting down server", "signal", sig)

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server")
				}
			}

			return nil
		},
	}
}
