package cli

import (
	"context"
	"encoding/json"
	"io"
	"strconv"

	"github.com/Proximyst/typewriters/pkg/cli/config"
	"github.com/Proximyst/typewriters/pkg/domain/model"
	"github.com/Proximyst/typewriters/pkg/domain/types"
	"github.com/Proximyst/typewriters/pkg/infra"
	"github.com/Proximyst/typewriters/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"
)

func writeResult(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to write result")
	}
	return nil
}

func requireArgs(c *cli.Command, names ...string) error {
	if c.Args().Len() != len(names) {
		return goerr.Wrap(types.ErrInvalidOption, "wrong number of arguments",
			goerr.V("command", c.Name),
			goerr.V("expected", names),
			goerr.V("actual", c.Args().Slice()),
		)
	}
	return nil
}

func fetchCommand(w io.Writer) *cli.Command {
	var (
		paper  config.Paper
		github config.GitHub
		limit  int64
	)

	// built lazily so that flags are parsed before the clients are configured
	newUseCase := func() (*usecase.UseCase, error) {
		ghClient, err := github.New(paper.UserAgent())
		if err != nil {
			return nil, err
		}
		return usecase.New(infra.New(
			infra.WithPaper(paper.New()),
			infra.WithGitHub(ghClient),
		)), nil
	}

	return &cli.Command{
		Name:    "fetch",
		Aliases: []string{"f"},
		Usage:   "Run a one-shot query and print the result as JSON",
		Flags: slice.Flatten(
			paper.Flags(),
			github.Flags(),
		),
		Commands: []*cli.Command{
			{
				Name:  "project",
				Usage: "Print version groups and versions of the project",
				Action: func(ctx context.Context, c *cli.Command) error {
					uc, err := newUseCase()
					if err != nil {
						return err
					}
					project, err := uc.FetchProject(ctx, paper.Project())
					if err != nil {
						return err
					}
					return writeResult(w, project)
				},
			},
			{
				Name:      "version",
				Usage:     "Print builds of a version",
				ArgsUsage: "<version>",
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := requireArgs(c, "version"); err != nil {
						return err
					}
					uc, err := newUseCase()
					if err != nil {
						return err
					}
					version, err := uc.FetchVersion(ctx, paper.Project(), types.VersionLabel(c.Args().Get(0)))
					if err != nil {
						return err
					}
					return writeResult(w, version)
				},
			},
			{
				Name:      "build",
				Usage:     "Print a build record",
				ArgsUsage: "<version> <build>",
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := requireArgs(c, "version", "build"); err != nil {
						return err
					}
					number, err := strconv.ParseInt(c.Args().Get(1), 10, 32)
					if err != nil {
						return goerr.Wrap(types.ErrInvalidOption, "build must be a number", goerr.V("build", c.Args().Get(1)))
					}
					uc, err := newUseCase()
					if err != nil {
						return err
					}
					build, err := uc.FetchBuild(ctx, paper.Project(), types.VersionLabel(c.Args().Get(0)), types.BuildNumber(number))
					if err != nil {
						return err
					}
					return writeResult(w, build)
				},
			},
			{
				Name:      "latest",
				Usage:     "Print the record of the most recent build of a version",
				ArgsUsage: "<version>",
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := requireArgs(c, "version"); err != nil {
						return err
					}
					uc, err := newUseCase()
					if err != nil {
						return err
					}
					build, err := uc.FetchLatestBuild(ctx, paper.Project(), types.VersionLabel(c.Args().Get(0)))
					if err != nil {
						return err
					}
					return writeResult(w, build)
				},
			},
			{
				Name:      "commits",
				Usage:     "Print the newest commits of a branch",
				ArgsUsage: "<branch>",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:        "limit",
						Usage:       "Number of commits",
						Value:       10,
						Destination: &limit,
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := requireArgs(c, "branch"); err != nil {
						return err
					}
					repo, err := model.ParseRepository(github.Repository())
					if err != nil {
						return err
					}
					uc, err := newUseCase()
					if err != nil {
						return err
					}
					commits, err := uc.ListCommits(ctx, repo, types.BranchName(c.Args().Get(0)), int(limit))
					if err != nil {
						return err
					}
					return writeResult(w, commits)
				},
			},
		},
	}
}
