package usecase

import (
	"context"

	"github.com/Proximyst/typewriters/pkg/domain/model"
	"github.com/Proximyst/typewriters/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

func (x *UseCase) FetchProject(ctx context.Context, project types.ProjectID) (*model.Project, error) {
	return x.clients.Paper().FetchProject(ctx, project)
}

func (x *UseCase) FetchVersion(ctx context.Context, project types.ProjectID, version types.VersionLabel) (*model.Version, error) {
	return x.clients.Paper().FetchVersion(ctx, project, version)
}

func (x *UseCase) FetchBuild(ctx context.Context, project types.ProjectID, version types.VersionLabel, build types.BuildNumber) (*model.Build, error) {
	return x.clients.Paper().FetchBuild(ctx, project, version, build)
}

func (x *UseCase) FetchLatestBuild(ctx context.Context, project types.ProjectID, version types.VersionLabel) (*model.Build, error) {
	return x.clients.Paper().FetchLatestBuild(ctx, project, version)
}

func (x *UseCase) ListCommits(ctx context.Context, repo model.GitHubRepo, branch types.BranchName, limit int) ([]*model.Commit, error) {
	if x.clients.GitHub() == nil {
		return nil, goerr.Wrap(types.ErrInvalidOption, "GitHub client is not configured")
	}
	return x.clients.GitHub().ListCommits(ctx, repo, branch, limit)
}
