package interfaces

//go:generate moq -out ../mock/infra.go -pkg mock . PaperAPI GitHub

import (
	"context"

	"github.com/Proximyst/typewriters/pkg/domain/model"
	"github.com/Proximyst/typewriters/pkg/domain/types"
)

type PaperAPI interface {
	FetchProject(ctx context.Context, project types.ProjectID) (*model.Project, error)
	FetchVersion(ctx context.Context, project types.ProjectID, version types.VersionLabel) (*model.Version, error)
	FetchBuild(ctx context.Context, project types.ProjectID, version types.VersionLabel, build types.BuildNumber) (*model.Build, error)
	// FetchLatestBuild fetches the record of the most recent build, i.e. the last one listed by the version.
	FetchLatestBuild(ctx context.Context, project types.ProjectID, version types.VersionLabel) (*model.Build, error)
}

type GitHub interface {
	// ListCommits returns up to limit commits of branch, newest first.
	ListCommits(ctx context.Context, repo model.GitHubRepo, branch types.BranchName, limit int) ([]*model.Commit, error)
}
