package stream

import (
	"context"

	"github.com/Proximyst/typewriters/pkg/domain/interfaces"
	"github.com/Proximyst/typewriters/pkg/domain/model"
	"github.com/Proximyst/typewriters/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

const DefaultCommitWindow = 30

// CommitStream detects when the head of a branch moves and reports the commits since the
// previously observed head.
type CommitStream struct {
	github interfaces.GitHub
	repo   model.GitHubRepo
	branch types.BranchName
	window int

	lastSeen types.CommitSHA
}

var _ interfaces.UpdateStream[model.CommitUpdate] = (*CommitStream)(nil)

// NewCommitStream creates a stream that fetches up to window commits per poll.
// A window of zero or less uses DefaultCommitWindow.
func NewCommitStream(github interfaces.GitHub, repo model.GitHubRepo, branch types.BranchName, window int) *CommitStream {
	if window <= 0 {
		window = DefaultCommitWindow
	}
	return &CommitStream{
		github: github,
		repo:   repo,
		branch: branch,
		window: window,
	}
}

// LastSeen returns the head recorded by the last successful poll.
func (x *CommitStream) LastSeen() (types.CommitSHA, bool) {
	return x.lastSeen, x.lastSeen != ""
}

func (x *CommitStream) Poll(ctx context.Context) (*model.CommitUpdate, error) {
	commits, err := x.github.ListCommits(ctx, x.repo, x.branch, x.window)
	if err != nil {
		return nil, err
	}
	if len(commits) == 0 {
		return nil, goerr.Wrap(types.ErrNoCommits, "branch has no commits",
			goerr.V("repository", x.repo.String()),
			goerr.V("branch", x.branch),
		)
	}

	head := commits[0].SHA
	if x.lastSeen == "" {
		x.lastSeen = head
		return nil, nil
	}
	if head == x.lastSeen {
		return nil, nil
	}

	update := &model.CommitUpdate{
		Repository: x.repo,
		Branch:     x.branch,
		Previous:   x.lastSeen,
		Latest:     head,
		Truncated:  true,
	}
	for _, c := range commits {
		if c.SHA == x.lastSeen {
			update.Truncated = false
			break
		}
		update.Commits = append(update.Commits, c)
	}

	x.lastSeen = head
	return update, nil
}
