package model

import (
	"regexp"
	"strings"
	"time"

	"github.com/Proximyst/typewriters/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

var ptnRepoPart = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// GitHubRepo identifies a repository as owner/name.
type GitHubRepo struct {
	Owner string `json:"owner" yaml:"owner" toml:"owner"`
	Name  string `json:"name" yaml:"name" toml:"name"`
}

// ParseRepository parses "owner/name".
func ParseRepository(s string) (GitHubRepo, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(s), "/")
	repo := GitHubRepo{Owner: owner, Name: name}
	if !ok {
		return GitHubRepo{}, goerr.Wrap(types.ErrInvalidOption, "repository must be owner/name", goerr.V("repository", s))
	}
	if err := repo.Validate(); err != nil {
		return GitHubRepo{}, err
	}
	return repo, nil
}

func (x GitHubRepo) Validate() error {
	if !ptnRepoPart.MatchString(x.Owner) {
		return goerr.Wrap(types.ErrInvalidOption, "invalid repository owner", goerr.V("owner", x.Owner))
	}
	if !ptnRepoPart.MatchString(x.Name) {
		return goerr.Wrap(types.ErrInvalidOption, "invalid repository name", goerr.V("name", x.Name))
	}
	return nil
}

func (x GitHubRepo) String() string {
	return x.Owner + "/" + x.Name
}

type Commit struct {
	SHA     types.CommitSHA `json:"sha"`
	Message string          `json:"message"`
	Author  string          `json:"author"`
	Time    time.Time       `json:"time"`
	URL     string          `json:"url"`
}

// Summary returns the first line of the commit message.
func (x *Commit) Summary() string {
	summary, _, _ := strings.Cut(x.Message, "\n")
	return summary
}

// CommitUpdate is emitted by a commit stream when the head of a branch moves. Commits are newest first.
// Truncated is set when the previous head was not found in the fetched window.
type CommitUpdate struct {
	Repository GitHubRepo       `json:"repository"`
	Branch     types.BranchName `json:"branch"`
	Previous   types.CommitSHA  `json:"previous"`
	Latest     types.CommitSHA  `json:"latest"`
	Commits    []*Commit        `json:"commits"`
	Truncated  bool             `json:"truncated"`
}
