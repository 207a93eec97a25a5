package model

import (
	"github.com/Proximyst/typewriters/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Target describes one watched source.
type Target struct {
	Name types.TargetName `json:"name" yaml:"name" toml:"name"`
	Kind types.TargetKind `json:"kind" yaml:"kind" toml:"kind"`

	// build
	Project types.ProjectID    `json:"project,omitempty" yaml:"project" toml:"project"`
	Version types.VersionLabel `json:"version,omitempty" yaml:"version" toml:"version"`

	// commit
	Repository string           `json:"repository,omitempty" yaml:"repository" toml:"repository"`
	Branch     types.BranchName `json:"branch,omitempty" yaml:"branch" toml:"branch"`
}

func (x *Target) Validate() error {
	if x.Name == "" {
		return goerr.Wrap(types.ErrInvalidTarget, "target name is empty")
	}

	switch x.Kind {
	case types.TargetKindBuild:
		if x.Project == "" {
			return goerr.Wrap(types.ErrInvalidTarget, "project is required", goerr.V("target", x.Name))
		}
		if x.Version == "" {
			return goerr.Wrap(types.ErrInvalidTarget, "version is required", goerr.V("target", x.Name))
		}

	case types.TargetKindCommit:
		if _, err := ParseRepository(x.Repository); err != nil {
			return goerr.Wrap(types.ErrInvalidTarget, "invalid repository",
				goerr.V("target", x.Name),
				goerr.V("cause", err.Error()),
			)
		}
		if x.Branch == "" {
			return goerr.Wrap(types.ErrInvalidTarget, "branch is required", goerr.V("target", x.Name))
		}

	default:
		return goerr.Wrap(types.ErrInvalidTarget, "unknown target kind",
			goerr.V("target", x.Name),
			goerr.V("kind", x.Kind),
		)
	}

	return nil
}
