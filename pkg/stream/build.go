package stream

import (
	"context"

	"github.com/Proximyst/typewriters/pkg/domain/interfaces"
	"github.com/Proximyst/typewriters/pkg/domain/model"
	"github.com/Proximyst/typewriters/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// BuildStream detects new builds of one project version by comparing the latest build number
// against the last one it observed. It is a two-state machine: unseeded until the first
// successful poll, then seeded with a baseline that only ever increases.
type BuildStream struct {
	api     interfaces.PaperAPI
	project types.ProjectID
	version types.VersionLabel

	lastSeen *types.BuildNumber
}

var _ interfaces.UpdateStream[model.BuildUpdate] = (*BuildStream)(nil)

func NewBuildStream(api interfaces.PaperAPI, project types.ProjectID, version types.VersionLabel) *BuildStream {
	return &BuildStream{
		api:     api,
		project: project,
		version: version,
	}
}

// LastSeen returns the retained baseline. ok is false before the first successful poll.
func (x *BuildStream) LastSeen() (types.BuildNumber, bool) {
	if x.lastSeen == nil {
		return 0, false
	}
	return *x.lastSeen, true
}

// Poll fetches the version once. The first successful poll records a baseline and reports no
// update. A latest build lower than the baseline returns ErrBuildRegression and keeps the baseline,
// so a stale replica cannot cause the same build to be reported twice.
func (x *BuildStream) Poll(ctx context.Context) (*model.BuildUpdate, error) {
	version, err := x.api.FetchVersion(ctx, x.project, x.version)
	if err != nil {
		return nil, err
	}

	latest, ok := version.LatestBuild()
	if !ok {
		return nil, goerr.Wrap(types.ErrNoBuilds, "version has no builds",
			goerr.V("project", x.project),
			goerr.V("version", x.version),
		)
	}

	if x.lastSeen == nil {
		x.lastSeen = &latest
		return nil, nil
	}

	previous := *x.lastSeen
	switch {
	case latest > previous:
		x.lastSeen = &latest
		return &model.BuildUpdate{
			Project:  x.project,
			Version:  x.version,
			Previous: previous,
			Latest:   latest,
			Record:   *version,
		}, nil

	case latest == previous:
		return nil, nil

	default:
		return nil, goerr.Wrap(types.ErrBuildRegression, "latest build went backwards",
			goerr.V("project", x.project),
			goerr.V("version", x.version),
			goerr.V("previous", previous),
			goerr.V("latest", latest),
		)
	}
}
