package model

import (
	"regexp"
	"time"

	"github.com/Proximyst/typewriters/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

var ptnSHA256 = regexp.MustCompile(`^[0-9a-f]{64}$`)

// Project is a trackable software product exposed by the distribution API.
type Project struct {
	VersionGroups []string `json:"version_groups"`
	Versions      []string `json:"versions"`
}

// Version is one release line of a project. Builds are ascending and append-only.
type Version struct {
	Builds []types.BuildNumber `json:"builds"`
}

// LatestBuild returns the most recent build number. ok is false when the version has no builds,
// which the distribution API should never report.
func (x *Version) LatestBuild() (types.BuildNumber, bool) {
	if len(x.Builds) == 0 {
		return 0, false
	}
	return x.Builds[len(x.Builds)-1], true
}

type Build struct {
	Build     types.BuildNumber   `json:"build"`
	Time      time.Time           `json:"time"`
	Changes   []Change            `json:"changes"`
	Downloads map[string]Download `json:"downloads"`
}

type Change struct {
	Commit  string `json:"commit"`
	Summary string `json:"summary"`
	Message string `json:"message"`
}

type Download struct {
	Name   string `json:"name"`
	SHA256 string `json:"sha256"`
}

func (x *Build) Validate() error {
	if x.Build <= 0 {
		return goerr.Wrap(types.ErrSchemaMismatch, "build number must be positive", goerr.V("build", x.Build))
	}
	if x.Time.IsZero() {
		return goerr.Wrap(types.ErrSchemaMismatch, "build time is missing", goerr.V("build", x.Build))
	}
	for key, dl := range x.Downloads {
		if dl.Name == "" {
			return goerr.Wrap(types.ErrSchemaMismatch, "download name is empty", goerr.V("artifact", key))
		}
		if !ptnSHA256.MatchString(dl.SHA256) {
			return goerr.Wrap(types.ErrSchemaMismatch, "invalid sha256 of download",
				goerr.V("artifact", key),
				goerr.V("sha256", dl.SHA256),
			)
		}
	}
	return nil
}

// BuildUpdate is emitted by a build stream when the latest build number of a version increases.
type BuildUpdate struct {
	Project  types.ProjectID    `json:"project"`
	Version  types.VersionLabel `json:"version"`
	Previous types.BuildNumber  `json:"previous"`
	Latest   types.BuildNumber  `json:"latest"`
	Record   Version            `json:"record"`
}
