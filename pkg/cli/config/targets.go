package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Proximyst/typewriters/pkg/domain/model"
	"github.com/Proximyst/typewriters/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Targets collects watched sources from flags and an optional targets file.
type Targets struct {
	file     string
	versions []string
	branch   string
}

type targetsFile struct {
	Targets []model.Target `yaml:"targets" toml:"targets"`
}

func (x *Targets) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "targets-file",
			Usage:       "YAML or TOML file listing targets",
			Category:    "Targets",
			Destination: &x.file,
			Sources:     cli.EnvVars("TYPEWRITERS_TARGETS_FILE"),
		},
		&cli.StringSliceFlag{
			Name:        "watch-version",
			Usage:       "Version of the Paper project to watch for new builds (repeatable)",
			Category:    "Targets",
			Destination: &x.versions,
			Sources:     cli.EnvVars("TYPEWRITERS_WATCH_VERSIONS"),
		},
		&cli.StringFlag{
			Name:        "watch-branch",
			Usage:       "Branch of the GitHub repository to watch for new commits",
			Category:    "Targets",
			Destination: &x.branch,
			Sources:     cli.EnvVars("TYPEWRITERS_WATCH_BRANCH"),
		},
	}
}

// Load returns flag targets followed by file targets. project and repository fill flag targets.
func (x *Targets) Load(project types.ProjectID, repository string) ([]model.Target, error) {
	var targets []model.Target

	for _, version := range x.versions {
		targets = append(targets, model.Target{
			Name:    types.TargetName(fmt.Sprintf("%s-%s", project, version)),
			Kind:    types.TargetKindBuild,
			Project: project,
			Version: types.VersionLabel(version),
		})
	}

	if x.branch != "" {
		targets = append(targets, model.Target{
			Name:       types.TargetName(fmt.Sprintf("%s@%s", repository, x.branch)),
			Kind:       types.TargetKindCommit,
			Repository: repository,
			Branch:     types.BranchName(x.branch),
		})
	}

	if x.file != "" {
		fromFile, err := LoadTargetsFile(x.file)
		if err != nil {
			return nil, err
		}
		targets = append(targets, fromFile...)
	}

	return targets, nil
}

// LoadTargetsFile parses path as YAML or TOML depending on its extension.
func LoadTargetsFile(path string) ([]model.Target, error) {
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read targets file", goerr.V("path", path))
	}

	var file targetsFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(raw))
		decoder.KnownFields(true)
		if err := decoder.Decode(&file); err != nil {
			return nil, goerr.Wrap(types.ErrInvalidOption, "failed to parse YAML targets file",
				goerr.V("path", path),
				goerr.V("cause", err.Error()),
			)
		}

	case ".toml":
		decoder := toml.NewDecoder(bytes.NewReader(raw))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&file); err != nil {
			return nil, goerr.Wrap(types.ErrInvalidOption, "failed to parse TOML targets file",
				goerr.V("path", path),
				goerr.V("cause", err.Error()),
			)
		}

	default:
		return nil, goerr.Wrap(types.ErrInvalidOption, "unsupported targets file format",
			goerr.V("path", path),
			goerr.V("ext", ext),
		)
	}

	return file.Targets, nil
}

func (x *Targets) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("File", x.file),
		slog.Any("Versions", x.versions),
		slog.String("Branch", x.branch),
	)
}
