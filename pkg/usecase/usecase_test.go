package usecase_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Proximyst/typewriters/pkg/domain/mock"
	"github.com/Proximyst/typewriters/pkg/domain/model"
	"github.com/Proximyst/typewriters/pkg/domain/types"
	"github.com/Proximyst/typewriters/pkg/infra"
	"github.com/Proximyst/typewriters/pkg/infra/paper"
	"github.com/Proximyst/typewriters/pkg/usecase"
	"github.com/Proximyst/typewriters/pkg/utils/logging"
	"github.com/Proximyst/typewriters/pkg/utils/metrics"
	"github.com/Proximyst/typewriters/pkg/utils/testutil"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
)

var (
	buildTarget = model.Target{
		Name:    "paper-1.16.5",
		Kind:    types.TargetKindBuild,
		Project: "paper",
		Version: "1.16.5",
	}
	commitTarget = model.Target{
		Name:       "paper-master",
		Kind:       types.TargetKindCommit,
		Repository: "PaperMC/Paper",
		Branch:     "master",
	}
)

// buildSequence returns a FetchVersion func reporting latest[i] on the i-th call and repeating the last value.
func buildSequence(latest ...types.BuildNumber) func(ctx context.Context, project types.ProjectID, version types.VersionLabel) (*model.Version, error) {
	var calls atomic.Int32
	return func(ctx context.Context, project types.ProjectID, version types.VersionLabel) (*model.Version, error) {
		i := int(calls.Add(1)) - 1
		if i >= len(latest) {
			i = len(latest) - 1
		}
		var builds []types.BuildNumber
		for b := types.BuildNumber(1); b <= latest[i]; b++ {
			builds = append(builds, b)
		}
		return &model.Version{Builds: builds}, nil
	}
}

func TestNew(t *testing.T) {
	uc := usecase.New(infra.New())
	gt.V(t, uc.CommitWindowForTest()).Equal(30)
	gt.V(t, len(uc.Targets())).Equal(0)

	uc = usecase.New(infra.New(), usecase.WithCommitWindow(5))
	gt.V(t, uc.CommitWindowForTest()).Equal(5)
}

func TestAddTarget(t *testing.T) {
	t.Run("build and commit targets", func(t *testing.T) {
		uc := usecase.New(infra.New(
			infra.WithPaper(&mock.PaperAPIMock{}),
			infra.WithGitHub(&mock.GitHubMock{}),
		))
		gt.NoError(t, uc.AddTarget(buildTarget))
		gt.NoError(t, uc.AddTarget(commitTarget))
		gt.V(t, uc.Targets()).Equal([]model.Target{buildTarget, commitTarget})
	})

	t.Run("duplicated name", func(t *testing.T) {
		uc := usecase.New(infra.New(infra.WithPaper(&mock.PaperAPIMock{})))
		gt.NoError(t, uc.AddTarget(buildTarget))
		err := uc.AddTarget(buildTarget)
		gt.True(t, errors.Is(err, types.ErrInvalidTarget))
		gt.V(t, len(uc.Targets())).Equal(1)
	})

	t.Run("invalid target", func(t *testing.T) {
		uc := usecase.New(infra.New())
		err := uc.AddTarget(model.Target{Name: "x", Kind: types.TargetKindBuild})
		gt.True(t, errors.Is(err, types.ErrInvalidTarget))
	})

	t.Run("commit target without GitHub client", func(t *testing.T) {
		uc := usecase.New(infra.New())
		err := uc.AddTarget(commitTarget)
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})
}

func TestPoll(t *testing.T) {
	now := time.Date(2021, 4, 1, 12, 0, 0, 0, time.UTC)
	ctx := logging.CtxWithTime(context.Background(), func() time.Time { return now })

	paperMock := &mock.PaperAPIMock{
		FetchVersionFunc: buildSequence(5, 6, 6),
	}
	ghMock := &mock.GitHubMock{
		ListCommitsFunc: func(ctx context.Context, repo model.GitHubRepo, branch types.BranchName, limit int) ([]*model.Commit, error) {
			return []*model.Commit{{SHA: "aaaaaaaaaaaa"}}, nil
		},
	}
	m := metrics.New()
	uc := usecase.New(infra.New(infra.WithPaper(paperMock), infra.WithGitHub(ghMock)), usecase.WithMetrics(m))
	gt.NoError(t, uc.AddTarget(buildTarget))
	gt.NoError(t, uc.AddTarget(commitTarget))

	t.Run("first cycle records baselines", func(t *testing.T) {
		events := gt.R1(uc.Poll(ctx)).NoError(t)
		gt.V(t, len(events)).Equal(0)
	})

	t.Run("second cycle reports new build", func(t *testing.T) {
		events := gt.R1(uc.Poll(ctx)).NoError(t)
		gt.V(t, len(events)).Equal(1)

		ev := events[0]
		gt.V(t, ev.Target).Equal(buildTarget.Name)
		gt.V(t, ev.Kind).Equal(types.TargetKindBuild)
		gt.V(t, ev.DetectedAt).Equal(now)
		gt.V(t, ev.ID).NotEqual("")
		gt.V(t, ev.Build.Previous).Equal(5)
		gt.V(t, ev.Build.Latest).Equal(6)
		gt.True(t, ev.BuildDetail == nil)
		gt.True(t, ev.Commits == nil)
		gt.V(t, len(paperMock.FetchBuildCalls())).Equal(0)
	})

	t.Run("third cycle is quiet", func(t *testing.T) {
		events := gt.R1(uc.Poll(ctx)).NoError(t)
		gt.V(t, len(events)).Equal(0)
	})

	expected := `
# HELP typewriters_poll_last_seen_build Last seen build number per build target
# TYPE typewriters_poll_last_seen_build gauge
typewriters_poll_last_seen_build{target="paper-1.16.5"} 6
# HELP typewriters_poll_results_total Number of poll outcomes per target
# TYPE typewriters_poll_results_total counter
typewriters_poll_results_total{outcome="no_change",target="paper-1.16.5"} 2
typewriters_poll_results_total{outcome="no_change",target="paper-master"} 3
typewriters_poll_results_total{outcome="update",target="paper-1.16.5"} 1
`
	gt.NoError(t, promtestutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"typewriters_poll_last_seen_build",
		"typewriters_poll_results_total",
	))
}

func TestPollPartialFailure(t *testing.T) {
	var fail atomic.Bool
	paperMock := &mock.PaperAPIMock{
		FetchVersionFunc: buildSequence(5, 6),
	}
	ghMock := &mock.GitHubMock{
		ListCommitsFunc: func(ctx context.Context, repo model.GitHubRepo, branch types.BranchName, limit int) ([]*model.Commit, error) {
			if fail.Load() {
				return nil, goerr.Wrap(types.ErrNotFound, "branch not found")
			}
			return []*model.Commit{{SHA: "aaaaaaaaaaaa"}}, nil
		},
	}
	m := metrics.New()
	uc := usecase.New(infra.New(infra.WithPaper(paperMock), infra.WithGitHub(ghMock)), usecase.WithMetrics(m))
	gt.NoError(t, uc.AddTarget(buildTarget))
	gt.NoError(t, uc.AddTarget(commitTarget))

	ctx := context.Background()
	gt.R1(uc.Poll(ctx)).NoError(t)

	fail.Store(true)
	events, err := uc.Poll(ctx)
	gt.True(t, errors.Is(err, types.ErrNotFound))
	gt.V(t, len(events)).Equal(1)
	gt.V(t, events[0].Target).Equal(buildTarget.Name)

	expected := `
# HELP typewriters_poll_results_total Number of poll outcomes per target
# TYPE typewriters_poll_results_total counter
typewriters_poll_results_total{outcome="no_change",target="paper-1.16.5"} 1
typewriters_poll_results_total{outcome="no_change",target="paper-master"} 1
typewriters_poll_results_total{outcome="not_found",target="paper-master"} 1
typewriters_poll_results_total{outcome="update",target="paper-1.16.5"} 1
`
	gt.NoError(t, promtestutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "typewriters_poll_results_total"))
}

func TestPollFetchBuildDetail(t *testing.T) {
	detail := &model.Build{Build: 6, Time: time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC)}

	t.Run("attaches build record", func(t *testing.T) {
		paperMock := &mock.PaperAPIMock{
			FetchVersionFunc: buildSequence(5, 6),
			FetchBuildFunc: func(ctx context.Context, project types.ProjectID, version types.VersionLabel, build types.BuildNumber) (*model.Build, error) {
				gt.V(t, project).Equal("paper")
				gt.V(t, version).Equal("1.16.5")
				gt.V(t, build).Equal(6)
				return detail, nil
			},
		}
		uc := usecase.New(infra.New(infra.WithPaper(paperMock)), usecase.WithFetchBuildDetail(true))
		gt.NoError(t, uc.AddTarget(buildTarget))

		ctx := context.Background()
		gt.R1(uc.Poll(ctx)).NoError(t)
		events := gt.R1(uc.Poll(ctx)).NoError(t)
		gt.V(t, len(events)).Equal(1)
		gt.V(t, events[0].BuildDetail).Equal(detail)
	})

	t.Run("keeps event when detail fails", func(t *testing.T) {
		paperMock := &mock.PaperAPIMock{
			FetchVersionFunc: buildSequence(5, 6),
			FetchBuildFunc: func(ctx context.Context, project types.ProjectID, version types.VersionLabel, build types.BuildNumber) (*model.Build, error) {
				return nil, goerr.Wrap(types.ErrTransport, "timeout")
			},
		}
		uc := usecase.New(infra.New(infra.WithPaper(paperMock)), usecase.WithFetchBuildDetail(true))
		gt.NoError(t, uc.AddTarget(buildTarget))

		ctx := context.Background()
		gt.R1(uc.Poll(ctx)).NoError(t)
		events := gt.R1(uc.Poll(ctx)).NoError(t)
		gt.V(t, len(events)).Equal(1)
		gt.V(t, events[0].Build.Latest).Equal(6)
		gt.True(t, events[0].BuildDetail == nil)
	})
}

func TestPollSerializesTarget(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32
	paperMock := &mock.PaperAPIMock{
		FetchVersionFunc: func(ctx context.Context, project types.ProjectID, version types.VersionLabel) (*model.Version, error) {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				cur := maxInFlight.Load()
				if n <= cur || maxInFlight.CompareAndSwap(cur, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			return &model.Version{Builds: []types.BuildNumber{1}}, nil
		},
	}
	uc := usecase.New(infra.New(infra.WithPaper(paperMock)))
	gt.NoError(t, uc.AddTarget(buildTarget))

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = uc.Poll(context.Background())
		}()
	}
	wg.Wait()

	for _, err := range errs {
		gt.NoError(t, err)
	}

	gt.V(t, maxInFlight.Load()).Equal(int32(1))
	gt.V(t, len(paperMock.FetchVersionCalls())).Equal(8)
}

func TestPollConcurrentCyclesWithMetrics(t *testing.T) {
	// run with -race: overlapping cycles must not read stream state outside the watcher lock
	var latest atomic.Int32
	paperMock := &mock.PaperAPIMock{
		FetchVersionFunc: func(ctx context.Context, project types.ProjectID, version types.VersionLabel) (*model.Version, error) {
			return &model.Version{Builds: []types.BuildNumber{types.BuildNumber(latest.Add(1))}}, nil
		},
	}
	m := metrics.New()
	uc := usecase.New(infra.New(infra.WithPaper(paperMock)), usecase.WithMetrics(m))
	gt.NoError(t, uc.AddTarget(buildTarget))

	const workers, cycles = 8, 50
	var (
		wg     sync.WaitGroup
		mutex  sync.Mutex
		events int
		errs   []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < cycles; j++ {
				evs, err := uc.Poll(context.Background())
				mutex.Lock()
				events += len(evs)
				if err != nil {
					errs = append(errs, err)
				}
				mutex.Unlock()
			}
		}()
	}
	wg.Wait()

	gt.V(t, len(errs)).Equal(0)
	// every poll but the baseline sees a new build
	gt.V(t, events).Equal(workers*cycles - 1)

	expected := fmt.Sprintf(`
# HELP typewriters_poll_last_seen_build Last seen build number per build target
# TYPE typewriters_poll_last_seen_build gauge
typewriters_poll_last_seen_build{target="paper-1.16.5"} %d
`, workers*cycles)
	gt.NoError(t, promtestutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "typewriters_poll_last_seen_build"))
}

func TestPollFailureLogLevel(t *testing.T) {
	testCases := []struct {
		name  string
		err   error
		level string
	}{
		{
			name:  "transport failure is a warning",
			err:   goerr.Wrap(types.ErrTransport, "connection reset"),
			level: "WARN",
		},
		{
			name:  "regression is a warning",
			err:   goerr.Wrap(types.ErrBuildRegression, "latest build went backwards"),
			level: "WARN",
		},
		{
			name:  "schema mismatch is an error",
			err:   goerr.Wrap(types.ErrSchemaMismatch, "unexpected body"),
			level: "ERROR",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			paperMock := &mock.PaperAPIMock{
				FetchVersionFunc: func(ctx context.Context, project types.ProjectID, version types.VersionLabel) (*model.Version, error) {
					return nil, tc.err
				},
			}
			uc := usecase.New(infra.New(infra.WithPaper(paperMock)))
			gt.NoError(t, uc.AddTarget(buildTarget))

			var buf bytes.Buffer
			logger := gt.R1(logging.New(&buf, "json", "debug")).NoError(t)
			ctx := logging.With(context.Background(), logger)

			_, err := uc.Poll(ctx)
			gt.True(t, errors.Is(err, tc.err))

			var record map[string]any
			gt.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record))
			gt.V(t, record["level"]).Equal(any(tc.level))
			gt.V(t, record["target"]).Equal(any("paper-1.16.5"))
		})
	}
}

const build12 = `{
  "build": 12,
  "time": "2021-02-08T10:22:13.662Z",
  "changes": [],
  "downloads": {
    "application": {
      "name": "paper-1.16.5-12.jar",
      "sha256": "58275a88331dc21c857be49fd7a9d70ba04843253e73e8a7424160b34529e04a"
    }
  }
}`

func TestFetchLatestBuild(t *testing.T) {
	t.Run("fetches most recent build", func(t *testing.T) {
		// the API lists builds oldest first; the last entry is the most recent one
		srv := testutil.NewAPIServer(t)
		srv.JSON("/v2/projects/paper/versions/1.16.5", `{"builds":[3,466,12]}`)
		srv.JSON("/v2/projects/paper/versions/1.16.5/builds/12", build12)

		uc := usecase.New(infra.New(infra.WithPaper(paper.New(srv.URL))))
		build := gt.R1(uc.FetchLatestBuild(context.Background(), "paper", "1.16.5")).NoError(t)
		gt.V(t, build.Build).Equal(12)
		gt.V(t, srv.Hits("/v2/projects/paper/versions/1.16.5/builds/466")).Equal(0)
	})

	t.Run("delegates to paper client", func(t *testing.T) {
		paperMock := &mock.PaperAPIMock{
			FetchLatestBuildFunc: func(ctx context.Context, project types.ProjectID, version types.VersionLabel) (*model.Build, error) {
				return nil, goerr.Wrap(types.ErrNoBuilds, "version has no builds")
			},
		}
		uc := usecase.New(infra.New(infra.WithPaper(paperMock)))
		_, err := uc.FetchLatestBuild(context.Background(), "paper", "1.16.5")
		gt.True(t, errors.Is(err, types.ErrNoBuilds))
		gt.V(t, len(paperMock.FetchLatestBuildCalls())).Equal(1)
		gt.V(t, paperMock.FetchLatestBuildCalls()[0].Version).Equal("1.16.5")
	})
}

func TestListCommitsWithoutGitHub(t *testing.T) {
	uc := usecase.New(infra.New())
	_, err := uc.ListCommits(context.Background(), model.GitHubRepo{Owner: "PaperMC", Name: "Paper"}, "master", 10)
	gt.True(t, errors.Is(err, types.ErrInvalidOption))
}
