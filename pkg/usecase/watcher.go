package usecase

import (
	"context"
	"sync"

	"github.com/Proximyst/typewriters/pkg/domain/interfaces"
	"github.com/Proximyst/typewriters/pkg/domain/model"
	"github.com/Proximyst/typewriters/pkg/domain/types"
	"github.com/Proximyst/typewriters/pkg/stream"
	"github.com/m-mizutani/goerr/v2"
)

// watcher serializes polls of one stream. Streams themselves are not safe for concurrent use.
type watcher struct {
	target model.Target
	mutex  sync.Mutex
	poll   func(ctx context.Context) (*model.UpdateEvent, error)

	// set for build targets only
	lastBuild func() (types.BuildNumber, bool)
}

func newWatcher[T any](target model.Target, s interfaces.UpdateStream[T], fill func(*model.UpdateEvent, *T)) *watcher {
	return &watcher{
		target: target,
		poll: func(ctx context.Context) (*model.UpdateEvent, error) {
			item, err := s.Poll(ctx)
			if err != nil || item == nil {
				return nil, err
			}

			ev := &model.UpdateEvent{
				ID:     types.NewEventID(),
				Target: target.Name,
				Kind:   target.Kind,
			}
			fill(ev, item)
			return ev, nil
		},
	}
}

// Poll polls the stream once. For build targets observeBuild receives the baseline
// before the watcher is unlocked.
func (x *watcher) Poll(ctx context.Context, observeBuild func(types.BuildNumber)) (*model.UpdateEvent, error) {
	x.mutex.Lock()
	defer x.mutex.Unlock()

	ev, err := x.poll(ctx)
	if x.lastBuild != nil {
		if last, ok := x.lastBuild(); ok {
			observeBuild(last)
		}
	}
	return ev, err
}

// AddTarget validates target and registers a stream for it. Target names must be unique.
func (x *UseCase) AddTarget(target model.Target) error {
	if err := target.Validate(); err != nil {
		return err
	}

	var w *watcher
	switch target.Kind {
	case types.TargetKindBuild:
		if x.clients.Paper() == nil {
			return goerr.Wrap(types.ErrInvalidOption, "paper client is not configured", goerr.V("target", target.Name))
		}

		s := stream.NewBuildStream(x.clients.Paper(), target.Project, target.Version)
		w = newWatcher[model.BuildUpdate](target, s, func(ev *model.UpdateEvent, update *model.BuildUpdate) {
			ev.Build = update
		})
		w.lastBuild = s.LastSeen

	case types.TargetKindCommit:
		if x.clients.GitHub() == nil {
			return goerr.Wrap(types.ErrInvalidOption, "GitHub client is not configured", goerr.V("target", target.Name))
		}

		// Validate already checked the repository
		repo, _ := model.ParseRepository(target.Repository)
		s := stream.NewCommitStream(x.clients.GitHub(), repo, target.Branch, x.commitWindow)
		w = newWatcher[model.CommitUpdate](target, s, func(ev *model.UpdateEvent, update *model.CommitUpdate) {
			ev.Commits = update
		})
	}

	x.mutex.Lock()
	defer x.mutex.Unlock()

	for _, existing := range x.watchers {
		if existing.target.Name == target.Name {
			return goerr.Wrap(types.ErrInvalidTarget, "duplicated target name", goerr.V("target", target.Name))
		}
	}
	x.watchers = append(x.watchers, w)

	return nil
}

// Targets returns registered targets in registration order.
func (x *UseCase) Targets() []model.Target {
	x.mutex.RLock()
	defer x.mutex.RUnlock()

	targets := make([]model.Target, len(x.watchers))
	for i, w := range x.watchers {
		targets[i] = w.target
	}
	return targets
}
