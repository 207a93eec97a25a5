package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Proximyst/typewriters/pkg/domain/model"
	"github.com/Proximyst/typewriters/pkg/domain/types"
	"github.com/Proximyst/typewriters/pkg/utils/errutil"
	"github.com/Proximyst/typewriters/pkg/utils/logging"
	"github.com/Proximyst/typewriters/pkg/utils/metrics"
	"golang.org/x/sync/errgroup"
)

// Poll runs one poll cycle over all targets. Distinct targets are polled concurrently.
// Events of successful targets are returned even if other targets failed; the returned error
// joins all failures.
func (x *UseCase) Poll(ctx context.Context) ([]*model.UpdateEvent, error) {
	x.mutex.RLock()
	watchers := make([]*watcher, len(x.watchers))
	copy(watchers, x.watchers)
	x.mutex.RUnlock()

	var (
		mutex  sync.Mutex
		events = make([]*model.UpdateEvent, len(watchers))
		errs   []error
	)

	eg, ctx := errgroup.WithContext(ctx)
	if x.concurrency > 0 {
		eg.SetLimit(x.concurrency)
	}

	for i, w := range watchers {
		eg.Go(func() error {
			ev, err := x.pollWatcher(ctx, w)
			if err != nil {
				mutex.Lock()
				errs = append(errs, err)
				mutex.Unlock()
				return nil
			}
			events[i] = ev
			return nil
		})
	}
	// goroutines never fail; errors are collected instead of cancelling siblings
	_ = eg.Wait()

	var result []*model.UpdateEvent
	for _, ev := range events {
		if ev != nil {
			result = append(result, ev)
		}
	}

	return result, errors.Join(errs...)
}

func (x *UseCase) pollWatcher(ctx context.Context, w *watcher) (*model.UpdateEvent, error) {
	logger := logging.From(ctx).With(
		slog.String("target", string(w.target.Name)),
		slog.String("kind", string(w.target.Kind)),
	)
	ctx = logging.With(ctx, logger)

	started := time.Now()
	ev, err := w.Poll(ctx, func(last types.BuildNumber) {
		x.metrics.SetLastSeenBuild(string(w.target.Name), int32(last))
	})
	elapsed := time.Since(started)

	if err != nil {
		x.metrics.RecordPoll(string(w.target.Name), errutil.Kind(err), elapsed)
		// transient failures resolve on a later cycle and are not reported to Sentry
		if errutil.Transient(err) {
			logger.Warn("transient failure while polling target",
				slog.Any("error", err),
				slog.String("error.kind", errutil.Kind(err)),
			)
		} else {
			errutil.HandleError(ctx, "failed to poll target", err)
		}
		return nil, err
	}

	if ev == nil {
		x.metrics.RecordPoll(string(w.target.Name), metrics.OutcomeNoChange, elapsed)
		logger.Debug("no update", slog.Duration("elapsed", elapsed))
		return nil, nil
	}

	x.metrics.RecordPoll(string(w.target.Name), metrics.OutcomeUpdate, elapsed)
	ev.DetectedAt = logging.CtxTime(ctx)

	switch {
	case ev.Build != nil:
		logger.Info("new build detected",
			slog.Int("previous", int(ev.Build.Previous)),
			slog.Int("latest", int(ev.Build.Latest)),
		)
		if x.fetchBuildDetail {
			x.enrichBuild(ctx, ev)
		}

	case ev.Commits != nil:
		logger.Info("new commits detected",
			slog.String("previous", ev.Commits.Previous.Short()),
			slog.String("latest", ev.Commits.Latest.Short()),
			slog.Int("count", len(ev.Commits.Commits)),
			slog.Bool("truncated", ev.Commits.Truncated),
		)
	}

	return ev, nil
}

// enrichBuild attaches the full build record. The stream has already advanced, so a failure
// here keeps the event and only drops the detail.
func (x *UseCase) enrichBuild(ctx context.Context, ev *model.UpdateEvent) {
	update := ev.Build
	build, err := x.clients.Paper().FetchBuild(ctx, update.Project, update.Version, update.Latest)
	if err != nil {
		errutil.HandleError(ctx, "failed to fetch build detail", err)
		return
	}
	ev.BuildDetail = build
}
