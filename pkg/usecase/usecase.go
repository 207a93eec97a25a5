package usecase

import (
	"sync"

	"github.com/Proximyst/typewriters/pkg/infra"
	"github.com/Proximyst/typewriters/pkg/stream"
	"github.com/Proximyst/typewriters/pkg/utils/metrics"
)

type UseCase struct {
	clients *infra.Clients

	metrics          *metrics.Metrics
	fetchBuildDetail bool
	commitWindow     int
	concurrency      int

	mutex    sync.RWMutex
	watchers []*watcher
}

type Option func(*UseCase)

func WithMetrics(m *metrics.Metrics) Option {
	return func(x *UseCase) {
		x.metrics = m
	}
}

// WithFetchBuildDetail enables the follow-up FetchBuild for every detected build update.
func WithFetchBuildDetail(enabled bool) Option {
	return func(x *UseCase) {
		x.fetchBuildDetail = enabled
	}
}

func WithCommitWindow(window int) Option {
	return func(x *UseCase) {
		x.commitWindow = window
	}
}

// WithConcurrency limits how many targets are polled at the same time. Zero or less means no limit.
func WithConcurrency(n int) Option {
	return func(x *UseCase) {
		x.concurrency = n
	}
}

func New(clients *infra.Clients, options ...Option) *UseCase {
	uc := &UseCase{
		clients:      clients,
		commitWindow: stream.DefaultCommitWindow,
	}

	for _, opt := range options {
		opt(uc)
	}

	return uc
}
