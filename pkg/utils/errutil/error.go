package errutil

import (
	"context"
	"errors"
	"fmt"

	"github.com/Proximyst/typewriters/pkg/domain/types"
	"github.com/Proximyst/typewriters/pkg/utils/logging"
	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
)

// Kind names the error class of err, used as Sentry tag and metrics label.
// ErrNotFound is checked before ErrTransport because it is a transport error too.
func Kind(err error) string {
	kinds := []struct {
		sentinel error
		name     string
	}{
		{types.ErrURLConstruction, "url_construction"},
		{types.ErrNotFound, "not_found"},
		{types.ErrTransport, "transport"},
		{types.ErrBodyRead, "body_read"},
		{types.ErrSchemaMismatch, "schema_mismatch"},
		{types.ErrNoBuilds, "no_builds"},
		{types.ErrBuildRegression, "build_regression"},
		{types.ErrNoCommits, "no_commits"},
		{types.ErrInvalidTarget, "invalid_target"},
		{types.ErrInvalidOption, "invalid_option"},
	}

	for _, k := range kinds {
		if errors.Is(err, k.sentinel) {
			return k.name
		}
	}
	return "unknown"
}

// Transient reports whether retrying later may succeed without operator intervention.
func Transient(err error) bool {
	switch Kind(err) {
	case "transport", "not_found", "body_read", "build_regression":
		return true
	default:
		return false
	}
}

func HandleError(ctx context.Context, msg string, err error) {
	if err == nil {
		return
	}

	// Sending error to Sentry
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("error.kind", Kind(err))
		if goErr := goerr.Unwrap(err); goErr != nil {
			for k, v := range goErr.Values() {
				scope.SetExtra(fmt.Sprintf("%v", k), v)
			}
		}
	})
	evID := hub.CaptureException(err)

	logging.From(ctx).Error(msg,
		"error", err,
		"error.kind", Kind(err),
		"sentry.EventID", evID,
	)
}
