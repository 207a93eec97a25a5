package types

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidOption = goerr.New("invalid option")
	ErrInvalidTarget = goerr.New("invalid target")

	// ErrURLConstruction means the composed request URL is not valid. Fix the configuration before retrying.
	ErrURLConstruction = goerr.New("url construction failed")
	// ErrTransport covers connection failures, timeouts and non-success HTTP status.
	ErrTransport = goerr.New("transport failure")
	// ErrNotFound is a transport failure with 404 status.
	ErrNotFound = goerr.Wrap(ErrTransport, "resource not found")
	ErrBodyRead = goerr.New("failed to read response body")
	// ErrSchemaMismatch indicates an API contract change. It is not transient.
	ErrSchemaMismatch = goerr.New("response does not match expected schema")

	ErrNoBuilds        = goerr.New("no builds for version")
	ErrBuildRegression = goerr.New("latest build is lower than previously observed")
	ErrNoCommits       = goerr.New("no commits on branch")
)
