package paper

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Proximyst/typewriters/pkg/domain/interfaces"
	"github.com/Proximyst/typewriters/pkg/domain/model"
	"github.com/Proximyst/typewriters/pkg/domain/types"
	"github.com/Proximyst/typewriters/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

const (
	DefaultBaseURL   = "https://papermc.io/api"
	DefaultUserAgent = "typewriters automated-bot (+https://github.com/Proximyst/typewriters.git)"

	acceptJSON = "application/json"

	// Error bodies attached to goerr values are truncated to this size.
	maxErrorBody = 4096
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client reads the bibliothek v2 API. It holds no state besides its configuration and every
// call is safe to retry.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient HTTPClient
}

var _ interfaces.PaperAPI = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(client HTTPClient) Option {
	return func(x *Client) {
		x.httpClient = client
	}
}

func WithUserAgent(ua string) Option {
	return func(x *Client) {
		x.userAgent = ua
	}
}

// New creates a client for the API rooted at baseURL, e.g. "https://papermc.io/api".
// The base URL is checked on every request so a bad value surfaces as ErrURLConstruction.
func New(baseURL string, options ...Option) *Client {
	client := &Client{
		baseURL:    baseURL,
		userAgent:  DefaultUserAgent,
		httpClient: http.DefaultClient,
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Client) FetchProject(ctx context.Context, project types.ProjectID) (*model.Project, error) {
	var resp model.Project
	if err := x.get(ctx, &resp, "v2", "projects", string(project)); err != nil {
		return nil, goerr.Wrap(err, "cannot fetch project", goerr.V("project", project))
	}
	return &resp, nil
}

func (x *Client) FetchVersion(ctx context.Context, project types.ProjectID, version types.VersionLabel) (*model.Version, error) {
	var resp model.Version
	if err := x.get(ctx, &resp, "v2", "projects", string(project), "versions", string(version)); err != nil {
		return nil, goerr.Wrap(err, "cannot fetch version",
			goerr.V("project", project),
			goerr.V("version", version),
		)
	}
	return &resp, nil
}

func (x *Client) FetchBuild(ctx context.Context, project types.ProjectID, version types.VersionLabel, build types.BuildNumber) (*model.Build, error) {
	var resp model.Build
	if err := x.get(ctx, &resp,
		"v2", "projects", string(project),
		"versions", string(version),
		"builds", strconv.FormatInt(int64(build), 10),
	); err != nil {
		return nil, goerr.Wrap(err, "cannot fetch build",
			goerr.V("project", project),
			goerr.V("version", version),
			goerr.V("build", build),
		)
	}

	if err := resp.Validate(); err != nil {
		return nil, err
	}

	return &resp, nil
}

// FetchLatestBuild fetches the version and then its most recent build.
func (x *Client) FetchLatestBuild(ctx context.Context, project types.ProjectID, version types.VersionLabel) (*model.Build, error) {
	v, err := x.FetchVersion(ctx, project, version)
	if err != nil {
		return nil, err
	}

	latest, ok := v.LatestBuild()
	if !ok {
		return nil, goerr.Wrap(types.ErrNoBuilds, "version has no builds",
			goerr.V("project", project),
			goerr.V("version", version),
		)
	}

	return x.FetchBuild(ctx, project, version, latest)
}

func (x *Client) buildURL(segments ...string) (*url.URL, error) {
	base, err := url.Parse(x.baseURL)
	if err != nil {
		return nil, goerr.Wrap(types.ErrURLConstruction, "cannot parse base url",
			goerr.V("url", x.baseURL),
			goerr.V("cause", err.Error()),
		)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, goerr.Wrap(types.ErrURLConstruction, "base url must be http or https", goerr.V("url", x.baseURL))
	}
	if base.Host == "" {
		return nil, goerr.Wrap(types.ErrURLConstruction, "base url has no host", goerr.V("url", x.baseURL))
	}

	for _, seg := range segments {
		if seg == "" || seg == "." || seg == ".." || strings.Contains(seg, "/") {
			return nil, goerr.Wrap(types.ErrURLConstruction, "invalid path segment",
				goerr.V("url", x.baseURL),
				goerr.V("segments", segments),
			)
		}
	}

	return base.JoinPath(segments...), nil
}

func (x *Client) get(ctx context.Context, v any, segments ...string) error {
	u, err := x.buildURL(segments...)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return goerr.Wrap(types.ErrURLConstruction, "cannot create request",
			goerr.V("url", u.String()),
			goerr.V("cause", err.Error()),
		)
	}
	req.Header.Set("Accept", acceptJSON)
	req.Header.Set("User-Agent", x.userAgent)

	resp, err := x.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(types.ErrTransport, "request failed",
			goerr.V("url", u.String()),
			goerr.V("cause", err.Error()),
		)
	}
	defer safe.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		sentinel := types.ErrTransport
		if resp.StatusCode == http.StatusNotFound {
			sentinel = types.ErrNotFound
		}
		return goerr.Wrap(sentinel, "unexpected status code",
			goerr.V("url", u.String()),
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)),
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return goerr.Wrap(types.ErrBodyRead, "cannot read response body",
			goerr.V("url", u.String()),
			goerr.V("cause", err.Error()),
		)
	}

	if err := json.Unmarshal(body, v); err != nil {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return goerr.Wrap(types.ErrSchemaMismatch, "invalid json returned",
			goerr.V("url", u.String()),
			goerr.V("cause", err.Error()),
			goerr.V("body", string(body)),
		)
	}

	return nil
}
