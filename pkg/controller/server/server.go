package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Proximyst/typewriters/pkg/domain/interfaces"
	"github.com/Proximyst/typewriters/pkg/domain/model"
	"github.com/Proximyst/typewriters/pkg/utils/errutil"
	"github.com/Proximyst/typewriters/pkg/utils/logging"
	"github.com/Proximyst/typewriters/pkg/utils/metrics"
	"github.com/go-chi/chi/v5"
)

type Server struct {
	mux *chi.Mux
}

func safeWrite(w http.ResponseWriter, code int, body []byte) {
	w.WriteHeader(code)

	// nosemgrep: go.lang.security.audit.xss.no-direct-write-to-responsewriter.no-direct-write-to-responsewriter
	// Why: The response data is not from user input
	if _, err := w.Write(body); err != nil {
		logging.Default().Error("fail to write response", slog.Any("error", err))
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logging.Default().Error("fail to marshal response", slog.Any("error", err))
		safeWrite(w, http.StatusInternalServerError, []byte(`{"error":"fail to marshal response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	safeWrite(w, code, body)
}

type config struct {
	metrics *metrics.Metrics
}

type Option func(*config)

// WithMetrics serves /metrics and instruments every route.
func WithMetrics(m *metrics.Metrics) Option {
	return func(cfg *config) {
		cfg.metrics = m
	}
}

type pollResponse struct {
	Updates []*model.UpdateEvent `json:"updates"`
	Error   string               `json:"error,omitempty"`
}

type targetsResponse struct {
	Targets []model.Target `json:"targets"`
}

func New(uc interfaces.UseCase, options ...Option) *Server {
	cfg := &config{}
	for _, opt := range options {
		opt(cfg)
	}

	r := chi.NewRouter()
	r.Use(preProcess)
	r.Use(instrument(cfg.metrics))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		safeWrite(w, http.StatusOK, []byte("ok"))
	})
	if cfg.metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.metrics.Handler())
	}

	r.Get("/targets", func(w http.ResponseWriter, r *http.Request) {
		targets := uc.Targets()
		if targets == nil {
			targets = []model.Target{}
		}
		writeJSON(w, http.StatusOK, targetsResponse{Targets: targets})
	})

	// Triggered by an external scheduler; one call runs one poll cycle.
	r.Post("/poll", func(w http.ResponseWriter, r *http.Request) {
		events, err := uc.Poll(r.Context())

		resp := pollResponse{Updates: events}
		if resp.Updates == nil {
			resp.Updates = []*model.UpdateEvent{}
		}

		if err != nil {
			// per-target failures are already reported by the use case
			logging.From(r.Context()).Warn("poll cycle finished with errors",
				slog.Int("updates", len(resp.Updates)),
				slog.String("error.kind", errutil.Kind(err)),
			)
			resp.Error = err.Error()
			writeJSON(w, http.StatusInternalServerError, resp)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	})

	return &Server{
		mux: r,
	}
}

func (x *Server) Mux() *chi.Mux {
	return x.mux
}
