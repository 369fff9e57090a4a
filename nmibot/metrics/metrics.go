package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/oldgods/nmibot/internal/domain/onboarding"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records onboarding activity. It implements onboarding.TransitionObserver.
type Metrics struct {
	registry    *prometheus.Registry
	transitions *prometheus.CounterVec
	rejections  *prometheus.CounterVec
}

var _ onboarding.TransitionObserver = (*Metrics)(nil)

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)
	return &Metrics{
		registry: registry,
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nmi_onboarding_transitions_total",
			Help: "onboarding stage transitions applied, by event and outcome",
		}, []string{"event", "from", "to", "render", "persisted"}),
		rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nmi_onboarding_rejections_total",
			Help: "onboarding events that were refused or failed",
		}, []string{"event", "reason"}),
	}
}

func (m *Metrics) ObserveTransition(event onboarding.Event, d onboarding.Decision, persisted bool) {
	from := "untracked"
	if d.Tracked {
		from = d.From.String()
	}
	m.transitions.WithLabelValues(
		event.Name(),
		from,
		d.To.String(),
		d.Render.String(),
		strconv.FormatBool(persisted),
	).Inc()
}

// ObserveRejection counts an event that Handle returned an error for.
func (m *Metrics) ObserveRejection(event onboarding.Event, err error) {
	m.rejections.WithLabelValues(event.Name(), Reason(err)).Inc()
}

// Reason maps an onboarding error onto a low cardinality label.
func Reason(err error) string {
	switch {
	case errors.Is(err, onboarding.ErrInvalidChapter):
		return "invalid_chapter"
	case errors.Is(err, onboarding.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "platform"
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 60 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	slog.Info("Serving prometheus metrics",
		slog.String("type", "sys"),
		slog.String("address", addr),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
