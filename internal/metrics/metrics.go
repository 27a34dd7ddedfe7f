// Package metrics holds the server's Prometheus instruments and the optional
// HTTP endpoint that exposes them.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Index outcomes.
const (
	OutcomeOK         = "ok"
	OutcomeParseError = "parse_error"
)

// Diagnostic kinds.
const (
	KindParse = "parse"
	KindType  = "type"
)

var (
	// indexDuration measures one full analysis of a document.
	// Labels: outcome (ok, parse_error)
	indexDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "decaf_lsp",
		Name:      "index_duration_seconds",
		Help:      "Time to re-derive a document index in seconds",
		Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"outcome"})

	// diagnostics counts published diagnostics.
	// Labels: kind (parse, type)
	diagnostics = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "decaf_lsp",
		Name:      "diagnostics_total",
		Help:      "Total diagnostics produced by kind",
	}, []string{"kind"})

	// queries counts point and list queries.
	// Labels: kind (hover, definition, document_symbol, workspace_symbol, completion), hit
	queries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "decaf_lsp",
		Name:      "queries_total",
		Help:      "Total queries answered by kind and whether they produced a result",
	}, []string{"kind", "hit"})

	// openDocuments tracks the number of indexed documents.
	openDocuments = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "decaf_lsp",
		Name:      "documents",
		Help:      "Number of documents currently held in the index",
	})
)

// ObserveIndex records how long an analysis took.
func ObserveIndex(outcome string, d time.Duration) {
	indexDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// AddDiagnostics counts n diagnostics of the given kind.
func AddDiagnostics(kind string, n int) {
	if n > 0 {
		diagnostics.WithLabelValues(kind).Add(float64(n))
	}
}

// CountQuery records one query and whether it found anything.
func CountQuery(kind string, hit bool) {
	queries.WithLabelValues(kind, strconv.FormatBool(hit)).Inc()
}

// SetDocuments sets the number of indexed documents.
func SetDocuments(n int) {
	openDocuments.Set(float64(n))
}

// Serve exposes /metrics on port until ctx is cancelled.
func Serve(ctx context.Context, port int, logger *zap.Logger) error {
	logger = logger.With(zap.String("component", "metrics"))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Metrics server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("Serving metrics", zap.Int("port", port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
