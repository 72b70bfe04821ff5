// Package metrics exposes Prometheus counters for conversions and exports.
package metrics

import (
	"errors"
	"net/http"

	"github.com/woozymasta/coordsuite/internal/converter"
	"github.com/woozymasta/coordsuite/internal/parser"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ConversionsTotal counts converted blocks by effective direction.
	ConversionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coordsuite_conversions_total",
		Help: "Total number of converted text blocks",
	}, []string{"direction"})

	// UndetectableTotal counts blocks rejected because their format could not be detected.
	UndetectableTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coordsuite_undetectable_blocks_total",
		Help: "Total number of text blocks whose format could not be detected",
	})

	// LinesTotal counts lines by result: "ok" or the failure kind.
	LinesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coordsuite_lines_total",
		Help: "Total number of processed lines by result",
	}, []string{"result"})

	// BlockSizeLines observes the number of outcomes per block.
	BlockSizeLines = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "coordsuite_block_size_lines",
		Help:    "Number of non-blank lines per converted block",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8), // 1 to ~16k lines
	})

	// ExportsTotal counts written exports by format.
	ExportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coordsuite_exports_total",
		Help: "Total number of written exports by format",
	}, []string{"format"})
)

// ObserveResult records one Convert call. Only a failed detection counts as
// an undetectable block; other errors are not recorded.
func ObserveResult(res *converter.Result, err error) {
	if res == nil {
		if errors.Is(err, parser.ErrUndetectableFormat) {
			UndetectableTotal.Inc()
		}
		return
	}

	ConversionsTotal.WithLabelValues(res.Direction.String()).Inc()
	BlockSizeLines.Observe(float64(len(res.Outcomes)))

	for _, o := range res.Outcomes {
		if o.OK() {
			LinesTotal.WithLabelValues("ok").Inc()
		} else {
			LinesTotal.WithLabelValues(o.Err.Kind.String()).Inc()
		}
	}
}

// ObserveExport counts one written export.
func ObserveExport(format string) {
	ExportsTotal.WithLabelValues(format).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
