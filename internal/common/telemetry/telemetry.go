// File path: internal/common/telemetry/telemetry.go
package telemetry

import (
	"context"
	"expvar"
	"strings"
	"sync"
	"time"

	"github.com/outreachready/backend/internal/common"
)

type spanKey struct{}

type span struct {
	name  string
	start time.Time
}

var (
	initOnce sync.Once

	generationTotal     *expvar.Int
	generationLatencyMS *expvar.Int
	generationFailures  *expvar.Map
	variantsTotal       *expvar.Int
	variantsDropped     *expvar.Int

	enrichmentTotal    *expvar.Int
	enrichmentFailures *expvar.Int
)

func ensureInit() {
	initOnce.Do(func() {
		generationTotal = expvar.NewInt("outreach_generation_total")
		generationLatencyMS = expvar.NewInt("outreach_generation_latency_ms")
		generationFailures = expvar.NewMap("outreach_generation_failures")
		variantsTotal = expvar.NewInt("outreach_variants_total")
		variantsDropped = expvar.NewInt("outreach_variants_dropped")

		enrichmentTotal = expvar.NewInt("outreach_enrichment_total")
		enrichmentFailures = expvar.NewInt("outreach_enrichment_failures")
	})
}

// StartSpan marks the beginning of a traced operation. The returned func logs
// the span duration with any extra attributes.
func StartSpan(ctx context.Context, name string) (context.Context, func(attrs ...interface{})) {
	ensureInit()
	sp := &span{name: name, start: time.Now()}
	ctx = context.WithValue(ctx, spanKey{}, sp)
	logger := common.Logger()
	logger.Debug("trace: start", "span", name)
	return ctx, func(attrs ...interface{}) {
		duration := time.Since(sp.start)
		logger.Debug("trace: end", append([]interface{}{"span", name, "dur", duration}, attrs...)...)
	}
}

// RecordGeneration counts one completed generation cycle.
func RecordGeneration(duration time.Duration, variants, dropped int) {
	ensureInit()
	generationTotal.Add(1)
	variantsTotal.Add(int64(variants))
	variantsDropped.Add(int64(dropped))
	if duration > 0 {
		generationLatencyMS.Add(duration.Milliseconds())
	}
}

// RecordGenerationFailure counts one failed cycle keyed by failure kind
// (validation, quota, backend, parse).
func RecordGenerationFailure(kind string) {
	ensureInit()
	key := strings.TrimSpace(strings.ToLower(kind))
	if key == "" {
		key = "unknown"
	}
	generationFailures.Add(key, 1)
}

// RecordEnrichment counts one website enrichment attempt.
func RecordEnrichment(ok bool) {
	ensureInit()
	enrichmentTotal.Add(1)
	if !ok {
		enrichmentFailures.Add(1)
	}
}

// SpanDuration reports elapsed time for the span carried by ctx, if any.
func SpanDuration(ctx context.Context) time.Duration {
	sp, _ := ctx.Value(spanKey{}).(*span)
	if sp == nil {
		return 0
	}
	return time.Since(sp.start)
}
