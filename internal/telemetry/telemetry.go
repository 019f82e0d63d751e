// Package telemetry records tool-call metrics with OpenTelemetry.
package telemetry

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

const (
	meterName = "github.com/mwiater/langchain-mcp"

	// CallsMetric counts tool calls by tool and outcome.
	CallsMetric = "langchain_mcp.tool.calls"
	// OutputMetric records the size of generated output in bytes.
	OutputMetric = "langchain_mcp.tool.output_bytes"

	// OutcomeOK marks a successful call.
	OutcomeOK = "ok"
)

// Recorder holds the instruments used by the dispatcher.
type Recorder struct {
	calls  metric.Int64Counter
	output metric.Int64Histogram
}

// NewRecorder creates instruments on the given meter provider. A nil
// provider uses the global one, which is a no-op until configured.
func NewRecorder(mp metric.MeterProvider) (*Recorder, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName)
	calls, err := meter.Int64Counter(CallsMetric,
		metric.WithDescription("Tool calls handled by the dispatcher"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", CallsMetric, err)
	}
	output, err := meter.Int64Histogram(OutputMetric,
		metric.WithDescription("Size of generated code"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", OutputMetric, err)
	}
	return &Recorder{calls: calls, output: output}, nil
}

// RecordCall counts one call. outcome is OutcomeOK or an error kind.
func (r *Recorder) RecordCall(ctx context.Context, tool, outcome string, outputBytes int) {
	if r == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("tool", tool),
		attribute.String("outcome", outcome),
	)
	r.calls.Add(ctx, 1, attrs)
	if outcome == OutcomeOK {
		r.output.Record(ctx, int64(outputBytes), metric.WithAttributes(attribute.String("tool", tool)))
	}
}

// Collector is an in-process meter provider whose readings can be
// summarised, used when metrics are enabled without an exporter.
type Collector struct {
	reader   *sdkmetric.ManualReader
	provider *sdkmetric.MeterProvider
}

// NewCollector builds a meter provider backed by a manual reader.
func NewCollector() *Collector {
	reader := sdkmetric.NewManualReader()
	return &Collector{
		reader:   reader,
		provider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)),
	}
}

// MeterProvider exposes the provider for NewRecorder.
func (c *Collector) MeterProvider() metric.MeterProvider { return c.provider }

// CallCounts returns the call counter keyed by "tool/outcome".
func (c *Collector) CallCounts(ctx context.Context) (map[string]int64, error) {
	var rm metricdata.ResourceMetrics
	if err := c.reader.Collect(ctx, &rm); err != nil {
		return nil, err
	}
	counts := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != CallsMetric {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				tool, _ := dp.Attributes.Value("tool")
				outcome, _ := dp.Attributes.Value("outcome")
				counts[tool.AsString()+"/"+outcome.AsString()] += dp.Value
			}
		}
	}
	return counts, nil
}

// Summary renders CallCounts as a single sorted line.
func (c *Collector) Summary(ctx context.Context) (string, error) {
	counts, err := c.CallCounts(ctx)
	if err != nil {
		return "", err
	}
	if len(counts) == 0 {
		return "no tool calls", nil
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, " "), nil
}

// Shutdown flushes and stops the provider.
func (c *Collector) Shutdown(ctx context.Context) error {
	return c.provider.Shutdown(ctx)
}
