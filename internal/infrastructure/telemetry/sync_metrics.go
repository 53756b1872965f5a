package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/erp/sellerops/internal/domain/integration"
)

const syncMeterName = "github.com/erp/sellerops/sync"

// SyncMetrics turns per-store sync results into OTEL instruments
type SyncMetrics struct {
	runs       *Counter
	saved      *Counter
	updated    *Counter
	skipped    *Counter
	errors     *Counter
	pages      *Counter
	duration   *Histogram
	lastOrders *Gauge
}

// NewSyncMetrics registers the sync instruments on meter
func NewSyncMetrics(meter metric.Meter) (*SyncMetrics, error) {
	var (
		m   SyncMetrics
		err error
	)
	counters := []struct {
		target      **Counter
		name        string
		description string
	}{
		{&m.runs, "sellerops_sync_runs_total", "Store sync runs by outcome"},
		{&m.saved, "sellerops_sync_orders_saved_total", "Orders inserted by store sync"},
		{&m.updated, "sellerops_sync_orders_updated_total", "Orders updated by store sync"},
		{&m.skipped, "sellerops_sync_orders_skipped_total", "Orders skipped for unknown products"},
		{&m.errors, "sellerops_sync_errors_total", "Page and order failures during store sync"},
		{&m.pages, "sellerops_sync_pages_total", "Marketplace order pages fetched"},
	}
	for _, c := range counters {
		if *c.target, err = NewCounter(meter, c.name, c.description, "1"); err != nil {
			return nil, err
		}
	}

	m.duration, err = NewHistogram(meter, HistogramOpts{
		Name:        "sellerops_sync_duration_seconds",
		Description: "Wall time of one store sync",
		Unit:        "s",
		Boundaries:  SyncDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	m.lastOrders, err = NewGauge(meter, "sellerops_sync_last_orders", "Orders saved plus updated in the latest store sync", "1")
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// NewSyncMetricsFromProvider registers the sync instruments on mp
func NewSyncMetricsFromProvider(mp *MeterProvider) (*SyncMetrics, error) {
	return NewSyncMetrics(mp.Meter(syncMeterName))
}

// RecordStoreSync records one finished store run
func (m *SyncMetrics) RecordStoreSync(ctx context.Context, result *integration.SyncResult) {
	if result == nil {
		return
	}
	attrs := []attribute.KeyValue{
		AttrStoreID.String(result.StoreID.String()),
		AttrStoreName.String(result.StoreName),
	}

	outcome := "ok"
	if result.Errors > 0 {
		outcome = "partial"
	}
	m.runs.Inc(ctx, append(attrs, AttrOutcome.String(outcome))...)
	m.saved.Add(ctx, int64(result.Saved), attrs...)
	m.updated.Add(ctx, int64(result.Updated), attrs...)
	m.skipped.Add(ctx, int64(result.Skipped), attrs...)
	m.errors.Add(ctx, int64(result.Errors), attrs...)
	m.pages.Add(ctx, int64(result.PagesFetched), attrs...)
	m.lastOrders.Record(ctx, int64(result.Saved+result.Updated), attrs...)

	if !result.FinishedAt.IsZero() && result.FinishedAt.After(result.StartedAt) {
		m.duration.RecordDuration(ctx, result.FinishedAt.Sub(result.StartedAt), attrs...)
	}
}
