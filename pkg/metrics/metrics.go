package metrics

import (
	"path/filepath"
	"time"

	"github.com/nakabonne/tstorage"
)

const (
	MetricCheckouts     = "kasse_checkouts"
	MetricRevenueCents  = "kasse_revenue_cents"
	MetricChangeCents   = "kasse_change_cents"
	MetricTenderEntries = "kasse_tender_entries"
)

var storage tstorage.Storage

// InitMetrics opens the local time-series store under the workdir.
func InitMetrics(workdir string) error {
	s, err := tstorage.NewStorage(
		tstorage.WithDataPath(filepath.Join(workdir, "metrics")),
		tstorage.WithTimestampPrecision(tstorage.Seconds),
		tstorage.WithPartitionDuration(24*time.Hour),
	)
	if err != nil {
		return err
	}
	storage = s
	return nil
}

// RecordCheckout stores one sample per completed sale.
func RecordCheckout(totalCents, changeCents int64, tenderEntries int) {
	if storage == nil {
		return
	}
	ts := time.Now().Unix()
	_ = storage.InsertRows([]tstorage.Row{
		{Metric: MetricCheckouts, DataPoint: tstorage.DataPoint{Timestamp: ts, Value: 1}},
		{Metric: MetricRevenueCents, DataPoint: tstorage.DataPoint{Timestamp: ts, Value: float64(totalCents)}},
		{Metric: MetricChangeCents, DataPoint: tstorage.DataPoint{Timestamp: ts, Value: float64(changeCents)}},
		{Metric: MetricTenderEntries, DataPoint: tstorage.DataPoint{Timestamp: ts, Value: float64(tenderEntries)}},
	})
}

// Select returns the raw data points of a metric between start and end.
func Select(metric string, start, end int64) ([]*tstorage.DataPoint, error) {
	if storage == nil {
		return nil, nil
	}
	points, err := storage.Select(metric, nil, start, end)
	if err == tstorage.ErrNoDataPoints {
		return nil, nil
	}
	return points, err
}

func Close() error {
	if storage == nil {
		return nil
	}
	err := storage.Close()
	storage = nil
	return err
}
