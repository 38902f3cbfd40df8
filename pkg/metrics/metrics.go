package metrics

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/nakabonne/tstorage"
)

var (
	mu       sync.Mutex
	storage  tstorage.Storage
	counters = map[string]int64{}
)

// InitMetrics opens the time-series store under workdir/data/metrics.
// An empty workdir keeps the store in memory (tests).
func InitMetrics(workdir string) error {
	opts := []tstorage.Option{
		tstorage.WithTimestampPrecision(tstorage.Seconds),
		tstorage.WithPartitionDuration(time.Hour),
	}
	if workdir != "" {
		opts = append(opts, tstorage.WithDataPath(filepath.Join(workdir, "data", "metrics")))
	}
	s, err := tstorage.NewStorage(opts...)
	if err != nil {
		return err
	}
	mu.Lock()
	storage = s
	mu.Unlock()
	return nil
}

func insert(name string, value float64) {
	mu.Lock()
	s := storage
	mu.Unlock()
	if s == nil {
		return
	}
	_ = s.InsertRows([]tstorage.Row{{
		Metric: name,
		DataPoint: tstorage.DataPoint{
			Timestamp: time.Now().Unix(),
			Value:     value,
		},
	}})
}

// SetGauge records an instantaneous value
func SetGauge(name string, value int64) {
	insert(name, float64(value))
}

// Incr bumps a monotonic counter and records the running total
func Incr(name string) {
	mu.Lock()
	counters[name]++
	v := counters[name]
	mu.Unlock()
	insert(name, float64(v))
}

// Latest returns the most recent datapoint for a metric within the past
// hour, or false when none exists.
func Latest(name string) (float64, bool) {
	mu.Lock()
	s := storage
	mu.Unlock()
	if s == nil {
		return 0, false
	}
	now := time.Now().Unix()
	points, err := s.Select(name, nil, now-3600, now+1)
	if err != nil || len(points) == 0 {
		return 0, false
	}
	return points[len(points)-1].Value, true
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return nil
	}
	err := storage.Close()
	storage = nil
	return err
}
