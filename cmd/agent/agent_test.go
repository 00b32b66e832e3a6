package main

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/RoGogDBD/metric-pusher/internal/collector"
	models "github.com/RoGogDBD/metric-pusher/internal/model"
)

type fakeCollector struct {
	metrics []models.Metric
}

func (f *fakeCollector) Name() string { return "fake" }

func (f *fakeCollector) Collect() ([]models.Metric, error) {
	return f.metrics, nil
}

type fakeSender struct {
	mu       sync.Mutex
	gauges   map[string]float64
	counters map[string]float64
	queued   []float64
	flushes  int
}

func newFakeSender() *fakeSender {
	return &fakeSender{
		gauges:   make(map[string]float64),
		counters: make(map[string]float64),
	}
}

func (f *fakeSender) GaugeSet(_ context.Context, name string, value float64, _ map[string]string, _ int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gauges[name] = value
	return nil
}

func (f *fakeSender) CounterInc(_ context.Context, name string, delta float64, _ map[string]string, _ int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counters[name] += delta
	return nil
}

func (f *fakeSender) HistogramQueue(_ string, value float64, _ map[string]string, _ int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queued = append(f.queued, value)
}

func (f *fakeSender) HistogramFlush(_ context.Context, _ string, _ map[string]string, _ []float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flushes++
	return nil
}

func TestCollectAndSendMetrics(t *testing.T) {
	fc := &fakeCollector{metrics: []models.Metric{
		{Name: "Alloc", Type: models.Gauge, Value: 100},
		{Name: "PollCount", Type: models.Counter, Value: 1},
	}}

	state := NewAgentState(2, 10, []collector.Collector{fc}, nil, zap.NewNop())
	sender := newFakeSender()
	state.Sender = sender

	// Три опроса: датчик перезаписывается, счётчик накапливает приращения.
	fc.metrics[0].Value = 100
	collectMetrics(state)
	fc.metrics[0].Value = 200
	collectMetrics(state)
	fc.metrics[0].Value = 300
	collectMetrics(state)

	sendMetrics(context.Background(), state)

	require.Equal(t, 300.0, sender.gauges["Alloc"])
	require.Equal(t, 3.0, sender.counters["PollCount"])

	// Длительность отчёта попала в гистограмму и была зафлашена.
	require.Len(t, sender.queued, 1)
	require.Equal(t, 1, sender.flushes)
}

func TestSendMetricsResetsCounterDeltas(t *testing.T) {
	fc := &fakeCollector{metrics: []models.Metric{
		{Name: "PollCount", Type: models.Counter, Value: 1},
	}}

	state := NewAgentState(2, 10, []collector.Collector{fc}, nil, zap.NewNop())
	sender := newFakeSender()
	state.Sender = sender

	collectMetrics(state)
	sendMetrics(context.Background(), state)

	collectMetrics(state)
	sendMetrics(context.Background(), state)

	// Приращения отправляются дельтами, накопление делает клиент.
	require.Equal(t, 2.0, sender.counters["PollCount"])
}

func TestSendMetricsEmptyStateIsNoop(t *testing.T) {
	state := NewAgentState(2, 10, nil, nil, zap.NewNop())
	sender := newFakeSender()
	state.Sender = sender

	sendMetrics(context.Background(), state)

	require.Empty(t, sender.gauges)
	require.Empty(t, sender.counters)
	require.Zero(t, sender.flushes)
}
