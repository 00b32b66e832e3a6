package main

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/RoGogDBD/metric-pusher/internal/collector"
	"github.com/RoGogDBD/metric-pusher/internal/config"
	models "github.com/RoGogDBD/metric-pusher/internal/model"
	"github.com/RoGogDBD/metric-pusher/pkg/pool"
)

// reportMetric — имя гистограммы длительности отправки отчёта.
const reportMetric = "agent_report_duration_seconds"

// reportDurationBounds — границы бакетов гистограммы длительности отчёта.
var reportDurationBounds = []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// Sender определяет клиентскую поверхность remote write, нужную агенту.
type Sender interface {
	GaugeSet(ctx context.Context, name string, value float64, labels map[string]string, ts int64) error
	CounterInc(ctx context.Context, name string, delta float64, labels map[string]string, ts int64) error
	HistogramQueue(base string, value float64, labels map[string]string, ts int64)
	HistogramFlush(ctx context.Context, base string, labels map[string]string, bounds []float64) error
}

// AgentState хранит состояние агента между опросами и отчётами.
type AgentState struct {
	PollInterval   int
	ReportInterval int
	Collectors     []collector.Collector
	Sender         Sender
	Labels         map[string]string
	Logger         *zap.Logger

	batches *pool.Pool[*models.Batch]

	mu       sync.Mutex
	gauges   map[string]float64
	counters map[string]float64
}

// NewAgentState создаёт состояние агента с переданными коллекторами.
func NewAgentState(poll, report int, collectors []collector.Collector, labels map[string]string, logger *zap.Logger) *AgentState {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AgentState{
		PollInterval:   poll,
		ReportInterval: report,
		Collectors:     collectors,
		Labels:         labels,
		Logger:         logger,
		batches: pool.New(func() *models.Batch {
			return &models.Batch{Metrics: make([]models.Metric, 0, 64)}
		}),
		gauges:   make(map[string]float64),
		counters: make(map[string]float64),
	}
}

// collectMetrics опрашивает коллекторы и сливает результат в состояние:
// датчики перезаписываются последним значением, приращения счётчиков
// накапливаются до следующего отчёта.
func collectMetrics(state *AgentState) {
	batch := state.batches.Get()
	defer state.batches.Put(batch)

	for _, c := range state.Collectors {
		metrics, err := c.Collect()
		if err != nil {
			state.Logger.Warn("collector failed",
				zap.String("collector", c.Name()),
				zap.Error(err),
			)
			continue
		}
		batch.Metrics = append(batch.Metrics, metrics...)
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	for _, m := range batch.Metrics {
		switch m.Type {
		case models.Counter:
			state.counters[m.Name] += m.Value
		default:
			state.gauges[m.Name] = m.Value
		}
	}
}

// sendMetrics отправляет накопленное состояние через клиент remote write.
//
// Датчики отправляются с ретраями: повторная установка того же значения
// безопасна. Приращения счётчиков отправляются без ретраев — CounterInc
// мутирует состояние клиента до отправки, и повтор удвоил бы приращение.
// Длительность отчёта записывается в гистограмму и флашится тем же вызовом.
func sendMetrics(ctx context.Context, state *AgentState) {
	state.mu.Lock()
	gauges := make(map[string]float64, len(state.gauges))
	for k, v := range state.gauges {
		gauges[k] = v
	}
	counters := state.counters
	state.counters = make(map[string]float64)
	state.mu.Unlock()

	if len(gauges) == 0 && len(counters) == 0 {
		return
	}

	start := time.Now()

	err := config.RetryWithBackoff(ctx, func() error {
		for name, value := range gauges {
			if err := state.Sender.GaugeSet(ctx, name, value, state.Labels, 0); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		state.Logger.Error("failed to report gauges", zap.Error(err))
	}

	for name, delta := range counters {
		if err := state.Sender.CounterInc(ctx, name, delta, state.Labels, 0); err != nil {
			state.Logger.Error("failed to report counter",
				zap.String("metric", name),
				zap.Error(err),
			)
		}
	}

	state.Sender.HistogramQueue(reportMetric, time.Since(start).Seconds(), state.Labels, 0)
	if err := state.Sender.HistogramFlush(ctx, reportMetric, state.Labels, reportDurationBounds); err != nil {
		state.Logger.Error("failed to flush report histogram", zap.Error(err))
	}
}
