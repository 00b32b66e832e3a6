package collector

import (
	"math/rand"
	"runtime"
	"time"

	models "github.com/RoGogDBD/metric-pusher/internal/model"
)

// RuntimeCollector собирает метрики рантайма Go из runtime.MemStats.
//
// Дополнительно отдаёт счётчик PollCount (одно приращение за опрос)
// и gauge RandomValue.
type RuntimeCollector struct {
	rng *rand.Rand
}

func NewRuntimeCollector() *RuntimeCollector {
	return &RuntimeCollector{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *RuntimeCollector) Name() string { return "runtime" }

func (c *RuntimeCollector) Collect() ([]models.Metric, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	gauges := map[string]float64{
		"Alloc":         float64(m.Alloc),
		"BuckHashSys":   float64(m.BuckHashSys),
		"Frees":         float64(m.Frees),
		"GCCPUFraction": m.GCCPUFraction,
		"GCSys":         float64(m.GCSys),
		"HeapAlloc":     float64(m.HeapAlloc),
		"HeapIdle":      float64(m.HeapIdle),
		"HeapInuse":     float64(m.HeapInuse),
		"HeapObjects":   float64(m.HeapObjects),
		"HeapReleased":  float64(m.HeapReleased),
		"HeapSys":       float64(m.HeapSys),
		"LastGC":        float64(m.LastGC),
		"Lookups":       float64(m.Lookups),
		"MCacheInuse":   float64(m.MCacheInuse),
		"MCacheSys":     float64(m.MCacheSys),
		"MSpanInuse":    float64(m.MSpanInuse),
		"MSpanSys":      float64(m.MSpanSys),
		"Mallocs":       float64(m.Mallocs),
		"NextGC":        float64(m.NextGC),
		"NumForcedGC":   float64(m.NumForcedGC),
		"NumGC":         float64(m.NumGC),
		"OtherSys":      float64(m.OtherSys),
		"PauseTotalNs":  float64(m.PauseTotalNs),
		"StackInuse":    float64(m.StackInuse),
		"StackSys":      float64(m.StackSys),
		"Sys":           float64(m.Sys),
		"TotalAlloc":    float64(m.TotalAlloc),
		"RandomValue":   c.rng.Float64() * 100,
	}

	metrics := make([]models.Metric, 0, len(gauges)+1)
	for name, value := range gauges {
		metrics = append(metrics, models.Metric{
			Name:  name,
			Type:  models.Gauge,
			Value: value,
		})
	}
	metrics = append(metrics, models.Metric{
		Name:  "PollCount",
		Type:  models.Counter,
		Value: 1,
	})
	return metrics, nil
}
