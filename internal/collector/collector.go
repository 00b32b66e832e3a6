// Package collector содержит источники метрик агента.
package collector

import models "github.com/RoGogDBD/metric-pusher/internal/model"

// Collector определяет источник метрик, опрашиваемый агентом.
type Collector interface {
	// Name возвращает имя коллектора для логирования.
	Name() string
	// Collect возвращает метрики одного опроса.
	Collect() ([]models.Metric, error)
}
