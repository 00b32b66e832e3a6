package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/prometheus/prometheus/prompb"
)

// metricNameLabel — зарезервированный лейбл с именем метрики.
const metricNameLabel = "__name__"

// Storage определяет интерфейс хранилища принятых временных рядов.
//
// Позволяет дописывать сэмплы принятых WriteRequest и получать сводку
// по всем накопленным сериям.
type Storage interface {
	// AppendSeries дописывает сэмплы всех переданных серий.
	AppendSeries(ctx context.Context, series []prompb.TimeSeries) error
	// GetAll возвращает сводку по всем сериям в виде SeriesInfo.
	GetAll(ctx context.Context) ([]SeriesInfo, error)
}

// SeriesInfo содержит сводную информацию о серии для вывода.
//
// Metric — имя метрики (лейбл __name__).
// Labels — остальные лейблы в виде строки "k=v,k=v".
// Samples — число накопленных сэмплов.
// LastValue — значение последнего сэмпла.
// LastTimestamp — метка времени последнего сэмпла в миллисекундах.
type SeriesInfo struct {
	Metric        string
	Labels        string
	Samples       int
	LastValue     float64
	LastTimestamp int64
}

// memSeries — одна серия в памяти: лейблы и накопленные сэмплы.
type memSeries struct {
	labels  []prompb.Label
	samples []prompb.Sample
}

// MemStorage реализует интерфейс Storage на основе памяти.
//
// Использует map, ключованную каноническим представлением набора
// лейблов, защищённую мьютексом.
type MemStorage struct {
	series map[string]*memSeries
	mu     sync.RWMutex
}

// NewMemStorage создаёт и возвращает новый экземпляр MemStorage.
func NewMemStorage() *MemStorage {
	return &MemStorage{series: make(map[string]*memSeries)}
}

// AppendSeries дописывает сэмплы всех переданных серий.
func (s *MemStorage) AppendSeries(_ context.Context, series []prompb.TimeSeries) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ts := range series {
		key := labelsKey(ts.Labels)
		stored, ok := s.series[key]
		if !ok {
			stored = &memSeries{labels: append([]prompb.Label(nil), ts.Labels...)}
			s.series[key] = stored
		}
		stored.samples = append(stored.samples, ts.Samples...)
	}
	return nil
}

// GetAll возвращает сводку по всем сериям.
func (s *MemStorage) GetAll(_ context.Context) ([]SeriesInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]SeriesInfo, 0, len(s.series))
	for _, stored := range s.series {
		info := SeriesInfo{
			Metric:  metricName(stored.labels),
			Labels:  plainLabels(stored.labels),
			Samples: len(stored.samples),
		}
		if n := len(stored.samples); n > 0 {
			info.LastValue = stored.samples[n-1].Value
			info.LastTimestamp = stored.samples[n-1].Timestamp
		}
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Metric != result[j].Metric {
			return result[i].Metric < result[j].Metric
		}
		return result[i].Labels < result[j].Labels
	})
	return result, nil
}

// labelsKey возвращает канонический ключ набора лейблов.
//
// Лейблы сортируются по имени, поэтому ключ не зависит от порядка в
// сериализованном виде.
func labelsKey(labels []prompb.Label) string {
	sorted := append([]prompb.Label(nil), labels...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var b strings.Builder
	for _, l := range sorted {
		b.WriteString(l.Name)
		b.WriteString("\xff")
		b.WriteString(l.Value)
		b.WriteString("\xff")
	}
	return b.String()
}

// metricName извлекает значение лейбла __name__.
func metricName(labels []prompb.Label) string {
	for _, l := range labels {
		if l.Name == metricNameLabel {
			return l.Value
		}
	}
	return ""
}

// plainLabels возвращает лейблы без __name__ в виде "k=v,k=v" в
// отсортированном порядке.
func plainLabels(labels []prompb.Label) string {
	pairs := make([]string, 0, len(labels))
	for _, l := range labels {
		if l.Name == metricNameLabel {
			continue
		}
		pairs = append(pairs, l.Name+"="+l.Value)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}
