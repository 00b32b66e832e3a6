package remotewrite

import (
	"strconv"
	"sync"

	"github.com/prometheus/prometheus/prompb"
)

// bucketLabel — имя лейбла верхней границы бакета.
const bucketLabel = "le"

// infBucket — значение лейбла le для бакета-переполнения.
const infBucket = "+Inf"

// observation — одно наблюдение гистограммы: метка времени в миллисекундах
// и наблюдённое значение.
type observation struct {
	timestamp int64
	value     float64
}

// histogramStore хранит буферы наблюдений гистограмм между queue и flush.
//
// Ключ — канонический ключ серии (seriesKey) по базовому имени метрики.
// Буфер создаётся при первом наблюдении, растёт без ограничения
// (контракт исходной семантики) и целиком потребляется флашем.
type histogramStore struct {
	buffers map[string][]observation
	mu      sync.Mutex
}

func newHistogramStore() *histogramStore {
	return &histogramStore{buffers: make(map[string][]observation)}
}

// queue добавляет наблюдение в буфер по ключу, создавая буфер при необходимости.
//
// Порядок вставки сохраняется: при невозрастающих метках времени
// наблюдения не пересортировываются.
func (s *histogramStore) queue(key string, obs observation) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffers[key] = append(s.buffers[key], obs)
	return len(s.buffers[key])
}

// take атомарно забирает и очищает буфер по ключу.
//
// Для отсутствующего ключа возвращает nil: флаш по такому ключу — no-op.
func (s *histogramStore) take(key string) []observation {
	s.mu.Lock()
	defer s.mu.Unlock()
	obs := s.buffers[key]
	delete(s.buffers, key)
	return obs
}

// validateBounds проверяет, что границы бакетов непусты и строго возрастают.
//
// Вызывается до потребления буфера: при ошибке буфер остаётся нетронутым.
func validateBounds(bounds []float64) error {
	if len(bounds) == 0 {
		return &InvalidBoundsError{Bounds: bounds}
	}
	for i := 1; i < len(bounds); i++ {
		if bounds[i] <= bounds[i-1] {
			return &InvalidBoundsError{Bounds: bounds}
		}
	}
	return nil
}

// cumulate превращает некумулятивный вектор населённости бакетов в кумулятивный.
//
// nonCum имеет длину n+1: n конечных бакетов плюс слот переполнения.
// Результат: для j < n — префиксная сумма первых n слотов (число наблюдений
// со значением <= bounds[j]); последний элемент — сумма всего вектора,
// что по семантике Prometheus равно бакету +Inf.
func cumulate(nonCum []float64, n int) []float64 {
	out := make([]float64, 0, n+1)
	var running float64
	for j := 0; j < n; j++ {
		running += nonCum[j]
		out = append(out, running)
	}
	return append(out, running+nonCum[n])
}

// buildHistogramSeries разворачивает буфер наблюдений в серии кумулятивной
// гистограммы: n конечных бакетов, бакет +Inf, _sum и _count.
//
// Для каждого наблюдения i строится снимок кумулятивного вектора по
// наблюдениям 1..i; снимок становится i-м сэмплом каждой серии с меткой
// времени этого наблюдения. Итого len(bounds)+3 серий по len(obs) сэмплов.
func buildHistogramSeries(base string, labels map[string]string, bounds []float64, obs []observation) []prompb.TimeSeries {
	n := len(bounds)
	k := len(obs)

	bucketSamples := make([][]prompb.Sample, n+1)
	for j := range bucketSamples {
		bucketSamples[j] = make([]prompb.Sample, 0, k)
	}
	sumSamples := make([]prompb.Sample, 0, k)
	countSamples := make([]prompb.Sample, 0, k)

	nonCum := make([]float64, n+1)
	var runningSum float64

	for i, o := range obs {
		slot := n
		for j, bound := range bounds {
			if o.value <= bound {
				slot = j
				break
			}
		}
		nonCum[slot]++

		cum := cumulate(nonCum, n)
		for j := 0; j <= n; j++ {
			bucketSamples[j] = append(bucketSamples[j], prompb.Sample{
				Value:     cum[j],
				Timestamp: o.timestamp,
			})
		}

		runningSum += o.value
		sumSamples = append(sumSamples, prompb.Sample{Value: runningSum, Timestamp: o.timestamp})
		countSamples = append(countSamples, prompb.Sample{Value: float64(i + 1), Timestamp: o.timestamp})
	}

	series := make([]prompb.TimeSeries, 0, n+3)
	for j, bound := range bounds {
		series = append(series, buildSeries(base+"_bucket", withBucketLabel(labels, formatBound(bound)), bucketSamples[j]))
	}
	series = append(series, buildSeries(base+"_bucket", withBucketLabel(labels, infBucket), bucketSamples[n]))
	series = append(series, buildSeries(base+"_sum", labels, sumSamples))
	series = append(series, buildSeries(base+"_count", labels, countSamples))
	return series
}

// formatBound форматирует верхнюю границу бакета для лейбла le.
//
// Целые границы отображаются без дробной части: 1 -> "1", 0.5 -> "0.5".
func formatBound(bound float64) string {
	return strconv.FormatFloat(bound, 'f', -1, 64)
}

// withBucketLabel возвращает копию labels с установленным лейблом le.
//
// Исходная map вызывающего кода не изменяется.
func withBucketLabel(labels map[string]string, le string) map[string]string {
	out := make(map[string]string, len(labels)+1)
	for k, v := range labels {
		out[k] = v
	}
	out[bucketLabel] = le
	return out
}
