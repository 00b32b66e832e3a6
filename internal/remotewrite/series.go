package remotewrite

import (
	"sort"
	"strings"

	"github.com/prometheus/prometheus/prompb"
)

// metricNameLabel — зарезервированное имя лейбла, хранящее имя метрики.
const metricNameLabel = "__name__"

// keySeparator — разделитель частей канонического ключа.
//
// Байт 0xFF не встречается в валидных UTF-8 строках, поэтому ключи
// разных наборов лейблов не могут совпасть.
const keySeparator = "\xff"

// buildSeries собирает TimeSeries из имени метрики, лейблов и готовых сэмплов.
//
// Лейбл __name__ всегда идёт первым, остальные лейблы — в отсортированном
// по имени порядке, чтобы сериализация была детерминированной.
// Если вызывающий код передал __name__ в labels, он игнорируется:
// явный аргумент name имеет приоритет.
func buildSeries(name string, labels map[string]string, samples []prompb.Sample) prompb.TimeSeries {
	ls := make([]prompb.Label, 0, len(labels)+1)
	ls = append(ls, prompb.Label{Name: metricNameLabel, Value: name})

	for _, k := range sortedLabelNames(labels) {
		ls = append(ls, prompb.Label{Name: k, Value: labels[k]})
	}

	return prompb.TimeSeries{
		Labels:  ls,
		Samples: samples,
	}
}

// buildTimeSeries собирает TimeSeries с единственным сэмплом.
//
// name     — имя метрики (попадает в лейбл __name__).
// value    — значение сэмпла.
// labels   — дополнительные лейблы (может быть nil).
// tsMillis — метка времени сэмпла в миллисекундах.
func buildTimeSeries(name string, value float64, labels map[string]string, tsMillis int64) prompb.TimeSeries {
	return buildSeries(name, labels, []prompb.Sample{{
		Value:     value,
		Timestamp: tsMillis,
	}})
}

// seriesKey возвращает канонический ключ для (имя метрики, набор лейблов).
//
// Лейблы сортируются по имени, поэтому ключ не зависит от порядка
// в исходной map. Используется как ключ состояния счётчиков и
// буферов гистограмм.
func seriesKey(name string, labels map[string]string) string {
	var b strings.Builder
	b.WriteString(name)
	for _, k := range sortedLabelNames(labels) {
		b.WriteString(keySeparator)
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(labels[k])
	}
	return b.String()
}

func sortedLabelNames(labels map[string]string) []string {
	names := make([]string, 0, len(labels))
	for k := range labels {
		if k == metricNameLabel {
			continue
		}
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
