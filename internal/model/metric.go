package models

// Gauge — константа, обозначающая тип метрики "датчик".
// Датчики устанавливаются в указанное значение.
const Gauge = "gauge"

// Counter — константа, обозначающая тип метрики "счётчик".
// Счётчики увеличиваются на указанное приращение.
const Counter = "counter"

// Histogram — константа, обозначающая тип метрики "гистограмма".
// Наблюдения гистограмм буферизуются и отправляются кумулятивными бакетами.
const Histogram = "histogram"

// Metric представляет одно прикладное наблюдение до перевода в wire-формат.
//
// Поля:
//   - Name: имя метрики (без суффиксов wire-формата)
//   - Type: тип метрики (Gauge, Counter или Histogram)
//   - Value: значение для датчика, приращение для счётчика,
//     наблюдение для гистограммы
//   - Labels: дополнительные лейблы метрики (может быть nil)
//   - Timestamp: метка времени в миллисекундах; 0 — "сейчас"
type Metric struct {
	Name      string
	Type      string
	Value     float64
	Labels    map[string]string
	Timestamp int64
}
