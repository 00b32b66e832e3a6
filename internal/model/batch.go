package models

// Batch — переиспользуемая партия метрик одного цикла опроса агента.
//
// Тип рассчитан на pkg/pool: Reset сбрасывает состояние, сохраняя
// ёмкость среза Metrics.
type Batch struct {
	Metrics   []Metric
	PollCount int64
}

// Reset сбрасывает партию к начальному состоянию.
//
// Срез Metrics усекается без освобождения ёмкости. Безопасен для nil.
func (b *Batch) Reset() {
	if b == nil {
		return
	}
	b.Metrics = b.Metrics[:0]
	b.PollCount = 0
}
