package remotewrite

import (
	"strings"
	"sync"
)

// counterSuffix — суффикс, добавляемый к именам counter-метрик
// по соглашению Prometheus.
const counterSuffix = "_total"

// counterStore хранит накопленные значения счётчиков на время жизни клиента.
//
// Ключ — канонический ключ серии (seriesKey), значение — накопленная
// сумма всех приращений. Доступ защищён мьютексом: цикл
// "найти-или-создать, изменить, вернуть" атомарен для одного ключа.
type counterStore struct {
	values map[string]float64
	mu     sync.Mutex
}

func newCounterStore() *counterStore {
	return &counterStore{values: make(map[string]float64)}
}

// increment увеличивает значение счётчика по ключу на delta и возвращает
// накопленное значение после приращения.
//
// Отрицательная delta допускается и просто уменьшает значение:
// уход счётчика назад — ошибка вызывающего кода, хранилище её не
// контролирует.
func (s *counterStore) increment(key string, delta float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] += delta
	return s.values[key]
}

// ensureTotalSuffix добавляет к имени метрики суффикс _total, если его ещё нет.
//
// Преобразование идемпотентно: повторное применение не удваивает суффикс.
func ensureTotalSuffix(name string) string {
	if strings.HasSuffix(name, counterSuffix) {
		return name
	}
	return name + counterSuffix
}
