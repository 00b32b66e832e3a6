package remotewrite

import "time"

// millisThreshold — порог различения секунд и миллисекунд.
//
// Значения ниже 10^12 трактуются как секунды с начала эпохи:
// как миллисекунды они означали бы дату до сентября 2001 года,
// как секунды покрывают даты вплоть до ~5138 года.
const millisThreshold = int64(1_000_000_000_000)

// NormalizeTimestamp приводит метку времени неизвестной единицы к миллисекундам.
//
// Контракт (а не скрытая эвристика): значение 0 означает "не задано" и
// заменяется текущим временем в миллисекундах; значение меньше 10^12
// считается секундами и умножается на 1000; остальные значения
// считаются уже миллисекундами и возвращаются без изменений.
//
// Вызывающий код, работающий с большими историческими метками, должен
// передавать миллисекунды явно.
func NormalizeTimestamp(ts int64) int64 {
	if ts == 0 {
		return time.Now().UnixMilli()
	}
	if ts < millisThreshold {
		return ts * 1000
	}
	return ts
}
