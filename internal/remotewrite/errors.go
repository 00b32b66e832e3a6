package remotewrite

import (
	"errors"
	"fmt"
)

// ErrInvalidBounds — сентинельная ошибка для некорректных границ бакетов гистограммы.
//
// Используется через errors.Is для проверки ошибок флаша.
var ErrInvalidBounds = errors.New("histogram bounds must be non-empty and strictly ascending")

// InvalidBoundsError описывает ошибку валидации границ бакетов.
//
// Возвращается из HistogramFlush до того, как буфер наблюдений будет затронут:
// при этой ошибке буфер остаётся нетронутым, флаш можно повторить.
type InvalidBoundsError struct {
	Bounds []float64 // Переданные границы
}

func (e *InvalidBoundsError) Error() string {
	return fmt.Sprintf("invalid histogram bounds %v: %v", e.Bounds, ErrInvalidBounds)
}

func (e *InvalidBoundsError) Unwrap() error {
	return ErrInvalidBounds
}

// TransportError описывает сбой доставки полезной нагрузки.
//
// StatusCode равен нулю при сетевой ошибке (ответ не получен),
// иначе содержит не-2xx код ответа.
type TransportError struct {
	StatusCode int   // HTTP-код ответа (0 — сетевая ошибка)
	Err        error // Исходная ошибка (может быть nil)
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("remote write transport failed: %v", e.Err)
	}
	return fmt.Sprintf("remote write rejected with status %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// EncodingError описывает сбой сериализации или сжатия полезной нагрузки.
//
// Stage — этап, на котором произошла ошибка ("marshal" или "compress").
type EncodingError struct {
	Stage string
	Err   error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("failed to encode write request at %s: %v", e.Stage, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}
