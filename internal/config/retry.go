package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/RoGogDBD/metric-pusher/internal/remotewrite"
)

// retryIntervals определяет интервалы ожидания между попытками повторения операции.
var retryIntervals = []time.Duration{1 * time.Second, 3 * time.Second, 5 * time.Second}

// RetryWithBackoff выполняет функцию op с повторными попытками и нарастающей задержкой.
//
// Если функция op возвращает ошибку, которая считается временной (retriable),
// происходит повторная попытка выполнения с увеличивающимся интервалом ожидания.
// Если все попытки исчерпаны или контекст завершён, возвращается последняя ошибка.
//
// Ядро клиента remote write повторов не делает; этим помощником пользуется
// внешний слой (агент, инициализация БД приёмника).
//
// ctx — контекст для управления временем жизни попыток.
// op  — функция, которую требуется выполнить с повторными попытками.
//
// Возвращает nil при успехе или ошибку, если операция не удалась после всех попыток.
func RetryWithBackoff(ctx context.Context, op func() error) error {
	var lastErr error
	for i, wait := range retryIntervals {
		if err := op(); err != nil {
			if isRetriableError(err) {
				lastErr = err
				log.Printf("Retriable error: %v (attempt %d/%d). Retrying in %v...", err, i+1, len(retryIntervals), wait)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(wait):
					continue
				}
			}
			return err
		}
		return nil
	}
	return fmt.Errorf("operation failed after retries: %w", lastErr)
}

// isRetriableError определяет, является ли ошибка временной (retriable).
//
// Временными считаются сетевые сбои транспорта remote write, ответы
// 429 и 5xx, а также ошибки соединения PostgreSQL (коды SQLSTATE,
// начинающиеся с "08").
func isRetriableError(err error) bool {
	var tErr *remotewrite.TransportError
	if errors.As(err, &tErr) {
		if tErr.StatusCode == 0 {
			return true
		}
		return tErr.StatusCode == http.StatusTooManyRequests || tErr.StatusCode >= 500
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if len(pgErr.Code) >= 2 && pgErr.Code[:2] == "08" {
			return true
		}
	}
	return false
}
