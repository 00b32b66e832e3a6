package service

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/RoGogDBD/metric-pusher/internal/config"
	"github.com/RoGogDBD/metric-pusher/internal/handler"
)

// NewRouter создает и настраивает HTTP-роутер приёмника remote write.
//
// Параметры:
//   - h: обработчик запросов (handler.Handler)
//   - logger: логгер для логирования запросов
//
// Возвращает:
//   - *chi.Mux: настроенный роутер
func NewRouter(h *handler.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)         // Добавляет уникальный идентификатор запроса
	r.Use(middleware.RealIP)            // Определяет реальный IP клиента
	r.Use(config.RequestLogger(logger)) // Логирует запросы с помощью zap
	r.Use(middleware.Recoverer)         // Восстанавливает после паники

	r.Post("/api/v1/write", h.HandleWrite)
	r.Get("/", h.HandleList)
	r.Get("/ping", h.HandlePing)

	return r
}
