package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gogo/protobuf/proto"
	"github.com/golang/snappy"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/prometheus/prompb"
	"go.uber.org/zap"

	"github.com/RoGogDBD/metric-pusher/internal/remotewrite"
	"github.com/RoGogDBD/metric-pusher/internal/repository"
)

type Handler struct {
	storage repository.Storage
	db      *pgxpool.Pool
	logger  *zap.Logger
}

func NewHandler(storage repository.Storage, db *pgxpool.Pool, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{storage: storage, db: db, logger: logger}
}

// HandleWrite принимает WriteRequest протокола remote write 0.1.0.
//
// Тело запроса — snappy-сжатый protobuf. Заголовки Content-Type и
// Content-Encoding проверяются строго; несовпадение версии протокола
// только логируется, как это делают эталонные приёмники.
func (h *Handler) HandleWrite(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get(remotewrite.HeaderContentType) != remotewrite.ContentTypeProtobuf {
		http.Error(w, "unsupported content type", http.StatusUnsupportedMediaType)
		return
	}
	if r.Header.Get(remotewrite.HeaderContentEncoding) != remotewrite.ContentEncodingSnappy {
		http.Error(w, "unsupported content encoding", http.StatusUnsupportedMediaType)
		return
	}
	if v := r.Header.Get(remotewrite.HeaderRemoteWriteVersion); v != "" && v != remotewrite.RemoteWriteVersion {
		h.logger.Warn("unexpected remote write version", zap.String("version", v))
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	raw, err := snappy.Decode(nil, body)
	if err != nil {
		http.Error(w, "failed to decompress body", http.StatusBadRequest)
		return
	}

	var req prompb.WriteRequest
	if err := proto.Unmarshal(raw, &req); err != nil {
		http.Error(w, "failed to unmarshal write request", http.StatusBadRequest)
		return
	}

	if err := h.storage.AppendSeries(r.Context(), req.Timeseries); err != nil {
		h.logger.Error("failed to store series", zap.Error(err))
		http.Error(w, "failed to store series", http.StatusInternalServerError)
		return
	}

	h.logger.Debug("accepted write request", zap.Int("series", len(req.Timeseries)))
	w.WriteHeader(http.StatusNoContent)
}

// HandleList выводит сводку накопленных серий в текстовом виде.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	all, err := h.storage.GetAll(r.Context())
	if err != nil {
		http.Error(w, "failed to list series", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for _, info := range all {
		fmt.Fprintf(w, "%s{%s} samples=%d last=%g ts=%d\n",
			info.Metric, info.Labels, info.Samples, info.LastValue, info.LastTimestamp)
	}
}

// HandlePing проверяет соединение с базой данных.
func (h *Handler) HandlePing(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		http.Error(w, "database is not configured", http.StatusInternalServerError)
		return
	}
	if err := h.db.Ping(r.Context()); err != nil {
		http.Error(w, "database is unreachable", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
