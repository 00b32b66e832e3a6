package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/golang/snappy"
	"github.com/prometheus/prometheus/prompb"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/RoGogDBD/metric-pusher/internal/remotewrite"
	"github.com/RoGogDBD/metric-pusher/internal/repository"
)

func encodeWriteRequest(t *testing.T, req *prompb.WriteRequest) []byte {
	t.Helper()
	raw, err := proto.Marshal(req)
	require.NoError(t, err)
	return snappy.Encode(nil, raw)
}

func protocolHeaders() map[string]string {
	return map[string]string{
		remotewrite.HeaderContentType:        remotewrite.ContentTypeProtobuf,
		remotewrite.HeaderContentEncoding:    remotewrite.ContentEncodingSnappy,
		remotewrite.HeaderRemoteWriteVersion: remotewrite.RemoteWriteVersion,
	}
}

func TestHandleWrite(t *testing.T) {
	body := encodeWriteRequest(t, &prompb.WriteRequest{
		Timeseries: []prompb.TimeSeries{{
			Labels: []prompb.Label{
				{Name: "__name__", Value: "up"},
				{Name: "job", Value: "a"},
			},
			Samples: []prompb.Sample{{Value: 1, Timestamp: 1000}},
		}},
	})

	tests := []struct {
		name       string
		headers    map[string]string
		body       []byte
		wantStatus int
		wantStored int
	}{
		{
			name:       "valid request",
			headers:    protocolHeaders(),
			body:       body,
			wantStatus: http.StatusNoContent,
			wantStored: 1,
		},
		{
			name: "wrong content type",
			headers: map[string]string{
				remotewrite.HeaderContentType:     "application/json",
				remotewrite.HeaderContentEncoding: remotewrite.ContentEncodingSnappy,
			},
			body:       body,
			wantStatus: http.StatusUnsupportedMediaType,
		},
		{
			name: "wrong content encoding",
			headers: map[string]string{
				remotewrite.HeaderContentType:     remotewrite.ContentTypeProtobuf,
				remotewrite.HeaderContentEncoding: "gzip",
			},
			body:       body,
			wantStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:       "corrupted body",
			headers:    protocolHeaders(),
			body:       []byte("not snappy at all"),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := repository.NewMemStorage()
			h := NewHandler(storage, nil, zap.NewNop())

			r := httptest.NewRequest(http.MethodPost, "/api/v1/write", bytes.NewReader(tt.body))
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			w := httptest.NewRecorder()

			h.HandleWrite(w, r)

			require.Equal(t, tt.wantStatus, w.Code)

			all, err := storage.GetAll(context.Background())
			require.NoError(t, err)
			require.Len(t, all, tt.wantStored)
		})
	}
}

func TestHandleList(t *testing.T) {
	storage := repository.NewMemStorage()
	require.NoError(t, storage.AppendSeries(context.Background(), []prompb.TimeSeries{{
		Labels: []prompb.Label{
			{Name: "__name__", Value: "up"},
			{Name: "job", Value: "a"},
		},
		Samples: []prompb.Sample{{Value: 1, Timestamp: 1000}},
	}}))

	h := NewHandler(storage, nil, zap.NewNop())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.HandleList(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "up{job=a}")
	require.Contains(t, w.Body.String(), "samples=1")
}

func TestHandlePingWithoutDatabase(t *testing.T) {
	h := NewHandler(repository.NewMemStorage(), nil, zap.NewNop())

	r := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	h.HandlePing(w, r)

	require.Equal(t, http.StatusInternalServerError, w.Code)
}
