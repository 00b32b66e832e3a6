package remotewrite

import (
	"github.com/gogo/protobuf/proto"
	"github.com/golang/snappy"
	"github.com/prometheus/prometheus/prompb"
)

// Обязательные заголовки протокола remote write 0.1.0.
// Точные литералы — часть wire-совместимости, менять нельзя.
const (
	HeaderContentType        = "Content-Type"
	HeaderContentEncoding    = "Content-Encoding"
	HeaderRemoteWriteVersion = "X-Prometheus-Remote-Write-Version"

	ContentTypeProtobuf   = "application/x-protobuf"
	ContentEncodingSnappy = "snappy"
	RemoteWriteVersion    = "0.1.0"
)

// payloadBuffer — переиспользуемый буфер для сжатой полезной нагрузки.
type payloadBuffer struct {
	b []byte
}

// Reset сбрасывает буфер, сохраняя ёмкость.
func (p *payloadBuffer) Reset() {
	if p == nil {
		return
	}
	p.b = p.b[:0]
}

// assemblePayload упаковывает серии в WriteRequest, сериализует его в
// канонический protobuf и сжимает snappy.
//
// dst — необязательный буфер назначения для сжатия (может быть nil);
// возвращённый срез может указывать на новый буфер, если dst мал.
// Вторым значением возвращается фиксированный набор заголовков запроса.
func assemblePayload(series []prompb.TimeSeries, dst []byte) ([]byte, map[string]string, error) {
	req := &prompb.WriteRequest{Timeseries: series}

	raw, err := proto.Marshal(req)
	if err != nil {
		return nil, nil, &EncodingError{Stage: "marshal", Err: err}
	}

	body := snappy.Encode(dst[:cap(dst)], raw)

	headers := map[string]string{
		HeaderContentType:        ContentTypeProtobuf,
		HeaderContentEncoding:    ContentEncodingSnappy,
		HeaderRemoteWriteVersion: RemoteWriteVersion,
	}
	return body, headers, nil
}
