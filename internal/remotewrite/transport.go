package remotewrite

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// transport выполняет доставку собранной полезной нагрузки по HTTP.
//
// Ретраев нет: ошибка доставки возвращается вызывающему коду как есть
// (политика повторов — забота внешнего слоя, см. config.RetryWithBackoff).
type transport struct {
	client *resty.Client
	url    string
}

func newTransport(url string, timeout time.Duration) *transport {
	return &transport{
		client: resty.New().SetTimeout(timeout),
		url:    url,
	}
}

// send выполняет один POST с телом body и заголовками headers.
//
// Возвращает *TransportError при сетевой ошибке или не-2xx ответе.
func (t *transport) send(ctx context.Context, body []byte, headers map[string]string) error {
	resp, err := t.client.R().
		SetContext(ctx).
		SetHeaders(headers).
		SetBody(body).
		Post(t.url)
	if err != nil {
		return &TransportError{Err: err}
	}
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return &TransportError{StatusCode: resp.StatusCode()}
	}
	return nil
}
