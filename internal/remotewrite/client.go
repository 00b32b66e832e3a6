// Package remotewrite реализует push-клиент протокола Prometheus remote write 0.1.0.
//
// Клиент переводит прикладные наблюдения (gauge, counter, histogram) в
// временные ряды wire-формата и синхронно доставляет их по HTTP: один
// вызов — один WriteRequest — один запрос. Состояние счётчиков и буферы
// гистограмм живут внутри экземпляра клиента и защищены мьютексами,
// поэтому клиент можно разделять между горутинами.
package remotewrite

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/prometheus/prompb"
	"go.uber.org/zap"

	"github.com/RoGogDBD/metric-pusher/pkg/pool"
)

// defaultTimeout — таймаут HTTP-запроса по умолчанию.
const defaultTimeout = 10 * time.Second

// Config задаёт конфигурацию клиента remote write.
//
// Поля:
//   - URL: адрес приёмника remote write (обязательное поле)
//   - Timeout: таймаут одного HTTP-запроса (по умолчанию 10 секунд)
//   - Logger: опциональный логгер; без него клиент молчит
type Config struct {
	URL     string
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client — клиент remote write с состоянием счётчиков и буферами гистограмм.
//
// Все операции отправки синхронны: ошибка транспорта возвращается
// вызвавшей операции. Автоматических повторов нет.
type Client struct {
	transport  *transport
	logger     *zap.Logger
	counters   *counterStore
	histograms *histogramStore
	buffers    *pool.Pool[*payloadBuffer]
}

// NewClient создаёт клиент по конфигурации.
//
// Возвращает ошибку, если не задан URL приёмника.
func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("remote write URL cannot be empty")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Client{
		transport:  newTransport(cfg.URL, cfg.Timeout),
		logger:     cfg.Logger,
		counters:   newCounterStore(),
		histograms: newHistogramStore(),
		buffers: pool.New(func() *payloadBuffer {
			return &payloadBuffer{b: make([]byte, 0, 4096)}
		}),
	}, nil
}

// SendTimeSeries отправляет один ряд с одним сэмплом.
//
// name   — имя метрики.
// value  — значение сэмпла.
// labels — дополнительные лейблы (может быть nil).
// ts     — метка времени; 0 означает "сейчас", единица измерения
// определяется по NormalizeTimestamp.
func (c *Client) SendTimeSeries(ctx context.Context, name string, value float64, labels map[string]string, ts int64) error {
	series := buildTimeSeries(name, value, labels, NormalizeTimestamp(ts))
	return c.push(ctx, []prompb.TimeSeries{series})
}

// GaugeSet устанавливает значение gauge-метрики и отправляет его.
func (c *Client) GaugeSet(ctx context.Context, name string, value float64, labels map[string]string, ts int64) error {
	return c.SendTimeSeries(ctx, name, value, labels, ts)
}

// CounterInc увеличивает счётчик на delta и отправляет накопленное значение.
//
// К имени идемпотентно добавляется суффикс _total. Отправляется именно
// кумулятивное значение после приращения, не delta: при delta >= 0 ряд
// монотонно не убывает. Отрицательная delta уменьшает счётчик — это
// ошибка вызывающего кода, клиент её не контролирует.
func (c *Client) CounterInc(ctx context.Context, name string, delta float64, labels map[string]string, ts int64) error {
	name = ensureTotalSuffix(name)
	total := c.counters.increment(seriesKey(name, labels), delta)
	series := buildTimeSeries(name, total, labels, NormalizeTimestamp(ts))
	return c.push(ctx, []prompb.TimeSeries{series})
}

// HistogramQueue буферизует наблюдение гистограммы без отправки.
//
// Наблюдения накапливаются по ключу (base, labels) в порядке вставки до
// вызова HistogramFlush. Буфер не ограничен по размеру.
func (c *Client) HistogramQueue(base string, value float64, labels map[string]string, ts int64) {
	n := c.histograms.queue(seriesKey(base, labels), observation{
		timestamp: NormalizeTimestamp(ts),
		value:     value,
	})
	c.logger.Debug("queued histogram observation",
		zap.String("metric", base),
		zap.Int("buffered", n),
	)
}

// HistogramFlush потребляет буфер наблюдений и отправляет серии
// кумулятивной гистограммы: len(bounds) конечных бакетов, бакет +Inf,
// _sum и _count — всего len(bounds)+3 серии.
//
// bounds — строго возрастающие конечные верхние границы. При некорректных
// границах возвращается ошибка (errors.Is(err, ErrInvalidBounds)), буфер
// остаётся нетронутым. Флаш по пустому или отсутствующему буферу — no-op.
func (c *Client) HistogramFlush(ctx context.Context, base string, labels map[string]string, bounds []float64) error {
	if err := validateBounds(bounds); err != nil {
		return err
	}

	obs := c.histograms.take(seriesKey(base, labels))
	if len(obs) == 0 {
		return nil
	}

	return c.push(ctx, buildHistogramSeries(base, labels, bounds, obs))
}

// push собирает, сжимает и доставляет полезную нагрузку.
func (c *Client) push(ctx context.Context, series []prompb.TimeSeries) error {
	buf := c.buffers.Get()
	defer c.buffers.Put(buf)

	body, headers, err := assemblePayload(series, buf.b)
	if err != nil {
		return err
	}
	buf.b = body

	if err := c.transport.send(ctx, body, headers); err != nil {
		return err
	}

	c.logger.Debug("pushed write request",
		zap.Int("series", len(series)),
		zap.Int("payload_bytes", len(body)),
	)
	return nil
}
