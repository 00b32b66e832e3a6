package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/prometheus/prompb"
)

// Postgres реализует Storage поверх PostgreSQL.
//
// Каждый сэмпл хранится отдельной строкой таблицы samples; схема
// создаётся миграциями (см. internal/config/db).
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) Close() {
	p.pool.Close()
}

func (p *Postgres) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return p.pool.Ping(ctx)
}

// AppendSeries дописывает сэмплы всех переданных серий.
func (p *Postgres) AppendSeries(ctx context.Context, series []prompb.TimeSeries) error {
	for _, ts := range series {
		name := metricName(ts.Labels)
		labels := plainLabels(ts.Labels)
		for _, s := range ts.Samples {
			_, err := p.pool.Exec(ctx,
				`INSERT INTO samples (metric_name, labels, value, timestamp_ms) VALUES ($1, $2, $3, $4)`,
				name, labels, s.Value, s.Timestamp,
			)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// GetAll возвращает сводку по всем сериям.
func (p *Postgres) GetAll(ctx context.Context) ([]SeriesInfo, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT metric_name,
		       labels,
		       COUNT(*),
		       (ARRAY_AGG(value ORDER BY timestamp_ms DESC, id DESC))[1],
		       MAX(timestamp_ms)
		FROM samples
		GROUP BY metric_name, labels
		ORDER BY metric_name, labels`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []SeriesInfo
	for rows.Next() {
		var info SeriesInfo
		if err := rows.Scan(&info.Metric, &info.Labels, &info.Samples, &info.LastValue, &info.LastTimestamp); err != nil {
			return nil, err
		}
		result = append(result, info)
	}
	return result, rows.Err()
}
