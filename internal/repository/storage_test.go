package repository

import (
	"context"
	"testing"

	"github.com/prometheus/prometheus/prompb"
	"github.com/stretchr/testify/require"
)

func series(name string, labels map[string]string, samples ...prompb.Sample) prompb.TimeSeries {
	ls := []prompb.Label{{Name: metricNameLabel, Value: name}}
	for k, v := range labels {
		ls = append(ls, prompb.Label{Name: k, Value: v})
	}
	return prompb.TimeSeries{Labels: ls, Samples: samples}
}

func TestMemStorage_TableDriven(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		setup func(t *testing.T, s Storage)
		check func(t *testing.T, s Storage)
	}{
		{
			name: "append and summarize",
			setup: func(t *testing.T, s Storage) {
				require.NoError(t, s.AppendSeries(ctx, []prompb.TimeSeries{
					series("up", map[string]string{"job": "a"},
						prompb.Sample{Value: 1, Timestamp: 1000},
						prompb.Sample{Value: 0, Timestamp: 2000},
					),
				}))
			},
			check: func(t *testing.T, s Storage) {
				all, err := s.GetAll(ctx)
				require.NoError(t, err)
				require.Len(t, all, 1)
				require.Equal(t, "up", all[0].Metric)
				require.Equal(t, "job=a", all[0].Labels)
				require.Equal(t, 2, all[0].Samples)
				require.Equal(t, 0.0, all[0].LastValue)
				require.Equal(t, int64(2000), all[0].LastTimestamp)
			},
		},
		{
			name: "same identity merges across requests",
			setup: func(t *testing.T, s Storage) {
				require.NoError(t, s.AppendSeries(ctx, []prompb.TimeSeries{
					series("up", map[string]string{"job": "a"}, prompb.Sample{Value: 1, Timestamp: 1000}),
				}))
				require.NoError(t, s.AppendSeries(ctx, []prompb.TimeSeries{
					series("up", map[string]string{"job": "a"}, prompb.Sample{Value: 2, Timestamp: 2000}),
				}))
			},
			check: func(t *testing.T, s Storage) {
				all, err := s.GetAll(ctx)
				require.NoError(t, err)
				require.Len(t, all, 1)
				require.Equal(t, 2, all[0].Samples)
			},
		},
		{
			name: "different labels are different series",
			setup: func(t *testing.T, s Storage) {
				require.NoError(t, s.AppendSeries(ctx, []prompb.TimeSeries{
					series("up", map[string]string{"job": "a"}, prompb.Sample{Value: 1, Timestamp: 1000}),
					series("up", map[string]string{"job": "b"}, prompb.Sample{Value: 1, Timestamp: 1000}),
				}))
			},
			check: func(t *testing.T, s Storage) {
				all, err := s.GetAll(ctx)
				require.NoError(t, err)
				require.Len(t, all, 2)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			s := NewMemStorage()
			if tt.setup != nil {
				tt.setup(t, s)
			}
			if tt.check != nil {
				tt.check(t, s)
			}
		})
	}
}

func TestLabelsKeyOrderIndependent(t *testing.T) {
	k1 := labelsKey([]prompb.Label{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}})
	k2 := labelsKey([]prompb.Label{{Name: "b", Value: "2"}, {Name: "a", Value: "1"}})
	require.Equal(t, k1, k2)
}
