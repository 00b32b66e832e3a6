package remotewrite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildTimeSeries(t *testing.T) {
	ts := buildTimeSeries("my_metric", 12.5, map[string]string{"b": "2", "a": "1"}, 1000)

	require.Len(t, ts.Labels, 3)
	require.Equal(t, metricNameLabel, ts.Labels[0].Name)
	require.Equal(t, "my_metric", ts.Labels[0].Value)
	// Остальные лейблы отсортированы по имени.
	require.Equal(t, "a", ts.Labels[1].Name)
	require.Equal(t, "b", ts.Labels[2].Name)

	require.Len(t, ts.Samples, 1)
	require.Equal(t, 12.5, ts.Samples[0].Value)
	require.Equal(t, int64(1000), ts.Samples[0].Timestamp)
}

func TestBuildTimeSeriesNameArgumentWins(t *testing.T) {
	ts := buildTimeSeries("real_name", 1, map[string]string{"__name__": "fake_name", "a": "1"}, 1000)

	var names []string
	for _, l := range ts.Labels {
		if l.Name == metricNameLabel {
			names = append(names, l.Value)
		}
	}
	require.Equal(t, []string{"real_name"}, names)
}

func TestSeriesKey(t *testing.T) {
	k1 := seriesKey("m", map[string]string{"a": "1", "b": "2"})
	k2 := seriesKey("m", map[string]string{"b": "2", "a": "1"})
	require.Equal(t, k1, k2, "key must not depend on map order")

	require.NotEqual(t,
		seriesKey("m", map[string]string{"a": "1"}),
		seriesKey("m", map[string]string{"a": "2"}),
	)
	require.NotEqual(t,
		seriesKey("m", map[string]string{"a": "1"}),
		seriesKey("n", map[string]string{"a": "1"}),
	)
	// Склейка имени и значения не должна давать коллизий.
	require.NotEqual(t,
		seriesKey("m", map[string]string{"ab": "c"}),
		seriesKey("m", map[string]string{"a": "bc"}),
	)
}
