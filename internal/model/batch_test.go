package models

import "testing"

func TestBatch_Reset(t *testing.T) {
	batch := &Batch{
		Metrics: []Metric{
			{Name: "Alloc", Type: Gauge, Value: 1.5},
			{Name: "PollCount", Type: Counter, Value: 1},
		},
		PollCount: 42,
	}

	batch.Reset()

	if len(batch.Metrics) != 0 {
		t.Errorf("Expected Metrics len=0 after reset, got %d", len(batch.Metrics))
	}
	if cap(batch.Metrics) != 2 {
		t.Errorf("Expected Metrics cap=2 after reset (slice should be truncated, not nil), got %d", cap(batch.Metrics))
	}
	if batch.PollCount != 0 {
		t.Errorf("Expected PollCount=0 after reset, got %d", batch.PollCount)
	}
}

func TestBatch_ResetNilPointer(t *testing.T) {
	var batch *Batch

	batch.Reset()
}
