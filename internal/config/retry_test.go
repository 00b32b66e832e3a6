package config

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RoGogDBD/metric-pusher/internal/remotewrite"
)

func TestIsRetriableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "network failure", err: &remotewrite.TransportError{Err: errors.New("dial refused")}, want: true},
		{name: "status 500", err: &remotewrite.TransportError{StatusCode: 500}, want: true},
		{name: "status 429", err: &remotewrite.TransportError{StatusCode: 429}, want: true},
		{name: "status 400", err: &remotewrite.TransportError{StatusCode: 400}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, isRetriableError(tt.err))
		})
	}
}

func TestRetryWithBackoff_NonRetriableFailsFast(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		return &remotewrite.TransportError{StatusCode: 400}
	})

	require.Error(t, err)
	require.Equal(t, 1, calls)
}

func TestRetryWithBackoff_Success(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestRetryWithBackoff_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return &remotewrite.TransportError{StatusCode: 503}
	})

	require.ErrorIs(t, err, context.Canceled)
}
