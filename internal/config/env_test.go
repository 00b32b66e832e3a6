package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvInt(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		set     bool
		want    int
		wantErr bool
	}{
		{name: "unset returns zero", set: false, want: 0},
		{name: "empty returns zero", set: true, value: "", want: 0},
		{name: "valid value", set: true, value: "42", want: 42},
		{name: "invalid value", set: true, value: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const key = "TEST_ENV_INT"
			if tt.set {
				t.Setenv(key, tt.value)
			}

			got, err := EnvInt(key)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestEnvString(t *testing.T) {
	const key = "TEST_ENV_STRING"

	require.Equal(t, "", EnvString(key))

	t.Setenv(key, "value")
	require.Equal(t, "value", EnvString(key))
}

func TestEnvServer(t *testing.T) {
	const key = "TEST_ADDRESS"

	addr := &NetAddress{Host: "localhost", Port: 8080}

	// Переменная не задана — адрес не меняется.
	require.NoError(t, EnvServer(addr, key))
	require.Equal(t, "localhost:8080", addr.String())

	t.Setenv(key, "example.com:9090")
	require.NoError(t, EnvServer(addr, key))
	require.Equal(t, "example.com:9090", addr.String())

	t.Setenv(key, "example.com:bad")
	require.Error(t, EnvServer(addr, key))
}
