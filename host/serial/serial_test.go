package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyACM0")
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "/dev/ttyACM0", cfg.Device)
	assert.Equal(t, DefaultBaud, cfg.Baud)
	assert.Equal(t, 100, cfg.ReadTimeout)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"nil config", nil},
		{"no device", &Config{Baud: DefaultBaud}},
		{"zero baud", &Config{Device: "/dev/ttyACM0"}},
		{"negative timeout", &Config{Device: "/dev/ttyACM0", Baud: DefaultBaud, ReadTimeout: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}

func TestOpenRejectsBadConfigBeforeTouchingDevice(t *testing.T) {
	_, err := Open(&Config{Baud: DefaultBaud})
	require.ErrorIs(t, err, ErrNoDevice)

	_, err = Open(nil)
	require.Error(t, err)
}
