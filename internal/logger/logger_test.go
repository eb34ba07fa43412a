package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		debugOn bool
		warnOn  bool
	}{
		{"debug console", Config{Level: "debug", Format: "console"}, true, true},
		{"info json", Config{Level: "info", Format: "json"}, false, true},
		{"error json", Config{Level: "error", Format: "json"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(&tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.debugOn, l.Core().Enabled(zap.DebugLevel))
			assert.Equal(t, tt.warnOn, l.Core().Enabled(zap.WarnLevel))
		})
	}
}
