package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantLevel zapcore.Level
		wantErr   bool
	}{
		{"defaults", "", "", zapcore.InfoLevel, false},
		{"debug json", "debug", "json", zapcore.DebugLevel, false},
		{"upper case console", "WARN", "console", zapcore.WarnLevel, false},
		{"bad level", "verbose", "json", 0, true},
		{"bad format", "info", "xml", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.level, tt.format)

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, logger)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.wantLevel))
			assert.False(t, logger.Core().Enabled(tt.wantLevel-1))
		})
	}
}

func TestObserveGateway(t *testing.T) {
	before := testutil.ToFloat64(GatewayRequestsTotal.WithLabelValues("test_op", "success"))

	ObserveGateway("test_op", "success", time.Now().Add(-time.Second))
	ObserveGateway("test_op", "success", time.Now())

	after := testutil.ToFloat64(GatewayRequestsTotal.WithLabelValues("test_op", "success"))
	assert.Equal(t, before+2, after)
}
