package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		logger, err := New("debug", format)
		require.NoError(t, err, format)
		assert.True(t, logger.Core().Enabled(zap.DebugLevel))
	}

	logger, err := New("warn", "json")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))

	_, err = New("loud", "json")
	assert.Error(t, err)
}

func TestNewConfig_WritesToStderr(t *testing.T) {
	config, err := newConfig("info", "console")
	require.NoError(t, err)
	assert.Equal(t, []string{"stderr"}, config.OutputPaths)
	assert.NotContains(t, config.OutputPaths, "stdout")
}
