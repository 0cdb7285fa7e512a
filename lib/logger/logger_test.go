package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	log, err := New("test")
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { level.SetLevel(zap.InfoLevel) })

	require.NoError(t, SetLevel("debug"))
	require.Equal(t, zap.DebugLevel, level.Level())

	require.Error(t, SetLevel("loud"))
	require.Equal(t, zap.DebugLevel, level.Level())
}
