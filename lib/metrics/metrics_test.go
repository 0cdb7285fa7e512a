package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()

	m, err := New("lru", "store", reg)
	require.NoError(t, err)

	m.Hits.Inc()
	m.Evictions.Add(2)
	m.Entries.Set(5)

	require.Equal(t, 1.0, testutil.ToFloat64(m.Hits))
	require.Equal(t, 2.0, testutil.ToFloat64(m.Evictions))
	require.Equal(t, 5.0, testutil.ToFloat64(m.Entries))

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	require.Equal(t, 4, n)
}

func TestNewRejectsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := New("lru", "store", reg)
	require.NoError(t, err)

	_, err = New("lru", "store", reg)
	require.Error(t, err)
}

func TestNewWithoutRegisterer(t *testing.T) {
	m, err := New("lru", "store", nil)
	require.NoError(t, err)

	m.Misses.Inc()
	require.Equal(t, 1.0, testutil.ToFloat64(m.Misses))
}
