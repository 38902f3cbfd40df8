package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGaugesAndCounters(t *testing.T) {
	require.NoError(t, InitMetrics(""))
	defer func() { _ = Close() }()

	SetGauge("mongodb_up", 1)
	v, ok := Latest("mongodb_up")
	require.True(t, ok)
	assert.Equal(t, float64(1), v)

	Incr("http_requests_total")
	Incr("http_requests_total")
	v, ok = Latest("http_requests_total")
	require.True(t, ok)
	assert.Equal(t, float64(2), v)
}

func TestUninitializedIsNoop(t *testing.T) {
	require.NoError(t, Close())
	SetGauge("nothing", 1)
	_, ok := Latest("nothing")
	assert.False(t, ok)
}
