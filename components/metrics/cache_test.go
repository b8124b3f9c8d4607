package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartCacheStoresEntry(t *testing.T) {
	cache := NewChartCache()
	calls := 0
	render := func() (string, error) {
		calls++
		return "html", nil
	}

	val1, err := cache.GetOrRender("key", time.Minute, render)
	require.NoError(t, err)
	val2, err := cache.GetOrRender("key", time.Minute, render)
	require.NoError(t, err)

	assert.Equal(t, "html", val1)
	assert.Equal(t, val1, val2)
	assert.Equal(t, 1, calls)
}

func TestChartCacheExpires(t *testing.T) {
	cache := NewChartCache()
	calls := 0
	render := func() (string, error) {
		calls++
		return "fresh", nil
	}

	_, err := cache.GetOrRender("key", 2*time.Millisecond, render)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = cache.GetOrRender("key", 2*time.Millisecond, render)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestChartCacheHonorsPerEntryTTL(t *testing.T) {
	cache := NewChartCache()
	gaugeCalls := 0
	seriesCalls := 0

	_, err := cache.GetOrRender("gauge", 2*time.Millisecond, func() (string, error) {
		gaugeCalls++
		return "gauge", nil
	})
	require.NoError(t, err)
	_, err = cache.GetOrRender("series", time.Minute, func() (string, error) {
		seriesCalls++
		return "series", nil
	})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = cache.GetOrRender("gauge", 2*time.Millisecond, func() (string, error) {
		gaugeCalls++
		return "gauge", nil
	})
	require.NoError(t, err)
	_, err = cache.GetOrRender("series", time.Minute, func() (string, error) {
		seriesCalls++
		return "series", nil
	})
	require.NoError(t, err)

	assert.Equal(t, 2, gaugeCalls, "short-lived gauge entry should re-render")
	assert.Equal(t, 1, seriesCalls, "long-lived series entry should be reused")
}

func TestChartCacheBypassesZeroTTL(t *testing.T) {
	cache := NewChartCache()
	calls := 0
	render := func() (string, error) {
		calls++
		return "live", nil
	}

	_, err := cache.GetOrRender("key", 0, render)
	require.NoError(t, err)
	_, err = cache.GetOrRender("key", 0, render)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}
