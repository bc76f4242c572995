package api_client

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_WithConcurrentCallers_FetchesOnce(t *testing.T) {
	cache := NewQueryCache(0)
	var calls atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			body, err := cache.Load("/api/projects", func() ([]byte, error) {
				calls.Add(1)
				<-release
				return []byte(`{}`), nil
			})
			assert.NoError(t, err)
			assert.Equal(t, []byte(`{}`), body)
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())

	_, err := cache.Load("/api/projects", func() ([]byte, error) {
		t.Fatal("cached key must not be fetched again")
		return nil, nil
	})
	require.NoError(t, err)
}

func Test_Load_WhenFetchFails_NothingCached(t *testing.T) {
	cache := NewQueryCache(0)

	_, err := cache.Load("/api/analytics/stats", func() ([]byte, error) {
		return nil, errors.New("offline")
	})

	assert.Error(t, err)
	assert.Equal(t, 0, cache.Len())
}

func Test_Get_WhenEntryExpired_ReturnsMiss(t *testing.T) {
	cache := NewQueryCache(time.Millisecond)
	cache.Set("/api/projects", []byte(`{}`))

	time.Sleep(5 * time.Millisecond)

	_, ok := cache.Get("/api/projects")
	assert.False(t, ok)
}

func Test_Load_WhenInvalidatedDuringFetch_StaleBodyNotCached(t *testing.T) {
	cache := NewQueryCache(0)
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)

		body, err := cache.Load("/api/projects", func() ([]byte, error) {
			close(started)
			<-release
			return []byte(`{"projects":[]}`), nil
		})
		assert.NoError(t, err)
		assert.Equal(t, []byte(`{"projects":[]}`), body)
	}()

	<-started
	cache.Invalidate("/api/projects")
	close(release)
	<-done

	_, ok := cache.Get("/api/projects")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())

	calls := 0
	_, err := cache.Load("/api/projects", func() ([]byte, error) {
		calls++
		return []byte(`{"projects":[{}]}`), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	body, ok := cache.Get("/api/projects")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"projects":[{}]}`), body)
}
