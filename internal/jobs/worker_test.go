package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sjperalta/remuneraciones-api/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorker_RunsQueuedAndAsyncJobs(t *testing.T) {
	w := NewWorker(2, metrics.New(prometheus.NewRegistry()))

	var wg sync.WaitGroup
	wg.Add(3)
	w.Enqueue("ok", func(ctx context.Context) error {
		defer wg.Done()
		return nil
	})
	w.EnqueueAsync("fails", func(ctx context.Context) error {
		defer wg.Done()
		return errors.New("boom")
	})
	w.EnqueueAsync("panics", func(ctx context.Context) error {
		defer wg.Done()
		panic("unexpected")
	})
	wg.Wait()
	w.Shutdown()

	stats := w.GetStats()
	assert.Equal(t, int64(3), stats.CompletedJobs)
	assert.Equal(t, int64(2), stats.FailedJobs)
	assert.Equal(t, 0, stats.ActiveJobs)
	assert.Equal(t, 10, stats.MaxConcurrent)
}

func TestWorker_ScheduleEvery(t *testing.T) {
	w := NewWorker(1, nil)
	ran := make(chan struct{}, 1)
	w.ScheduleEvery("tick", 10*time.Millisecond, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		require.Fail(t, "scheduled job did not run")
	}
	w.Shutdown()
}

func TestWorker_ShutdownIsIdempotent(t *testing.T) {
	w := NewWorker(1, nil)
	w.Shutdown()
	assert.NotPanics(t, w.Shutdown)
	assert.Error(t, w.Context().Err())
}
