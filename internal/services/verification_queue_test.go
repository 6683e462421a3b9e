package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toinu/ride-api/internal/logging"
)

func TestNewVerificationQueue(t *testing.T) {
	_ = logging.InitLogger()

	tests := []struct {
		name      string
		workers   int
		queueSize int
	}{
		{"single_worker_small_queue", 1, 10},
		{"multiple_workers_medium_queue", 4, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vq := NewVerificationQueue(nil, tt.workers, tt.queueSize)
			defer vq.Stop()

			require.NotNil(t, vq.queue)
			require.NotNil(t, vq.results)
			assert.Equal(t, tt.workers, vq.workers)
			require.NotNil(t, vq.processingStats)
		})
	}
}

func TestVerificationQueue_EnqueueFullQueue(t *testing.T) {
	_ = logging.InitLogger()

	// No workers, so nothing drains the queue
	vq := NewVerificationQueue(nil, 0, 1)
	defer vq.Stop()

	err := vq.Enqueue(VerificationJob{PassengerID: "a", Trigger: "test"})
	require.NoError(t, err)

	err = vq.Enqueue(VerificationJob{PassengerID: "b", Trigger: "test"})
	require.Error(t, err)

	stats := vq.GetStats()
	assert.EqualValues(t, 2, stats.JobsEnqueued)
	assert.Equal(t, 1, stats.QueueSize)
}

func TestVerificationQueue_InvalidPassengerIDCountsAsFailure(t *testing.T) {
	_ = logging.InitLogger()

	vq := NewVerificationQueue(nil, 1, 10)
	defer vq.Stop()

	require.NoError(t, vq.Enqueue(VerificationJob{PassengerID: "not-a-hex-id", Trigger: "test"}))

	require.Eventually(t, func() bool {
		stats := vq.GetStats()
		return stats.JobsProcessed >= 1 && stats.JobsFailed >= 1
	}, 5*time.Second, 10*time.Millisecond)
}

func TestVerificationQueue_EnqueueSetsTimestamp(t *testing.T) {
	_ = logging.InitLogger()

	vq := NewVerificationQueue(nil, 0, 1)
	defer vq.Stop()

	before := time.Now()
	require.NoError(t, vq.Enqueue(VerificationJob{PassengerID: "a", Trigger: "test"}))

	job := <-vq.queue
	assert.False(t, job.EnqueuedAt.Before(before))
}

func TestVerificationQueue_IsHealthy(t *testing.T) {
	_ = logging.InitLogger()

	vq := NewVerificationQueue(nil, 1, 10)
	defer vq.Stop()

	assert.True(t, vq.IsHealthy())
}
