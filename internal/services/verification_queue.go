package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/toinu/ride-api/internal/logging"
	"github.com/toinu/ride-api/internal/observability"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// VerificationJob represents one scheduled CPF verification attempt
type VerificationJob struct {
	PassengerID string    `json:"passenger_id"`
	RequestID   string    `json:"request_id"`
	Trigger     string    `json:"trigger"`
	EnqueuedAt  time.Time `json:"enqueued_at"`
}

// VerificationResult represents the result of a verification job
type VerificationResult struct {
	JobID       string    `json:"job_id"`
	PassengerID string    `json:"passenger_id"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	ProcessedAt time.Time `json:"processed_at"`
}

// VerificationQueue runs CPF verifications in the background. Callers
// that fire and forget after a write enqueue here instead of spawning
// unsupervised goroutines; the queue owns worker lifecycle and stats.
type VerificationQueue struct {
	queue           chan VerificationJob
	results         chan VerificationResult
	workers         int
	service         *CPFVerificationService
	wg              sync.WaitGroup
	ctx             context.Context
	cancel          context.CancelFunc
	processingStats *ProcessingStats
	mu              sync.RWMutex
}

// ProcessingStats tracks queue performance metrics
type ProcessingStats struct {
	JobsEnqueued    int64         `json:"jobs_enqueued"`
	JobsProcessed   int64         `json:"jobs_processed"`
	JobsFailed      int64         `json:"jobs_failed"`
	AverageWaitTime time.Duration `json:"average_wait_time"`
	QueueSize       int           `json:"queue_size"`
	ActiveWorkers   int           `json:"active_workers"`
}

// Global verification queue instance
var VerificationQueueInstance *VerificationQueue

// NewVerificationQueue creates a new verification queue
func NewVerificationQueue(service *CPFVerificationService, workers int, queueSize int) *VerificationQueue {
	ctx, cancel := context.WithCancel(context.Background())

	queue := &VerificationQueue{
		queue:           make(chan VerificationJob, queueSize),
		results:         make(chan VerificationResult, queueSize),
		workers:         workers,
		service:         service,
		ctx:             ctx,
		cancel:          cancel,
		processingStats: &ProcessingStats{},
	}

	queue.startWorkers()

	go queue.processResults()

	return queue
}

// startWorkers starts the worker goroutines
func (vq *VerificationQueue) startWorkers() {
	for i := 0; i < vq.workers; i++ {
		vq.wg.Add(1)
		go vq.worker(i)
	}
}

// worker processes verification jobs from the queue
func (vq *VerificationQueue) worker(id int) {
	defer vq.wg.Done()

	for {
		select {
		case job, ok := <-vq.queue:
			if !ok {
				return
			}
			vq.processJob(job, id)
		case <-vq.ctx.Done():
			return
		}
	}
}

// processJob processes a single verification job
func (vq *VerificationQueue) processJob(job VerificationJob, workerID int) {
	startTime := time.Now()

	vq.mu.Lock()
	vq.processingStats.JobsProcessed++
	vq.mu.Unlock()
	observability.VerificationQueueDepth.Set(float64(len(vq.queue)))

	result := VerificationResult{
		JobID:       fmt.Sprintf("%d-%s", workerID, job.PassengerID),
		PassengerID: job.PassengerID,
		ProcessedAt: time.Now(),
	}

	err := vq.runVerification(job)
	if err != nil {
		result.Success = false
		result.Error = err.Error()
		logging.Logger.Error("verification job failed",
			zap.Int("worker_id", workerID),
			zap.String("passenger_id", job.PassengerID),
			zap.String("trigger", job.Trigger),
			zap.Error(err))
	} else {
		result.Success = true
		logging.Logger.Info("verification job processed",
			zap.Int("worker_id", workerID),
			zap.String("passenger_id", job.PassengerID),
			zap.String("trigger", job.Trigger))
	}

	select {
	case vq.results <- result:
	default:
		logging.Logger.Warn("results channel full, dropping result")
	}

	processingTime := time.Since(startTime)
	vq.mu.Lock()
	if vq.processingStats.AverageWaitTime == 0 {
		vq.processingStats.AverageWaitTime = processingTime
	} else {
		// Simple moving average
		vq.processingStats.AverageWaitTime = (vq.processingStats.AverageWaitTime + processingTime) / 2
	}
	vq.mu.Unlock()
}

// runVerification invokes the workflow for one job
func (vq *VerificationQueue) runVerification(job VerificationJob) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	passengerID, err := primitive.ObjectIDFromHex(job.PassengerID)
	if err != nil {
		return fmt.Errorf("invalid passenger ID in job: %w", err)
	}

	return vq.service.VerifyPassengerCPF(ctx, passengerID)
}

// processResults processes verification results
func (vq *VerificationQueue) processResults() {
	for {
		select {
		case result, ok := <-vq.results:
			if !ok {
				return
			}
			vq.handleResult(result)
		case <-vq.ctx.Done():
			return
		}
	}
}

// handleResult handles a verification result
func (vq *VerificationQueue) handleResult(result VerificationResult) {
	vq.mu.Lock()
	if !result.Success {
		vq.processingStats.JobsFailed++
	}
	vq.mu.Unlock()

	logger := logging.Logger.With(
		zap.String("passenger_id", result.PassengerID),
		zap.Bool("success", result.Success),
	)

	if result.Success {
		logger.Info("verification job completed successfully")
	} else {
		logger.Error("verification job failed", zap.String("error", result.Error))
	}
}

// Enqueue adds a verification job to the queue
func (vq *VerificationQueue) Enqueue(job VerificationJob) error {
	if job.EnqueuedAt.IsZero() {
		job.EnqueuedAt = time.Now()
	}

	vq.mu.Lock()
	vq.processingStats.JobsEnqueued++
	vq.processingStats.QueueSize = len(vq.queue)
	vq.mu.Unlock()

	select {
	case vq.queue <- job:
		observability.VerificationQueueDepth.Set(float64(len(vq.queue)))
		return nil
	default:
		return fmt.Errorf("verification queue is full")
	}
}

// GetStats returns the current processing statistics
func (vq *VerificationQueue) GetStats() ProcessingStats {
	vq.mu.RLock()
	defer vq.mu.RUnlock()

	stats := *vq.processingStats
	stats.QueueSize = len(vq.queue)
	stats.ActiveWorkers = vq.workers

	return stats
}

// Stop gracefully stops the verification queue
func (vq *VerificationQueue) Stop() {
	vq.cancel()
	close(vq.queue)
	close(vq.results)
	vq.wg.Wait()
}

// IsHealthy checks if the queue is healthy
func (vq *VerificationQueue) IsHealthy() bool {
	stats := vq.GetStats()

	if stats.QueueSize > 1000 {
		return false
	}

	if stats.JobsProcessed == 0 && stats.JobsEnqueued > 0 {
		return false
	}

	return true
}
