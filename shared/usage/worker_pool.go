// Package usage records token usage reported in chat completion replies.
// Extraction runs on a small worker pool so it never delays the response.
package usage

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/like-mike/fastgpt-gateway/metrics"
)

// Job is one upstream reply awaiting usage extraction.
type Job struct {
	Route     string
	Binding   string
	RequestID string
	Body      []byte
}

// WorkerConfig configures the worker pool.
type WorkerConfig struct {
	WorkerCount int
	QueueSize   int
}

// DefaultWorkerConfig returns the defaults used by the gateway.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		WorkerCount: 2,
		QueueSize:   1000,
	}
}

// Recorder extracts usage from submitted jobs and records it as metrics.
type Recorder struct {
	jobQueue chan *Job
	workers  int
	logger   *zap.Logger
	wg       sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewRecorder creates a Recorder. Call Start before submitting jobs.
func NewRecorder(logger *zap.Logger, config WorkerConfig) *Recorder {
	def := DefaultWorkerConfig()
	if config.WorkerCount <= 0 {
		config.WorkerCount = def.WorkerCount
	}
	if config.QueueSize <= 0 {
		config.QueueSize = def.QueueSize
	}
	return &Recorder{
		jobQueue: make(chan *Job, config.QueueSize),
		workers:  config.WorkerCount,
		logger:   logger,
	}
}

// Start launches the workers.
func (r *Recorder) Start() {
	r.logger.Debug("starting usage workers", zap.Int("workers", r.workers))
	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker()
	}
}

// Stop drains queued jobs and waits for the workers to exit. Submit after
// Stop is a no-op.
func (r *Recorder) Stop() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.jobQueue)
	r.mu.Unlock()
	r.wg.Wait()
}

// Submit queues a job without blocking. It reports false when the job was
// dropped because the queue is full or the recorder is stopped. A nil
// Recorder drops every job.
func (r *Recorder) Submit(job *Job) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return false
	}
	select {
	case r.jobQueue <- job:
		return true
	default:
		metrics.UsageJobsDroppedTotal.Inc()
		r.logger.Warn("usage queue full, dropping job", zap.String("route", job.Route))
		return false
	}
}

func (r *Recorder) worker() {
	defer r.wg.Done()
	for job := range r.jobQueue {
		r.process(job)
	}
}

func (r *Recorder) process(job *Job) {
	u, err := Extract(job.Body)
	if err != nil {
		if !errors.Is(err, ErrNoUsage) {
			r.logger.Debug("failed to extract usage", zap.String("route", job.Route), zap.Error(err))
		}
		return
	}

	metrics.LlmTokensTotal.WithLabelValues(job.Route, "prompt").Add(float64(u.PromptTokens))
	metrics.LlmTokensTotal.WithLabelValues(job.Route, "completion").Add(float64(u.CompletionTokens))
	metrics.LlmTokens.WithLabelValues(job.Route).Observe(float64(u.TotalTokens))

	r.logger.Debug("recorded usage",
		zap.String("route", job.Route),
		zap.String("binding", job.Binding),
		zap.String("request_id", job.RequestID),
		zap.Int("prompt_tokens", u.PromptTokens),
		zap.Int("completion_tokens", u.CompletionTokens),
		zap.Int("total_tokens", u.TotalTokens),
	)
}
