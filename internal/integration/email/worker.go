package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/ezcar24/dealer-backend/internal/application/usecase/digest"
)

// DigestRunner sends one batch of dashboard digests.
type DigestRunner interface {
	Execute(ctx context.Context) (*digest.SendDigestsOutput, error)
}

// DigestWorker sends dashboard digests on a fixed interval.
type DigestWorker struct {
	runner   DigestRunner
	interval time.Duration
}

// WorkerConfig holds configuration for the digest worker.
type WorkerConfig struct {
	Interval time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		Interval: 24 * time.Hour,
	}
}

// NewDigestWorker creates a new digest worker.
func NewDigestWorker(runner DigestRunner, config WorkerConfig) *DigestWorker {
	if config.Interval <= 0 {
		config = DefaultWorkerConfig()
	}
	return &DigestWorker{
		runner:   runner,
		interval: config.Interval,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *DigestWorker) Start(ctx context.Context) {
	slog.Info("Digest worker started", "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Send immediately on start, then on ticker
	w.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Digest worker shutting down")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce sends a single digest batch and logs its outcome.
func (w *DigestWorker) RunOnce(ctx context.Context) {
	output, err := w.runner.Execute(ctx)
	if err != nil {
		slog.Error("Digest batch failed", "error", err)
		return
	}

	slog.Info("Digest batch finished",
		"sent", output.Sent,
		"skipped", output.Skipped,
		"failed", output.Failed,
	)
}
