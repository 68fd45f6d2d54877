package app

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"port-terminal-core/internal/logx"
	"port-terminal-core/internal/service/archiver"
	"port-terminal-core/internal/transport/kafka"
)

// WorkerRunner runs the event intake and the archiver loop
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun starts the worker using the provided DI container
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

func workerRun(
	ctx context.Context,
	pool *pgxpool.Pool,
	logger logx.Logger,
	consumer *kafka.Consumer,
	arch *archiver.Service,
) error {
	defer closeWorker(pool, logger, consumer)

	logger.Info("terminal-core-worker started")

	errCh := make(chan error, 2)
	go func() { errCh <- arch.Run(ctx) }()
	go func() { errCh <- consumer.Run(ctx) }()

	// the first loop to stop decides the exit; the other is canceled with ctx
	err := <-errCh
	if err == nil && consumer == nil {
		// nil consumer returns immediately; keep the archiver running
		err = <-errCh
	}
	return err
}

func closeWorker(pool *pgxpool.Pool, logger logx.Logger, kafkaConsumer *kafka.Consumer) {
	if kafkaConsumer != nil {
		if err := kafkaConsumer.Close(); err != nil {
			logger.Error("kafka close error", logx.Err(err))
		}
	}
	if pool != nil {
		pool.Close()
	}
}
