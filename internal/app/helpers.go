package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"port-terminal-core/internal/repository"
)

var newPool = repository.NewPool

const connectAttemptTimeout = 3 * time.Second

// connectDbWithRetry dials postgres until it answers or attempts run out.
// The terminal database tends to come up after the service in compose setups.
func connectDbWithRetry(ctx context.Context, dsn string, attempts int, delay time.Duration) (*pgxpool.Pool, error) {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		dialCtx, cancel := context.WithTimeout(ctx, connectAttemptTimeout)
		pool, err := newPool(dialCtx, dsn)
		cancel()
		if err == nil {
			log.Printf("database connected on attempt %d", attempt)
			return pool, nil
		}
		lastErr = err
		log.Printf("database connect failed (attempt %d/%d): %v", attempt, attempts, err)
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil, fmt.Errorf("database connect failed after %d attempts: %w", attempts, lastErr)
}
