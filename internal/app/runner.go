package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"port-terminal-core/internal/http/pprofserver"
)

// MustRun starts the HTTP server using the provided DI container
func MustRun(container *dig.Container) {
	if err := run(container); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Println("shutdown requested, exiting")
			return
		case errors.Is(err, context.DeadlineExceeded):
			log.Println("startup aborted: startup timeout exceeded")
			return
		default:
			log.Fatalf("run error: %v", err)
		}
	}
}

func run(container *dig.Container) error {
	return container.Invoke(func(server *http.Server, ctx context.Context, pool *pgxpool.Pool, pprofCfg pprofserver.Config) error {
		debug := startDebugServer(pprofCfg)
		startServer(server)
		waitForShutdown(ctx)
		gracefulShutdown(server, 15*time.Second)
		closeResources(pool, server, debug)
		return nil
	})
}

func startServer(server *http.Server) {
	go func() {
		log.Printf("terminal-core listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()
}

func startDebugServer(cfg pprofserver.Config) *http.Server {
	debug := &http.Server{
		Addr:              "127.0.0.1:6060",
		Handler:           pprofserver.Handler(cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := debug.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("pprof listen error: %v", err)
		}
	}()
	return debug
}

func waitForShutdown(ctx context.Context) {
	<-ctx.Done()
	log.Println("shutting down terminal-core...")
}

func gracefulShutdown(srv *http.Server, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

func closeResources(pool *pgxpool.Pool, server, debug *http.Server) {
	if err := server.Close(); err != nil {
		log.Printf("server close error: %v", err)
	}
	if debug != nil {
		if err := debug.Close(); err != nil {
			log.Printf("pprof server close error: %v", err)
		}
	}
	pool.Close()
}
