// Command synanalyze-queue-worker drains the analysis:jobs Redis stream,
// running the core pipeline against each submitted source file and
// publishing its verdict to analysis:results.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/holla2040/synanalyze/internal/queue"
	"github.com/holla2040/synanalyze/internal/store"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address")
	dbPath := flag.String("db", "synanalyze.db", "SQLite database path")
	flag.Parse()

	rdb := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer rdb.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rdb.Ping(ctx).Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to Redis at %s: %v\n", *redisAddr, err)
		os.Exit(2)
	}

	st, err := store.New(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database %s: %v\n", *dbPath, err)
		os.Exit(2)
	}
	defer st.Close()

	worker := queue.NewWorker(rdb, st)
	if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "worker stopped: %v\n", err)
		os.Exit(1)
	}
}
