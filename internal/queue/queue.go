// Package queue distributes analysis jobs over Redis streams using an
// XADD-then-poll-XREAD correlation pattern.
package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/holla2040/synanalyze/internal/analysis"
	"github.com/holla2040/synanalyze/internal/store"
)

const (
	jobsStream    = "analysis:jobs"
	resultsStream = "analysis:results"
)

// Result is one completed analysis, addressed by CorrelationID.
type Result struct {
	CorrelationID string
	Verdict       string
	Diagnostic    string
}

// Producer submits source files for analysis and waits for results.
type Producer struct {
	rdb *redis.Client
}

func NewProducer(rdb *redis.Client) *Producer {
	return &Producer{rdb: rdb}
}

// Submit XADDs a job naming sourcePath to the jobs stream and returns a
// correlation ID a worker's result will carry.
func (p *Producer) Submit(ctx context.Context, sourcePath string) (string, error) {
	correlationID := uuid.NewString()
	_, err := p.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: jobsStream,
		Values: map[string]interface{}{
			"correlation_id": correlationID,
			"source_path":    sourcePath,
		},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("XADD %s: %w", jobsStream, err)
	}
	return correlationID, nil
}

// Await blocks, XREADing the results stream with a timeout, until the
// result with correlationID arrives.
func (p *Producer) Await(ctx context.Context, correlationID string, timeout time.Duration) (*Result, error) {
	readCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	lastID := "0-0"
	for {
		streams, err := p.rdb.XRead(readCtx, &redis.XReadArgs{
			Streams: []string{resultsStream, lastID},
			Count:   10,
			Block:   timeout,
		}).Result()
		if err != nil {
			return nil, fmt.Errorf("XREAD %s: %w", resultsStream, err)
		}

		for _, stream := range streams {
			for _, entry := range stream.Messages {
				lastID = entry.ID
				if entry.Values["correlation_id"] != correlationID {
					continue
				}
				verdict, _ := entry.Values["verdict"].(string)
				diagnostic, _ := entry.Values["diagnostic"].(string)
				return &Result{CorrelationID: correlationID, Verdict: verdict, Diagnostic: diagnostic}, nil
			}
		}
	}
}

// Worker consumes jobs, runs the core pipeline, and publishes results.
type Worker struct {
	rdb   *redis.Client
	store *store.Store
}

func NewWorker(rdb *redis.Client, st *store.Store) *Worker {
	return &Worker{rdb: rdb, store: st}
}

// Run polls the jobs stream until ctx is cancelled, analyzing each job and
// recording the outcome.
func (w *Worker) Run(ctx context.Context) error {
	lastID := "0-0"
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		streams, err := w.rdb.XRead(ctx, &redis.XReadArgs{
			Streams: []string{jobsStream, lastID},
			Count:   10,
			Block:   5 * time.Second,
		}).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return fmt.Errorf("XREAD %s: %w", jobsStream, err)
		}

		for _, stream := range streams {
			for _, entry := range stream.Messages {
				lastID = entry.ID
				if err := w.process(ctx, entry.Values); err != nil {
					return err
				}
			}
		}
	}
}

func (w *Worker) process(ctx context.Context, values map[string]interface{}) error {
	correlationID, _ := values["correlation_id"].(string)
	sourcePath, _ := values["source_path"].(string)

	runID := uuid.NewString()
	if err := w.store.StartRun(runID, sourcePath); err != nil {
		return fmt.Errorf("record run start: %w", err)
	}

	var verdict, diagnosticText string
	res, err := analysis.RunFile(sourcePath)
	if err != nil {
		verdict, diagnosticText = "error", err.Error()
	} else {
		verdict, diagnosticText = string(res.Verdict), res.Diagnostic
	}

	if err := w.store.RecordRun(runID, verdict, diagnosticText); err != nil {
		return fmt.Errorf("record run result: %w", err)
	}

	_, pubErr := w.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: resultsStream,
		Values: map[string]interface{}{
			"correlation_id": correlationID,
			"verdict":        verdict,
			"diagnostic":     diagnosticText,
		},
	}).Result()
	if pubErr != nil {
		return fmt.Errorf("XADD %s: %w", resultsStream, pubErr)
	}
	return nil
}
