// Package forward delivers normalized ATS events to the downstream webhook
// and drains the dead-letter queue.
package forward

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/candidate-pulse/internal/db"
	"github.com/jonathan/candidate-pulse/internal/types"
)

const (
	maxAttempts    = 3
	retryBackoff   = 250 * time.Millisecond
	drainWorkers   = 4
	drainBatchSize = 100
)

// Queue is the dead-letter store the drainer reads from. *db.DB satisfies it.
type Queue interface {
	ListDLQ(ctx context.Context, dayKey string, limit int) ([]db.DLQItem, error)
	ArchiveDLQ(ctx context.Context, id uuid.UUID) error
}

// Forwarder posts ATS events to a downstream webhook URL
type Forwarder struct {
	client *http.Client
	url    string
}

// New creates a Forwarder for the given webhook URL
func New(url string) *Forwarder {
	return &Forwarder{
		client: &http.Client{Timeout: 10 * time.Second},
		url:    url,
	}
}

// NewWithClient creates a Forwarder using a caller-provided HTTP client
func NewWithClient(url string, client *http.Client) *Forwarder {
	return &Forwarder{client: client, url: url}
}

// Forward delivers one event, retrying transient failures
func (f *Forwarder) Forward(ctx context.Context, event *types.ATSEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return f.post(ctx, payload)
}

func (f *Forwarder) post(ctx context.Context, payload []byte) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBackoff * time.Duration(attempt-1)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := f.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}
		lastErr = fmt.Errorf("webhook returned status %d", resp.StatusCode)

		// Client errors other than 429 will not succeed on retry
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			break
		}
	}
	return fmt.Errorf("failed to deliver event after %d attempts: %w", maxAttempts, lastErr)
}

// DrainResult summarizes one dead-letter drain pass
type DrainResult struct {
	Attempted int `json:"attempted"`
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
}

// DrainDLQ re-posts pending dead-letter items for a day and archives the ones
// that deliver. Items are retried concurrently with a bounded worker count.
func (f *Forwarder) DrainDLQ(ctx context.Context, queue Queue, dayKey string) (DrainResult, error) {
	items, err := queue.ListDLQ(ctx, dayKey, drainBatchSize)
	if err != nil {
		return DrainResult{}, fmt.Errorf("failed to list dlq items: %w", err)
	}

	result := DrainResult{Attempted: len(items)}
	if len(items) == 0 {
		return result, nil
	}

	delivered := make([]bool, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(drainWorkers)
	for i, item := range items {
		g.Go(func() error {
			if err := f.post(gctx, item.Payload); err != nil {
				return nil // leave the item pending for the next pass
			}
			if err := queue.ArchiveDLQ(gctx, item.ID); err != nil {
				return fmt.Errorf("failed to archive delivered item %s: %w", item.ID, err)
			}
			delivered[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return DrainResult{}, err
	}

	for _, ok := range delivered {
		if ok {
			result.Delivered++
		} else {
			result.Failed++
		}
	}
	return result, nil
}
