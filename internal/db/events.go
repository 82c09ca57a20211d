package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-pulse/internal/types"
)

// SaveATSEvent stores a normalized ATS event. Duplicate idempotency keys are
// ignored; the returned bool reports whether a new row was inserted.
func (db *DB) SaveATSEvent(ctx context.Context, event *types.ATSEvent) (bool, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return false, fmt.Errorf("failed to marshal event: %w", err)
	}

	result, err := db.pool.Exec(ctx,
		`INSERT INTO ats_events (event_id, idempotency_key, candidate_token, stage, payload)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (idempotency_key) DO NOTHING`,
		event.EventID, event.IdempotencyKey, event.CandidateToken, event.Stage, payload,
	)
	if err != nil {
		return false, fmt.Errorf("failed to save event %s: %w", event.EventID, err)
	}
	return result.RowsAffected() > 0, nil
}

// DLQItem is a failed outbound event awaiting retry
type DLQItem struct {
	ID        uuid.UUID `json:"id"`
	DayKey    string    `json:"day_key"`
	Payload   []byte    `json:"payload"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// EnqueueDLQ records a failed event delivery under its day key
func (db *DB) EnqueueDLQ(ctx context.Context, dayKey string, payload []byte, reason string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO ats_dlq (day_key, payload, reason)
		 VALUES ($1, $2, $3)`,
		dayKey, payload, reason,
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue dlq item: %w", err)
	}
	return nil
}

// ListDLQ retrieves pending dead-letter items for a day, oldest first
func (db *DB) ListDLQ(ctx context.Context, dayKey string, limit int) ([]DLQItem, error) {
	if limit == 0 {
		limit = 100
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, day_key, payload, reason, created_at
		 FROM ats_dlq WHERE day_key = $1 AND archived_at IS NULL
		 ORDER BY created_at ASC LIMIT $2`,
		dayKey, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list dlq items: %w", err)
	}
	defer rows.Close()

	var items []DLQItem
	for rows.Next() {
		var item DLQItem
		if err := rows.Scan(&item.ID, &item.DayKey, &item.Payload, &item.Reason, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan dlq item: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

// ArchiveDLQ marks a dead-letter item as delivered
func (db *DB) ArchiveDLQ(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE ats_dlq SET archived_at = NOW() WHERE id = $1 AND archived_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to archive dlq item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("dlq item not found: %s", id)
	}
	return nil
}

// DLQStat is the pending item count for one day
type DLQStat struct {
	DayKey  string `json:"day_key"`
	Pending int    `json:"pending"`
}

// CountDLQ reports pending dead-letter counts grouped by day, newest first
func (db *DB) CountDLQ(ctx context.Context) ([]DLQStat, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT day_key, COUNT(*) FROM ats_dlq
		 WHERE archived_at IS NULL
		 GROUP BY day_key ORDER BY day_key DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count dlq items: %w", err)
	}
	defer rows.Close()

	var stats []DLQStat
	for rows.Next() {
		var stat DLQStat
		if err := rows.Scan(&stat.DayKey, &stat.Pending); err != nil {
			return nil, fmt.Errorf("failed to scan dlq stat: %w", err)
		}
		stats = append(stats, stat)
	}
	return stats, nil
}
