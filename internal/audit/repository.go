package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/custodia-tech/settlement-backend/internal/model"
)

// Repository stores audit events in ClickHouse.
type Repository struct {
	conn    clickhouse.Conn
	metrics Metrics
}

// NewRepository opens a ClickHouse connection from the DSN.
func NewRepository(dsn string, metrics Metrics) (*Repository, error) {
	if dsn == "" {
		return nil, errors.New("clickhouse dsn is required")
	}

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	return &Repository{conn: conn, metrics: metrics}, nil
}

// InsertEvents stores transition events in ClickHouse.
func (r *Repository) InsertEvents(ctx context.Context, events []Event) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_events", firstNetwork(events), err, start)
	}()

	if len(events) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertEventsQuery())
	if err != nil {
		return fmt.Errorf("prepare events batch: %w", err)
	}

	for _, event := range events {
		if err = batch.Append(
			string(event.Network),
			event.Kind,
			event.RequestID,
			event.BlockchainIdentifier,
			event.FromState,
			event.ToState,
			event.TxHash,
			event.Note,
			event.OccurredAt,
		); err != nil {
			return fmt.Errorf("append event: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert events: %w", err)
	}
	return nil
}

func insertEventsQuery() string {
	return `
INSERT INTO settlement_transition_events (
	network,
	kind,
	request_id,
	blockchain_identifier,
	from_state,
	to_state,
	tx_hash,
	note,
	occurred_at
) VALUES`
}

func firstNetwork(events []Event) model.Network {
	if len(events) == 0 {
		return ""
	}
	return events[0].Network
}
