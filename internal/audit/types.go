// Package audit persists request state transitions to ClickHouse so every
// settlement decision stays reconstructible after the fact.
package audit

import (
	"context"
	"time"

	"github.com/custodia-tech/settlement-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE
//go:generate mockgen -destination=driver_mocks_test.go -package=$GOPACKAGE github.com/ClickHouse/clickhouse-go/v2/lib/driver Conn,Batch

type (
	// Metrics records metrics for repository operations.
	Metrics interface {
		Observe(operation string, network model.Network, err error, started time.Time)
	}

	// Sink accepts transition events for asynchronous persistence.
	Sink interface {
		Record(ctx context.Context, event Event) error
	}
)

// Request kinds recorded in the audit trail.
const (
	KindPayment  = "payment"
	KindPurchase = "purchase"
	KindRegistry = "registry"
)

// Event is one request state transition.
type Event struct {
	Network              model.Network
	Kind                 string
	RequestID            string
	BlockchainIdentifier string
	FromState            string
	ToState              string
	TxHash               string
	Note                 string
	OccurredAt           time.Time
}
