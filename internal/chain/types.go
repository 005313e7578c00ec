// Package chain talks to the RPC/ledger provider: UTXO queries, draft
// evaluation, and transaction submission.
package chain

import (
	"context"
	"time"

	"github.com/custodia-tech/settlement-backend/internal/ledger"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Provider is the full capability set the settlement core needs from
	// the ledger side.
	Provider interface {
		UTXOsAtAddress(ctx context.Context, address string) ([]ledger.UTXO, error)
		UTXOsByTransaction(ctx context.Context, txHash string) ([]ledger.UTXO, error)
		Evaluate(ctx context.Context, txBytes []byte) (ledger.ExUnits, error)
		Submit(ctx context.Context, txBytes []byte) (string, error)
		Tip(ctx context.Context) (ledger.Tip, error)
	}

	// RPCMetrics records metrics for provider calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)
