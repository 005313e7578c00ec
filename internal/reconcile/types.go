package reconcile

import (
	"context"

	"github.com/custodia-tech/settlement-backend/internal/ledger"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// UTXOFetcher returns the outputs produced by a transaction.
	UTXOFetcher interface {
		UTXOsByTransaction(ctx context.Context, txHash string) ([]ledger.UTXO, error)
	}
)
