package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-tech/settlement-backend/internal/ledger"
)

// ErrEscrowUTXONotFound means no output of the transaction holds a datum
// exactly matching the expected contract state. The caller must treat this
// as a hard failure; the views have diverged and silent reconciliation is
// not permitted.
var ErrEscrowUTXONotFound = errors.New("escrow UTXO not found")

// FindEscrowUTXO fetches the outputs produced by txHash and returns the one
// whose decoded datum exactly matches expected. Outputs without a datum, or
// with a datum that does not decode as an escrow datum, are skipped.
func FindEscrowUTXO(ctx context.Context, fetcher UTXOFetcher, txHash string, expected ContractState) (ledger.UTXO, error) {
	utxos, err := fetcher.UTXOsByTransaction(ctx, txHash)
	if err != nil {
		return ledger.UTXO{}, fmt.Errorf("fetch UTXOs of tx %s: %w", txHash, err)
	}

	for _, u := range utxos {
		if len(u.InlineDatum) == 0 {
			continue
		}
		datum, err := ledger.DecodeEscrowDatum(u.InlineDatum)
		if err != nil {
			continue
		}
		decoded, err := FromDatum(datum)
		if err != nil {
			continue
		}
		if decoded.Equal(expected) {
			return u, nil
		}
	}
	return ledger.UTXO{}, fmt.Errorf("tx %s: %w", txHash, ErrEscrowUTXONotFound)
}
