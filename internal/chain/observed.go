package chain

import (
	"context"
	"time"

	"github.com/custodia-tech/settlement-backend/internal/ledger"
)

// ObservedProvider wraps a Provider with per-operation metrics.
type ObservedProvider struct {
	provider   Provider
	rpcMetrics RPCMetrics
}

// NewObservedProvider constructs an instrumented provider.
func NewObservedProvider(provider Provider, rpcMetrics RPCMetrics) *ObservedProvider {
	return &ObservedProvider{
		provider:   provider,
		rpcMetrics: rpcMetrics,
	}
}

func (o *ObservedProvider) UTXOsAtAddress(ctx context.Context, address string) (utxos []ledger.UTXO, err error) {
	started := time.Now()
	defer func() {
		o.rpcMetrics.Observe("utxos_at_address", err, started)
	}()
	return o.provider.UTXOsAtAddress(ctx, address)
}

func (o *ObservedProvider) UTXOsByTransaction(ctx context.Context, txHash string) (utxos []ledger.UTXO, err error) {
	started := time.Now()
	defer func() {
		o.rpcMetrics.Observe("utxos_by_transaction", err, started)
	}()
	return o.provider.UTXOsByTransaction(ctx, txHash)
}

func (o *ObservedProvider) Evaluate(ctx context.Context, txBytes []byte) (units ledger.ExUnits, err error) {
	started := time.Now()
	defer func() {
		o.rpcMetrics.Observe("evaluate", err, started)
	}()
	return o.provider.Evaluate(ctx, txBytes)
}

func (o *ObservedProvider) Submit(ctx context.Context, txBytes []byte) (txHash string, err error) {
	started := time.Now()
	defer func() {
		o.rpcMetrics.Observe("submit", err, started)
	}()
	return o.provider.Submit(ctx, txBytes)
}

func (o *ObservedProvider) Tip(ctx context.Context) (tip ledger.Tip, err error) {
	started := time.Now()
	defer func() {
		o.rpcMetrics.Observe("tip", err, started)
	}()
	return o.provider.Tip(ctx)
}
