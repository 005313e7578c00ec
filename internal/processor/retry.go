package processor

import (
	"context"
	"errors"

	"github.com/cenkalti/backoff/v4"

	"github.com/custodia-tech/settlement-backend/internal/reconcile"
	"github.com/custodia-tech/settlement-backend/internal/selection"
	"github.com/custodia-tech/settlement-backend/internal/store"
	"github.com/custodia-tech/settlement-backend/internal/wallet"
)

// retry runs op with exponential backoff, bounded by the configured attempt
// count. Errors classified as permanent abort immediately.
func (p *Processor) retry(ctx context.Context, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.cfg.RetryInitialInterval
	b.Multiplier = p.cfg.RetryMultiplier
	b.MaxInterval = p.cfg.RetryMaxInterval
	b.MaxElapsedTime = 0

	wrapped := func() error {
		err := op()
		if err != nil && permanent(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(p.cfg.RetryAttempts-1)), ctx)
	return backoff.Retry(wrapped, policy)
}

// permanent classifies the error taxonomy: validation errors, missing
// UTXOs/datums, and state divergence must never be retried because a retry
// could act on the wrong escrow state. Everything else is assumed to be a
// transient RPC or store hiccup.
func permanent(err error) bool {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, reconcile.ErrEscrowUTXONotFound),
		errors.Is(err, selection.ErrNoSuitableUTXO),
		errors.Is(err, wallet.ErrVkeyMismatch),
		errors.Is(err, store.ErrActionNotInitiable),
		errors.Is(err, store.ErrTransactionPending),
		errors.Is(err, store.ErrRequestNotFound),
		errors.Is(err, context.Canceled):
		return true
	}
	return false
}
