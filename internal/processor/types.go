// Package processor advances settlement requests: it polls the store for due
// work per action type, rebuilds the expected on-chain state, constructs and
// signs the matching transaction, and submits it.
package processor

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-tech/settlement-backend/internal/audit"
	"github.com/custodia-tech/settlement-backend/internal/chain"
	"github.com/custodia-tech/settlement-backend/internal/model"
	"github.com/custodia-tech/settlement-backend/internal/txbuilder"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE
//go:generate mockgen -destination=chain_mocks_test.go -package=$GOPACKAGE github.com/custodia-tech/settlement-backend/internal/chain Provider

type (
	// Store is the durable side the processor drives.
	Store interface {
		DuePaymentRequests(ctx context.Context, action model.PaymentAction, now time.Time, limit int) ([]model.PaymentRequest, error)
		DuePurchaseRequests(ctx context.Context, action model.PurchaseAction, now time.Time, limit int) ([]model.PurchaseRequest, error)
		DueRegistryRequests(ctx context.Context, state model.RegistryState, now time.Time, limit int) ([]model.RegistryRequest, error)

		StagePaymentTransaction(ctx context.Context, requestID uuid.UUID) (*model.TransactionRecord, error)
		StagePurchaseTransaction(ctx context.Context, requestID uuid.UUID) (*model.TransactionRecord, error)
		StageRegistryTransaction(ctx context.Context, requestID uuid.UUID) (*model.TransactionRecord, error)
		RecordSubmittedTxHash(ctx context.Context, recordID uuid.UUID, txHash string) error

		FailPaymentRequest(ctx context.Context, requestID uuid.UUID, note string) error
		FailPurchaseRequest(ctx context.Context, requestID uuid.UUID, note string) error
		FailRegistryRequest(ctx context.Context, requestID uuid.UUID, note string) error
		UnlockWallet(ctx context.Context, walletID uuid.UUID) error
	}

	// Providers hands out a ledger provider per payment source. Each source
	// carries its own RPC credential.
	Providers interface {
		For(src *model.PaymentSource) chain.Provider
	}

	// Key is a resolved signing handle for a hot wallet.
	Key interface {
		txbuilder.Signer
		Address() string
	}

	// Keys decrypts wallet material into signing handles.
	Keys interface {
		Resolve(w *model.HotWallet) (Key, error)
	}

	// Locker provides the per-action run lock.
	Locker interface {
		TryAcquire(name string) (func(), bool)
	}

	// Metrics records batch and per-request outcomes.
	Metrics interface {
		ObserveBatch(action string, err error, started time.Time)
		ObserveRequest(action, outcome string)
		ObserveTransition(kind, to string)
	}

	// Auditor receives transition events. Delivery failures are logged and
	// otherwise ignored.
	Auditor interface {
		Record(ctx context.Context, event audit.Event) error
	}
)
