package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-tech/settlement-backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StagePaymentTransaction advances the request into its "*Initiated" state
// and persists a Pending transaction record, all before submission. A crash
// between submit and response therefore leaves an observable Pending row
// for the confirmation watcher.
func (s *Store) StagePaymentTransaction(ctx context.Context, requestID uuid.UUID) (*model.TransactionRecord, error) {
	var record *model.TransactionRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req model.PaymentRequest
		if err := lockedFirst(tx, &req, requestID); err != nil {
			return err
		}
		initiated, ok := req.NextAction.Initiated()
		if !ok {
			return fmt.Errorf("%w: %s", ErrActionNotInitiable, req.NextAction)
		}
		if err := ensureNoPending(tx, req.CurrentTransactionID); err != nil {
			return err
		}

		rec, err := createPendingRecord(tx)
		if err != nil {
			return err
		}
		record = rec
		return tx.Model(&req).Updates(map[string]any{
			"next_action":            initiated,
			"current_transaction_id": rec.ID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// StagePurchaseTransaction is the purchase-side counterpart of
// StagePaymentTransaction.
func (s *Store) StagePurchaseTransaction(ctx context.Context, requestID uuid.UUID) (*model.TransactionRecord, error) {
	var record *model.TransactionRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req model.PurchaseRequest
		if err := lockedFirst(tx, &req, requestID); err != nil {
			return err
		}
		initiated, ok := req.NextAction.Initiated()
		if !ok {
			return fmt.Errorf("%w: %s", ErrActionNotInitiable, req.NextAction)
		}
		if err := ensureNoPending(tx, req.CurrentTransactionID); err != nil {
			return err
		}

		rec, err := createPendingRecord(tx)
		if err != nil {
			return err
		}
		record = rec
		return tx.Model(&req).Updates(map[string]any{
			"next_action":            initiated,
			"current_transaction_id": rec.ID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// StageRegistryTransaction advances the registry request into its
// "*Initiated" state and persists a Pending transaction record.
func (s *Store) StageRegistryTransaction(ctx context.Context, requestID uuid.UUID) (*model.TransactionRecord, error) {
	var record *model.TransactionRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req model.RegistryRequest
		if err := lockedFirst(tx, &req, requestID); err != nil {
			return err
		}
		initiated, ok := req.State.Initiated()
		if !ok {
			return fmt.Errorf("%w: %s", ErrActionNotInitiable, req.State)
		}
		if err := ensureNoPending(tx, req.CurrentTransactionID); err != nil {
			return err
		}

		rec, err := createPendingRecord(tx)
		if err != nil {
			return err
		}
		record = rec
		return tx.Model(&req).Updates(map[string]any{
			"state":                  initiated,
			"current_transaction_id": rec.ID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// RecordSubmittedTxHash fills in the hash the provider returned for a
// previously staged Pending transaction.
func (s *Store) RecordSubmittedTxHash(ctx context.Context, recordID uuid.UUID, txHash string) error {
	res := s.db.WithContext(ctx).Model(&model.TransactionRecord{}).
		Where("id = ?", recordID).
		Update("tx_hash", txHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// FailPaymentRequest transitions the request into the manual-intervention
// state, records the diagnostic note, fails any outstanding pending
// transaction, and releases the wallet lock.
func (s *Store) FailPaymentRequest(ctx context.Context, requestID uuid.UUID, note string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req model.PaymentRequest
		if err := lockedFirst(tx, &req, requestID); err != nil {
			return err
		}
		if err := failPendingRecord(tx, req.CurrentTransactionID); err != nil {
			return err
		}
		if err := tx.Model(&req).Updates(map[string]any{
			"next_action": model.PaymentWaitingForManual,
			"error_note":  note,
			"retry_count": req.RetryCount + 1,
		}).Error; err != nil {
			return err
		}
		return unlockWallet(tx, req.WalletID)
	})
}

// FailPurchaseRequest is the purchase-side counterpart of FailPaymentRequest.
func (s *Store) FailPurchaseRequest(ctx context.Context, requestID uuid.UUID, note string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req model.PurchaseRequest
		if err := lockedFirst(tx, &req, requestID); err != nil {
			return err
		}
		if err := failPendingRecord(tx, req.CurrentTransactionID); err != nil {
			return err
		}
		if err := tx.Model(&req).Updates(map[string]any{
			"next_action": model.PurchaseWaitingForManual,
			"error_note":  note,
			"retry_count": req.RetryCount + 1,
		}).Error; err != nil {
			return err
		}
		return unlockWallet(tx, req.WalletID)
	})
}

// FailRegistryRequest transitions the registry request to its failure
// terminal, records the note, and releases the wallet lock.
func (s *Store) FailRegistryRequest(ctx context.Context, requestID uuid.UUID, note string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req model.RegistryRequest
		if err := lockedFirst(tx, &req, requestID); err != nil {
			return err
		}
		if err := failPendingRecord(tx, req.CurrentTransactionID); err != nil {
			return err
		}
		if err := tx.Model(&req).Updates(map[string]any{
			"state":       req.State.FailureState(),
			"error_note":  note,
			"retry_count": req.RetryCount + 1,
		}).Error; err != nil {
			return err
		}
		return unlockWallet(tx, req.WalletID)
	})
}

// UnlockWallet clears the wallet's mutual-exclusion flag.
func (s *Store) UnlockWallet(ctx context.Context, walletID uuid.UUID) error {
	return unlockWallet(s.db.WithContext(ctx), walletID)
}

// UnlockExpiredWallets releases wallets whose lock is older than maxAge.
// Locks that old belong to runs that died without cleanup.
func (s *Store) UnlockExpiredWallets(ctx context.Context, now time.Time, maxAge time.Duration) (int64, error) {
	res := s.db.WithContext(ctx).Model(&model.HotWallet{}).
		Where("locked_at IS NOT NULL AND locked_at < ?", now.Add(-maxAge)).
		Update("locked_at", nil)
	return res.RowsAffected, res.Error
}

func lockedFirst(tx *gorm.DB, dest any, id uuid.UUID) error {
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(dest, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRequestNotFound
	}
	return err
}

func ensureNoPending(tx *gorm.DB, recordID *uuid.UUID) error {
	if recordID == nil {
		return nil
	}
	var rec model.TransactionRecord
	if err := tx.First(&rec, "id = ?", *recordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if rec.Status == model.TxPending {
		return fmt.Errorf("%w: tx %s", ErrTransactionPending, rec.ID)
	}
	return nil
}

func createPendingRecord(tx *gorm.DB) (*model.TransactionRecord, error) {
	rec := &model.TransactionRecord{
		ID:     uuid.New(),
		Status: model.TxPending,
	}
	if err := tx.Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

func failPendingRecord(tx *gorm.DB, recordID *uuid.UUID) error {
	if recordID == nil {
		return nil
	}
	return tx.Model(&model.TransactionRecord{}).
		Where("id = ? AND status = ?", *recordID, model.TxPending).
		Update("status", model.TxFailed).Error
}

func unlockWallet(tx *gorm.DB, walletID uuid.UUID) error {
	return tx.Model(&model.HotWallet{}).
		Where("id = ?", walletID).
		Update("locked_at", nil).Error
}
