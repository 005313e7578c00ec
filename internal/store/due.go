package store

import (
	"context"
	"time"

	"github.com/custodia-tech/settlement-backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The due queries below each run as a single transaction that selects
// matching requests and atomically marks their wallets locked, so no two
// concurrent runs can pick up the same wallet. A request whose wallet was
// grabbed in the meantime (or by an earlier request in the same batch) is
// silently skipped; the next scheduled run picks it up.

// DuePaymentRequests returns payment requests due for the given action with
// wallet, source, and current transaction eagerly loaded, locking each
// returned request's wallet.
func (s *Store) DuePaymentRequests(ctx context.Context, action model.PaymentAction, now time.Time, limit int) ([]model.PaymentRequest, error) {
	var due []model.PaymentRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.
			Preload("PaymentSource").
			Preload("Wallet").
			Preload("CurrentTransaction").
			Where("next_action = ?", action).
			Where("wallet_id IN (?)", unlockedWallets(tx)).
			Where("current_transaction_id IS NULL OR current_transaction_id NOT IN (?)", pendingTransactions(tx))
		q = paymentDueScope(q, action, now)
		if limit > 0 {
			q = q.Limit(limit)
		}

		var candidates []model.PaymentRequest
		if err := q.Find(&candidates).Error; err != nil {
			return err
		}

		for i := range candidates {
			locked, err := lockWallet(tx, candidates[i].WalletID, now)
			if err != nil {
				return err
			}
			if !locked {
				continue
			}
			candidates[i].Wallet.LockedAt = &now
			due = append(due, candidates[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return due, nil
}

// DuePurchaseRequests is the purchase-side counterpart of DuePaymentRequests.
func (s *Store) DuePurchaseRequests(ctx context.Context, action model.PurchaseAction, now time.Time, limit int) ([]model.PurchaseRequest, error) {
	var due []model.PurchaseRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.
			Preload("PaymentSource").
			Preload("Wallet").
			Preload("CurrentTransaction").
			Where("next_action = ?", action).
			Where("wallet_id IN (?)", unlockedWallets(tx)).
			Where("current_transaction_id IS NULL OR current_transaction_id NOT IN (?)", pendingTransactions(tx))
		q = purchaseDueScope(q, action, now)
		if limit > 0 {
			q = q.Limit(limit)
		}

		var candidates []model.PurchaseRequest
		if err := q.Find(&candidates).Error; err != nil {
			return err
		}

		for i := range candidates {
			locked, err := lockWallet(tx, candidates[i].WalletID, now)
			if err != nil {
				return err
			}
			if !locked {
				continue
			}
			candidates[i].Wallet.LockedAt = &now
			due = append(due, candidates[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return due, nil
}

// DueRegistryRequests returns registry requests in the given state, locking
// each returned request's wallet.
func (s *Store) DueRegistryRequests(ctx context.Context, state model.RegistryState, now time.Time, limit int) ([]model.RegistryRequest, error) {
	var due []model.RegistryRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.
			Preload("PaymentSource").
			Preload("Wallet").
			Preload("CurrentTransaction").
			Where("state = ?", state).
			Where("wallet_id IN (?)", unlockedWallets(tx)).
			Where("current_transaction_id IS NULL OR current_transaction_id NOT IN (?)", pendingTransactions(tx))
		if limit > 0 {
			q = q.Limit(limit)
		}

		var candidates []model.RegistryRequest
		if err := q.Find(&candidates).Error; err != nil {
			return err
		}

		for i := range candidates {
			locked, err := lockWallet(tx, candidates[i].WalletID, now)
			if err != nil {
				return err
			}
			if !locked {
				continue
			}
			candidates[i].Wallet.LockedAt = &now
			due = append(due, candidates[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return due, nil
}

func unlockedWallets(tx *gorm.DB) *gorm.DB {
	return tx.Model(&model.HotWallet{}).Select("id").Where("locked_at IS NULL")
}

// pendingTransactions feeds the in-SQL exclusion of requests with an
// in-flight transaction, so Limit only counts rows the sweep can act on.
func pendingTransactions(tx *gorm.DB) *gorm.DB {
	return tx.Model(&model.TransactionRecord{}).Select("id").Where("status = ?", model.TxPending)
}

func lockWallet(tx *gorm.DB, walletID uuid.UUID, now time.Time) (bool, error) {
	// The guarded UPDATE is the compare-and-set: it takes the row lock and
	// affects zero rows when another run already holds the wallet.
	res := tx.Model(&model.HotWallet{}).
		Where("id = ? AND locked_at IS NULL", walletID).
		Update("locked_at", now)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Time-bound predicates per action. Actions without a ledger time bound are
// due as soon as they are requested.
func paymentDueScope(q *gorm.DB, action model.PaymentAction, now time.Time) *gorm.DB {
	switch action {
	case model.PaymentWithdrawRequested:
		return q.Where("unlock_time <= ?", now)
	}
	return q
}

func purchaseDueScope(q *gorm.DB, action model.PurchaseAction, now time.Time) *gorm.DB {
	switch action {
	case model.PurchaseFundsLockingRequested:
		// Locking must still fit inside the pay-by window.
		return q.Where("pay_by_time > ?", now)
	case model.PurchaseSetRefundRequestedRequested:
		return q.Where("submit_result_time <= ?", now)
	case model.PurchaseWithdrawRefundRequested:
		return q.Where("unlock_time <= ?", now)
	}
	return q
}
