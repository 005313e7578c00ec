package model

import (
	"time"

	"github.com/google/uuid"
)

// WalletRole describes what a hot wallet is used for.
type WalletRole string

const (
	WalletPurchasing WalletRole = "Purchasing"
	WalletSelling    WalletRole = "Selling"
	WalletCollateral WalletRole = "Collateral"
)

// PaymentSource is a configured escrow contract deployment. Rows are created
// once per network/contract version by the operator and are read-only to the
// settlement core; the chain-sync subsystem owns LastSyncedTxHash and
// SyncInProgress.
type PaymentSource struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Network         Network   `gorm:"size:16;index"`
	PolicyID        string    `gorm:"size:64;index"`
	EscrowAddress   string    `gorm:"size:128"`
	RPCCredential   string    `gorm:"size:128"`
	FeeRatePermille int64     `gorm:"not null"`
	FeeReceiver     string    `gorm:"size:128"`
	AdminWallets    string    `gorm:"type:text"`
	LastSyncedTx    string    `gorm:"size:64"`
	SyncInProgress  bool
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Wallets []HotWallet `gorm:"foreignKey:PaymentSourceID"`
}

// HotWallet is a managed signing wallet belonging to a payment source.
// LockedAt doubles as a distributed mutual-exclusion flag: a wallet with
// LockedAt set must not be picked up by a second concurrent run, and the
// batch processor alone clears it.
type HotWallet struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PaymentSourceID   uuid.UUID  `gorm:"type:uuid;index"`
	Role              WalletRole `gorm:"size:16;index"`
	Address           string     `gorm:"size:128"`
	VkeyHash          string     `gorm:"size:64;index"`
	EncryptedMnemonic string     `gorm:"type:text"`
	LockedAt          *time.Time `gorm:"index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Locked reports whether the wallet is currently held by a run.
func (w *HotWallet) Locked() bool {
	return w.LockedAt != nil
}
