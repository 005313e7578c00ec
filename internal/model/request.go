package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TransactionRecord is the outstanding ledger transaction of a request.
// At most one record with status Pending may exist per request; it is
// persisted before submission so a crash between submit and response is still
// observable by the confirmation watcher.
type TransactionRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TxHash    string    `gorm:"size:64;index"`
	Status    TxStatus  `gorm:"size:16;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaymentRequest is an escrowed payment owed to a selling wallet.
type PaymentRequest struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	PaymentSourceID uuid.UUID `gorm:"type:uuid;index"`
	WalletID        uuid.UUID `gorm:"type:uuid;index"`

	BlockchainIdentifier string `gorm:"size:128;uniqueIndex"`
	AgentIdentifier      string `gorm:"size:128;index"`
	BuyerVkeyHash        string `gorm:"size:64"`
	BuyerAddress         string `gorm:"size:128"`
	InputHash            string `gorm:"size:64"`
	ResultHash           string `gorm:"size:64"`
	AmountLovelace       int64  `gorm:"not null"`

	// Wall-clock bounds and their on-chain unix-second twins. Both
	// representations must stay consistent; see NormalizeTimeFields.
	PayByTime                 time.Time
	PayByUnix                 int64
	SubmitResultTime          time.Time
	SubmitResultUnix          int64
	UnlockTime                time.Time
	UnlockUnix                int64
	ExternalDisputeUnlockTime time.Time
	ExternalDisputeUnlockUnix int64
	CollateralReturnLovelace  int64
	EscrowTxHash              string `gorm:"size:64"`
	OnChainState              OnChainState
	NextAction                PaymentAction `gorm:"size:48;index"`
	ErrorNote                 string        `gorm:"type:text"`
	RetryCount                int
	CurrentTransactionID      *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time

	PaymentSource      PaymentSource      `gorm:"foreignKey:PaymentSourceID"`
	Wallet             HotWallet          `gorm:"foreignKey:WalletID"`
	CurrentTransaction *TransactionRecord `gorm:"foreignKey:CurrentTransactionID"`
}

// PurchaseRequest is a purchase funded by a purchasing wallet, refundable
// through the dispute path.
type PurchaseRequest struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	PaymentSourceID uuid.UUID `gorm:"type:uuid;index"`
	WalletID        uuid.UUID `gorm:"type:uuid;index"`

	BlockchainIdentifier string `gorm:"size:128;uniqueIndex"`
	AgentIdentifier      string `gorm:"size:128;index"`
	SellerVkeyHash       string `gorm:"size:64"`
	SellerAddress        string `gorm:"size:128"`
	InputHash            string `gorm:"size:64"`
	ResultHash           string `gorm:"size:64"`
	AmountLovelace       int64  `gorm:"not null"`

	PayByTime                 time.Time
	PayByUnix                 int64
	SubmitResultTime          time.Time
	SubmitResultUnix          int64
	UnlockTime                time.Time
	UnlockUnix                int64
	ExternalDisputeUnlockTime time.Time
	ExternalDisputeUnlockUnix int64
	CollateralReturnLovelace  int64
	EscrowTxHash              string `gorm:"size:64"`
	OnChainState              OnChainState
	NextAction                PurchaseAction `gorm:"size:48;index"`
	ErrorNote                 string         `gorm:"type:text"`
	RetryCount                int
	CurrentTransactionID      *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time

	PaymentSource      PaymentSource      `gorm:"foreignKey:PaymentSourceID"`
	Wallet             HotWallet          `gorm:"foreignKey:WalletID"`
	CurrentTransaction *TransactionRecord `gorm:"foreignKey:CurrentTransactionID"`
}

// RegistryRequest is a service identity to be minted or burned on chain.
// AgentIdentifier is the policy id + asset name concatenation once minted.
type RegistryRequest struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	PaymentSourceID uuid.UUID `gorm:"type:uuid;index"`
	WalletID        uuid.UUID `gorm:"type:uuid;index"`

	Name                 string        `gorm:"size:128"`
	APIBaseURL           string        `gorm:"size:256"`
	AssetName            string        `gorm:"size:64;index"`
	AgentIdentifier      string        `gorm:"size:128;index"`
	State                RegistryState `gorm:"size:32;index"`
	ErrorNote            string        `gorm:"type:text"`
	RetryCount           int
	CurrentTransactionID *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time

	PaymentSource      PaymentSource      `gorm:"foreignKey:PaymentSourceID"`
	Wallet             HotWallet          `gorm:"foreignKey:WalletID"`
	CurrentTransaction *TransactionRecord `gorm:"foreignKey:CurrentTransactionID"`
}

// NormalizeTimeFields rewrites the unix-second twins from the wall-clock
// fields so both representations agree.
func (r *PaymentRequest) NormalizeTimeFields() {
	r.PayByUnix = r.PayByTime.Unix()
	r.SubmitResultUnix = r.SubmitResultTime.Unix()
	r.UnlockUnix = r.UnlockTime.Unix()
	r.ExternalDisputeUnlockUnix = r.ExternalDisputeUnlockTime.Unix()
}

// NormalizeTimeFields rewrites the unix-second twins from the wall-clock
// fields so both representations agree.
func (r *PurchaseRequest) NormalizeTimeFields() {
	r.PayByUnix = r.PayByTime.Unix()
	r.SubmitResultUnix = r.SubmitResultTime.Unix()
	r.UnlockUnix = r.UnlockTime.Unix()
	r.ExternalDisputeUnlockUnix = r.ExternalDisputeUnlockTime.Unix()
}

// ValidateTimeFields reports the first wall-clock/unix pair that diverged.
func (r *PaymentRequest) ValidateTimeFields() error {
	return validatePairs([]timePair{
		{"payByTime", r.PayByTime, r.PayByUnix},
		{"submitResultTime", r.SubmitResultTime, r.SubmitResultUnix},
		{"unlockTime", r.UnlockTime, r.UnlockUnix},
		{"externalDisputeUnlockTime", r.ExternalDisputeUnlockTime, r.ExternalDisputeUnlockUnix},
	})
}

// ValidateTimeFields reports the first wall-clock/unix pair that diverged.
func (r *PurchaseRequest) ValidateTimeFields() error {
	return validatePairs([]timePair{
		{"payByTime", r.PayByTime, r.PayByUnix},
		{"submitResultTime", r.SubmitResultTime, r.SubmitResultUnix},
		{"unlockTime", r.UnlockTime, r.UnlockUnix},
		{"externalDisputeUnlockTime", r.ExternalDisputeUnlockTime, r.ExternalDisputeUnlockUnix},
	})
}

type timePair struct {
	name string
	wall time.Time
	unix int64
}

func validatePairs(pairs []timePair) error {
	for _, p := range pairs {
		if p.wall.Unix() != p.unix {
			return fmt.Errorf("time field %s diverged: wall=%d unix=%d", p.name, p.wall.Unix(), p.unix)
		}
	}
	return nil
}
