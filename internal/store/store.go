// Package store is the durable side of the settlement service: request rows,
// wallet locks, and the state transitions the batch processor persists.
package store

import (
	"errors"
	"fmt"

	"github.com/custodia-tech/settlement-backend/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// ErrRequestNotFound indicates the supplied request identifier was unknown.
	ErrRequestNotFound = errors.New("store: request not found")
	// ErrActionNotInitiable is returned when the request's next action has no
	// in-flight counterpart, so no transaction may be staged for it.
	ErrActionNotInitiable = errors.New("store: action cannot be initiated")
	// ErrTransactionPending is returned when a request already has an
	// outstanding pending transaction.
	ErrTransactionPending = errors.New("store: transaction already pending")
)

// Store wraps the relational database.
type Store struct {
	db *gorm.DB
}

// New wraps an existing gorm handle. Tests use this with an in-memory
// sqlite database.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Open connects to postgres.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return &Store{db: db}, nil
}

// AutoMigrate creates or updates the schema for all persisted models.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(
		&model.PaymentSource{},
		&model.HotWallet{},
		&model.TransactionRecord{},
		&model.PaymentRequest{},
		&model.PurchaseRequest{},
		&model.RegistryRequest{},
	)
}

// DB exposes the underlying handle for test seeding.
func (s *Store) DB() *gorm.DB {
	return s.db
}
