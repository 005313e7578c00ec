// Package l2 manages second-layer settlement head sessions. The manager
// enforces at-most-one live session per head identifier and gates every
// submission on the session's operational status.
package l2

import (
	"context"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// Status is the operational state of a head session.
type Status string

const (
	StatusConnecting Status = "connecting"
	StatusOpen       Status = "open"
	StatusClosed     Status = "closed"
)

// Config describes the head a session should attach to.
type Config struct {
	Endpoint string
	HeadID   string
}

// SubmitResult reports the outcome of forwarding a signed transaction.
// A rejected submission carries the reason instead of an error so callers
// can distinguish protocol rejection from infrastructure failure.
type SubmitResult struct {
	TxHash   string
	Accepted bool
	Reason   string
}

// Transport drives the wire protocol of a single head session. The real
// protocol is not implemented yet; SimulatedTransport stands in behind
// the same contract.
type Transport interface {
	Connect(ctx context.Context, cfg Config) error
	Status() Status
	Submit(ctx context.Context, signedTx []byte) (string, error)
	Close() error
}

// TransportFactory builds the transport for a new session.
type TransportFactory func(headID string) Transport
