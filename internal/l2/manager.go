package l2

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Manager keeps an in-memory registry of head sessions keyed by head
// identifier. Creation is single-flight per key so concurrent callers for
// the same head share one connect attempt.
type Manager struct {
	logger  *zap.Logger
	factory TransportFactory

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	headID    string
	transport Transport

	once       sync.Once
	connectErr error
}

// NewManager builds a Manager. A nil factory defaults to the simulated
// transport.
func NewManager(factory TransportFactory, logger *zap.Logger) *Manager {
	if factory == nil {
		factory = func(headID string) Transport {
			return NewSimulatedTransport()
		}
	}
	return &Manager{
		logger:   logger.Named("l2"),
		factory:  factory,
		sessions: make(map[string]*session),
	}
}

// GetOrCreate returns the live session for headID, creating and connecting
// it if absent. A failed connect evicts the entry so a later call can retry.
func (m *Manager) GetOrCreate(ctx context.Context, cfg Config) (Transport, error) {
	if cfg.HeadID == "" {
		return nil, errors.New("head identifier is required")
	}

	m.mu.Lock()
	s, ok := m.sessions[cfg.HeadID]
	if !ok {
		s = &session{headID: cfg.HeadID, transport: m.factory(cfg.HeadID)}
		m.sessions[cfg.HeadID] = s
	}
	m.mu.Unlock()

	s.once.Do(func() {
		m.logger.Info("connecting head session", zap.String("head_id", s.headID))
		s.connectErr = s.transport.Connect(ctx, cfg)
	})
	if s.connectErr != nil {
		m.mu.Lock()
		if m.sessions[cfg.HeadID] == s {
			delete(m.sessions, cfg.HeadID)
		}
		m.mu.Unlock()
		return nil, fmt.Errorf("connect head %s: %w", cfg.HeadID, s.connectErr)
	}

	return s.transport, nil
}

// Submit forwards a signed transaction through the session for cfg.HeadID.
// Missing sessions, sessions that are not open, and transport failures all
// come back as a structured rejection with Accepted false; the error return
// is reserved for invalid arguments.
func (m *Manager) Submit(ctx context.Context, signedTx []byte, cfg Config) (SubmitResult, error) {
	if len(signedTx) == 0 {
		return SubmitResult{}, errors.New("signed transaction is required")
	}

	m.mu.Lock()
	s, ok := m.sessions[cfg.HeadID]
	m.mu.Unlock()
	if !ok {
		return SubmitResult{Reason: fmt.Sprintf("no session for head %s", cfg.HeadID)}, nil
	}

	if status := s.transport.Status(); status != StatusOpen {
		return SubmitResult{Reason: fmt.Sprintf("head %s is %s, not open", cfg.HeadID, status)}, nil
	}

	hash, err := s.transport.Submit(ctx, signedTx)
	if err != nil {
		m.logger.Warn("head submission rejected",
			zap.String("head_id", cfg.HeadID),
			zap.Error(err),
		)
		return SubmitResult{Reason: err.Error()}, nil
	}

	return SubmitResult{TxHash: hash, Accepted: true}, nil
}

// Remove evicts the session for headID and closes its transport. Removing
// an unknown head is a no-op.
func (m *Manager) Remove(headID string) {
	m.mu.Lock()
	s, ok := m.sessions[headID]
	delete(m.sessions, headID)
	m.mu.Unlock()
	if !ok {
		return
	}

	if err := s.transport.Close(); err != nil {
		m.logger.Warn("close head session", zap.String("head_id", headID), zap.Error(err))
	}
}
