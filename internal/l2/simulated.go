package l2

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// SimulatedTransport is the inert stand-in used until the head protocol is
// implemented. Connecting opens the session immediately and submissions are
// accepted with a hash derived from the transaction bytes, so results are
// deterministic across runs.
type SimulatedTransport struct {
	mu     sync.Mutex
	status Status
}

// NewSimulatedTransport returns a transport in the connecting state.
func NewSimulatedTransport() *SimulatedTransport {
	return &SimulatedTransport{status: StatusConnecting}
}

func (t *SimulatedTransport) Connect(ctx context.Context, _ Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = StatusOpen
	return nil
}

func (t *SimulatedTransport) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *SimulatedTransport) Submit(ctx context.Context, signedTx []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	sum := sha256.Sum256(signedTx)
	return hex.EncodeToString(sum[:]), nil
}

func (t *SimulatedTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = StatusClosed
	return nil
}
