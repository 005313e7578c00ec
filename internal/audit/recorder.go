package audit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/custodia-tech/settlement-backend/pkg/batcher"
)

// EventWriter is what the recorder flushes batches through.
type EventWriter interface {
	InsertEvents(ctx context.Context, events []Event) error
}

// Recorder buffers transition events and writes them to the repository in
// batches. Losing an audit event on a failed flush is tolerated; the
// relational store remains the source of truth for request state.
type Recorder struct {
	batch *batcher.Batcher[Event]
}

// NewRecorder wires a buffering recorder on top of the writer.
func NewRecorder(logger *zap.Logger, writer EventWriter, flushSize int, flushInterval time.Duration) *Recorder {
	return &Recorder{
		batch: batcher.New(logger.Named("audit"), writer.InsertEvents, flushSize, flushInterval, 0),
	}
}

// Start begins the background flushing loop.
func (r *Recorder) Start(ctx context.Context) {
	r.batch.Start(ctx)
}

// Stop flushes buffered events and stops the loop.
func (r *Recorder) Stop() {
	r.batch.Stop()
}

// Record implements Sink.
func (r *Recorder) Record(ctx context.Context, event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	return r.batch.Add(ctx, event)
}
