package processor

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/custodia-tech/settlement-backend/internal/selection"
)

// ErrValidation marks a request record missing fields its current action
// requires. Treated as a logic bug upstream and never retried.
var ErrValidation = errors.New("invalid request record")

// Config bounds a processor run.
type Config struct {
	// Workers caps concurrent per-request operations within one run.
	Workers int
	// BatchLimit caps how many due requests one run picks up. Zero means
	// no limit.
	BatchLimit int

	MaxInputs        int
	MinInputLovelace int64
	// Collateral range used where a narrow collateral is preferred over
	// the largest pure-ADA output.
	CollateralRangeLo int64
	CollateralRangeHi int64

	RetryAttempts        int
	RetryInitialInterval time.Duration
	RetryMultiplier      float64
	RetryMaxInterval     time.Duration
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.MaxInputs <= 0 {
		c.MaxInputs = selection.DefaultMaxInputs
	}
	if c.MinInputLovelace <= 0 {
		c.MinInputLovelace = 5_000_000
	}
	if c.CollateralRangeLo <= 0 {
		c.CollateralRangeLo = 3_000_000
	}
	if c.CollateralRangeHi <= 0 {
		c.CollateralRangeHi = 20_000_000
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = 5
	}
	if c.RetryInitialInterval <= 0 {
		c.RetryInitialInterval = 500 * time.Millisecond
	}
	if c.RetryMultiplier <= 1 {
		c.RetryMultiplier = 5
	}
	if c.RetryMaxInterval <= 0 {
		c.RetryMaxInterval = 7500 * time.Millisecond
	}
	return c
}

// Processor is the batch action processor.
type Processor struct {
	logger    *zap.Logger
	store     Store
	providers Providers
	keys      Keys
	locker    Locker
	metrics   Metrics
	auditor   Auditor
	cfg       Config

	now func() time.Time
}

// New constructs a Processor.
func New(
	logger *zap.Logger,
	store Store,
	providers Providers,
	keys Keys,
	locker Locker,
	metrics Metrics,
	auditor Auditor,
	cfg Config,
) *Processor {
	return &Processor{
		logger:    logger.Named("processor"),
		store:     store,
		providers: providers,
		keys:      keys,
		locker:    locker,
		metrics:   metrics,
		auditor:   auditor,
		cfg:       cfg.withDefaults(),
		now:       time.Now,
	}
}

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
