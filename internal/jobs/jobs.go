// Package jobs schedules the periodic batch sweeps that drive the
// settlement state machines forward.
package jobs

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/custodia-tech/settlement-backend/internal/clock"
	"github.com/custodia-tech/settlement-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

const (
	defaultInterval      = 30 * time.Second
	defaultErrorInterval = 10 * time.Second
)

// Batches runs one settlement sweep per action type.
type Batches interface {
	RunPaymentBatch(ctx context.Context, action model.PaymentAction) error
	RunPurchaseBatch(ctx context.Context, action model.PurchaseAction) error
	RunRegistryBatch(ctx context.Context, state model.RegistryState) error
}

// WalletJanitor releases hot wallets whose lock outlived its holder.
type WalletJanitor interface {
	UnlockExpiredWallets(ctx context.Context, now time.Time, maxAge time.Duration) (int64, error)
}

// Job repeatedly invokes a sweep until the context is canceled.
type Job struct {
	logger        *zap.Logger
	name          string
	interval      time.Duration
	errorInterval time.Duration
	sleep         func(context.Context, time.Duration) error
	run           func(context.Context) error
}

// New builds a Job around a single sweep function. A non-positive interval
// falls back to the default.
func New(name string, interval time.Duration, run func(context.Context) error, logger *zap.Logger) (*Job, error) {
	if name == "" {
		return nil, errors.New("job name is required")
	}
	if run == nil {
		return nil, errors.New("job run function is required")
	}
	if interval <= 0 {
		interval = defaultInterval
	}
	errorInterval := defaultErrorInterval
	if errorInterval > interval {
		errorInterval = interval
	}

	return &Job{
		logger:        logger.Named("job").With(zap.String("name", name)),
		name:          name,
		interval:      interval,
		errorInterval: errorInterval,
		sleep:         clock.SleepWithContext,
		run:           run,
	}, nil
}

// Name returns the job identifier used in logs.
func (j *Job) Name() string {
	return j.name
}

// Run drives the sweep loop until the context is canceled.
func (j *Job) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := j.run(ctx); err != nil {
			j.logger.Warn("sweep failed, backing off", zap.Error(err), zap.Duration("sleep", j.errorInterval))
			if sleepErr := j.sleep(ctx, j.errorInterval); sleepErr != nil {
				return sleepErr
			}
			continue
		}
		if err := j.sleep(ctx, j.interval); err != nil {
			return err
		}
	}
}

// ForBatches builds one job per settlement action plus the wallet janitor,
// ready to be started on independent goroutines.
func ForBatches(batches Batches, janitor WalletJanitor, interval time.Duration, logger *zap.Logger) ([]*Job, error) {
	specs := []struct {
		name string
		run  func(context.Context) error
	}{
		{
			name: "payment/" + string(model.PaymentSubmitResultRequested),
			run: func(ctx context.Context) error {
				return batches.RunPaymentBatch(ctx, model.PaymentSubmitResultRequested)
			},
		},
		{
			name: "payment/" + string(model.PaymentAuthorizeRefundRequested),
			run: func(ctx context.Context) error {
				return batches.RunPaymentBatch(ctx, model.PaymentAuthorizeRefundRequested)
			},
		},
		{
			name: "payment/" + string(model.PaymentWithdrawRequested),
			run: func(ctx context.Context) error {
				return batches.RunPaymentBatch(ctx, model.PaymentWithdrawRequested)
			},
		},
		{
			name: "purchase/" + string(model.PurchaseFundsLockingRequested),
			run: func(ctx context.Context) error {
				return batches.RunPurchaseBatch(ctx, model.PurchaseFundsLockingRequested)
			},
		},
		{
			name: "purchase/" + string(model.PurchaseSetRefundRequestedRequested),
			run: func(ctx context.Context) error {
				return batches.RunPurchaseBatch(ctx, model.PurchaseSetRefundRequestedRequested)
			},
		},
		{
			name: "purchase/" + string(model.PurchaseUnSetRefundRequestedRequested),
			run: func(ctx context.Context) error {
				return batches.RunPurchaseBatch(ctx, model.PurchaseUnSetRefundRequestedRequested)
			},
		},
		{
			name: "purchase/" + string(model.PurchaseWithdrawRefundRequested),
			run: func(ctx context.Context) error {
				return batches.RunPurchaseBatch(ctx, model.PurchaseWithdrawRefundRequested)
			},
		},
		{
			name: "registry/" + string(model.RegistrationRequested),
			run: func(ctx context.Context) error {
				return batches.RunRegistryBatch(ctx, model.RegistrationRequested)
			},
		},
		{
			name: "registry/" + string(model.DeregistrationRequested),
			run: func(ctx context.Context) error {
				return batches.RunRegistryBatch(ctx, model.DeregistrationRequested)
			},
		},
	}

	jobs := make([]*Job, 0, len(specs)+1)
	for _, spec := range specs {
		job, err := New(spec.name, interval, spec.run, logger)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if janitor != nil {
		job, err := New("wallet-janitor", interval, func(ctx context.Context) error {
			released, err := janitor.UnlockExpiredWallets(ctx, time.Now(), walletLockMaxAge)
			if err != nil {
				return err
			}
			if released > 0 {
				logger.Warn("released expired wallet locks", zap.Int64("count", released))
			}
			return nil
		}, logger)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

// A wallet lock older than this is assumed to belong to a crashed run.
const walletLockMaxAge = time.Hour
