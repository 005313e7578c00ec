package processor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/custodia-tech/settlement-backend/internal/audit"
	"github.com/custodia-tech/settlement-backend/internal/model"
	"github.com/custodia-tech/settlement-backend/internal/selection"
	"github.com/custodia-tech/settlement-backend/internal/txbuilder"
	"github.com/custodia-tech/settlement-backend/pkg/workerpool"
)

// RunRegistryBatch processes all due registry requests in one state.
func (p *Processor) RunRegistryBatch(ctx context.Context, state model.RegistryState) error {
	release, ok := p.locker.TryAcquire("registry/" + string(state))
	if !ok {
		p.logger.Debug("run already in flight", zap.String("state", string(state)))
		return nil
	}
	defer release()

	started := p.now()
	var err error
	defer func() {
		p.metrics.ObserveBatch(string(state), err, started)
	}()

	var due []model.RegistryRequest
	due, err = p.store.DueRegistryRequests(ctx, state, p.now(), p.cfg.BatchLimit)
	if err != nil {
		p.logger.Error("due registry query", zap.String("state", string(state)), zap.Error(err))
		return err
	}
	if len(due) == 0 {
		return nil
	}
	p.logger.Info("processing registry batch",
		zap.String("state", string(state)), zap.Int("size", len(due)))

	err = workerpool.Process(ctx, p.cfg.Workers, due, p.handleRegistry)
	return err
}

func (p *Processor) handleRegistry(ctx context.Context, req model.RegistryRequest) error {
	logger := p.logger.With(
		zap.String("request_id", req.ID.String()),
		zap.String("payment_source_id", req.PaymentSourceID.String()),
		zap.String("state", string(req.State)),
	)
	state := req.State

	signed, err := p.buildRegistry(ctx, &req)
	if err != nil {
		return p.failRegistry(ctx, logger, &req, err)
	}

	rec, err := p.store.StageRegistryTransaction(ctx, req.ID)
	if err != nil {
		return p.failRegistry(ctx, logger, &req, fmt.Errorf("stage transaction: %w", err))
	}
	initiated, _ := state.Initiated()
	p.metrics.ObserveTransition(audit.KindRegistry, string(initiated))

	var txHash string
	submitErr := p.retry(ctx, func() error {
		provider := p.providers.For(&req.PaymentSource)
		var err error
		txHash, err = provider.Submit(ctx, signed)
		return err
	})
	if submitErr != nil {
		return p.failRegistry(ctx, logger, &req, fmt.Errorf("submit: %w", submitErr))
	}

	if err := p.store.RecordSubmittedTxHash(ctx, rec.ID, txHash); err != nil {
		logger.Error("record submitted tx hash", zap.String("tx_hash", txHash), zap.Error(err))
	}

	p.metrics.ObserveRequest(string(state), "submitted")
	p.recordAudit(ctx, logger, audit.Event{
		Network:   req.PaymentSource.Network,
		Kind:      audit.KindRegistry,
		RequestID: req.ID.String(),
		FromState: string(state),
		ToState:   string(initiated),
		TxHash:    txHash,
	})
	logger.Info("transaction submitted", zap.String("tx_hash", txHash))
	return nil
}

func (p *Processor) buildRegistry(ctx context.Context, req *model.RegistryRequest) ([]byte, error) {
	if err := validateRegistry(req); err != nil {
		return nil, err
	}

	builder, err := txbuilder.New(&req.PaymentSource)
	if err != nil {
		return nil, err
	}
	key, err := p.keys.Resolve(&req.Wallet)
	if err != nil {
		return nil, err
	}
	provider := p.providers.For(&req.PaymentSource)

	var signed []byte
	err = p.retry(ctx, func() error {
		utxos, err := provider.UTXOsAtAddress(ctx, key.Address())
		if err != nil {
			return err
		}
		inputs, err := selection.Inputs(utxos, p.cfg.MinInputLovelace, p.cfg.MaxInputs)
		if err != nil {
			return err
		}

		var draft txbuilder.DraftFunc
		switch req.State {
		case model.RegistrationRequested:
			collateral, err := selection.Collateral(utxos)
			if err != nil {
				return err
			}
			draft = builder.MintRegistration(req, collateral, inputs)
		case model.DeregistrationRequested:
			// Burning prefers a modest collateral over the largest output.
			collateral, err := selection.CollateralInRange(utxos, p.cfg.CollateralRangeLo, p.cfg.CollateralRangeHi)
			if err != nil {
				collateral, err = selection.Collateral(utxos)
				if err != nil {
					return err
				}
			}
			draft = builder.BurnRegistration(req, collateral, inputs)
		default:
			return validationErr("unsupported registry state %s", req.State)
		}

		tx, err := txbuilder.BuildWithEstimatedFee(ctx, provider, draft)
		if err != nil {
			return err
		}
		signed, err = txbuilder.Sign(tx, key)
		return err
	})
	if err != nil {
		return nil, err
	}
	return signed, nil
}

func (p *Processor) failRegistry(ctx context.Context, logger *zap.Logger, req *model.RegistryRequest, cause error) error {
	logger.Error("registry request failed", zap.Error(cause))

	if err := p.store.FailRegistryRequest(ctx, req.ID, cause.Error()); err != nil {
		logger.Error("persist failure state", zap.Error(err))
	}
	failure := req.State.FailureState()
	p.metrics.ObserveRequest(string(req.State), "failed")
	p.metrics.ObserveTransition(audit.KindRegistry, string(failure))
	p.recordAudit(ctx, logger, audit.Event{
		Network:   req.PaymentSource.Network,
		Kind:      audit.KindRegistry,
		RequestID: req.ID.String(),
		FromState: string(req.State),
		ToState:   string(failure),
		Note:      cause.Error(),
	})
	return fmt.Errorf("registry request %s: %w", req.ID, cause)
}

func validateRegistry(req *model.RegistryRequest) error {
	switch {
	case req.Name == "":
		return validationErr("name missing")
	case req.AssetName == "":
		return validationErr("asset name missing")
	case req.Wallet.VkeyHash == "":
		return validationErr("wallet vkey hash missing")
	}
	if req.State == model.DeregistrationRequested && req.AgentIdentifier == "" {
		return validationErr("agent identifier missing")
	}
	return nil
}
