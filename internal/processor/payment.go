package processor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/custodia-tech/settlement-backend/internal/audit"
	"github.com/custodia-tech/settlement-backend/internal/model"
	"github.com/custodia-tech/settlement-backend/internal/reconcile"
	"github.com/custodia-tech/settlement-backend/internal/selection"
	"github.com/custodia-tech/settlement-backend/internal/txbuilder"
	"github.com/custodia-tech/settlement-backend/pkg/workerpool"
)

// RunPaymentBatch processes all due payment requests for one action type.
// A second call for the same action while a run is in flight returns
// immediately without queuing.
func (p *Processor) RunPaymentBatch(ctx context.Context, action model.PaymentAction) error {
	release, ok := p.locker.TryAcquire("payment/" + string(action))
	if !ok {
		p.logger.Debug("run already in flight", zap.String("action", string(action)))
		return nil
	}
	defer release()

	started := p.now()
	var err error
	defer func() {
		p.metrics.ObserveBatch(string(action), err, started)
	}()

	var due []model.PaymentRequest
	due, err = p.store.DuePaymentRequests(ctx, action, p.now(), p.cfg.BatchLimit)
	if err != nil {
		p.logger.Error("due payment query", zap.String("action", string(action)), zap.Error(err))
		return err
	}
	if len(due) == 0 {
		return nil
	}
	p.logger.Info("processing payment batch",
		zap.String("action", string(action)), zap.Int("size", len(due)))

	err = workerpool.Process(ctx, p.cfg.Workers, due, p.handlePayment)
	return err
}

func (p *Processor) handlePayment(ctx context.Context, req model.PaymentRequest) error {
	logger := p.logger.With(
		zap.String("request_id", req.ID.String()),
		zap.String("payment_source_id", req.PaymentSourceID.String()),
		zap.String("action", string(req.NextAction)),
	)
	action := req.NextAction

	signed, err := p.buildPayment(ctx, &req)
	if err != nil {
		return p.failPayment(ctx, logger, &req, err)
	}

	rec, err := p.store.StagePaymentTransaction(ctx, req.ID)
	if err != nil {
		return p.failPayment(ctx, logger, &req, fmt.Errorf("stage transaction: %w", err))
	}
	initiated, _ := action.Initiated()
	p.metrics.ObserveTransition(audit.KindPayment, string(initiated))

	var txHash string
	submitErr := p.retry(ctx, func() error {
		provider := p.providers.For(&req.PaymentSource)
		var err error
		txHash, err = provider.Submit(ctx, signed)
		return err
	})
	if submitErr != nil {
		return p.failPayment(ctx, logger, &req, fmt.Errorf("submit: %w", submitErr))
	}

	if err := p.store.RecordSubmittedTxHash(ctx, rec.ID, txHash); err != nil {
		logger.Error("record submitted tx hash", zap.String("tx_hash", txHash), zap.Error(err))
	}

	// The wallet stays locked until the confirmation watcher settles the
	// transaction.
	p.metrics.ObserveRequest(string(action), "submitted")
	p.recordAudit(ctx, logger, audit.Event{
		Network:              req.PaymentSource.Network,
		Kind:                 audit.KindPayment,
		RequestID:            req.ID.String(),
		BlockchainIdentifier: req.BlockchainIdentifier,
		FromState:            string(action),
		ToState:              string(initiated),
		TxHash:               txHash,
	})
	logger.Info("transaction submitted", zap.String("tx_hash", txHash))
	return nil
}

func (p *Processor) buildPayment(ctx context.Context, req *model.PaymentRequest) ([]byte, error) {
	if err := validatePayment(req); err != nil {
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
	expectedState, ok := req.NextAction.ExpectedOnChainState()
	if !ok {
		return nil, validationErr("action %s has no buildable transaction", req.NextAction)
	}
	expected := reconcile.ExpectedFromPayment(req, expectedState)
	provider := p.providers.For(&req.PaymentSource)

	var signed []byte
	err = p.retry(ctx, func() error {
		escrow, err := reconcile.FindEscrowUTXO(ctx, provider, req.EscrowTxHash, expected)
		if err != nil {
			return err
		}
		utxos, err := provider.UTXOsAtAddress(ctx, key.Address())
		if err != nil {
			return err
		}
		inputs, err := selection.Inputs(utxos, p.cfg.MinInputLovelace, p.cfg.MaxInputs)
		if err != nil {
			return err
		}
		collateral, err := selection.Collateral(utxos)
		if err != nil {
			return err
		}

		var draft txbuilder.DraftFunc
		switch req.NextAction {
		case model.PaymentSubmitResultRequested:
			draft = builder.SubmitResult(req, escrow, collateral, inputs)
		case model.PaymentAuthorizeRefundRequested:
			draft = builder.AuthorizeRefund(req, escrow, collateral, inputs)
		case model.PaymentWithdrawRequested:
			draft = builder.Withdraw(req, escrow, collateral, inputs)
		default:
			return validationErr("unsupported payment action %s", req.NextAction)
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

func (p *Processor) failPayment(ctx context.Context, logger *zap.Logger, req *model.PaymentRequest, cause error) error {
	logger.Error("payment request failed", zap.Error(cause))

	if err := p.store.FailPaymentRequest(ctx, req.ID, cause.Error()); err != nil {
		logger.Error("persist failure state", zap.Error(err))
	}
	p.metrics.ObserveRequest(string(req.NextAction), "failed")
	p.metrics.ObserveTransition(audit.KindPayment, string(model.PaymentWaitingForManual))
	p.recordAudit(ctx, logger, audit.Event{
		Network:              req.PaymentSource.Network,
		Kind:                 audit.KindPayment,
		RequestID:            req.ID.String(),
		BlockchainIdentifier: req.BlockchainIdentifier,
		FromState:            string(req.NextAction),
		ToState:              string(model.PaymentWaitingForManual),
		Note:                 cause.Error(),
	})
	return fmt.Errorf("payment request %s: %w", req.ID, cause)
}

func (p *Processor) recordAudit(ctx context.Context, logger *zap.Logger, event audit.Event) {
	if p.auditor == nil {
		return
	}
	if err := p.auditor.Record(ctx, event); err != nil {
		logger.Warn("audit event dropped", zap.Error(err))
	}
}

func validatePayment(req *model.PaymentRequest) error {
	switch {
	case req.BlockchainIdentifier == "":
		return validationErr("blockchain identifier missing")
	case req.Wallet.VkeyHash == "":
		return validationErr("wallet vkey hash missing")
	case req.BuyerVkeyHash == "":
		return validationErr("buyer vkey hash missing")
	case req.EscrowTxHash == "":
		return validationErr("escrow tx hash missing")
	case req.AmountLovelace <= 0:
		return validationErr("non-positive amount")
	}
	if req.NextAction == model.PaymentSubmitResultRequested && req.ResultHash == "" {
		return validationErr("result hash missing")
	}
	if err := req.ValidateTimeFields(); err != nil {
		return validationErr("%v", err)
	}
	return nil
}
