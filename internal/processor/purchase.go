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

// RunPurchaseBatch processes all due purchase requests for one action type.
func (p *Processor) RunPurchaseBatch(ctx context.Context, action model.PurchaseAction) error {
	release, ok := p.locker.TryAcquire("purchase/" + string(action))
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

	var due []model.PurchaseRequest
	due, err = p.store.DuePurchaseRequests(ctx, action, p.now(), p.cfg.BatchLimit)
	if err != nil {
		p.logger.Error("due purchase query", zap.String("action", string(action)), zap.Error(err))
		return err
	}
	if len(due) == 0 {
		return nil
	}
	p.logger.Info("processing purchase batch",
		zap.String("action", string(action)), zap.Int("size", len(due)))

	err = workerpool.Process(ctx, p.cfg.Workers, due, p.handlePurchase)
	return err
}

func (p *Processor) handlePurchase(ctx context.Context, req model.PurchaseRequest) error {
	logger := p.logger.With(
		zap.String("request_id", req.ID.String()),
		zap.String("payment_source_id", req.PaymentSourceID.String()),
		zap.String("action", string(req.NextAction)),
	)
	action := req.NextAction

	signed, err := p.buildPurchase(ctx, &req)
	if err != nil {
		return p.failPurchase(ctx, logger, &req, err)
	}

	rec, err := p.store.StagePurchaseTransaction(ctx, req.ID)
	if err != nil {
		return p.failPurchase(ctx, logger, &req, fmt.Errorf("stage transaction: %w", err))
	}
	initiated, _ := action.Initiated()
	p.metrics.ObserveTransition(audit.KindPurchase, string(initiated))

	var txHash string
	submitErr := p.retry(ctx, func() error {
		provider := p.providers.For(&req.PaymentSource)
		var err error
		txHash, err = provider.Submit(ctx, signed)
		return err
	})
	if submitErr != nil {
		return p.failPurchase(ctx, logger, &req, fmt.Errorf("submit: %w", submitErr))
	}

	if err := p.store.RecordSubmittedTxHash(ctx, rec.ID, txHash); err != nil {
		logger.Error("record submitted tx hash", zap.String("tx_hash", txHash), zap.Error(err))
	}

	p.metrics.ObserveRequest(string(action), "submitted")
	p.recordAudit(ctx, logger, audit.Event{
		Network:              req.PaymentSource.Network,
		Kind:                 audit.KindPurchase,
		RequestID:            req.ID.String(),
		BlockchainIdentifier: req.BlockchainIdentifier,
		FromState:            string(action),
		ToState:              string(initiated),
		TxHash:               txHash,
	})
	logger.Info("transaction submitted", zap.String("tx_hash", txHash))
	return nil
}

func (p *Processor) buildPurchase(ctx context.Context, req *model.PurchaseRequest) ([]byte, error) {
	if err := validatePurchase(req); err != nil {
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
		var draft txbuilder.DraftFunc
		if req.NextAction == model.PurchaseFundsLockingRequested {
			utxos, err := provider.UTXOsAtAddress(ctx, key.Address())
			if err != nil {
				return err
			}
			// Locking creates the escrow, so the inputs must cover the
			// escrowed amount on top of fees.
			inputs, err := selection.Inputs(utxos, req.AmountLovelace+p.cfg.MinInputLovelace, p.cfg.MaxInputs)
			if err != nil {
				return err
			}
			draft = builder.LockFunds(req, inputs)
		} else {
			expectedState, ok := req.NextAction.ExpectedOnChainState()
			if !ok {
				return validationErr("action %s has no buildable transaction", req.NextAction)
			}
			expected := reconcile.ExpectedFromPurchase(req, expectedState)
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

			switch req.NextAction {
			case model.PurchaseSetRefundRequestedRequested:
				draft = builder.SetRefundRequested(req, escrow, collateral, inputs)
			case model.PurchaseUnSetRefundRequestedRequested:
				draft = builder.UnSetRefundRequested(req, escrow, collateral, inputs)
			case model.PurchaseWithdrawRefundRequested:
				draft = builder.WithdrawRefund(req, escrow, collateral, inputs)
			default:
				return validationErr("unsupported purchase action %s", req.NextAction)
			}
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

func (p *Processor) failPurchase(ctx context.Context, logger *zap.Logger, req *model.PurchaseRequest, cause error) error {
	logger.Error("purchase request failed", zap.Error(cause))

	if err := p.store.FailPurchaseRequest(ctx, req.ID, cause.Error()); err != nil {
		logger.Error("persist failure state", zap.Error(err))
	}
	p.metrics.ObserveRequest(string(req.NextAction), "failed")
	p.metrics.ObserveTransition(audit.KindPurchase, string(model.PurchaseWaitingForManual))
	p.recordAudit(ctx, logger, audit.Event{
		Network:              req.PaymentSource.Network,
		Kind:                 audit.KindPurchase,
		RequestID:            req.ID.String(),
		BlockchainIdentifier: req.BlockchainIdentifier,
		FromState:            string(req.NextAction),
		ToState:              string(model.PurchaseWaitingForManual),
		Note:                 cause.Error(),
	})
	return fmt.Errorf("purchase request %s: %w", req.ID, cause)
}

func validatePurchase(req *model.PurchaseRequest) error {
	switch {
	case req.BlockchainIdentifier == "":
		return validationErr("blockchain identifier missing")
	case req.Wallet.VkeyHash == "":
		return validationErr("wallet vkey hash missing")
	case req.SellerVkeyHash == "":
		return validationErr("seller vkey hash missing")
	case req.AmountLovelace <= 0:
		return validationErr("non-positive amount")
	}
	if req.NextAction != model.PurchaseFundsLockingRequested && req.EscrowTxHash == "" {
		return validationErr("escrow tx hash missing")
	}
	if err := req.ValidateTimeFields(); err != nil {
		return validationErr("%v", err)
	}
	return nil
}
