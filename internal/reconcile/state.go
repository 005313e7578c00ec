// Package reconcile matches the expected logical escrow state of a request
// against the actual on-chain state held by a contract UTXO. Matching is
// strict structural equality: a single diverging field means the off-chain
// and on-chain views disagree, and the caller must abort rather than proceed.
package reconcile

import (
	"fmt"

	"github.com/custodia-tech/settlement-backend/internal/ledger"
	"github.com/custodia-tech/settlement-backend/internal/model"
)

// ContractState is the value object compared during reconciliation. Every
// field participates in the equality check; there is no partial match.
type ContractState struct {
	State                     model.OnChainState
	BuyerVkeyHash             string
	BuyerAddress              string
	SellerVkeyHash            string
	SellerAddress             string
	BlockchainIdentifier      string
	InputHash                 string
	ResultHash                string
	PayByTime                 int64
	SubmitResultTime          int64
	UnlockTime                int64
	ExternalDisputeUnlockTime int64
	CollateralReturnLovelace  int64
}

// Equal reports field-by-field structural equality.
func (s ContractState) Equal(other ContractState) bool {
	return s == other
}

// expectedResultHash is the result hash the escrow datum must hold for a
// given expected state. Before a result is submitted the datum carries none;
// afterwards it must be exactly the one the request recorded. A submit-result
// request's own hash is the value being submitted, not yet on chain, so the
// funds-locked case expects empty regardless of the request.
func expectedResultHash(state model.OnChainState, recorded string) string {
	if state == model.StateFundsLocked {
		return ""
	}
	return recorded
}

// ExpectedFromPayment builds the contract state a payment request implies.
// The request's wallet is the selling party.
func ExpectedFromPayment(req *model.PaymentRequest, state model.OnChainState) ContractState {
	return ContractState{
		State:                     state,
		BuyerVkeyHash:             req.BuyerVkeyHash,
		BuyerAddress:              req.BuyerAddress,
		SellerVkeyHash:            req.Wallet.VkeyHash,
		SellerAddress:             req.Wallet.Address,
		BlockchainIdentifier:      req.BlockchainIdentifier,
		InputHash:                 req.InputHash,
		ResultHash:                expectedResultHash(state, req.ResultHash),
		PayByTime:                 req.PayByUnix,
		SubmitResultTime:          req.SubmitResultUnix,
		UnlockTime:                req.UnlockUnix,
		ExternalDisputeUnlockTime: req.ExternalDisputeUnlockUnix,
		CollateralReturnLovelace:  req.CollateralReturnLovelace,
	}
}

// ExpectedFromPurchase builds the contract state a purchase request implies.
// The request's wallet is the purchasing party.
func ExpectedFromPurchase(req *model.PurchaseRequest, state model.OnChainState) ContractState {
	return ContractState{
		State:                     state,
		BuyerVkeyHash:             req.Wallet.VkeyHash,
		BuyerAddress:              req.Wallet.Address,
		SellerVkeyHash:            req.SellerVkeyHash,
		SellerAddress:             req.SellerAddress,
		BlockchainIdentifier:      req.BlockchainIdentifier,
		InputHash:                 req.InputHash,
		ResultHash:                expectedResultHash(state, req.ResultHash),
		PayByTime:                 req.PayByUnix,
		SubmitResultTime:          req.SubmitResultUnix,
		UnlockTime:                req.UnlockUnix,
		ExternalDisputeUnlockTime: req.ExternalDisputeUnlockUnix,
		CollateralReturnLovelace:  req.CollateralReturnLovelace,
	}
}

// FromDatum lifts a decoded escrow datum into the comparable value object.
func FromDatum(d *ledger.EscrowDatum) (ContractState, error) {
	state, err := stateFromConstructor(d.State)
	if err != nil {
		return ContractState{}, err
	}
	return ContractState{
		State:                     state,
		BuyerVkeyHash:             d.BuyerVkeyHash,
		BuyerAddress:              d.BuyerAddress,
		SellerVkeyHash:            d.SellerVkeyHash,
		SellerAddress:             d.SellerAddress,
		BlockchainIdentifier:      d.BlockchainIdentifier,
		InputHash:                 d.InputHash,
		ResultHash:                d.ResultHash,
		PayByTime:                 d.PayByTime,
		SubmitResultTime:          d.SubmitResultTime,
		UnlockTime:                d.UnlockTime,
		ExternalDisputeUnlockTime: d.ExternalDisputeUnlockTime,
		CollateralReturnLovelace:  d.CollateralReturnLovelace,
	}, nil
}

func stateFromConstructor(idx int) (model.OnChainState, error) {
	switch idx {
	case ledger.DatumStateFundsLocked:
		return model.StateFundsLocked, nil
	case ledger.DatumStateResultSubmitted:
		return model.StateResultSubmitted, nil
	case ledger.DatumStateRefundRequested:
		return model.StateRefundRequested, nil
	case ledger.DatumStateDisputed:
		return model.StateDisputed, nil
	}
	return "", fmt.Errorf("unknown datum state constructor %d", idx)
}
