package txbuilder

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-tech/settlement-backend/internal/ledger"
	"github.com/custodia-tech/settlement-backend/internal/model"
)

// Redeemer actions understood by the escrow script.
const (
	RedeemerSubmitResult       = "SubmitResult"
	RedeemerAuthorizeRefund    = "AuthorizeRefund"
	RedeemerWithdraw           = "Withdraw"
	RedeemerSetRefundRequested = "SetRefundRequested"
	RedeemerUnSetRefundRequest = "UnSetRefundRequested"
	RedeemerWithdrawRefund     = "WithdrawRefund"
)

// MetadataMessageLabel is the standard transaction-message metadata label.
const MetadataMessageLabel = 674

const appMessage = "custodia-settlement/v1"

const defaultValidityBuffer = 5 * time.Minute

// Builder composes transactions for one escrow contract deployment.
type Builder struct {
	escrowAddress   string
	policyID        string
	feeReceiver     string
	feeRatePermille int64
	slots           ledger.SlotConfig
	validityBuffer  time.Duration
	now             func() time.Time
}

// New builds a Builder for a payment source.
func New(src *model.PaymentSource) (*Builder, error) {
	if src.EscrowAddress == "" {
		return nil, fmt.Errorf("payment source %s has no escrow address", src.ID)
	}
	slots, err := ledger.SlotConfigFor(src.Network)
	if err != nil {
		return nil, err
	}
	return &Builder{
		escrowAddress:   src.EscrowAddress,
		policyID:        src.PolicyID,
		feeReceiver:     src.FeeReceiver,
		feeRatePermille: src.FeeRatePermille,
		slots:           slots,
		validityBuffer:  defaultValidityBuffer,
		now:             time.Now,
	}, nil
}

func (b *Builder) skeleton(signers []string) (*Tx, error) {
	from, until, err := ValidityWindow(b.slots, b.now(), b.validityBuffer)
	if err != nil {
		return nil, err
	}
	return &Tx{
		RequiredSigners: signers,
		Metadata: Metadata{
			Label:   MetadataMessageLabel,
			Message: []string{appMessage},
		},
		ValidFromSlot:  from,
		ValidUntilSlot: until,
	}, nil
}

// LockFunds pays the purchase amount into the escrow with a FundsLocked
// datum. No script runs on the way in, so no collateral is attached.
func (b *Builder) LockFunds(req *model.PurchaseRequest, inputs []ledger.UTXO) DraftFunc {
	return func(ledger.ExUnits) (*Tx, error) {
		tx, err := b.skeleton([]string{req.Wallet.VkeyHash})
		if err != nil {
			return nil, err
		}
		datum, err := marshalDatum(purchaseDatum(req, ledger.DatumStateFundsLocked, ""))
		if err != nil {
			return nil, err
		}
		tx.Inputs = inputs
		tx.Outputs = []Output{{
			Address: b.escrowAddress,
			Value:   ledger.Value{Lovelace: req.AmountLovelace + req.CollateralReturnLovelace},
			Datum:   datum,
		}}
		tx.Metadata.Message = append(tx.Metadata.Message, req.BlockchainIdentifier)
		return tx, nil
	}
}

// SubmitResult spends the escrow into a ResultSubmitted datum carrying the
// request's result hash.
func (b *Builder) SubmitResult(req *model.PaymentRequest, escrow, collateral ledger.UTXO, inputs []ledger.UTXO) DraftFunc {
	return b.respend(
		req.Wallet.VkeyHash, req.BlockchainIdentifier,
		escrow, collateral, inputs,
		RedeemerSubmitResult,
		func() ([]byte, error) {
			return marshalDatum(paymentDatum(req, ledger.DatumStateResultSubmitted, req.ResultHash))
		},
	)
}

// AuthorizeRefund spends a disputed escrow back into a RefundRequested
// datum, authorizing the buyer to withdraw.
func (b *Builder) AuthorizeRefund(req *model.PaymentRequest, escrow, collateral ledger.UTXO, inputs []ledger.UTXO) DraftFunc {
	return b.respend(
		req.Wallet.VkeyHash, req.BlockchainIdentifier,
		escrow, collateral, inputs,
		RedeemerAuthorizeRefund,
		func() ([]byte, error) {
			return marshalDatum(paymentDatum(req, ledger.DatumStateRefundRequested, req.ResultHash))
		},
	)
}

// SetRefundRequested flips the escrow datum into RefundRequested on behalf
// of the buyer.
func (b *Builder) SetRefundRequested(req *model.PurchaseRequest, escrow, collateral ledger.UTXO, inputs []ledger.UTXO) DraftFunc {
	return b.respend(
		req.Wallet.VkeyHash, req.BlockchainIdentifier,
		escrow, collateral, inputs,
		RedeemerSetRefundRequested,
		func() ([]byte, error) {
			return marshalDatum(purchaseDatum(req, ledger.DatumStateRefundRequested, req.ResultHash))
		},
	)
}

// UnSetRefundRequested reverts a RefundRequested datum back to FundsLocked.
func (b *Builder) UnSetRefundRequested(req *model.PurchaseRequest, escrow, collateral ledger.UTXO, inputs []ledger.UTXO) DraftFunc {
	return b.respend(
		req.Wallet.VkeyHash, req.BlockchainIdentifier,
		escrow, collateral, inputs,
		RedeemerUnSetRefundRequest,
		func() ([]byte, error) {
			return marshalDatum(purchaseDatum(req, ledger.DatumStateFundsLocked, req.ResultHash))
		},
	)
}

// Withdraw pays the escrowed amount out to the selling wallet, carving out
// the operator's fee share for the fee receiver.
func (b *Builder) Withdraw(req *model.PaymentRequest, escrow, collateral ledger.UTXO, inputs []ledger.UTXO) DraftFunc {
	return func(units ledger.ExUnits) (*Tx, error) {
		tx, err := b.skeleton([]string{req.Wallet.VkeyHash})
		if err != nil {
			return nil, err
		}
		feeShare := req.AmountLovelace * b.feeRatePermille / 1000
		tx.Inputs = inputs
		tx.ScriptInput = &ScriptInput{
			UTXO:     escrow,
			Redeemer: Redeemer{Action: RedeemerWithdraw, Units: units},
		}
		tx.Collateral = &collateral
		tx.Outputs = []Output{
			{Address: req.Wallet.Address, Value: ledger.Value{Lovelace: req.AmountLovelace - feeShare}},
			{Address: b.feeReceiver, Value: ledger.Value{Lovelace: feeShare}},
			{Address: req.BuyerAddress, Value: ledger.Value{Lovelace: req.CollateralReturnLovelace}},
		}
		tx.Metadata.Message = append(tx.Metadata.Message, req.BlockchainIdentifier)
		return tx, nil
	}
}

// WithdrawRefund returns the escrowed amount to the purchasing wallet after
// a refund was authorized or the dispute window elapsed.
func (b *Builder) WithdrawRefund(req *model.PurchaseRequest, escrow, collateral ledger.UTXO, inputs []ledger.UTXO) DraftFunc {
	return func(units ledger.ExUnits) (*Tx, error) {
		tx, err := b.skeleton([]string{req.Wallet.VkeyHash})
		if err != nil {
			return nil, err
		}
		tx.Inputs = inputs
		tx.ScriptInput = &ScriptInput{
			UTXO:     escrow,
			Redeemer: Redeemer{Action: RedeemerWithdrawRefund, Units: units},
		}
		tx.Collateral = &collateral
		tx.Outputs = []Output{
			{Address: req.Wallet.Address, Value: ledger.Value{Lovelace: req.AmountLovelace + req.CollateralReturnLovelace}},
		}
		tx.Metadata.Message = append(tx.Metadata.Message, req.BlockchainIdentifier)
		return tx, nil
	}
}

// MintRegistration mints the registration token naming the service and pays
// it to the selling wallet.
func (b *Builder) MintRegistration(req *model.RegistryRequest, collateral ledger.UTXO, inputs []ledger.UTXO) DraftFunc {
	return b.mint(req, collateral, inputs, 1)
}

// BurnRegistration burns the registration token, deregistering the service.
func (b *Builder) BurnRegistration(req *model.RegistryRequest, collateral ledger.UTXO, inputs []ledger.UTXO) DraftFunc {
	return b.mint(req, collateral, inputs, -1)
}

func (b *Builder) mint(req *model.RegistryRequest, collateral ledger.UTXO, inputs []ledger.UTXO, quantity int64) DraftFunc {
	return func(units ledger.ExUnits) (*Tx, error) {
		tx, err := b.skeleton([]string{req.Wallet.VkeyHash})
		if err != nil {
			return nil, err
		}
		tx.Inputs = inputs
		tx.Collateral = &collateral
		tx.Mints = []Mint{{PolicyID: b.policyID, AssetName: req.AssetName, Quantity: quantity}}
		// The minting policy is a script, so its budget rides on a synthetic
		// script input referencing the first wallet input.
		if len(inputs) == 0 {
			return nil, fmt.Errorf("mint for %s: no wallet inputs", req.AssetName)
		}
		tx.ScriptInput = &ScriptInput{
			UTXO:     inputs[0],
			Redeemer: Redeemer{Action: fmt.Sprintf("Mint:%d", quantity), Units: units},
		}
		if quantity > 0 {
			tx.Outputs = []Output{{
				Address: req.Wallet.Address,
				Value: ledger.Value{
					Lovelace: 2_000_000,
					Assets:   []ledger.Asset{{PolicyID: b.policyID, Name: req.AssetName, Quantity: quantity}},
				},
			}}
		}
		tx.Metadata.Message = append(tx.Metadata.Message, b.policyID+"."+req.AssetName)
		return tx, nil
	}
}

// respend is the shared shape of actions that consume the escrow UTXO and
// recreate it at the same address with a successor datum.
func (b *Builder) respend(signerVkey, blockchainID string, escrow, collateral ledger.UTXO, inputs []ledger.UTXO, action string, nextDatum func() ([]byte, error)) DraftFunc {
	return func(units ledger.ExUnits) (*Tx, error) {
		tx, err := b.skeleton([]string{signerVkey})
		if err != nil {
			return nil, err
		}
		datum, err := nextDatum()
		if err != nil {
			return nil, err
		}
		tx.Inputs = inputs
		tx.ScriptInput = &ScriptInput{
			UTXO:     escrow,
			Redeemer: Redeemer{Action: action, Units: units},
		}
		tx.Collateral = &collateral
		tx.Outputs = []Output{{
			Address: b.escrowAddress,
			Value:   escrow.Value,
			Datum:   datum,
		}}
		tx.Metadata.Message = append(tx.Metadata.Message, blockchainID)
		return tx, nil
	}
}

func paymentDatum(req *model.PaymentRequest, state int, resultHash string) *ledger.EscrowDatum {
	return &ledger.EscrowDatum{
		BuyerVkeyHash:             req.BuyerVkeyHash,
		BuyerAddress:              req.BuyerAddress,
		SellerVkeyHash:            req.Wallet.VkeyHash,
		SellerAddress:             req.Wallet.Address,
		BlockchainIdentifier:      req.BlockchainIdentifier,
		InputHash:                 req.InputHash,
		ResultHash:                resultHash,
		PayByTime:                 req.PayByUnix,
		SubmitResultTime:          req.SubmitResultUnix,
		UnlockTime:                req.UnlockUnix,
		ExternalDisputeUnlockTime: req.ExternalDisputeUnlockUnix,
		CollateralReturnLovelace:  req.CollateralReturnLovelace,
		State:                     state,
	}
}

func purchaseDatum(req *model.PurchaseRequest, state int, resultHash string) *ledger.EscrowDatum {
	return &ledger.EscrowDatum{
		BuyerVkeyHash:             req.Wallet.VkeyHash,
		BuyerAddress:              req.Wallet.Address,
		SellerVkeyHash:            req.SellerVkeyHash,
		SellerAddress:             req.SellerAddress,
		BlockchainIdentifier:      req.BlockchainIdentifier,
		InputHash:                 req.InputHash,
		ResultHash:                resultHash,
		PayByTime:                 req.PayByUnix,
		SubmitResultTime:          req.SubmitResultUnix,
		UnlockTime:                req.UnlockUnix,
		ExternalDisputeUnlockTime: req.ExternalDisputeUnlockUnix,
		CollateralReturnLovelace:  req.CollateralReturnLovelace,
		State:                     state,
	}
}

func marshalDatum(d *ledger.EscrowDatum) ([]byte, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal datum: %w", err)
	}
	return raw, nil
}
