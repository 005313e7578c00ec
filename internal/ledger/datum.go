package ledger

import (
	"encoding/json"
	"fmt"
)

// Escrow datum state constructor indices as laid out by the on-chain script.
const (
	DatumStateFundsLocked     = 0
	DatumStateResultSubmitted = 1
	DatumStateRefundRequested = 2
	DatumStateDisputed        = 3
)

// EscrowDatum is the decoded inline datum of an escrow contract UTXO.
type EscrowDatum struct {
	BuyerVkeyHash             string `json:"buyer_vkey_hash"`
	BuyerAddress              string `json:"buyer_address"`
	SellerVkeyHash            string `json:"seller_vkey_hash"`
	SellerAddress             string `json:"seller_address"`
	BlockchainIdentifier      string `json:"blockchain_identifier"`
	InputHash                 string `json:"input_hash"`
	ResultHash                string `json:"result_hash"`
	PayByTime                 int64  `json:"pay_by_time"`
	SubmitResultTime          int64  `json:"submit_result_time"`
	UnlockTime                int64  `json:"unlock_time"`
	ExternalDisputeUnlockTime int64  `json:"external_dispute_unlock_time"`
	CollateralReturnLovelace  int64  `json:"collateral_return_lovelace"`
	State                     int    `json:"state"`
}

// DecodeEscrowDatum parses an inline datum into its typed form. A datum that
// does not carry the escrow layout (missing parties or an unknown state
// constructor) is rejected; callers treat that as "not our UTXO".
func DecodeEscrowDatum(raw []byte) (*EscrowDatum, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("decode escrow datum: empty datum")
	}
	var d EscrowDatum
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode escrow datum: %w", err)
	}
	if d.BuyerVkeyHash == "" || d.SellerVkeyHash == "" {
		return nil, fmt.Errorf("decode escrow datum: missing party key hashes")
	}
	if d.State < DatumStateFundsLocked || d.State > DatumStateDisputed {
		return nil, fmt.Errorf("decode escrow datum: unknown state constructor %d", d.State)
	}
	return &d, nil
}
