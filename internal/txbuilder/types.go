// Package txbuilder composes ledger transactions for every state-changing
// settlement action, with two-pass execution-unit estimation.
package txbuilder

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/custodia-tech/settlement-backend/internal/ledger"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Evaluator measures the execution units a draft's scripts need.
	Evaluator interface {
		Evaluate(ctx context.Context, txBytes []byte) (ledger.ExUnits, error)
	}

	// Signer produces a witness for serialized transaction bytes.
	Signer interface {
		Sign(txBytes []byte) ([]byte, error)
		VkeyHash() string
	}
)

// Redeemer authorizes consuming a script-locked input.
type Redeemer struct {
	Action string         `json:"action"`
	Units  ledger.ExUnits `json:"units"`
}

// ScriptInput is the escrow UTXO being consumed together with its redeemer.
type ScriptInput struct {
	UTXO     ledger.UTXO `json:"utxo"`
	Redeemer Redeemer    `json:"redeemer"`
}

// Output is a transaction output, optionally carrying an inline datum.
type Output struct {
	Address string       `json:"address"`
	Value   ledger.Value `json:"value"`
	Datum   []byte       `json:"datum,omitempty"`
}

// Mint is a token mint (positive quantity) or burn (negative).
type Mint struct {
	PolicyID  string `json:"policy_id"`
	AssetName string `json:"asset_name"`
	Quantity  int64  `json:"quantity"`
}

// Metadata is the standardized on-chain message attached to every
// transaction for auditability.
type Metadata struct {
	Label   int64    `json:"label"`
	Message []string `json:"message"`
}

// Tx is a composed transaction. Serialization via Bytes is deterministic,
// so evaluating the same draft twice yields the same execution units.
type Tx struct {
	Inputs          []ledger.UTXO `json:"inputs"`
	ScriptInput     *ScriptInput  `json:"script_input,omitempty"`
	Collateral      *ledger.UTXO  `json:"collateral,omitempty"`
	Outputs         []Output      `json:"outputs"`
	Mints           []Mint        `json:"mints,omitempty"`
	RequiredSigners []string      `json:"required_signers"`
	Metadata        Metadata      `json:"metadata"`
	ValidFromSlot   uint64        `json:"valid_from_slot"`
	ValidUntilSlot  uint64        `json:"valid_until_slot"`
	Fee             int64         `json:"fee"`
}

// Bytes serializes the transaction body for evaluation and submission.
func (t *Tx) Bytes() ([]byte, error) {
	raw, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("serialize transaction: %w", err)
	}
	return raw, nil
}

// Units returns the script budget embedded in the transaction, or zero
// when no script input is present.
func (t *Tx) Units() ledger.ExUnits {
	if t.ScriptInput == nil {
		return ledger.ExUnits{}
	}
	return t.ScriptInput.Redeemer.Units
}
