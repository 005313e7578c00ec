package txbuilder

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-tech/settlement-backend/internal/ledger"
)

// Script cost cannot be known before a first build, so every state-changing
// flow builds twice: once with a conservative placeholder budget, then again
// with the units the provider measured on the draft.
var placeholderUnits = ledger.ExUnits{Mem: 7_000_000, Steps: 3_000_000_000}

// Fee parameters, scaled to integer math (prices are per 10^7 units).
const (
	baseFee          = 155_381
	feePerByte       = 44
	memPricePerTen7  = 577_000
	stepPricePerTen7 = 721
)

// DraftFunc builds the transaction for a given script budget. It is called
// up to twice per build; it must be deterministic in its inputs.
type DraftFunc func(units ledger.ExUnits) (*Tx, error)

// BuildWithEstimatedFee is the single canonical two-pass construction used
// by every action: draft with placeholder units, evaluate, rebuild with the
// measured units and the final fee.
func BuildWithEstimatedFee(ctx context.Context, eval Evaluator, draft DraftFunc) (*Tx, error) {
	draftTx, err := draft(placeholderUnits)
	if err != nil {
		return nil, fmt.Errorf("build draft: %w", err)
	}
	draftBytes, err := draftTx.Bytes()
	if err != nil {
		return nil, err
	}

	units, err := eval.Evaluate(ctx, draftBytes)
	if err != nil {
		return nil, fmt.Errorf("evaluate draft: %w", err)
	}

	finalTx, err := draft(units)
	if err != nil {
		return nil, fmt.Errorf("rebuild with measured units: %w", err)
	}
	finalBytes, err := finalTx.Bytes()
	if err != nil {
		return nil, err
	}
	finalTx.Fee = Fee(len(finalBytes), units)
	return finalTx, nil
}

// Fee computes the final fee from transaction size and script budget.
func Fee(txSize int, units ledger.ExUnits) int64 {
	scriptFee := (int64(units.Mem)*memPricePerTen7 + int64(units.Steps)*stepPricePerTen7) / 10_000_000
	return baseFee + int64(txSize)*feePerByte + scriptFee
}

const validitySafetySlots = 120

// ValidityWindow derives the invalid-before/invalid-after slots from the
// current time plus/minus buffer, widened by a safety margin to absorb
// clock and propagation skew.
func ValidityWindow(cfg ledger.SlotConfig, now time.Time, buffer time.Duration) (from, until uint64, err error) {
	from, err = cfg.SlotAt(now.Add(-buffer))
	if err != nil {
		return 0, 0, fmt.Errorf("validity window start: %w", err)
	}
	until, err = cfg.SlotAt(now.Add(buffer))
	if err != nil {
		return 0, 0, fmt.Errorf("validity window end: %w", err)
	}
	if from > validitySafetySlots {
		from -= validitySafetySlots
	} else {
		from = 0
	}
	until += validitySafetySlots
	return from, until, nil
}
