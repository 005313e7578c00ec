// Package selection picks transaction inputs and collateral from a ledger
// snapshot. All functions are pure: they never mutate the passed slice and
// depend on nothing but their arguments.
package selection

import (
	"errors"
	"sort"

	"github.com/custodia-tech/settlement-backend/internal/ledger"
)

// ErrNoSuitableUTXO is returned when no output passes the minimum-lovelace
// filter. Callers must not treat an empty result as a valid selection.
var ErrNoSuitableUTXO = errors.New("no suitable UTXO found")

// DefaultMaxInputs bounds the selected input set to keep transaction size
// and fees predictable.
const DefaultMaxInputs = 4

// Inputs returns up to maxInputs outputs carrying at least minLovelace,
// ordered ascending by asset bloat so pure-ADA outputs are preferred.
// maxInputs <= 0 applies DefaultMaxInputs.
func Inputs(utxos []ledger.UTXO, minLovelace int64, maxInputs int) ([]ledger.UTXO, error) {
	if maxInputs <= 0 {
		maxInputs = DefaultMaxInputs
	}

	candidates := make([]ledger.UTXO, 0, len(utxos))
	for _, u := range utxos {
		if u.Value.Lovelace >= minLovelace {
			candidates = append(candidates, u)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoSuitableUTXO
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Value.DistinctAssets() < candidates[j].Value.DistinctAssets()
	})

	if len(candidates) > maxInputs {
		candidates = candidates[:maxInputs]
	}
	return candidates, nil
}

// Collateral returns the highest-lovelace pure-ADA output. Outputs carrying
// native tokens are never used as collateral.
func Collateral(utxos []ledger.UTXO) (ledger.UTXO, error) {
	var best ledger.UTXO
	found := false
	for _, u := range utxos {
		if !u.Value.PureADA() {
			continue
		}
		if !found || u.Value.Lovelace > best.Value.Lovelace {
			best = u
			found = true
		}
	}
	if !found {
		return ledger.UTXO{}, ErrNoSuitableUTXO
	}
	return best, nil
}

// CollateralInRange returns the smallest pure-ADA output whose lovelace lies
// in [lo, hi]. Flows that must not tie up a disproportionately large output
// as collateral use this instead of Collateral.
func CollateralInRange(utxos []ledger.UTXO, lo, hi int64) (ledger.UTXO, error) {
	var best ledger.UTXO
	found := false
	for _, u := range utxos {
		if !u.Value.PureADA() {
			continue
		}
		if u.Value.Lovelace < lo || u.Value.Lovelace > hi {
			continue
		}
		if !found || u.Value.Lovelace < best.Value.Lovelace {
			best = u
			found = true
		}
	}
	if !found {
		return ledger.UTXO{}, ErrNoSuitableUTXO
	}
	return best, nil
}
