// Package ledger holds the primitive types of the target eUTXO ledger:
// outputs, multi-asset values, inline datums, and slot arithmetic.
package ledger

import "fmt"

// Asset is a native token quantity identified by policy id and asset name.
type Asset struct {
	PolicyID string `json:"policy_id"`
	Name     string `json:"asset_name"`
	Quantity int64  `json:"quantity"`
}

// Value is the funds carried by an output: lovelace plus native tokens.
type Value struct {
	Lovelace int64   `json:"lovelace"`
	Assets   []Asset `json:"assets,omitempty"`
}

// DistinctAssets counts the native token types in the value. Lovelace does
// not count; a pure-ADA value returns 0.
func (v Value) DistinctAssets() int {
	seen := make(map[string]struct{}, len(v.Assets))
	for _, a := range v.Assets {
		seen[a.PolicyID+"."+a.Name] = struct{}{}
	}
	return len(seen)
}

// PureADA reports whether the value carries no native tokens.
func (v Value) PureADA() bool {
	return len(v.Assets) == 0
}

// UTXO is an unspent output as returned by the RPC provider.
type UTXO struct {
	TxHash      string `json:"tx_hash"`
	Index       uint32 `json:"output_index"`
	Address     string `json:"address"`
	Value       Value  `json:"value"`
	InlineDatum []byte `json:"inline_datum,omitempty"`
}

// Ref is the canonical "hash#index" reference of the output.
func (u UTXO) Ref() string {
	return fmt.Sprintf("%s#%d", u.TxHash, u.Index)
}
