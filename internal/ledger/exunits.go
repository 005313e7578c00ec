package ledger

// ExUnits is the measured script execution budget embedded in a transaction.
type ExUnits struct {
	Mem   uint64 `json:"mem"`
	Steps uint64 `json:"steps"`
}

// Zero reports whether no budget is set.
func (u ExUnits) Zero() bool {
	return u.Mem == 0 && u.Steps == 0
}

// Tip is the current head of the chain as seen by the RPC provider.
type Tip struct {
	Slot   uint64 `json:"slot"`
	Height uint64 `json:"height"`
}
