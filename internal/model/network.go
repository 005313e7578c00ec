package model

// Network identifies the target ledger network of a payment source.
type Network string

var (
	Mainnet Network = "mainnet"
	Preprod Network = "preprod"
	Preview Network = "preview"
)
