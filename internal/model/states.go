// Package model defines the persisted domain records and lifecycle state
// machines of the settlement service.
package model

// TxStatus describes the lifecycle of a submitted ledger transaction.
type TxStatus string

const (
	// TxPending marks a transaction persisted before or right after submission,
	// not yet observed on chain.
	TxPending TxStatus = "Pending"
	// TxConfirmed marks a transaction observed in a block.
	TxConfirmed TxStatus = "Confirmed"
	// TxFailed marks a transaction that was rejected or timed out unconfirmed.
	TxFailed TxStatus = "Failed"
)

// OnChainState is the logical escrow state decoded from a contract datum.
type OnChainState string

const (
	StateFundsLocked     OnChainState = "FundsLocked"
	StateResultSubmitted OnChainState = "ResultSubmitted"
	StateRefundRequested OnChainState = "RefundRequested"
	StateDisputed        OnChainState = "Disputed"
)

// PaymentAction is the next step the processor owes a payment request.
type PaymentAction string

const (
	PaymentWaitingForExternal       PaymentAction = "WaitingForExternalAction"
	PaymentWaitingForManual         PaymentAction = "WaitingForManualAction"
	PaymentSubmitResultRequested    PaymentAction = "SubmitResultRequested"
	PaymentSubmitResultInitiated    PaymentAction = "SubmitResultInitiated"
	PaymentAuthorizeRefundRequested PaymentAction = "AuthorizeRefundRequested"
	PaymentAuthorizeRefundInitiated PaymentAction = "AuthorizeRefundInitiated"
	PaymentWithdrawRequested        PaymentAction = "WithdrawRequested"
	PaymentWithdrawInitiated        PaymentAction = "WithdrawInitiated"
)

// PurchaseAction is the next step the processor owes a purchase request.
type PurchaseAction string

const (
	PurchaseWaitingForExternal            PurchaseAction = "WaitingForExternalAction"
	PurchaseWaitingForManual              PurchaseAction = "WaitingForManualAction"
	PurchaseFundsLockingRequested         PurchaseAction = "FundsLockingRequested"
	PurchaseFundsLockingInitiated         PurchaseAction = "FundsLockingInitiated"
	PurchaseSetRefundRequestedRequested   PurchaseAction = "SetRefundRequestedRequested"
	PurchaseSetRefundRequestedInitiated   PurchaseAction = "SetRefundRequestedInitiated"
	PurchaseUnSetRefundRequestedRequested PurchaseAction = "UnSetRefundRequestedRequested"
	PurchaseUnSetRefundRequestedInitiated PurchaseAction = "UnSetRefundRequestedInitiated"
	PurchaseWithdrawRefundRequested       PurchaseAction = "WithdrawRefundRequested"
	PurchaseWithdrawRefundInitiated       PurchaseAction = "WithdrawRefundInitiated"
)

// RegistryState tracks the (de)registration lifecycle of a service identity.
type RegistryState string

const (
	RegistrationRequested   RegistryState = "RegistrationRequested"
	RegistrationInitiated   RegistryState = "RegistrationInitiated"
	RegistrationConfirmed   RegistryState = "RegistrationConfirmed"
	RegistrationFailed      RegistryState = "RegistrationFailed"
	DeregistrationRequested RegistryState = "DeregistrationRequested"
	DeregistrationInitiated RegistryState = "DeregistrationInitiated"
	DeregistrationConfirmed RegistryState = "DeregistrationConfirmed"
	DeregistrationFailed    RegistryState = "DeregistrationFailed"
)

var paymentInitiated = map[PaymentAction]PaymentAction{
	PaymentSubmitResultRequested:    PaymentSubmitResultInitiated,
	PaymentAuthorizeRefundRequested: PaymentAuthorizeRefundInitiated,
	PaymentWithdrawRequested:        PaymentWithdrawInitiated,
}

var purchaseInitiated = map[PurchaseAction]PurchaseAction{
	PurchaseFundsLockingRequested:         PurchaseFundsLockingInitiated,
	PurchaseSetRefundRequestedRequested:   PurchaseSetRefundRequestedInitiated,
	PurchaseUnSetRefundRequestedRequested: PurchaseUnSetRefundRequestedInitiated,
	PurchaseWithdrawRefundRequested:       PurchaseWithdrawRefundInitiated,
}

var registryInitiated = map[RegistryState]RegistryState{
	RegistrationRequested:   RegistrationInitiated,
	DeregistrationRequested: DeregistrationInitiated,
}

// Initiated returns the in-flight counterpart of a "*Requested" payment action.
// The second return is false for actions that do not start a transaction.
func (a PaymentAction) Initiated() (PaymentAction, bool) {
	next, ok := paymentInitiated[a]
	return next, ok
}

// Initiated returns the in-flight counterpart of a "*Requested" purchase action.
func (a PurchaseAction) Initiated() (PurchaseAction, bool) {
	next, ok := purchaseInitiated[a]
	return next, ok
}

// Initiated returns the in-flight counterpart of a "*Requested" registry state.
func (s RegistryState) Initiated() (RegistryState, bool) {
	next, ok := registryInitiated[s]
	return next, ok
}

// FailureState maps the registry state to its failure terminal.
func (s RegistryState) FailureState() RegistryState {
	switch s {
	case DeregistrationRequested, DeregistrationInitiated:
		return DeregistrationFailed
	}
	return RegistrationFailed
}

// Terminal reports whether the registry state admits no further processing.
func (s RegistryState) Terminal() bool {
	switch s {
	case RegistrationConfirmed, RegistrationFailed, DeregistrationConfirmed, DeregistrationFailed:
		return true
	}
	return false
}

// ExpectedOnChainState is the escrow state the ledger must hold for the
// action to be applied. Actions that create the escrow UTXO (funds locking,
// registration) have no prior state and return false.
func (a PaymentAction) ExpectedOnChainState() (OnChainState, bool) {
	switch a {
	case PaymentSubmitResultRequested:
		return StateFundsLocked, true
	case PaymentAuthorizeRefundRequested:
		return StateDisputed, true
	case PaymentWithdrawRequested:
		return StateResultSubmitted, true
	}
	return "", false
}

// ExpectedOnChainState is the escrow state the ledger must hold for the
// purchase action to be applied.
func (a PurchaseAction) ExpectedOnChainState() (OnChainState, bool) {
	switch a {
	case PurchaseSetRefundRequestedRequested:
		return StateFundsLocked, true
	case PurchaseUnSetRefundRequestedRequested:
		return StateRefundRequested, true
	case PurchaseWithdrawRefundRequested:
		return StateRefundRequested, true
	}
	return "", false
}
