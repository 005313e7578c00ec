// Code generated by MockGen. DO NOT EDIT.
// Source: types.go

// Package chain is a generated GoMock package.
package chain

import (
	context "context"
	reflect "reflect"
	time "time"

	ledger "github.com/custodia-tech/settlement-backend/internal/ledger"
	gomock "github.com/golang/mock/gomock"
)

// MockProvider is a mock of Provider interface.
type MockProvider struct {
	ctrl     *gomock.Controller
	recorder *MockProviderMockRecorder
}

// MockProviderMockRecorder is the mock recorder for MockProvider.
type MockProviderMockRecorder struct {
	mock *MockProvider
}

// NewMockProvider creates a new mock instance.
func NewMockProvider(ctrl *gomock.Controller) *MockProvider {
	mock := &MockProvider{ctrl: ctrl}
	mock.recorder = &MockProviderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockProvider) EXPECT() *MockProviderMockRecorder {
	return m.recorder
}

// Evaluate mocks base method.
func (m *MockProvider) Evaluate(ctx context.Context, txBytes []byte) (ledger.ExUnits, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Evaluate", ctx, txBytes)
	ret0, _ := ret[0].(ledger.ExUnits)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Evaluate indicates an expected call of Evaluate.
func (mr *MockProviderMockRecorder) Evaluate(ctx, txBytes interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Evaluate", reflect.TypeOf((*MockProvider)(nil).Evaluate), ctx, txBytes)
}

// Submit mocks base method.
func (m *MockProvider) Submit(ctx context.Context, txBytes []byte) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Submit", ctx, txBytes)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Submit indicates an expected call of Submit.
func (mr *MockProviderMockRecorder) Submit(ctx, txBytes interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Submit", reflect.TypeOf((*MockProvider)(nil).Submit), ctx, txBytes)
}

// Tip mocks base method.
func (m *MockProvider) Tip(ctx context.Context) (ledger.Tip, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Tip", ctx)
	ret0, _ := ret[0].(ledger.Tip)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Tip indicates an expected call of Tip.
func (mr *MockProviderMockRecorder) Tip(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Tip", reflect.TypeOf((*MockProvider)(nil).Tip), ctx)
}

// UTXOsAtAddress mocks base method.
func (m *MockProvider) UTXOsAtAddress(ctx context.Context, address string) ([]ledger.UTXO, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UTXOsAtAddress", ctx, address)
	ret0, _ := ret[0].([]ledger.UTXO)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UTXOsAtAddress indicates an expected call of UTXOsAtAddress.
func (mr *MockProviderMockRecorder) UTXOsAtAddress(ctx, address interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UTXOsAtAddress", reflect.TypeOf((*MockProvider)(nil).UTXOsAtAddress), ctx, address)
}

// UTXOsByTransaction mocks base method.
func (m *MockProvider) UTXOsByTransaction(ctx context.Context, txHash string) ([]ledger.UTXO, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UTXOsByTransaction", ctx, txHash)
	ret0, _ := ret[0].([]ledger.UTXO)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UTXOsByTransaction indicates an expected call of UTXOsByTransaction.
func (mr *MockProviderMockRecorder) UTXOsByTransaction(ctx, txHash interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UTXOsByTransaction", reflect.TypeOf((*MockProvider)(nil).UTXOsByTransaction), ctx, txHash)
}

// MockRPCMetrics is a mock of RPCMetrics interface.
type MockRPCMetrics struct {
	ctrl     *gomock.Controller
	recorder *MockRPCMetricsMockRecorder
}

// MockRPCMetricsMockRecorder is the mock recorder for MockRPCMetrics.
type MockRPCMetricsMockRecorder struct {
	mock *MockRPCMetrics
}

// NewMockRPCMetrics creates a new mock instance.
func NewMockRPCMetrics(ctrl *gomock.Controller) *MockRPCMetrics {
	mock := &MockRPCMetrics{ctrl: ctrl}
	mock.recorder = &MockRPCMetricsMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRPCMetrics) EXPECT() *MockRPCMetricsMockRecorder {
	return m.recorder
}

// Observe mocks base method.
func (m *MockRPCMetrics) Observe(operation string, err error, started time.Time) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Observe", operation, err, started)
}

// Observe indicates an expected call of Observe.
func (mr *MockRPCMetricsMockRecorder) Observe(operation, err, started interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Observe", reflect.TypeOf((*MockRPCMetrics)(nil).Observe), operation, err, started)
}
