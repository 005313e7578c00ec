// Code generated by MockGen. DO NOT EDIT.
// Source: types.go

// Package processor is a generated GoMock package.
package processor

import (
	context "context"
	reflect "reflect"
	time "time"

	audit "github.com/custodia-tech/settlement-backend/internal/audit"
	chain "github.com/custodia-tech/settlement-backend/internal/chain"
	model "github.com/custodia-tech/settlement-backend/internal/model"
	gomock "github.com/golang/mock/gomock"
	uuid "github.com/google/uuid"
)

// MockStore is a mock of Store interface.
type MockStore struct {
	ctrl     *gomock.Controller
	recorder *MockStoreMockRecorder
}

// MockStoreMockRecorder is the mock recorder for MockStore.
type MockStoreMockRecorder struct {
	mock *MockStore
}

// NewMockStore creates a new mock instance.
func NewMockStore(ctrl *gomock.Controller) *MockStore {
	mock := &MockStore{ctrl: ctrl}
	mock.recorder = &MockStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockStore) EXPECT() *MockStoreMockRecorder {
	return m.recorder
}

// DuePaymentRequests mocks base method.
func (m *MockStore) DuePaymentRequests(ctx context.Context, action model.PaymentAction, now time.Time, limit int) ([]model.PaymentRequest, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DuePaymentRequests", ctx, action, now, limit)
	ret0, _ := ret[0].([]model.PaymentRequest)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DuePaymentRequests indicates an expected call of DuePaymentRequests.
func (mr *MockStoreMockRecorder) DuePaymentRequests(ctx, action, now, limit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DuePaymentRequests", reflect.TypeOf((*MockStore)(nil).DuePaymentRequests), ctx, action, now, limit)
}

// DuePurchaseRequests mocks base method.
func (m *MockStore) DuePurchaseRequests(ctx context.Context, action model.PurchaseAction, now time.Time, limit int) ([]model.PurchaseRequest, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DuePurchaseRequests", ctx, action, now, limit)
	ret0, _ := ret[0].([]model.PurchaseRequest)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DuePurchaseRequests indicates an expected call of DuePurchaseRequests.
func (mr *MockStoreMockRecorder) DuePurchaseRequests(ctx, action, now, limit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DuePurchaseRequests", reflect.TypeOf((*MockStore)(nil).DuePurchaseRequests), ctx, action, now, limit)
}

// DueRegistryRequests mocks base method.
func (m *MockStore) DueRegistryRequests(ctx context.Context, state model.RegistryState, now time.Time, limit int) ([]model.RegistryRequest, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DueRegistryRequests", ctx, state, now, limit)
	ret0, _ := ret[0].([]model.RegistryRequest)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DueRegistryRequests indicates an expected call of DueRegistryRequests.
func (mr *MockStoreMockRecorder) DueRegistryRequests(ctx, state, now, limit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DueRegistryRequests", reflect.TypeOf((*MockStore)(nil).DueRegistryRequests), ctx, state, now, limit)
}

// FailPaymentRequest mocks base method.
func (m *MockStore) FailPaymentRequest(ctx context.Context, requestID uuid.UUID, note string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FailPaymentRequest", ctx, requestID, note)
	ret0, _ := ret[0].(error)
	return ret0
}

// FailPaymentRequest indicates an expected call of FailPaymentRequest.
func (mr *MockStoreMockRecorder) FailPaymentRequest(ctx, requestID, note interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FailPaymentRequest", reflect.TypeOf((*MockStore)(nil).FailPaymentRequest), ctx, requestID, note)
}

// FailPurchaseRequest mocks base method.
func (m *MockStore) FailPurchaseRequest(ctx context.Context, requestID uuid.UUID, note string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FailPurchaseRequest", ctx, requestID, note)
	ret0, _ := ret[0].(error)
	return ret0
}

// FailPurchaseRequest indicates an expected call of FailPurchaseRequest.
func (mr *MockStoreMockRecorder) FailPurchaseRequest(ctx, requestID, note interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FailPurchaseRequest", reflect.TypeOf((*MockStore)(nil).FailPurchaseRequest), ctx, requestID, note)
}

// FailRegistryRequest mocks base method.
func (m *MockStore) FailRegistryRequest(ctx context.Context, requestID uuid.UUID, note string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FailRegistryRequest", ctx, requestID, note)
	ret0, _ := ret[0].(error)
	return ret0
}

// FailRegistryRequest indicates an expected call of FailRegistryRequest.
func (mr *MockStoreMockRecorder) FailRegistryRequest(ctx, requestID, note interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FailRegistryRequest", reflect.TypeOf((*MockStore)(nil).FailRegistryRequest), ctx, requestID, note)
}

// RecordSubmittedTxHash mocks base method.
func (m *MockStore) RecordSubmittedTxHash(ctx context.Context, recordID uuid.UUID, txHash string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RecordSubmittedTxHash", ctx, recordID, txHash)
	ret0, _ := ret[0].(error)
	return ret0
}

// RecordSubmittedTxHash indicates an expected call of RecordSubmittedTxHash.
func (mr *MockStoreMockRecorder) RecordSubmittedTxHash(ctx, recordID, txHash interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RecordSubmittedTxHash", reflect.TypeOf((*MockStore)(nil).RecordSubmittedTxHash), ctx, recordID, txHash)
}

// StagePaymentTransaction mocks base method.
func (m *MockStore) StagePaymentTransaction(ctx context.Context, requestID uuid.UUID) (*model.TransactionRecord, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "StagePaymentTransaction", ctx, requestID)
	ret0, _ := ret[0].(*model.TransactionRecord)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// StagePaymentTransaction indicates an expected call of StagePaymentTransaction.
func (mr *MockStoreMockRecorder) StagePaymentTransaction(ctx, requestID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "StagePaymentTransaction", reflect.TypeOf((*MockStore)(nil).StagePaymentTransaction), ctx, requestID)
}

// StagePurchaseTransaction mocks base method.
func (m *MockStore) StagePurchaseTransaction(ctx context.Context, requestID uuid.UUID) (*model.TransactionRecord, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "StagePurchaseTransaction", ctx, requestID)
	ret0, _ := ret[0].(*model.TransactionRecord)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// StagePurchaseTransaction indicates an expected call of StagePurchaseTransaction.
func (mr *MockStoreMockRecorder) StagePurchaseTransaction(ctx, requestID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "StagePurchaseTransaction", reflect.TypeOf((*MockStore)(nil).StagePurchaseTransaction), ctx, requestID)
}

// StageRegistryTransaction mocks base method.
func (m *MockStore) StageRegistryTransaction(ctx context.Context, requestID uuid.UUID) (*model.TransactionRecord, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "StageRegistryTransaction", ctx, requestID)
	ret0, _ := ret[0].(*model.TransactionRecord)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// StageRegistryTransaction indicates an expected call of StageRegistryTransaction.
func (mr *MockStoreMockRecorder) StageRegistryTransaction(ctx, requestID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "StageRegistryTransaction", reflect.TypeOf((*MockStore)(nil).StageRegistryTransaction), ctx, requestID)
}

// UnlockWallet mocks base method.
func (m *MockStore) UnlockWallet(ctx context.Context, walletID uuid.UUID) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UnlockWallet", ctx, walletID)
	ret0, _ := ret[0].(error)
	return ret0
}

// UnlockWallet indicates an expected call of UnlockWallet.
func (mr *MockStoreMockRecorder) UnlockWallet(ctx, walletID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UnlockWallet", reflect.TypeOf((*MockStore)(nil).UnlockWallet), ctx, walletID)
}

// MockProviders is a mock of Providers interface.
type MockProviders struct {
	ctrl     *gomock.Controller
	recorder *MockProvidersMockRecorder
}

// MockProvidersMockRecorder is the mock recorder for MockProviders.
type MockProvidersMockRecorder struct {
	mock *MockProviders
}

// NewMockProviders creates a new mock instance.
func NewMockProviders(ctrl *gomock.Controller) *MockProviders {
	mock := &MockProviders{ctrl: ctrl}
	mock.recorder = &MockProvidersMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockProviders) EXPECT() *MockProvidersMockRecorder {
	return m.recorder
}

// For mocks base method.
func (m *MockProviders) For(src *model.PaymentSource) chain.Provider {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "For", src)
	ret0, _ := ret[0].(chain.Provider)
	return ret0
}

// For indicates an expected call of For.
func (mr *MockProvidersMockRecorder) For(src interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "For", reflect.TypeOf((*MockProviders)(nil).For), src)
}

// MockKey is a mock of Key interface.
type MockKey struct {
	ctrl     *gomock.Controller
	recorder *MockKeyMockRecorder
}

// MockKeyMockRecorder is the mock recorder for MockKey.
type MockKeyMockRecorder struct {
	mock *MockKey
}

// NewMockKey creates a new mock instance.
func NewMockKey(ctrl *gomock.Controller) *MockKey {
	mock := &MockKey{ctrl: ctrl}
	mock.recorder = &MockKeyMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockKey) EXPECT() *MockKeyMockRecorder {
	return m.recorder
}

// Address mocks base method.
func (m *MockKey) Address() string {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Address")
	ret0, _ := ret[0].(string)
	return ret0
}

// Address indicates an expected call of Address.
func (mr *MockKeyMockRecorder) Address() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Address", reflect.TypeOf((*MockKey)(nil).Address))
}

// Sign mocks base method.
func (m *MockKey) Sign(txBytes []byte) ([]byte, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Sign", txBytes)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Sign indicates an expected call of Sign.
func (mr *MockKeyMockRecorder) Sign(txBytes interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Sign", reflect.TypeOf((*MockKey)(nil).Sign), txBytes)
}

// VkeyHash mocks base method.
func (m *MockKey) VkeyHash() string {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "VkeyHash")
	ret0, _ := ret[0].(string)
	return ret0
}

// VkeyHash indicates an expected call of VkeyHash.
func (mr *MockKeyMockRecorder) VkeyHash() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "VkeyHash", reflect.TypeOf((*MockKey)(nil).VkeyHash))
}

// MockKeys is a mock of Keys interface.
type MockKeys struct {
	ctrl     *gomock.Controller
	recorder *MockKeysMockRecorder
}

// MockKeysMockRecorder is the mock recorder for MockKeys.
type MockKeysMockRecorder struct {
	mock *MockKeys
}

// NewMockKeys creates a new mock instance.
func NewMockKeys(ctrl *gomock.Controller) *MockKeys {
	mock := &MockKeys{ctrl: ctrl}
	mock.recorder = &MockKeysMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockKeys) EXPECT() *MockKeysMockRecorder {
	return m.recorder
}

// Resolve mocks base method.
func (m *MockKeys) Resolve(w *model.HotWallet) (Key, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Resolve", w)
	ret0, _ := ret[0].(Key)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Resolve indicates an expected call of Resolve.
func (mr *MockKeysMockRecorder) Resolve(w interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Resolve", reflect.TypeOf((*MockKeys)(nil).Resolve), w)
}

// MockLocker is a mock of Locker interface.
type MockLocker struct {
	ctrl     *gomock.Controller
	recorder *MockLockerMockRecorder
}

// MockLockerMockRecorder is the mock recorder for MockLocker.
type MockLockerMockRecorder struct {
	mock *MockLocker
}

// NewMockLocker creates a new mock instance.
func NewMockLocker(ctrl *gomock.Controller) *MockLocker {
	mock := &MockLocker{ctrl: ctrl}
	mock.recorder = &MockLockerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockLocker) EXPECT() *MockLockerMockRecorder {
	return m.recorder
}

// TryAcquire mocks base method.
func (m *MockLocker) TryAcquire(name string) (func(), bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "TryAcquire", name)
	ret0, _ := ret[0].(func())
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// TryAcquire indicates an expected call of TryAcquire.
func (mr *MockLockerMockRecorder) TryAcquire(name interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "TryAcquire", reflect.TypeOf((*MockLocker)(nil).TryAcquire), name)
}

// MockMetrics is a mock of Metrics interface.
type MockMetrics struct {
	ctrl     *gomock.Controller
	recorder *MockMetricsMockRecorder
}

// MockMetricsMockRecorder is the mock recorder for MockMetrics.
type MockMetricsMockRecorder struct {
	mock *MockMetrics
}

// NewMockMetrics creates a new mock instance.
func NewMockMetrics(ctrl *gomock.Controller) *MockMetrics {
	mock := &MockMetrics{ctrl: ctrl}
	mock.recorder = &MockMetricsMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockMetrics) EXPECT() *MockMetricsMockRecorder {
	return m.recorder
}

// ObserveBatch mocks base method.
func (m *MockMetrics) ObserveBatch(action string, err error, started time.Time) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "ObserveBatch", action, err, started)
}

// ObserveBatch indicates an expected call of ObserveBatch.
func (mr *MockMetricsMockRecorder) ObserveBatch(action, err, started interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ObserveBatch", reflect.TypeOf((*MockMetrics)(nil).ObserveBatch), action, err, started)
}

// ObserveRequest mocks base method.
func (m *MockMetrics) ObserveRequest(action, outcome string) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "ObserveRequest", action, outcome)
}

// ObserveRequest indicates an expected call of ObserveRequest.
func (mr *MockMetricsMockRecorder) ObserveRequest(action, outcome interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ObserveRequest", reflect.TypeOf((*MockMetrics)(nil).ObserveRequest), action, outcome)
}

// ObserveTransition mocks base method.
func (m *MockMetrics) ObserveTransition(kind, to string) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "ObserveTransition", kind, to)
}

// ObserveTransition indicates an expected call of ObserveTransition.
func (mr *MockMetricsMockRecorder) ObserveTransition(kind, to interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ObserveTransition", reflect.TypeOf((*MockMetrics)(nil).ObserveTransition), kind, to)
}

// MockAuditor is a mock of Auditor interface.
type MockAuditor struct {
	ctrl     *gomock.Controller
	recorder *MockAuditorMockRecorder
}

// MockAuditorMockRecorder is the mock recorder for MockAuditor.
type MockAuditorMockRecorder struct {
	mock *MockAuditor
}

// NewMockAuditor creates a new mock instance.
func NewMockAuditor(ctrl *gomock.Controller) *MockAuditor {
	mock := &MockAuditor{ctrl: ctrl}
	mock.recorder = &MockAuditorMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockAuditor) EXPECT() *MockAuditorMockRecorder {
	return m.recorder
}

// Record mocks base method.
func (m *MockAuditor) Record(ctx context.Context, event audit.Event) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Record", ctx, event)
	ret0, _ := ret[0].(error)
	return ret0
}

// Record indicates an expected call of Record.
func (mr *MockAuditorMockRecorder) Record(ctx, event interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Record", reflect.TypeOf((*MockAuditor)(nil).Record), ctx, event)
}
