// Code generated by MockGen. DO NOT EDIT.
// Source: store.go

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"
	time "time"

	gomock "github.com/golang/mock/gomock"
	domain "github.com/jonumhills/townhall-rwa/internal/domain"
	store "github.com/jonumhills/townhall-rwa/internal/store"
	schema "github.com/jonumhills/townhall-rwa/internal/store/schema"
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

// ApproveClaim mocks base method.
func (m *MockStore) ApproveClaim(ctx context.Context, input store.ApproveClaimInput) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ApproveClaim", ctx, input)
	ret0, _ := ret[0].(error)
	return ret0
}

// ApproveClaim indicates an expected call of ApproveClaim.
func (mr *MockStoreMockRecorder) ApproveClaim(ctx, input interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ApproveClaim", reflect.TypeOf((*MockStore)(nil).ApproveClaim), ctx, input)
}

// CreateClaim mocks base method.
func (m *MockStore) CreateClaim(ctx context.Context, input store.CreateClaimInput) (*schema.ParcelToken, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateClaim", ctx, input)
	ret0, _ := ret[0].(*schema.ParcelToken)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateClaim indicates an expected call of CreateClaim.
func (mr *MockStoreMockRecorder) CreateClaim(ctx, input interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateClaim", reflect.TypeOf((*MockStore)(nil).CreateClaim), ctx, input)
}

// CreateReconciliationTask mocks base method.
func (m *MockStore) CreateReconciliationTask(ctx context.Context, task *schema.ReconciliationTask) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateReconciliationTask", ctx, task)
	ret0, _ := ret[0].(error)
	return ret0
}

// CreateReconciliationTask indicates an expected call of CreateReconciliationTask.
func (mr *MockStoreMockRecorder) CreateReconciliationTask(ctx, task interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateReconciliationTask", reflect.TypeOf((*MockStore)(nil).CreateReconciliationTask), ctx, task)
}

// GetActiveListings mocks base method.
func (m *MockStore) GetActiveListings(ctx context.Context, countyID *string) ([]*schema.ParcelToken, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetActiveListings", ctx, countyID)
	ret0, _ := ret[0].([]*schema.ParcelToken)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetActiveListings indicates an expected call of GetActiveListings.
func (mr *MockStoreMockRecorder) GetActiveListings(ctx, countyID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetActiveListings", reflect.TypeOf((*MockStore)(nil).GetActiveListings), ctx, countyID)
}

// GetClaimByID mocks base method.
func (m *MockStore) GetClaimByID(ctx context.Context, claimID string) (*schema.ParcelToken, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetClaimByID", ctx, claimID)
	ret0, _ := ret[0].(*schema.ParcelToken)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetClaimByID indicates an expected call of GetClaimByID.
func (mr *MockStoreMockRecorder) GetClaimByID(ctx, claimID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetClaimByID", reflect.TypeOf((*MockStore)(nil).GetClaimByID), ctx, claimID)
}

// GetDeployedAsset mocks base method.
func (m *MockStore) GetDeployedAsset(ctx context.Context, key domain.ParcelKey) (*schema.DeployedAsset, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetDeployedAsset", ctx, key)
	ret0, _ := ret[0].(*schema.DeployedAsset)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetDeployedAsset indicates an expected call of GetDeployedAsset.
func (mr *MockStoreMockRecorder) GetDeployedAsset(ctx, key interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetDeployedAsset", reflect.TypeOf((*MockStore)(nil).GetDeployedAsset), ctx, key)
}

// GetHoldingByTxRef mocks base method.
func (m *MockStore) GetHoldingByTxRef(ctx context.Context, txRef string) (*schema.ShareHolding, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetHoldingByTxRef", ctx, txRef)
	ret0, _ := ret[0].(*schema.ShareHolding)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetHoldingByTxRef indicates an expected call of GetHoldingByTxRef.
func (mr *MockStoreMockRecorder) GetHoldingByTxRef(ctx, txRef interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetHoldingByTxRef", reflect.TypeOf((*MockStore)(nil).GetHoldingByTxRef), ctx, txRef)
}

// GetHoldingsByBuyer mocks base method.
func (m *MockStore) GetHoldingsByBuyer(ctx context.Context, buyerWallet string) ([]*schema.ShareHolding, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetHoldingsByBuyer", ctx, buyerWallet)
	ret0, _ := ret[0].([]*schema.ShareHolding)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetHoldingsByBuyer indicates an expected call of GetHoldingsByBuyer.
func (mr *MockStoreMockRecorder) GetHoldingsByBuyer(ctx, buyerWallet interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetHoldingsByBuyer", reflect.TypeOf((*MockStore)(nil).GetHoldingsByBuyer), ctx, buyerWallet)
}

// GetParcel mocks base method.
func (m *MockStore) GetParcel(ctx context.Context, key domain.ParcelKey) (*schema.ParcelToken, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetParcel", ctx, key)
	ret0, _ := ret[0].(*schema.ParcelToken)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetParcel indicates an expected call of GetParcel.
func (mr *MockStoreMockRecorder) GetParcel(ctx, key interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetParcel", reflect.TypeOf((*MockStore)(nil).GetParcel), ctx, key)
}

// GetParcelsByOwner mocks base method.
func (m *MockStore) GetParcelsByOwner(ctx context.Context, ownerWallet string) ([]*schema.ParcelToken, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetParcelsByOwner", ctx, ownerWallet)
	ret0, _ := ret[0].([]*schema.ParcelToken)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetParcelsByOwner indicates an expected call of GetParcelsByOwner.
func (mr *MockStoreMockRecorder) GetParcelsByOwner(ctx, ownerWallet interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetParcelsByOwner", reflect.TypeOf((*MockStore)(nil).GetParcelsByOwner), ctx, ownerWallet)
}

// GetPendingReconciliationTasks mocks base method.
func (m *MockStore) GetPendingReconciliationTasks(ctx context.Context, limit int) ([]*schema.ReconciliationTask, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetPendingReconciliationTasks", ctx, limit)
	ret0, _ := ret[0].([]*schema.ReconciliationTask)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetPendingReconciliationTasks indicates an expected call of GetPendingReconciliationTasks.
func (mr *MockStoreMockRecorder) GetPendingReconciliationTasks(ctx, limit interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetPendingReconciliationTasks", reflect.TypeOf((*MockStore)(nil).GetPendingReconciliationTasks), ctx, limit)
}

// ListShares mocks base method.
func (m *MockStore) ListShares(ctx context.Context, input store.ListSharesInput) (*schema.ParcelToken, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListShares", ctx, input)
	ret0, _ := ret[0].(*schema.ParcelToken)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListShares indicates an expected call of ListShares.
func (mr *MockStoreMockRecorder) ListShares(ctx, input interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListShares", reflect.TypeOf((*MockStore)(nil).ListShares), ctx, input)
}

// RecordDeployedAsset mocks base method.
func (m *MockStore) RecordDeployedAsset(ctx context.Context, asset *schema.DeployedAsset) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RecordDeployedAsset", ctx, asset)
	ret0, _ := ret[0].(error)
	return ret0
}

// RecordDeployedAsset indicates an expected call of RecordDeployedAsset.
func (mr *MockStoreMockRecorder) RecordDeployedAsset(ctx, asset interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RecordDeployedAsset", reflect.TypeOf((*MockStore)(nil).RecordDeployedAsset), ctx, asset)
}

// RejectClaim mocks base method.
func (m *MockStore) RejectClaim(ctx context.Context, input store.RejectClaimInput) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RejectClaim", ctx, input)
	ret0, _ := ret[0].(error)
	return ret0
}

// RejectClaim indicates an expected call of RejectClaim.
func (mr *MockStoreMockRecorder) RejectClaim(ctx, input interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RejectClaim", reflect.TypeOf((*MockStore)(nil).RejectClaim), ctx, input)
}

// ResolveReconciliationTask mocks base method.
func (m *MockStore) ResolveReconciliationTask(ctx context.Context, taskID int64, resolvedAt time.Time) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ResolveReconciliationTask", ctx, taskID, resolvedAt)
	ret0, _ := ret[0].(error)
	return ret0
}

// ResolveReconciliationTask indicates an expected call of ResolveReconciliationTask.
func (mr *MockStoreMockRecorder) ResolveReconciliationTask(ctx, taskID, resolvedAt interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ResolveReconciliationTask", reflect.TypeOf((*MockStore)(nil).ResolveReconciliationTask), ctx, taskID, resolvedAt)
}

// SettlePurchase mocks base method.
func (m *MockStore) SettlePurchase(ctx context.Context, input store.SettlePurchaseInput) (*schema.ParcelToken, *schema.ShareHolding, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SettlePurchase", ctx, input)
	ret0, _ := ret[0].(*schema.ParcelToken)
	ret1, _ := ret[1].(*schema.ShareHolding)
	ret2, _ := ret[2].(error)
	return ret0, ret1, ret2
}

// SettlePurchase indicates an expected call of SettlePurchase.
func (mr *MockStoreMockRecorder) SettlePurchase(ctx, input interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SettlePurchase", reflect.TypeOf((*MockStore)(nil).SettlePurchase), ctx, input)
}
