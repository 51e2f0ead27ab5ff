// Code generated by MockGen. DO NOT EDIT.
// Source: adapter.go

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	gomock "github.com/golang/mock/gomock"
	chain "github.com/jonumhills/townhall-rwa/internal/chain"
	domain "github.com/jonumhills/townhall-rwa/internal/domain"
	schema "github.com/jonumhills/townhall-rwa/internal/store/schema"
)

// MockAssetRegistrar is a mock of AssetRegistrar interface.
type MockAssetRegistrar struct {
	ctrl     *gomock.Controller
	recorder *MockAssetRegistrarMockRecorder
}

// MockAssetRegistrarMockRecorder is the mock recorder for MockAssetRegistrar.
type MockAssetRegistrarMockRecorder struct {
	mock *MockAssetRegistrar
}

// NewMockAssetRegistrar creates a new mock instance.
func NewMockAssetRegistrar(ctrl *gomock.Controller) *MockAssetRegistrar {
	mock := &MockAssetRegistrar{ctrl: ctrl}
	mock.recorder = &MockAssetRegistrarMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockAssetRegistrar) EXPECT() *MockAssetRegistrarMockRecorder {
	return m.recorder
}

// GetDeployedAsset mocks base method.
func (m *MockAssetRegistrar) GetDeployedAsset(ctx context.Context, key domain.ParcelKey) (*schema.DeployedAsset, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetDeployedAsset", ctx, key)
	ret0, _ := ret[0].(*schema.DeployedAsset)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetDeployedAsset indicates an expected call of GetDeployedAsset.
func (mr *MockAssetRegistrarMockRecorder) GetDeployedAsset(ctx, key interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetDeployedAsset", reflect.TypeOf((*MockAssetRegistrar)(nil).GetDeployedAsset), ctx, key)
}

// RecordDeployedAsset mocks base method.
func (m *MockAssetRegistrar) RecordDeployedAsset(ctx context.Context, asset *schema.DeployedAsset) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RecordDeployedAsset", ctx, asset)
	ret0, _ := ret[0].(error)
	return ret0
}

// RecordDeployedAsset indicates an expected call of RecordDeployedAsset.
func (mr *MockAssetRegistrarMockRecorder) RecordDeployedAsset(ctx, asset interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RecordDeployedAsset", reflect.TypeOf((*MockAssetRegistrar)(nil).RecordDeployedAsset), ctx, asset)
}

// MockChainAdapter is a mock of Adapter interface.
type MockChainAdapter struct {
	ctrl     *gomock.Controller
	recorder *MockChainAdapterMockRecorder
}

// MockChainAdapterMockRecorder is the mock recorder for MockChainAdapter.
type MockChainAdapterMockRecorder struct {
	mock *MockChainAdapter
}

// NewMockChainAdapter creates a new mock instance.
func NewMockChainAdapter(ctrl *gomock.Controller) *MockChainAdapter {
	mock := &MockChainAdapter{ctrl: ctrl}
	mock.recorder = &MockChainAdapterMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockChainAdapter) EXPECT() *MockChainAdapterMockRecorder {
	return m.recorder
}

// ChainType mocks base method.
func (m *MockChainAdapter) ChainType() domain.ChainType {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ChainType")
	ret0, _ := ret[0].(domain.ChainType)
	return ret0
}

// ChainType indicates an expected call of ChainType.
func (mr *MockChainAdapterMockRecorder) ChainType() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ChainType", reflect.TypeOf((*MockChainAdapter)(nil).ChainType))
}

// Mint mocks base method.
func (m *MockChainAdapter) Mint(ctx context.Context, req chain.MintRequest) (*chain.MintReceipt, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Mint", ctx, req)
	ret0, _ := ret[0].(*chain.MintReceipt)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Mint indicates an expected call of Mint.
func (mr *MockChainAdapterMockRecorder) Mint(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Mint", reflect.TypeOf((*MockChainAdapter)(nil).Mint), ctx, req)
}

// Settle mocks base method.
func (m *MockChainAdapter) Settle(ctx context.Context, req chain.SettleRequest) (*chain.SettleReceipt, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Settle", ctx, req)
	ret0, _ := ret[0].(*chain.SettleReceipt)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Settle indicates an expected call of Settle.
func (mr *MockChainAdapterMockRecorder) Settle(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Settle", reflect.TypeOf((*MockChainAdapter)(nil).Settle), ctx, req)
}
