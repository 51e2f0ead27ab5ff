// Code generated by MockGen. DO NOT EDIT.
// Source: engine.go

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	gomock "github.com/golang/mock/gomock"
	settlement "github.com/jonumhills/townhall-rwa/internal/settlement"
	schema "github.com/jonumhills/townhall-rwa/internal/store/schema"
)

// MockSettlementEngine is a mock of Engine interface.
type MockSettlementEngine struct {
	ctrl     *gomock.Controller
	recorder *MockSettlementEngineMockRecorder
}

// MockSettlementEngineMockRecorder is the mock recorder for MockSettlementEngine.
type MockSettlementEngineMockRecorder struct {
	mock *MockSettlementEngine
}

// NewMockSettlementEngine creates a new mock instance.
func NewMockSettlementEngine(ctrl *gomock.Controller) *MockSettlementEngine {
	mock := &MockSettlementEngine{ctrl: ctrl}
	mock.recorder = &MockSettlementEngineMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSettlementEngine) EXPECT() *MockSettlementEngineMockRecorder {
	return m.recorder
}

// Buy mocks base method.
func (m *MockSettlementEngine) Buy(ctx context.Context, req settlement.BuyRequest) (*settlement.BuyResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Buy", ctx, req)
	ret0, _ := ret[0].(*settlement.BuyResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Buy indicates an expected call of Buy.
func (mr *MockSettlementEngineMockRecorder) Buy(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Buy", reflect.TypeOf((*MockSettlementEngine)(nil).Buy), ctx, req)
}

// List mocks base method.
func (m *MockSettlementEngine) List(ctx context.Context, req settlement.ListRequest) (*schema.ParcelToken, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "List", ctx, req)
	ret0, _ := ret[0].(*schema.ParcelToken)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// List indicates an expected call of List.
func (mr *MockSettlementEngineMockRecorder) List(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "List", reflect.TypeOf((*MockSettlementEngine)(nil).List), ctx, req)
}
