// Code generated by MockGen. DO NOT EDIT.
// Source: service.go

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	gomock "github.com/golang/mock/gomock"
	query "github.com/jonumhills/townhall-rwa/internal/query"
)

// MockQueryService is a mock of Service interface.
type MockQueryService struct {
	ctrl     *gomock.Controller
	recorder *MockQueryServiceMockRecorder
}

// MockQueryServiceMockRecorder is the mock recorder for MockQueryService.
type MockQueryServiceMockRecorder struct {
	mock *MockQueryService
}

// NewMockQueryService creates a new mock instance.
func NewMockQueryService(ctrl *gomock.Controller) *MockQueryService {
	mock := &MockQueryService{ctrl: ctrl}
	mock.recorder = &MockQueryServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockQueryService) EXPECT() *MockQueryServiceMockRecorder {
	return m.recorder
}

// GetOwnedParcels mocks base method.
func (m *MockQueryService) GetOwnedParcels(ctx context.Context, wallet string) ([]*query.OwnedParcel, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetOwnedParcels", ctx, wallet)
	ret0, _ := ret[0].([]*query.OwnedParcel)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetOwnedParcels indicates an expected call of GetOwnedParcels.
func (mr *MockQueryServiceMockRecorder) GetOwnedParcels(ctx, wallet interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetOwnedParcels", reflect.TypeOf((*MockQueryService)(nil).GetOwnedParcels), ctx, wallet)
}

// GetPortfolio mocks base method.
func (m *MockQueryService) GetPortfolio(ctx context.Context, wallet string) (*query.Portfolio, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetPortfolio", ctx, wallet)
	ret0, _ := ret[0].(*query.Portfolio)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetPortfolio indicates an expected call of GetPortfolio.
func (mr *MockQueryServiceMockRecorder) GetPortfolio(ctx, wallet interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetPortfolio", reflect.TypeOf((*MockQueryService)(nil).GetPortfolio), ctx, wallet)
}

// ListActiveListings mocks base method.
func (m *MockQueryService) ListActiveListings(ctx context.Context, countyID *string) ([]*query.Listing, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListActiveListings", ctx, countyID)
	ret0, _ := ret[0].([]*query.Listing)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListActiveListings indicates an expected call of ListActiveListings.
func (mr *MockQueryServiceMockRecorder) ListActiveListings(ctx, countyID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListActiveListings", reflect.TypeOf((*MockQueryService)(nil).ListActiveListings), ctx, countyID)
}
