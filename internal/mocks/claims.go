// Code generated by MockGen. DO NOT EDIT.
// Source: service.go

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	gomock "github.com/golang/mock/gomock"
	claims "github.com/jonumhills/townhall-rwa/internal/claims"
	schema "github.com/jonumhills/townhall-rwa/internal/store/schema"
)

// MockClaimsService is a mock of Service interface.
type MockClaimsService struct {
	ctrl     *gomock.Controller
	recorder *MockClaimsServiceMockRecorder
}

// MockClaimsServiceMockRecorder is the mock recorder for MockClaimsService.
type MockClaimsServiceMockRecorder struct {
	mock *MockClaimsService
}

// NewMockClaimsService creates a new mock instance.
func NewMockClaimsService(ctrl *gomock.Controller) *MockClaimsService {
	mock := &MockClaimsService{ctrl: ctrl}
	mock.recorder = &MockClaimsServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockClaimsService) EXPECT() *MockClaimsServiceMockRecorder {
	return m.recorder
}

// Decide mocks base method.
func (m *MockClaimsService) Decide(ctx context.Context, req claims.DecideRequest) (*claims.DecideResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Decide", ctx, req)
	ret0, _ := ret[0].(*claims.DecideResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Decide indicates an expected call of Decide.
func (mr *MockClaimsServiceMockRecorder) Decide(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Decide", reflect.TypeOf((*MockClaimsService)(nil).Decide), ctx, req)
}

// GetClaim mocks base method.
func (m *MockClaimsService) GetClaim(ctx context.Context, claimID string) (*schema.ParcelToken, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetClaim", ctx, claimID)
	ret0, _ := ret[0].(*schema.ParcelToken)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetClaim indicates an expected call of GetClaim.
func (mr *MockClaimsServiceMockRecorder) GetClaim(ctx, claimID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetClaim", reflect.TypeOf((*MockClaimsService)(nil).GetClaim), ctx, claimID)
}

// SubmitClaim mocks base method.
func (m *MockClaimsService) SubmitClaim(ctx context.Context, req claims.SubmitRequest) (*schema.ParcelToken, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SubmitClaim", ctx, req)
	ret0, _ := ret[0].(*schema.ParcelToken)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SubmitClaim indicates an expected call of SubmitClaim.
func (mr *MockClaimsServiceMockRecorder) SubmitClaim(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SubmitClaim", reflect.TypeOf((*MockClaimsService)(nil).SubmitClaim), ctx, req)
}
