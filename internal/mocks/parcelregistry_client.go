// Code generated by MockGen. DO NOT EDIT.
// Source: client.go

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	gomock "github.com/golang/mock/gomock"
	parcelregistry "github.com/jonumhills/townhall-rwa/internal/providers/parcelregistry"
)

// MockParcelRegistryClient is a mock of Client interface.
type MockParcelRegistryClient struct {
	ctrl     *gomock.Controller
	recorder *MockParcelRegistryClientMockRecorder
}

// MockParcelRegistryClientMockRecorder is the mock recorder for MockParcelRegistryClient.
type MockParcelRegistryClientMockRecorder struct {
	mock *MockParcelRegistryClient
}

// NewMockParcelRegistryClient creates a new mock instance.
func NewMockParcelRegistryClient(ctrl *gomock.Controller) *MockParcelRegistryClient {
	mock := &MockParcelRegistryClient{ctrl: ctrl}
	mock.recorder = &MockParcelRegistryClientMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockParcelRegistryClient) EXPECT() *MockParcelRegistryClientMockRecorder {
	return m.recorder
}

// LookupParcel mocks base method.
func (m *MockParcelRegistryClient) LookupParcel(ctx context.Context, pin, countyID string) (*parcelregistry.ParcelInfo, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LookupParcel", ctx, pin, countyID)
	ret0, _ := ret[0].(*parcelregistry.ParcelInfo)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// LookupParcel indicates an expected call of LookupParcel.
func (mr *MockParcelRegistryClientMockRecorder) LookupParcel(ctx, pin, countyID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LookupParcel", reflect.TypeOf((*MockParcelRegistryClient)(nil).LookupParcel), ctx, pin, countyID)
}
