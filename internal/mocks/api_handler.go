// Code generated by MockGen. DO NOT EDIT.
// Source: handler.go

// Package mocks is a generated GoMock package.
package mocks

import (
	reflect "reflect"

	gin "github.com/gin-gonic/gin"
	gomock "github.com/golang/mock/gomock"
)

// MockAPIHandler is a mock of Handler interface.
type MockAPIHandler struct {
	ctrl     *gomock.Controller
	recorder *MockAPIHandlerMockRecorder
}

// MockAPIHandlerMockRecorder is the mock recorder for MockAPIHandler.
type MockAPIHandlerMockRecorder struct {
	mock *MockAPIHandler
}

// NewMockAPIHandler creates a new mock instance.
func NewMockAPIHandler(ctrl *gomock.Controller) *MockAPIHandler {
	mock := &MockAPIHandler{ctrl: ctrl}
	mock.recorder = &MockAPIHandlerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockAPIHandler) EXPECT() *MockAPIHandlerMockRecorder {
	return m.recorder
}

// BuyShares mocks base method.
func (m *MockAPIHandler) BuyShares(c *gin.Context) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "BuyShares", c)
}

// BuyShares indicates an expected call of BuyShares.
func (mr *MockAPIHandlerMockRecorder) BuyShares(c interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BuyShares", reflect.TypeOf((*MockAPIHandler)(nil).BuyShares), c)
}

// DecideClaim mocks base method.
func (m *MockAPIHandler) DecideClaim(c *gin.Context) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "DecideClaim", c)
}

// DecideClaim indicates an expected call of DecideClaim.
func (mr *MockAPIHandlerMockRecorder) DecideClaim(c interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DecideClaim", reflect.TypeOf((*MockAPIHandler)(nil).DecideClaim), c)
}

// GetClaim mocks base method.
func (m *MockAPIHandler) GetClaim(c *gin.Context) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "GetClaim", c)
}

// GetClaim indicates an expected call of GetClaim.
func (mr *MockAPIHandlerMockRecorder) GetClaim(c interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetClaim", reflect.TypeOf((*MockAPIHandler)(nil).GetClaim), c)
}

// GetListings mocks base method.
func (m *MockAPIHandler) GetListings(c *gin.Context) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "GetListings", c)
}

// GetListings indicates an expected call of GetListings.
func (mr *MockAPIHandlerMockRecorder) GetListings(c interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetListings", reflect.TypeOf((*MockAPIHandler)(nil).GetListings), c)
}

// GetOwnedParcels mocks base method.
func (m *MockAPIHandler) GetOwnedParcels(c *gin.Context) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "GetOwnedParcels", c)
}

// GetOwnedParcels indicates an expected call of GetOwnedParcels.
func (mr *MockAPIHandlerMockRecorder) GetOwnedParcels(c interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetOwnedParcels", reflect.TypeOf((*MockAPIHandler)(nil).GetOwnedParcels), c)
}

// GetPortfolio mocks base method.
func (m *MockAPIHandler) GetPortfolio(c *gin.Context) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "GetPortfolio", c)
}

// GetPortfolio indicates an expected call of GetPortfolio.
func (mr *MockAPIHandlerMockRecorder) GetPortfolio(c interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetPortfolio", reflect.TypeOf((*MockAPIHandler)(nil).GetPortfolio), c)
}

// HealthCheck mocks base method.
func (m *MockAPIHandler) HealthCheck(c *gin.Context) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "HealthCheck", c)
}

// HealthCheck indicates an expected call of HealthCheck.
func (mr *MockAPIHandlerMockRecorder) HealthCheck(c interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HealthCheck", reflect.TypeOf((*MockAPIHandler)(nil).HealthCheck), c)
}

// ListShares mocks base method.
func (m *MockAPIHandler) ListShares(c *gin.Context) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "ListShares", c)
}

// ListShares indicates an expected call of ListShares.
func (mr *MockAPIHandlerMockRecorder) ListShares(c interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListShares", reflect.TypeOf((*MockAPIHandler)(nil).ListShares), c)
}

// SubmitClaim mocks base method.
func (m *MockAPIHandler) SubmitClaim(c *gin.Context) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SubmitClaim", c)
}

// SubmitClaim indicates an expected call of SubmitClaim.
func (mr *MockAPIHandlerMockRecorder) SubmitClaim(c interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SubmitClaim", reflect.TypeOf((*MockAPIHandler)(nil).SubmitClaim), c)
}
