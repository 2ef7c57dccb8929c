package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/otp-auth-api/internal/application/otp"
	"github.com/otp-auth-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOtpService struct{ mock.Mock }

func (m *mockOtpService) Send(ctx context.Context, req otp.SendRequest) (*otp.SendResult, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*otp.SendResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOtpService) Login(ctx context.Context, req otp.LoginRequest) (*otp.LoginResult, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*otp.LoginResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSendHandler_InvalidBody(t *testing.T) {
	h := NewOtpHandler(&mockOtpService{})
	req := httptest.NewRequest(http.MethodPost, "/v1/otp/send", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	h.Send(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSendHandler_ValidationErrorMapsTo400(t *testing.T) {
	svc := &mockOtpService{}
	svc.On("Send", mock.Anything, otp.SendRequest{}).Return(nil, domain.ErrBadRequest)

	h := NewOtpHandler(svc)
	req := httptest.NewRequest(http.MethodPost, "/v1/otp/send", strings.NewReader("{}"))
	rr := httptest.NewRecorder()
	h.Send(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSendHandler_OK(t *testing.T) {
	svc := &mockOtpService{}
	svc.On("Send", mock.Anything, otp.SendRequest{Email: "alice@example.com"}).
		Return(&otp.SendResult{Message: "code sent"}, nil)

	h := NewOtpHandler(svc)
	req := httptest.NewRequest(http.MethodPost, "/v1/otp/send", strings.NewReader(`{"email":"alice@example.com"}`))
	rr := httptest.NewRecorder()
	h.Send(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "code sent")
}

func TestSendHandler_StorageErrorIsGeneric(t *testing.T) {
	svc := &mockOtpService{}
	svc.On("Send", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

	h := NewOtpHandler(svc)
	req := httptest.NewRequest(http.MethodPost, "/v1/otp/send", strings.NewReader(`{"email":"a@b.com"}`))
	rr := httptest.NewRecorder()
	h.Send(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "internal error")
	assert.NotContains(t, rr.Body.String(), "connection")
}

func TestLoginHandler_MissingCodeMapsTo422(t *testing.T) {
	h := NewOtpHandler(&mockOtpService{})
	req := httptest.NewRequest(http.MethodPost, "/v1/otp/login", strings.NewReader(`{"email":"a@b.com"}`))
	rr := httptest.NewRecorder()
	h.Login(rr, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestLoginHandler_InvalidCodeMapsTo401(t *testing.T) {
	svc := &mockOtpService{}
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrUnauthorized)

	h := NewOtpHandler(svc)
	req := httptest.NewRequest(http.MethodPost, "/v1/otp/login", strings.NewReader(`{"email":"a@b.com","code":"000000"}`))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid or expired code")
}

func TestLoginHandler_OK(t *testing.T) {
	svc := &mockOtpService{}
	user := &domain.User{UserID: "u1", Email: "alice@example.com", PasswordHash: "hash-never-leaks"}
	svc.On("Login", mock.Anything, otp.LoginRequest{Email: "alice@example.com", Code: "483920"}).
		Return(&otp.LoginResult{Token: "signed-token", User: user}, nil)

	h := NewOtpHandler(svc)
	req := httptest.NewRequest(http.MethodPost, "/v1/otp/login", strings.NewReader(`{"email":"alice@example.com","code":"483920"}`))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "signed-token")
	assert.Contains(t, rr.Body.String(), "alice@example.com")
	assert.NotContains(t, rr.Body.String(), "hash-never-leaks")
}
