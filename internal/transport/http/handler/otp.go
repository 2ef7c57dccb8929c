package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/otp-auth-api/internal/application/otp"
	"github.com/otp-auth-api/internal/pkg/validate"
)

// OtpHandler handles the two public OTP endpoints: send and login.
type OtpHandler struct {
	svc otp.Service
}

func NewOtpHandler(svc otp.Service) *OtpHandler { return &OtpHandler{svc: svc} }

func (h *OtpHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req otp.SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	result, err := h.svc.Send(r.Context(), req)
	if err != nil {
		logStorageFault("otp send", err)
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: result.Message})
}

func (h *OtpHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req otp.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	result, err := h.svc.Login(r.Context(), req)
	if err != nil {
		logStorageFault("otp login", err)
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{
		Token:   result.Token,
		User:    toSafeUser(result.User),
		Message: "login successful",
	})
}

// logStorageFault records infrastructure failures with operation context.
// Expected outcomes (bad input, invalid code) are caller-visible results,
// never incidents, so they are not logged here.
func logStorageFault(op string, err error) {
	if isExpected(err) {
		return
	}
	slog.Error("operation failed", "op", op, "err", err)
}
