package otp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/otp-auth-api/internal/domain"
	"github.com/otp-auth-api/internal/pkg/id"
	pkgotp "github.com/otp-auth-api/internal/pkg/otp"
	pkgtoken "github.com/otp-auth-api/internal/pkg/token"
	"golang.org/x/crypto/bcrypt"
)

type SendRequest struct {
	Email  string `json:"email" validate:"omitempty,email"`
	Mobile string `json:"mobile" validate:"omitempty,e164"`
}

type LoginRequest struct {
	Email  string `json:"email" validate:"omitempty,email"`
	Mobile string `json:"mobile" validate:"omitempty,e164"`
	Code   string `json:"code" validate:"required"`
}

type SendResult struct {
	Message string `json:"message"`
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// OtpStore is the persistence surface the service needs for OTP records.
type OtpStore interface {
	Put(ctx context.Context, rec *domain.OtpRecord) error
	DeleteForIdentity(ctx context.Context, identity string) error
	FindLive(ctx context.Context, identity, code string, now time.Time) (*domain.OtpRecord, error)
	MarkVerified(ctx context.Context, otpID string, now time.Time) error
}

// UserStore is the persistence surface the service needs for user records.
type UserStore interface {
	Put(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByMobile(ctx context.Context, mobile string) (*domain.User, error)
	MarkMobileVerified(ctx context.Context, userID string) error
	SaveSessions(ctx context.Context, userID string, sessions []domain.Session) error
}

// Notifier delivers a stored code out-of-band. Delivery failure never fails
// the send operation; it is logged and the caller still gets success.
type Notifier interface {
	Notify(ctx context.Context, identity domain.Identity, code string) error
}

// TokenSigner signs the access token bound to a session.
type TokenSigner interface {
	Sign(userID, email, mobile, sessionID string) (string, error)
}

// AfterSendFunc is an optional observer invoked after a code is stored,
// receiving the raw code. Errors are logged, never propagated.
type AfterSendFunc func(ctx context.Context, identity domain.Identity, code string, rec *domain.OtpRecord) error

type Service interface {
	Send(ctx context.Context, req SendRequest) (*SendResult, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
}

type ServiceDeps struct {
	OtpRepo   OtpStore
	UserRepo  UserStore
	Notifier  Notifier
	Signer    TokenSigner
	AfterSend AfterSendFunc
	OTPLength int
	OTPTTL    time.Duration
	TokenTTL  time.Duration
}

type service struct {
	otpRepo   OtpStore
	userRepo  UserStore
	notifier  Notifier
	signer    TokenSigner
	afterSend AfterSendFunc
	otpLength int
	otpTTL    time.Duration
	tokenTTL  time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		otpRepo:   deps.OtpRepo,
		userRepo:  deps.UserRepo,
		notifier:  deps.Notifier,
		signer:    deps.Signer,
		afterSend: deps.AfterSend,
		otpLength: deps.OTPLength,
		otpTTL:    deps.OTPTTL,
		tokenTTL:  deps.TokenTTL,
	}
}

// Send issues a fresh code for the identity. Every previous record for the
// identity is removed first, so at most one live code exists per identity.
func (s *service) Send(ctx context.Context, req SendRequest) (*SendResult, error) {
	ident := domain.Identity{Email: req.Email, Mobile: req.Mobile}
	if err := ident.Validate(); err != nil {
		return nil, err
	}

	if err := s.otpRepo.DeleteForIdentity(ctx, ident.Key()); err != nil {
		return nil, fmt.Errorf("cleanup otp records: %w", err)
	}

	code, err := pkgotp.Generate(s.otpLength)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rec := &domain.OtpRecord{
		OtpID:     id.New(),
		Identity:  ident.Key(),
		Email:     ident.Email,
		Mobile:    ident.Mobile,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(s.otpTTL).Unix(),
	}
	if err := s.otpRepo.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("store otp: %w", err)
	}

	if err := s.notifier.Notify(ctx, ident, code); err != nil {
		slog.Warn("otp delivery failed", "identity", ident.Key(), "err", err)
	}

	if s.afterSend != nil {
		if err := s.afterSend(ctx, ident, code, rec); err != nil {
			slog.Warn("after-send hook failed", "identity", ident.Key(), "err", err)
		}
	}

	return &SendResult{Message: "code sent"}, nil
}

// Login exchanges a valid code for a session-bound signed token, creating
// the user on first successful login for the identity.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	ident := domain.Identity{Email: req.Email, Mobile: req.Mobile}
	if err := ident.Validate(); err != nil {
		return nil, err
	}
	if req.Code == "" {
		return nil, fmt.Errorf("code is required: %w", domain.ErrBadRequest)
	}

	if _, err := s.verify(ctx, ident, req.Code); err != nil {
		return nil, err
	}

	user, err := s.resolveUser(ctx, ident)
	if err != nil {
		return nil, err
	}

	token, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: user}, nil
}

// verify finds the live record and marks it verified in one step. The mark
// is a conditional write, so two concurrent logins holding the same code
// cannot both pass: the loser's write fails and surfaces as unauthorized.
// The record is never deleted on success — it stays as an audit trail.
func (s *service) verify(ctx context.Context, ident domain.Identity, code string) (*domain.OtpRecord, error) {
	now := time.Now().UTC()
	rec, err := s.otpRepo.FindLive(ctx, ident.Key(), code, now)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("invalid or expired code: %w", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("find otp: %w", err)
	}
	if err := s.otpRepo.MarkVerified(ctx, rec.OtpID, now); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return nil, fmt.Errorf("invalid or expired code: %w", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("mark otp verified: %w", err)
	}
	rec.Verified = true
	return rec, nil
}

// resolveUser finds the account behind the identity, provisioning one on
// first login. Reaching this point means the identity completed an OTP
// round-trip, so mobile identities get their verified flag flipped.
func (s *service) resolveUser(ctx context.Context, ident domain.Identity) (*domain.User, error) {
	var u *domain.User
	var err error
	if ident.IsMobile() {
		u, err = s.userRepo.GetByMobile(ctx, ident.Mobile)
	} else {
		u, err = s.userRepo.GetByEmail(ctx, ident.Email)
	}
	if err == nil {
		if ident.IsMobile() && !u.MobileVerified {
			if err := s.userRepo.MarkMobileVerified(ctx, u.UserID); err != nil {
				return nil, fmt.Errorf("update user: %w", err)
			}
			u.MobileVerified = true
		}
		return u, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return s.provisionUser(ctx, ident)
}

// provisionUser creates an account with a random placeholder credential.
// The credential is never handed out; it exists so the record satisfies the
// auth collection's password requirement without being guessable.
func (s *service) provisionUser(ctx context.Context, ident domain.Identity) (*domain.User, error) {
	material, err := pkgtoken.NewOpaque()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(material), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash placeholder credential: %w", err)
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:         id.New(),
		Email:          ident.Email,
		Mobile:         ident.Mobile,
		PasswordHash:   string(hash),
		EmailVerified:  true,
		MobileVerified: true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if ident.IsMobile() {
		u.Email = ident.Mobile + "@mobile.user"
	}
	if err := s.userRepo.Put(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// issueSession appends a fresh session to the user and signs a token bound
// to it. Expired sessions are pruned on every append, never by a background
// sweep.
func (s *service) issueSession(ctx context.Context, u *domain.User) (string, error) {
	now := time.Now().UTC()
	u.PruneExpiredSessions(now)
	sess := domain.Session{
		SessionID: uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokenTTL),
	}
	u.Sessions = append(u.Sessions, sess)
	if err := s.userRepo.SaveSessions(ctx, u.UserID, u.Sessions); err != nil {
		return "", fmt.Errorf("persist sessions: %w", err)
	}
	token, err := s.signer.Sign(u.UserID, u.Email, u.Mobile, sess.SessionID)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
