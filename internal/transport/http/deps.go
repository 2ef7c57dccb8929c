package http

import (
	"context"
	"time"

	"github.com/otp-auth-api/internal/domain"
)

// OtpRepository is the minimal interface the router requires from the OTP store.
type OtpRepository interface {
	Put(ctx context.Context, rec *domain.OtpRecord) error
	DeleteForIdentity(ctx context.Context, identity string) error
	FindLive(ctx context.Context, identity, code string, now time.Time) (*domain.OtpRecord, error)
	MarkVerified(ctx context.Context, otpID string, now time.Time) error
}

// UserRepository is the minimal interface the router requires from the user store.
type UserRepository interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByMobile(ctx context.Context, mobile string) (*domain.User, error)
	MarkMobileVerified(ctx context.Context, userID string) error
	SaveSessions(ctx context.Context, userID string, sessions []domain.Session) error
}

// Notifier is the outbound OTP delivery collaborator.
type Notifier interface {
	Notify(ctx context.Context, identity domain.Identity, code string) error
}
