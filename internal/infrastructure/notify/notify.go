package notify

import (
	"context"
	"fmt"

	"github.com/otp-auth-api/internal/domain"
	"github.com/otp-auth-api/internal/infrastructure/smtp"
	"github.com/otp-auth-api/internal/infrastructure/sns"
)

// Notifier delivers an OTP code to an identity out-of-band.
type Notifier interface {
	Notify(ctx context.Context, identity domain.Identity, code string) error
}

// Router dispatches codes by identity channel: mobile numbers go out as SMS,
// email addresses as mail.
type Router struct {
	mailer smtp.Mailer
	sms    sns.SMSSender
}

func NewRouter(mailer smtp.Mailer, sms sns.SMSSender) *Router {
	return &Router{mailer: mailer, sms: sms}
}

func (r *Router) Notify(ctx context.Context, identity domain.Identity, code string) error {
	if identity.IsMobile() {
		if r.sms == nil {
			return fmt.Errorf("no SMS sender configured")
		}
		return r.sms.SendSMS(ctx, identity.Mobile, "Your login code: "+code)
	}
	if r.mailer == nil {
		return fmt.Errorf("no mailer configured")
	}
	return r.mailer.SendEmail(ctx, identity.Email, "Your login code", "Your login code: "+code)
}
