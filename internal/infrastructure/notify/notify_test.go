package notify

import (
	"context"
	"testing"

	"github.com/otp-auth-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	to, subject, body string
	err               error
}

func (f *fakeMailer) SendEmail(_ context.Context, to, subject, body string) error {
	f.to, f.subject, f.body = to, subject, body
	return f.err
}

type fakeSMS struct {
	to, message string
	err         error
}

func (f *fakeSMS) SendSMS(_ context.Context, to, message string) error {
	f.to, f.message = to, message
	return f.err
}

func TestNotify_EmailGoesToMailer(t *testing.T) {
	m := &fakeMailer{}
	s := &fakeSMS{}
	r := NewRouter(m, s)

	err := r.Notify(context.Background(), domain.Identity{Email: "alice@example.com"}, "483920")

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", m.to)
	assert.Contains(t, m.body, "483920")
	assert.Empty(t, s.to)
}

func TestNotify_MobileGoesToSMS(t *testing.T) {
	m := &fakeMailer{}
	s := &fakeSMS{}
	r := NewRouter(m, s)

	err := r.Notify(context.Background(), domain.Identity{Mobile: "+15551234567"}, "483920")

	require.NoError(t, err)
	assert.Equal(t, "+15551234567", s.to)
	assert.Contains(t, s.message, "483920")
	assert.Empty(t, m.to)
}

func TestNotify_NoSMSSenderConfigured(t *testing.T) {
	r := NewRouter(&fakeMailer{}, nil)
	err := r.Notify(context.Background(), domain.Identity{Mobile: "+15551234567"}, "483920")
	assert.Error(t, err)
}
