package domain

import "time"

type User struct {
	UserID         string    `json:"id" dynamodbav:"user_id"`
	Email          string    `json:"email" dynamodbav:"email"`
	Mobile         string    `json:"mobile" dynamodbav:"mobile"`
	PasswordHash   string    `json:"-" dynamodbav:"password_hash"`
	EmailVerified  bool      `json:"email_verified" dynamodbav:"email_verified"`
	MobileVerified bool      `json:"mobile_verified" dynamodbav:"mobile_verified"`
	Sessions       []Session `json:"sessions,omitempty" dynamodbav:"sessions"`
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated" dynamodbav:"updated_at"`
}

// PruneExpiredSessions drops expired sessions in place, preserving issuance
// order. Runs before every new session append so the list never carries
// expired entries past an issuer call.
func (u *User) PruneExpiredSessions(now time.Time) {
	kept := u.Sessions[:0]
	for _, s := range u.Sessions {
		if !s.Expired(now) {
			kept = append(kept, s)
		}
	}
	u.Sessions = kept
}
