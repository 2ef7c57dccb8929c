package domain

import "time"

// Session is a server-tracked login instance. Sessions live embedded in the
// user item as an insertion-ordered list, not in their own table.
type Session struct {
	SessionID string    `json:"id" dynamodbav:"session_id"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	ExpiresAt time.Time `json:"expires_at" dynamodbav:"expires_at"`
}

// Expired reports whether the session has passed its expiry.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
