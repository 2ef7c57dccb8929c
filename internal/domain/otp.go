package domain

import "time"

// OtpRecord stores a one-time passcode issued against an identity.
// PK: otp_id (ULID, so record ids order by creation time). GSI: identity-index.
// ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type OtpRecord struct {
	OtpID     string    `json:"id" dynamodbav:"otp_id"`
	Identity  string    `json:"identity" dynamodbav:"identity"`
	Email     string    `json:"email,omitempty" dynamodbav:"email"`
	Mobile    string    `json:"mobile,omitempty" dynamodbav:"mobile"`
	Code      string    `json:"-" dynamodbav:"code"`
	Verified  bool      `json:"verified" dynamodbav:"verified"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	ExpiresAt int64     `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}

// Live reports whether the record is still usable: unverified and unexpired.
func (r *OtpRecord) Live(now time.Time) bool {
	return !r.Verified && r.ExpiresAt > now.Unix()
}
