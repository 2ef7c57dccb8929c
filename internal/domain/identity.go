package domain

import "fmt"

// Identity is the email address or mobile number an OTP is issued against.
// Exactly one of the two fields must be set.
type Identity struct {
	Email  string `json:"email,omitempty"`
	Mobile string `json:"mobile,omitempty"`
}

// IsMobile reports whether the identity is a mobile number.
func (i Identity) IsMobile() bool { return i.Mobile != "" }

// Key returns the lookup value used for OTP and user records.
func (i Identity) Key() string {
	if i.Mobile != "" {
		return i.Mobile
	}
	return i.Email
}

// Validate enforces the single-identity model: exactly one of email/mobile.
func (i Identity) Validate() error {
	if i.Email == "" && i.Mobile == "" {
		return fmt.Errorf("email or mobile is required: %w", ErrBadRequest)
	}
	if i.Email != "" && i.Mobile != "" {
		return fmt.Errorf("email and mobile are mutually exclusive: %w", ErrBadRequest)
	}
	return nil
}
