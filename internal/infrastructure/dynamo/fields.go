package dynamo

// DynamoDB attribute names used in update expressions across all repos.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldVerified       = "verified"
	fieldMobileVerified = "mobile_verified"
	fieldSessions       = "sessions"
	fieldUpdatedAt      = "updated_at"
)
