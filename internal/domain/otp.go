package domain

// OTPKeyPrefix namespaces one-time-passcode records in the otps table.
const OTPKeyPrefix = "otp#"

// OTPRecord is a single live passcode for an email address. Putting a new
// record overwrites the old one, so at most one code is ever valid per email.
// TTL is an absolute epoch-seconds expiry; DynamoDB purges the row eventually,
// but validity is always re-checked against the wall clock at verification.
type OTPRecord struct {
	PK        string `dynamodbav:"pk"` // "otp#" + email
	OTP       string `dynamodbav:"otp"`
	CreatedAt string `dynamodbav:"created_at"`
	TTL       int64  `dynamodbav:"ttl"`
}

// VerifyResult is the outcome of an OTP check. Error carries the fixed
// non-revealing message when Valid is false.
type VerifyResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}
