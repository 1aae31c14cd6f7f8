package domain

// User is a registered account. The email address is the identity: it is the
// partition key and is never changed or deleted once created.
type User struct {
	Email     string `json:"email" dynamodbav:"pk"`
	Name      string `json:"name" dynamodbav:"name"`
	CreatedAt string `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt string `json:"updated_at" dynamodbav:"updated_at"`
}

type RegisterRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Email string `json:"email" validate:"required,email,max=254"`
}

type LoginRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

type VerifyRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
	OTP   string `json:"otp" validate:"required,len=6"`
}
