package http

import (
	"github.com/PremPrakashCodes/inboxpilot/internal/infrastructure/dynamo"
	"github.com/PremPrakashCodes/inboxpilot/internal/infrastructure/google"
	"github.com/PremPrakashCodes/inboxpilot/internal/infrastructure/smtp"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo    *dynamo.UserRepo
	OTPRepo     *dynamo.OTPRepo
	APIKeyRepo  *dynamo.APIKeyRepo
	AccountRepo *dynamo.AccountRepo
	Mailer      smtp.Mailer
	GoogleOAuth *google.OAuth
}
