package domain

// GoogleAccountPrefix namespaces connected-account sort keys per provider.
const GoogleAccountPrefix = "google#"

// ConnectedAccount is a Gmail mailbox linked to a user through the OAuth
// consent flow. PK: user_id, SK: "google#" + mailbox email. The OAuth tokens
// are opaque pass-through values and are never returned over HTTP.
type ConnectedAccount struct {
	UserID            string `json:"-" dynamodbav:"user_id"`
	SK                string `json:"-" dynamodbav:"sk"`
	AccountID         string `json:"-" dynamodbav:"account_id"`
	Provider          string `json:"provider" dynamodbav:"provider"`
	ProviderAccountID string `json:"providerAccountId" dynamodbav:"provider_account_id"`
	Name              string `json:"name" dynamodbav:"name"`
	Picture           string `json:"picture" dynamodbav:"picture"`
	AccessToken       string `json:"-" dynamodbav:"access_token"`
	RefreshToken      string `json:"-" dynamodbav:"refresh_token"`
	TokenExpiry       int64  `json:"-" dynamodbav:"expires_at"`
	Scope             string `json:"-" dynamodbav:"scope"`
	CreatedAt         string `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt         string `json:"-" dynamodbav:"updated_at"`
}
