package domain

// KeyRefPrefix namespaces reverse-lookup rows in the apikeys table.
// A keyref maps the public key id back to the secret token so that update,
// delete and list can be addressed without ever re-exposing the token.
const KeyRefPrefix = "keyref#"

// TTLNever is the sentinel TTL for keys that never expire. It must not be
// compared against wall-clock time.
const TTLNever int64 = 0

// APIKey is the primary record of a bearer credential. The partition key is
// the token value itself, so resolving a presented token is a single GetItem.
type APIKey struct {
	Token     string `dynamodbav:"pk"`
	UserID    string `dynamodbav:"user_id"`
	KeyID     string `dynamodbav:"key_id"`
	Name      string `dynamodbav:"name"`
	CreatedAt string `dynamodbav:"created_at"`
	ExpiresAt string `dynamodbav:"expires_at"` // ISO-8601 or "never"
	TTL       int64  `dynamodbav:"ttl"`        // epoch seconds, 0 = never
}

// KeyRef is the reverse-lookup record, written alongside every APIKey and
// immutable after creation. Ownership checks compare UserID to the caller.
type KeyRef struct {
	PK     string `dynamodbav:"pk"` // "keyref#" + keyId
	Token  string `dynamodbav:"token"`
	UserID string `dynamodbav:"user_id"`
}

// KeySummary is the listing projection. Prefix shows just enough of the
// token to recognise a key without re-displaying the secret.
type KeySummary struct {
	KeyID     string `json:"keyId"`
	Name      string `json:"name"`
	Prefix    string `json:"prefix"`
	CreatedAt string `json:"createdAt"`
	ExpiresAt string `json:"expiresAt"`
}

// CreatedKey is the structured result of key creation. The token itself is
// deliberately absent: it is delivered once, by email, and never in a
// response body.
type CreatedKey struct {
	KeyID     string `json:"keyId"`
	Name      string `json:"name"`
	ExpiresAt string `json:"expiresAt"`
}

type CreateKeyRequest struct {
	Name      string    `json:"name" validate:"required,min=1,max=100"`
	ExpiresIn ExpiresIn `json:"expiresIn" validate:"required"`
}

type UpdateKeyRequest struct {
	KeyID     string     `json:"keyId" validate:"required,uuid4"`
	Name      *string    `json:"name" validate:"omitempty,min=1,max=100"`
	ExpiresIn *ExpiresIn `json:"expiresIn"`
}

type DeleteKeyRequest struct {
	KeyID string `json:"keyId" validate:"required,uuid4"`
}
