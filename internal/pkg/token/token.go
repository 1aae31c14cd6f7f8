// Package token generates the opaque bearer secrets handed out as API keys
// and derives their display prefix.
package token

import (
	"fmt"

	"github.com/google/uuid"
)

// New returns a fresh opaque bearer token. UUIDv4 gives 122 bits of
// randomness; the value is stored verbatim as the primary key of the key
// record, so it must never be derivable from anything public.
func New() string {
	return uuid.NewString()
}

// NewKeyID returns the stable public identifier for a key. It is safe to
// expose and is the only handle clients use for update and delete.
func NewKeyID() string {
	return uuid.NewString()
}

// Prefix renders a recognisable abbreviation of a token for listings:
// the first 8 and last 4 characters around an ellipsis.
func Prefix(tok string) string {
	if len(tok) < 12 {
		return tok
	}
	return fmt.Sprintf("%s...%s", tok[:8], tok[len(tok)-4:])
}
