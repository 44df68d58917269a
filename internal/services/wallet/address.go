// Package wallet generates display-only deposit addresses. The output is a
// non-cryptographic placeholder, not a real key: nothing here is safe to
// receive funds with.
package wallet

import (
	"strings"

	"github.com/google/uuid"
)

const addressPrefix = "0x"

// NewAddress returns a placeholder deposit address for the UI deposit
// modal. Derived from a random UUID so repeated calls differ.
func NewAddress() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return addressPrefix + raw
}
