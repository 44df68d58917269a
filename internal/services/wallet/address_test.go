package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAddress(t *testing.T) {
	addr := NewAddress()
	assert.True(t, strings.HasPrefix(addr, "0x"))
	assert.Len(t, addr, 2+32)

	other := NewAddress()
	assert.NotEqual(t, addr, other, "addresses must differ between calls")
}
