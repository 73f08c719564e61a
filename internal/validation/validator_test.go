package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateHex(t *testing.T) {
	assert.NoError(t, ValidateHex("deadbeef"))
	assert.NoError(t, ValidateHex("  0A1b  "))

	assert.Error(t, ValidateHex(""))
	assert.Error(t, ValidateHex("abc"), "odd length")
	assert.Error(t, ValidateHex("zz"), "non-hex characters")
}

func TestValidatePartID(t *testing.T) {
	assert.NoError(t, ValidatePartID(1))
	assert.NoError(t, ValidatePartID(255))

	assert.Error(t, ValidatePartID(0))
	assert.Error(t, ValidatePartID(-1))
	assert.Error(t, ValidatePartID(256))
}

func TestValidateSplitParams(t *testing.T) {
	assert.NoError(t, ValidateSplitParams(5, 3))
	assert.NoError(t, ValidateSplitParams(255, 2))

	assert.Error(t, ValidateSplitParams(1, 1))
	assert.Error(t, ValidateSplitParams(5, 1))
	assert.Error(t, ValidateSplitParams(3, 5))
	assert.Error(t, ValidateSplitParams(256, 2))
}

func TestValidatePassphrase(t *testing.T) {
	assert.NoError(t, ValidatePassphrase(""))
	assert.NoError(t, ValidatePassphrase("correct horse battery staple"))

	long := make([]byte, 257)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, ValidatePassphrase(string(long)))
	assert.Error(t, ValidatePassphrase("bad\x00null"))
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "a\nb", SanitizeInput("  a \r\n b \r\n"))
	assert.Equal(t, "a\nb", SanitizeInput("a\rb"))
	assert.Equal(t, "", SanitizeInput("   "))
}
