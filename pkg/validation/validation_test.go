package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"jane@example.com",
		"jane.doe+habits@sub.example.io",
		"a@b.co",
	}
	for _, email := range valid {
		assert.NoError(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"",
		"jane",
		"jane@example",
		"jane@@example.com",
		"jane doe@example.com",
		"@example.com",
		"jane@.com",
	}
	for _, email := range invalid {
		assert.Error(t, ValidateEmail(email), email)
	}
}

func TestValidateAddress(t *testing.T) {
	addr := strings.Repeat("ab", 22)

	assert.NoError(t, ValidateAddress("0x"+addr))
	assert.NoError(t, ValidateAddress(addr))
	assert.NoError(t, ValidateAddress("0X"+strings.ToUpper(addr)))

	assert.Error(t, ValidateAddress(""))
	assert.Error(t, ValidateAddress("0x1234"))
	assert.Error(t, ValidateAddress("0x"+strings.Repeat("ab", 20)), "ethereum-length address")
	assert.Error(t, ValidateAddress("0x"+strings.Repeat("zz", 22)), "non-hex characters")
}

func TestValidateAndNormalizeAddress(t *testing.T) {
	addr := strings.Repeat("AB", 22)

	got, err := ValidateAndNormalizeAddress(addr)
	require.NoError(t, err)
	assert.Equal(t, "0x"+strings.Repeat("ab", 22), got)

	got, err = ValidateAndNormalizeAddress("0X" + addr)
	require.NoError(t, err)
	assert.Equal(t, "0x"+strings.Repeat("ab", 22), got)

	_, err = ValidateAndNormalizeAddress("not-an-address")
	assert.Error(t, err)
}
