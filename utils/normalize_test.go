package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "johndoe", Normalize("John Doe"))
	assert.Equal(t, "johndoe", Normalize("  JOHN-DOE  "))
	assert.Equal(t, "johndoe", Normalize("john_doe."))
	assert.Equal(t, "jose", Normalize("José"))
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("  --  "))
}

func TestExtractDigits(t *testing.T) {
	assert.Equal(t, "123456789012", ExtractDigits(" 1234-5678-9012 "))
	assert.Equal(t, "123456789012", ExtractDigits("1234 5678 9012"))
	assert.Equal(t, "", ExtractDigits("no digits here"))
	assert.Equal(t, "", ExtractDigits(""))
}

func TestIdentifierRoundTrip(t *testing.T) {
	// formatting noise must never change the normalized identifier
	assert.Equal(t,
		ExtractDigits(Normalize(" 1234-5678-9012 ")),
		ExtractDigits("123456789012"),
	)
}
