package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDOB(t *testing.T) {
	dob, err := ParseDOB("15-03-1966")
	require.NoError(t, err)
	assert.Equal(t, 1966, dob.Year())
	assert.Equal(t, time.March, dob.Month())
	assert.Equal(t, 15, dob.Day())

	// OCR'd dates often arrive with slashes
	dob, err = ParseDOB("23/09/2004")
	require.NoError(t, err)
	assert.Equal(t, 2004, dob.Year())

	_, err = ParseDOB("1966-03-15T00:00:00")
	assert.Error(t, err)
	_, err = ParseDOB("")
	assert.Error(t, err)
	_, err = ParseDOB("99-99-1966")
	assert.Error(t, err)
}

func TestAgeAtBoundary(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	// birthday today: the year counts
	sameDay := time.Date(1966, time.March, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 60, AgeAt(sameDay, now))

	// birthday tomorrow: still 59
	dayAfter := time.Date(1966, time.March, 16, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 59, AgeAt(dayAfter, now))

	// earlier month
	earlier := time.Date(1966, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 60, AgeAt(earlier, now))
}
