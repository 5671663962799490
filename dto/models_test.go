package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewVerdict(t *testing.T) {
	v := NewVerdict(nil)
	assert.True(t, v.Eligible)
	assert.NotNil(t, v.MismatchReasons)
	assert.Empty(t, v.MismatchReasons)

	v = NewVerdict([]string{ReasonNoCitizenRecord})
	assert.False(t, v.Eligible)
	assert.Equal(t, []string{ReasonNoCitizenRecord}, v.MismatchReasons)
}
