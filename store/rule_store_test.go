package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRulesAreWellFormed(t *testing.T) {
	require.NotEmpty(t, DefaultRules)

	seen := map[string]bool{}
	for _, rule := range DefaultRules {
		assert.NotEmpty(t, rule.DocumentType)
		assert.NotEmpty(t, rule.RequiredProofs, "rule %q has no proofs", rule.DocumentType)
		assert.False(t, seen[rule.DocumentType], "duplicate rule %q", rule.DocumentType)
		seen[rule.DocumentType] = true
	}
}

func TestSeniorCitizenRuleRequiresAgeProofFirst(t *testing.T) {
	for _, rule := range DefaultRules {
		if rule.DocumentType != "Senior Citizen Certificate" {
			continue
		}
		assert.Equal(t, []string{"Age Proof", "Aadhaar Card"}, rule.RequiredProofs)
		assert.Equal(t, 60, rule.MinAge)
		return
	}
	t.Fatal("Senior Citizen Certificate rule missing")
}
