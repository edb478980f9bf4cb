package plans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByID(t *testing.T) {
	for _, p := range All {
		found, ok := ByID(p.ID)
		require.True(t, ok, "plan %s must resolve", p.ID)
		assert.Equal(t, p, found)
	}

	_, ok := ByID("24-months")
	assert.False(t, ok)
}

func TestCatalogInvariants(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range All {
		assert.False(t, seen[p.ID], "plan id %s duplicated", p.ID)
		seen[p.ID] = true

		assert.NotEmpty(t, p.Name)
		assert.Positive(t, p.UnitAmount)
		assert.Equal(t, "usd", p.Currency)
		assert.True(t, p.IncludesVSA, "every plan bundles the VSA indicator")

		if p.Recurring() {
			assert.NotEmpty(t, p.Interval, "recurring plan %s needs an interval", p.ID)
			assert.Positive(t, p.IntervalCount)
			assert.True(t, p.TrialEligible)
		} else {
			assert.Equal(t, ModePayment, p.Mode)
			assert.Empty(t, p.Interval)
			assert.False(t, p.TrialEligible, "one-time plans carry no trial")
		}
	}
}

func TestLifetimeIsOneTime(t *testing.T) {
	lifetime, ok := ByID("lifetime")
	require.True(t, ok)
	assert.Equal(t, ModePayment, lifetime.Mode)
	assert.False(t, lifetime.Recurring())
}
