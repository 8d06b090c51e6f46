package plans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelForInterval(t *testing.T) {
	assert.Equal(t, PlanYearly, LabelForInterval("year"))
	assert.Equal(t, PlanMonthly, LabelForInterval("month"))
	assert.Equal(t, PlanMonthly, LabelForInterval(""))
	assert.Equal(t, PlanMonthly, LabelForInterval("week"))
}

func TestUnlimited(t *testing.T) {
	assert.True(t, Unlimited(PlanLifetime))
	assert.False(t, Unlimited(PlanMonthly))
	assert.False(t, Unlimited(""))
}

func TestAddonCatalog(t *testing.T) {
	a, ok := AddonByKey("reports_10")
	require.True(t, ok)
	assert.Equal(t, 10, a.ReportCredits)
	assert.Equal(t, 69.0, a.PriceEUR)

	_, ok = AddonByKey("reports_1000")
	assert.False(t, ok)

	assert.Len(t, Addons(), 3)
}
