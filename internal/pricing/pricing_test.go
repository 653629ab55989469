package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBilling(t *testing.T) {
	assert.Equal(t, Annual, ParseBilling("annual"))
	assert.Equal(t, Annual, ParseBilling(" Annual "))
	assert.Equal(t, Monthly, ParseBilling(""))
	assert.Equal(t, Monthly, ParseBilling("weekly"))
}

func TestBuildPricesPlans(t *testing.T) {
	monthly := Build(Monthly)
	require.Len(t, monthly.Plans, 3)
	assert.Equal(t, "£6", monthly.Plans[0].Price)
	assert.Equal(t, "£12", monthly.Plans[1].Price)
	assert.Equal(t, "Custom", monthly.Plans[2].Price)
	assert.False(t, monthly.Plans[0].BilledYearly)

	annual := Build(Annual)
	assert.Equal(t, "£5", annual.Plans[0].Price)
	assert.Equal(t, "£10", annual.Plans[1].Price)
	assert.Equal(t, int64(1020), annual.Plans[1].PricePence(Annual))
	assert.True(t, annual.Plans[1].BilledYearly)
	assert.False(t, annual.Plans[2].BilledYearly)
	assert.Len(t, annual.FAQs, 4)
}

func TestOnlyProfessionalIsPopular(t *testing.T) {
	var popular []string
	for _, p := range Plans {
		if p.Popular {
			popular = append(popular, p.Key)
		}
	}
	assert.Equal(t, []string{"professional"}, popular)
}
