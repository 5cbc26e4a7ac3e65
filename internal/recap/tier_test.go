package recap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		name   string
		issues int
		days   int
		want   Tier
	}{
		{name: "no days", issues: 0, days: 0, want: NoData},
		{name: "no days with issues", issues: 3, days: 0, want: NoData},
		{name: "clean", issues: 0, days: 20, want: Excellent},
		{name: "just above zero", issues: 1, days: 30, want: Good},
		{name: "exactly ten percent", issues: 2, days: 20, want: Good},
		{name: "above ten percent", issues: 3, days: 20, want: NeedsAttention},
		{name: "exactly thirty percent", issues: 6, days: 20, want: NeedsAttention},
		{name: "above thirty percent", issues: 7, days: 20, want: Poor},
		{name: "all days", issues: 20, days: 20, want: Poor},
		{name: "late and early every day", issues: 40, days: 20, want: Poor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TierFor(tt.issues, tt.days))
		})
	}
}

func TestTierString(t *testing.T) {
	var names []string
	for _, tier := range Tiers {
		names = append(names, tier.String())
	}
	assert.Equal(t, []string{"Excellent", "Good", "Needs Attention", "Poor", "No Data"}, names)

	text, err := Good.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "Good", string(text))
}
