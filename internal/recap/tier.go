package recap

// Tier is a performance grade derived from the exception rate.
type Tier int

const (
	NoData Tier = iota
	Excellent
	Good
	NeedsAttention
	Poor
)

// Tiers lists every tier from best to worst, followed by NoData.
var Tiers = []Tier{Excellent, Good, NeedsAttention, Poor, NoData}

func (t Tier) String() string {
	switch t {
	case Excellent:
		return "Excellent"
	case Good:
		return "Good"
	case NeedsAttention:
		return "Needs Attention"
	case Poor:
		return "Poor"
	}
	return "No Data"
}

// MarshalText encodes the tier by name.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// TierFor grades issues over days. A rate above 1 (a day can be both late
// and early) is still Poor.
func TierFor(issues, days int) Tier {
	if days <= 0 {
		return NoData
	}
	if issues <= 0 {
		return Excellent
	}
	rate := float64(issues) / float64(days)
	switch {
	case rate <= 0.1:
		return Good
	case rate <= 0.3:
		return NeedsAttention
	default:
		return Poor
	}
}
