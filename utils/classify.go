package utils

// ProteinTier is the qualitative protein-density classification shown on
// meal and day cards.
type ProteinTier string

const (
	TierLow    ProteinTier = "Low"
	TierMedium ProteinTier = "Medium"
	TierHigh   ProteinTier = "High"
)

// Protein-per-kcal thresholds between the tiers.
const (
	mediumProteinRatio = 0.04
	highProteinRatio   = 0.075
)

// ClassifyProteinDensity returns the protein-to-energy ratio and its tier.
// Zero energy is a defined case: ratio 0, tier Low.
func ClassifyProteinDensity(calories, protein float64) (float64, ProteinTier) {
	if calories == 0 {
		return 0, TierLow
	}
	ratio := protein / calories
	switch {
	case ratio >= highProteinRatio:
		return ratio, TierHigh
	case ratio >= mediumProteinRatio:
		return ratio, TierMedium
	default:
		return ratio, TierLow
	}
}
