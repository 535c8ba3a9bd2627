package utils

import "testing"

func TestClassifyProteinDensity(t *testing.T) {
	t.Parallel()
	cases := []struct {
		calories, protein float64
		want              ProteinTier
	}{
		{100, 7.5, TierHigh},
		{100, 7.49, TierMedium},
		{100, 4.0, TierMedium},
		{100, 3.99, TierLow},
		{0, 0, TierLow},
		{0, 25, TierLow}, // zero energy is always Low, no division
		{400, 40, TierHigh},
	}
	for _, tc := range cases {
		ratio, tier := ClassifyProteinDensity(tc.calories, tc.protein)
		if tier != tc.want {
			t.Fatalf("classify(%v, %v) tier = %s, want %s", tc.calories, tc.protein, tier, tc.want)
		}
		if tc.calories == 0 && ratio != 0 {
			t.Fatalf("classify(0, %v) ratio = %v, want 0", tc.protein, ratio)
		}
	}
}
