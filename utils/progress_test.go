package utils

import "testing"

func TestGoalProgress(t *testing.T) {
	t.Parallel()
	cases := []struct {
		current, target, want float64
	}{
		{50, 100, 50},
		{150, 100, 100}, // clamped high
		{-10, 100, 0},   // clamped low
		{50, 0, 0},      // no goal set
		{50, -20, 0},
		{0, 100, 0},
		{100, 100, 100},
	}
	for _, tc := range cases {
		if got := GoalProgress(tc.current, tc.target); got != tc.want {
			t.Fatalf("progress(%v, %v) = %v, want %v", tc.current, tc.target, got, tc.want)
		}
	}
}
