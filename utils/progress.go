package utils

// GoalProgress returns how far current is toward target as a percentage
// clamped to [0, 100]. A non-positive target means "no goal set" and
// yields 0 rather than an error.
func GoalProgress(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	pct := current / target * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
