package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// NonNegative clamps v at zero. Stat fields read from loosely typed host
// records may carry negatives; every consumer treats those as 0.
func NonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
