package brew

import "math"

// Round rounds x to the nearest integer gram, with halves going away from zero.
func Round(x float64) int {
	return int(math.Round(x))
}
