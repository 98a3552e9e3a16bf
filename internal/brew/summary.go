package brew

import "fmt"

// Summarize renders the one-line brew summary.
func Summarize(plan Plan, pourTime int) string {
	return fmt.Sprintf("water: %dg, coffee: %dg, ratio: %.3f, time: %s",
		plan.Water, plan.Coffee, plan.Ratio(), FormatTime(pourTime))
}
