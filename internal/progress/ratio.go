// Package progress is the goal progress and coaching engine: it applies
// progress events to goal state, derives dashboard statistics and selects
// coaching messages from a goal's recent history.
package progress

// Ratio returns the completion fraction of a goal, capped at 1.0 so that
// overshooting the target still reads as 100%. A non-positive target yields
// 0 rather than dividing.
func Ratio(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	r := current / target
	if r > 1 {
		return 1
	}
	return r
}
