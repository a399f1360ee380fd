package dataset

import "math"

/*
Entropy returns the Shannon entropy in bits of the distribution of
outcomes among the given events. An empty slice has entropy 0.

Terms are summed in first-encounter order of the outcomes, so equal
inputs always yield bit-identical results.
*/
func Entropy(events []Event) float64 {
	var result float64
	if len(events) == 0 {
		return result
	}
	counts := CountOutcomes(events)
	total := float64(len(events))
	for _, o := range Outcomes(events) {
		p := float64(counts[o]) / total
		if p > 0 {
			result -= p * math.Log2(p)
		}
	}
	return result
}
