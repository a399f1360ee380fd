package dataset

import "github.com/mrcluk/sprig/feature"

/*
Split takes the position of a feature dimension, a threshold and a slice
of events and partitions the events into those whose feature at that
position satisfies the threshold (left) and the rest (right). Relative
order is preserved on both sides.
*/
func Split(index int, threshold feature.Value, events []Event) (left, right []Event) {
	for _, e := range events {
		if e.features[index].Condition(threshold) {
			left = append(left, e)
		} else {
			right = append(right, e)
		}
	}
	return left, right
}
