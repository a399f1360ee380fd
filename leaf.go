package sprig

import (
	"github.com/mrcluk/sprig/dataset"
	"github.com/mrcluk/sprig/feature"
	"github.com/mrcluk/sprig/tree"
)

/*
CalculateLeaf takes a slice of events and returns a leaf predicting their
most frequent outcome, weighted with the number of events. Ties go to the
outcome encountered first. An empty slice yields a leaf with an absent
value.
*/
func CalculateLeaf(events []dataset.Event) *tree.Node {
	var value feature.Value
	var max int
	counts := dataset.CountOutcomes(events)
	for _, o := range dataset.Outcomes(events) {
		if counts[o] > max {
			value = o
			max = counts[o]
		}
	}
	return tree.NewLeaf(value, len(events))
}
