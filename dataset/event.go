package dataset

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/mrcluk/sprig/feature"
)

/*
Event is a labeled observation: an ordered, fixed-length vector of
features, one per dimension of a feature.Schema, and an outcome.

Events are immutable: NewEvent copies the given features and
Features returns a copy.
*/
type Event struct {
	features []feature.Feature
	outcome  feature.Value
}

/*
NewEvent takes the features of an event in schema order and its outcome
and returns the event.
*/
func NewEvent(features []feature.Feature, outcome feature.Value) Event {
	return Event{append([]feature.Feature(nil), features...), outcome}
}

// Outcome returns the label of the event.
func (e Event) Outcome() feature.Value {
	return e.outcome
}

// Len returns the number of features of the event.
func (e Event) Len() int {
	return len(e.features)
}

// Feature returns the feature at position i.
func (e Event) Feature(i int) feature.Feature {
	return e.features[i]
}

// Features returns a copy of the features of the event in schema order.
func (e Event) Features() []feature.Feature {
	return append([]feature.Feature(nil), e.features...)
}

func (e Event) String() string {
	fs := make([]string, len(e.features))
	for i, f := range e.features {
		fs[i] = f.String()
	}
	return fmt.Sprintf("[%s] -> %v", strings.Join(fs, ", "), e.outcome)
}

/*
Outcomes returns the distinct outcomes of the given events in the order
in which they are first encountered.
*/
func Outcomes(events []Event) []feature.Value {
	set := linkedhashset.New()
	for _, e := range events {
		set.Add(e.outcome)
	}
	result := make([]feature.Value, 0, set.Size())
	for _, v := range set.Values() {
		result = append(result, v.(feature.Value))
	}
	return result
}

// CountOutcomes returns how many of the given events have each outcome.
func CountOutcomes(events []Event) map[feature.Value]int {
	counts := make(map[feature.Value]int)
	for _, e := range events {
		counts[e.outcome]++
	}
	return counts
}

// IsPure reports whether all the given events share one outcome.
// An empty slice of events is not pure.
func IsPure(events []Event) bool {
	if len(events) == 0 {
		return false
	}
	for _, e := range events[1:] {
		if !e.outcome.Equal(events[0].outcome) {
			return false
		}
	}
	return true
}
