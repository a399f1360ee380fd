package sprig

import (
	"fmt"
	"math"
	"sort"

	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/mrcluk/sprig/dataset"
	"github.com/mrcluk/sprig/feature"
)

// SplitError represents an error finding a split for a set of events
type SplitError string

// ErrEmptyEvents is returned when a split is requested for no events.
const ErrEmptyEvents = SplitError("invalid argument: no events to split")

// ErrNoSplit is returned when no feature of the events offers a threshold.
const ErrNoSplit = SplitError("no split candidates")

func (se SplitError) Error() string {
	return string(se)
}

// Candidates maps feature names to the thresholds that may split them.
type Candidates map[string][]feature.Value

/*
Split represents the binary partition of a set of events on a feature
dimension: the name and position of the feature, the threshold and the
information gain it yields.
*/
type Split struct {
	Feature   string
	Index     int
	Threshold feature.Value
	Gain      float64
}

func (s Split) String() string {
	return fmt.Sprintf("%s ? %v (gain %.4f)", s.Feature, s.Threshold, s.Gain)
}

/*
SplitCandidates takes a schema and a slice of events and returns the
thresholds worth trying for every dimension of the schema. The distinct
values observed on a dimension are sorted ascending and every consecutive
pair of them yields one threshold: their midpoint when both are numbers,
the lower value otherwise. The highest value never becomes a threshold, so
dimensions with a single distinct value have no candidates.
*/
func SplitCandidates(s *feature.Schema, events []dataset.Event) Candidates {
	result := make(Candidates, s.Len())
	for i, name := range s.Names() {
		values := distinctValues(i, events)
		thresholds := linkedhashset.New()
		for j := 0; j+1 < len(values); j++ {
			thresholds.Add(threshold(values[j], values[j+1]))
		}
		candidates := make([]feature.Value, 0, thresholds.Size())
		for _, t := range thresholds.Values() {
			candidates = append(candidates, t.(feature.Value))
		}
		result[name] = candidates
	}
	return result
}

func distinctValues(index int, events []dataset.Event) []feature.Value {
	set := linkedhashset.New()
	for _, e := range events {
		if index < e.Len() {
			set.Add(e.Feature(index).Value())
		}
	}
	values := make([]feature.Value, 0, set.Size())
	for _, v := range set.Values() {
		values = append(values, v.(feature.Value))
	}
	sort.SliceStable(values, func(i, j int) bool {
		return values[i].Less(values[j])
	})
	return values
}

func threshold(a, b feature.Value) feature.Value {
	fa, ok := a.Float()
	if !ok {
		return a
	}
	fb, ok := b.Float()
	if !ok {
		return a
	}
	return feature.NumberValue(fa + (fb-fa)/2)
}

/*
BestSplit takes a schema and a slice of events and returns the split with
the highest information gain among all the candidates of SplitCandidates.
Dimensions are tried in schema order and thresholds in candidate order;
when several splits share the highest gain the last one tried is returned.

It returns ErrEmptyEvents if there are no events, ErrNoSplit if no
dimension has a candidate and feature.ErrInvalidData if an event does not
have a feature for every dimension of the schema.
*/
func BestSplit(s *feature.Schema, events []dataset.Event) (Split, error) {
	if len(events) == 0 {
		return Split{}, ErrEmptyEvents
	}
	for _, e := range events {
		if e.Len() != s.Len() {
			return Split{}, fmt.Errorf("splitting events: event %v has %d features, expected %d: %w", e, e.Len(), s.Len(), feature.ErrInvalidData)
		}
	}
	entropy := dataset.Entropy(events)
	total := float64(len(events))
	candidates := SplitCandidates(s, events)
	result := Split{Gain: math.Inf(-1)}
	found := false
	for i, name := range s.Names() {
		for _, t := range candidates[name] {
			left, right := dataset.Split(i, t, events)
			gain := entropy - (float64(len(left))/total*dataset.Entropy(left) + float64(len(right))/total*dataset.Entropy(right))
			if gain >= result.Gain {
				result = Split{name, i, t, gain}
				found = true
			}
		}
	}
	if !found {
		return Split{}, ErrNoSplit
	}
	return result, nil
}
