package feature

import "fmt"

// Kind tells how a feature compares its value against a threshold.
type Kind int

const (
	// Continuous features hold numbers and route by value <= threshold.
	Continuous Kind = iota
	// Categorical features route by value == threshold.
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Categorical:
		return "categorical"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

/*
Feature represents an observed property of an event: a value, an optional
name and the kind that decides how the value is compared with thresholds.
Features are immutable once built.
*/
type Feature struct {
	name  string
	kind  Kind
	value Value
}

var conditions = [...]func(v, threshold Value) bool{
	Continuous:  lessOrEqual,
	Categorical: Value.Equal,
}

/*
NewContinuous takes a name and a number and returns a continuous
feature holding the number.
*/
func NewContinuous(name string, value float64) Feature {
	return Feature{name: name, kind: Continuous, value: NumberValue(value)}
}

/*
NewCategorical takes a name and a value and returns a categorical
feature holding it.
*/
func NewCategorical(name string, value Value) Feature {
	return Feature{name: name, kind: Categorical, value: value}
}

// Name returns the name of the feature, empty if it was built without one.
func (f Feature) Name() string {
	return f.name
}

// Kind returns the kind of the feature.
func (f Feature) Kind() Kind {
	return f.kind
}

// Value returns the value held by the feature.
func (f Feature) Value() Value {
	return f.value
}

/*
Condition reports whether the feature satisfies the given threshold:
value <= threshold for continuous features, value == threshold for
categorical ones. A continuous comparison involving a non-numeric
side is never satisfied.
*/
func (f Feature) Condition(threshold Value) bool {
	if int(f.kind) >= len(conditions) {
		return false
	}
	return conditions[f.kind](f.value, threshold)
}

func (f Feature) String() string {
	if f.name == "" {
		return f.value.String()
	}
	return fmt.Sprintf("%s=%v", f.name, f.value)
}

func lessOrEqual(v, threshold Value) bool {
	a, ok := v.Float()
	if !ok {
		return false
	}
	b, ok := threshold.Float()
	if !ok {
		return false
	}
	return a <= b
}
