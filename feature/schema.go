package feature

import (
	"fmt"
	"math"
	"strconv"
)

// DataError represents an error with the data a feature is built from
type DataError string

// ErrInvalidData is returned when a feature cannot be built from the given data.
const ErrInvalidData = DataError("invalid data")

func (de DataError) Error() string {
	return string(de)
}

// Declaration names a dimension of the events and the kind of its features.
type Declaration struct {
	Name string
	Kind Kind
}

/*
Schema is the ordered table of feature dimensions shared by a set of
events and the trees grown from them. The position of a declaration is
the position of the corresponding feature in every event. A Schema is
built once and never modified afterwards.
*/
type Schema struct {
	declarations []Declaration
	index        map[string]int
}

/*
NewSchema takes the declarations of the feature dimensions in event order
and returns a schema for them. It fails if a name is empty or repeated.
*/
func NewSchema(declarations ...Declaration) (*Schema, error) {
	s := &Schema{
		declarations: make([]Declaration, len(declarations)),
		index:        make(map[string]int, len(declarations)),
	}
	for i, d := range declarations {
		if d.Name == "" {
			return nil, fmt.Errorf("declaring feature %d: empty name", i)
		}
		if _, ok := s.index[d.Name]; ok {
			return nil, fmt.Errorf("declaring feature %d: duplicated name %q", i, d.Name)
		}
		s.declarations[i] = d
		s.index[d.Name] = i
	}
	return s, nil
}

// MustSchema is like NewSchema but panics if the schema cannot be built.
func MustSchema(declarations ...Declaration) *Schema {
	s, err := NewSchema(declarations...)
	if err != nil {
		panic(err)
	}
	return s
}

// ContinuousSchema returns a schema of continuous dimensions with the given names.
func ContinuousSchema(names ...string) (*Schema, error) {
	ds := make([]Declaration, 0, len(names))
	for _, n := range names {
		ds = append(ds, Declaration{Name: n, Kind: Continuous})
	}
	return NewSchema(ds...)
}

// Iris is the schema of the iris flower measurements, all in centimeters.
var Iris = func() *Schema {
	s, err := ContinuousSchema("Sepal length", "Sepal width", "Petal length", "Petal width")
	if err != nil {
		panic(err)
	}
	return s
}()

// Len returns the number of dimensions.
func (s *Schema) Len() int {
	return len(s.declarations)
}

// Names returns the dimension names in event order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.declarations))
	for i, d := range s.declarations {
		names[i] = d.Name
	}
	return names
}

// Declarations returns a copy of the dimension declarations in event order.
func (s *Schema) Declarations() []Declaration {
	return append([]Declaration(nil), s.declarations...)
}

// Declaration returns the declaration at position i.
func (s *Schema) Declaration(i int) Declaration {
	return s.declarations[i]
}

// Index returns the position of the named dimension and whether it exists.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

/*
Build takes the position of a dimension and a decimal string and returns
a continuous feature named after the dimension. It returns ErrInvalidData
if the position is out of range or the value is not a finite decimal
number.
*/
func (s *Schema) Build(index int, value string) (Feature, error) {
	if index < 0 || index >= len(s.declarations) {
		return Feature{}, fmt.Errorf("building feature %d of %d: %w", index, len(s.declarations), ErrInvalidData)
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Feature{}, fmt.Errorf("building feature %s from %q: %w", s.declarations[index].Name, value, ErrInvalidData)
	}
	return NewContinuous(s.declarations[index].Name, f), nil
}

/*
Parse takes the position of a dimension and a raw string and returns a
feature of the declared kind: continuous dimensions parse the string as a
decimal number, categorical ones keep it as a string value.
*/
func (s *Schema) Parse(index int, raw string) (Feature, error) {
	if index < 0 || index >= len(s.declarations) {
		return Feature{}, fmt.Errorf("parsing feature %d of %d: %w", index, len(s.declarations), ErrInvalidData)
	}
	d := s.declarations[index]
	if d.Kind == Categorical {
		return NewCategorical(d.Name, StringValue(raw)), nil
	}
	return s.Build(index, raw)
}
