package feature

import (
	"encoding/json"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContinuousCondition(t *testing.T) {
	f := NewContinuous("x", 2.0)
	assert.True(t, f.Condition(NumberValue(2.0)))
	assert.True(t, f.Condition(NumberValue(2.5)))
	assert.False(t, f.Condition(NumberValue(1.5)))
	assert.False(t, f.Condition(StringValue("2")))
	assert.False(t, f.Condition(Value{}))
}

func TestCategoricalCondition(t *testing.T) {
	f := NewCategorical("color", StringValue("red"))
	assert.True(t, f.Condition(StringValue("red")))
	assert.False(t, f.Condition(StringValue("blue")))
	assert.False(t, f.Condition(NumberValue(1)))

	n := NewCategorical("code", NumberValue(3))
	assert.True(t, n.Condition(NumberValue(3)))
	assert.False(t, n.Condition(NumberValue(4)))
}

func TestValueOrdering(t *testing.T) {
	values := []Value{StringValue("b"), NumberValue(10), {}, NumberValue(9), StringValue("a")}
	sort.Slice(values, func(i, j int) bool { return values[i].Less(values[j]) })
	assert.Equal(t, []Value{{}, NumberValue(9), NumberValue(10), StringValue("a"), StringValue("b")}, values)
}

func TestValueJSON(t *testing.T) {
	cases := []struct {
		value Value
		json  string
	}{
		{NumberValue(2.5), `2.5`},
		{StringValue("Iris-setosa"), `"Iris-setosa"`},
		{Value{}, `null`},
	}
	for _, c := range cases {
		b, err := json.Marshal(c.value)
		require.NoError(t, err)
		assert.JSONEq(t, c.json, string(b))

		var v Value
		require.NoError(t, json.Unmarshal(b, &v))
		assert.True(t, c.value.Equal(v), "decoding %s", c.json)
	}
	var v Value
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &v))
}

func TestSchemaBuild(t *testing.T) {
	f, err := Iris.Build(2, "1.4")
	require.NoError(t, err)
	assert.Equal(t, "Petal length", f.Name())
	assert.Equal(t, Continuous, f.Kind())
	v, ok := f.Value().Float()
	assert.True(t, ok)
	assert.Equal(t, 1.4, v)

	for _, i := range []int{-1, 4, 10} {
		_, err = Iris.Build(i, "1.0")
		assert.True(t, errors.Is(err, ErrInvalidData), "index %d", i)
	}
	for _, raw := range []string{"wide", "", "NaN", "nan", "Inf", "+Inf", "-inf"} {
		_, err = Iris.Build(0, raw)
		assert.True(t, errors.Is(err, ErrInvalidData), "value %q", raw)
	}
	_, err = Iris.Parse(1, "NaN")
	assert.True(t, errors.Is(err, ErrInvalidData))
}

func TestContinuousSchema(t *testing.T) {
	s, err := ContinuousSchema("a", "b")
	require.NoError(t, err)
	assert.Equal(t, []Declaration{{"a", Continuous}, {"b", Continuous}}, s.Declarations())
	_, err = ContinuousSchema("a", "a")
	assert.Error(t, err)
}

func TestSchemaIndex(t *testing.T) {
	i, ok := Iris.Index("Petal width")
	assert.True(t, ok)
	assert.Equal(t, 3, i)
	_, ok = Iris.Index("Stem length")
	assert.False(t, ok)
	assert.Equal(t, []string{"Sepal length", "Sepal width", "Petal length", "Petal width"}, Iris.Names())
}

func TestNewSchemaRejectsBadNames(t *testing.T) {
	_, err := NewSchema(Declaration{Name: "a"}, Declaration{Name: "a"})
	assert.Error(t, err)
	_, err = NewSchema(Declaration{})
	assert.Error(t, err)
}

func TestSchemaParse(t *testing.T) {
	s := MustSchema(Declaration{"size", Continuous}, Declaration{"color", Categorical})
	f, err := s.Parse(1, "red")
	require.NoError(t, err)
	assert.Equal(t, Categorical, f.Kind())
	assert.True(t, f.Condition(StringValue("red")))

	f, err = s.Parse(0, "3")
	require.NoError(t, err)
	assert.True(t, f.Condition(NumberValue(3)))

	_, err = s.Parse(2, "x")
	assert.True(t, errors.Is(err, ErrInvalidData))
}
