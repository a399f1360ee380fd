package csv

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mrcluk/sprig/dataset"
	"github.com/mrcluk/sprig/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mixedSchema = feature.MustSchema(
	feature.Declaration{Name: "x", Kind: feature.Continuous},
	feature.Declaration{Name: "color", Kind: feature.Categorical},
)

func TestReadEvents(t *testing.T) {
	input := "color,label,x\nred,hot,1.5\nblue,cold,-2\n"
	events, err := ReadEvents(strings.NewReader(input), mixedSchema, "label")
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, feature.NewContinuous("x", 1.5), events[0].Feature(0))
	assert.Equal(t, feature.NewCategorical("color", feature.StringValue("red")), events[0].Feature(1))
	assert.Equal(t, feature.StringValue("hot"), events[0].Outcome())
	assert.Equal(t, feature.NewContinuous("x", -2), events[1].Feature(0))
	assert.Equal(t, feature.StringValue("cold"), events[1].Outcome())
}

func TestReadEventsLastColumnIsOutcome(t *testing.T) {
	events, err := ReadEvents(strings.NewReader("x,color,class\n1,red,A\n"), mixedSchema, "")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, feature.StringValue("A"), events[0].Outcome())
}

func TestReadEventsErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"unknown column", "x,color,size,label\n1,red,2,A\n"},
		{"missing feature", "x,label\n1,A\n"},
		{"missing outcome", "x,color\n1,red\n"},
		{"bad number", "x,color,label\none,red,A\n"},
		{"short row", "x,color,label\n1,red\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadEvents(strings.NewReader(tc.input), mixedSchema, "label")
			assert.Error(t, err)
		})
	}

	for _, x := range []string{"one", "NaN", "Inf", "-Inf"} {
		_, err := ReadEvents(strings.NewReader("x,color,label\n"+x+",red,A\n"), mixedSchema, "label")
		assert.True(t, errors.Is(err, feature.ErrInvalidData), "x=%s", x)
	}
}

func TestReadEventsByEventStops(t *testing.T) {
	input := "x,color,label\n1,red,A\n2,red,A\n3,red,B\n"
	var seen []int
	err := ReadEventsByEvent(strings.NewReader(input), mixedSchema, "label", func(i int, _ dataset.Event) (bool, error) {
		seen = append(seen, i)
		return i < 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, seen)
}

func TestReadIris(t *testing.T) {
	events, err := ReadEventsFromFile("../../testdata/iris.csv", feature.Iris, "Class")
	require.NoError(t, err)
	assert.Len(t, events, 150)
	assert.Len(t, dataset.Outcomes(events), 3)

	_, err = ReadEventsFromFile("../../testdata/missing.csv", feature.Iris, "Class")
	assert.Error(t, err)
}

func TestWriterRoundTrip(t *testing.T) {
	events := []dataset.Event{
		dataset.NewEvent([]feature.Feature{
			feature.NewContinuous("x", 2.5),
			feature.NewCategorical("color", feature.StringValue("red")),
		}, feature.StringValue("hot")),
		dataset.NewEvent([]feature.Feature{
			feature.NewContinuous("x", 7),
			feature.NewCategorical("color", feature.StringValue("blue")),
		}, feature.StringValue("cold")),
	}
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, mixedSchema, "label")
	require.NoError(t, err)
	n, err := w.Write(context.Background(), events)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, w.Count())
	require.NoError(t, w.Flush())
	assert.Equal(t, "x,color,label\n2.5,red,hot\n7,blue,cold\n", buf.String())

	read, err := ReadEvents(buf, mixedSchema, "label")
	require.NoError(t, err)
	assert.Equal(t, events, read)

	_, err = w.Write(context.Background(), []dataset.Event{dataset.NewEvent(nil, feature.StringValue("A"))})
	assert.True(t, errors.Is(err, feature.ErrInvalidData))
}
