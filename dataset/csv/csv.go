/*
Package csv reads events from and writes events to CSV streams whose
header names the feature dimensions of a schema and the outcome column.
*/
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/mrcluk/sprig/dataset"
	"github.com/mrcluk/sprig/feature"
)

/*
Writer is an interface for a CSV stream to which events
can be written to.
*/
type Writer interface {
	// Write will attempt to write the given events
	// and will return the actually written number of
	// events and an error (if not all events could be
	// written)
	Write(context.Context, []dataset.Event) (int, error)
	// Count returns the total number of events written
	// to the writer
	Count() int
	// Flush ensures any pending written operations finish
	// before returning. It returns an error if that cannot
	// be ensured.
	Flush() error
}

type csvWriter struct {
	count  int
	schema *feature.Schema
	w      *csv.Writer
}

/*
ReadEvents takes an io.Reader for a CSV stream, a schema and the name of
the outcome column and returns the events parsed from the reader or an
error.

The header or first row of the CSV content is expected to consist of the
names of the dimensions of the schema, in any order, and the outcome
column. An empty outcome name takes the last column of the header as the
outcome. The rest of the rows should consist of valid values for every
dimension: decimal numbers for continuous ones and any string for
categorical ones. Outcomes are kept as strings.
*/
func ReadEvents(reader io.Reader, s *feature.Schema, outcome string) ([]dataset.Event, error) {
	events := []dataset.Event{}
	err := ReadEventsByEvent(reader, s, outcome, func(_ int, e dataset.Event) (bool, error) {
		events = append(events, e)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

/*
ReadEventsByEvent takes an io.Reader for a CSV stream, a schema, the name of
the outcome column and a lambda function on an integer and a dataset.Event
that returns a boolean value. It parses the events from the reader and for each
it calls the lambda function with the event and its index as parameters. If the
lambda function returns true, it will continue processing the next event,
otherwise it will stop. An error is returned if something goes wrong when
reading the stream or parsing an event.
*/
func ReadEventsByEvent(reader io.Reader, s *feature.Schema, outcome string, lambda func(int, dataset.Event) (bool, error)) error {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header: %v", err)
	}
	columns, outcomeColumn, err := parseHeader(header, s, outcome)
	if err != nil {
		return err
	}
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading body: %v", err)
		}
		e, err := parseRow(row, s, columns, outcomeColumn)
		if err != nil {
			return fmt.Errorf("parsing line %d: %w", l, err)
		}
		ok, err := lambda(l-2, e)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

/*
ReadEventsFromFile takes a filepath string, a schema and the name of the
outcome column, opens the file to which the filepath points to and uses
ReadEvents to return the events read from it. If the filepath is ""
os.Stdin is read instead. It will return an error if the given filepath
cannot be opened for reading.
*/
func ReadEventsFromFile(filepath string, s *feature.Schema, outcome string) ([]dataset.Event, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading events: %v", err)
		}
		defer f.Close()
	}
	events, err := ReadEvents(f, s, outcome)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %w", filepath, err)
	}
	return events, err
}

/*
NewWriter takes an io.Writer, a schema and the name of the outcome column
and returns a Writer that will write any events on the io.Writer. The
header with the dimension names in schema order followed by the outcome
column is written right away.
*/
func NewWriter(writer io.Writer, s *feature.Schema, outcome string) (Writer, error) {
	w := csv.NewWriter(writer)
	record := append(s.Names(), outcome)
	err := w.Write(record)
	if err != nil {
		return nil, fmt.Errorf("writing CSV header: %v", err)
	}
	return &csvWriter{schema: s, w: w}, nil
}

func (cw *csvWriter) Count() int {
	return cw.count
}

func (cw *csvWriter) Write(ctx context.Context, events []dataset.Event) (int, error) {
	for n, e := range events {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if err := cw.writeEvent(e); err != nil {
			return n, err
		}
	}
	return len(events), nil
}

func (cw *csvWriter) writeEvent(e dataset.Event) error {
	if e.Len() != cw.schema.Len() {
		return fmt.Errorf("writing CSV row for event %d: %d features, expected %d: %w", cw.count+1, e.Len(), cw.schema.Len(), feature.ErrInvalidData)
	}
	record := make([]string, 0, e.Len()+1)
	for _, f := range e.Features() {
		record = append(record, f.Value().String())
	}
	record = append(record, e.Outcome().String())
	err := cw.w.Write(record)
	if err != nil {
		return fmt.Errorf("writing CSV row for event %d: %v", cw.count+1, err)
	}
	cw.count++
	return nil
}

func (cw *csvWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}

// parseHeader returns the CSV column of every schema dimension and the
// column of the outcome.
func parseHeader(header []string, s *feature.Schema, outcome string) ([]int, int, error) {
	if outcome == "" && len(header) > 0 {
		outcome = header[len(header)-1]
	}
	columns := make([]int, s.Len())
	for i := range columns {
		columns[i] = -1
	}
	outcomeColumn := -1
	for i, name := range header {
		if name == outcome {
			outcomeColumn = i
			continue
		}
		j, ok := s.Index(name)
		if !ok {
			return nil, 0, fmt.Errorf("parsing header: reference to unknown feature %s", name)
		}
		columns[j] = i
	}
	if outcomeColumn < 0 {
		return nil, 0, fmt.Errorf("parsing header: missing outcome column %s", outcome)
	}
	for j, c := range columns {
		if c < 0 {
			return nil, 0, fmt.Errorf("parsing header: missing column for feature %s", s.Declaration(j).Name)
		}
	}
	return columns, outcomeColumn, nil
}

func parseRow(row []string, s *feature.Schema, columns []int, outcomeColumn int) (dataset.Event, error) {
	features := make([]feature.Feature, len(columns))
	for j, c := range columns {
		f, err := s.Parse(j, row[c])
		if err != nil {
			return dataset.Event{}, err
		}
		features[j] = f
	}
	return dataset.NewEvent(features, feature.StringValue(row[outcomeColumn])), nil
}
