/*
Package sqlset reads events from and writes events to a table of an SQL
database, with one column per feature dimension of a schema and a column
for the outcome.

Continuous dimensions are stored as DOUBLE PRECISION columns while
categorical dimensions and outcomes are stored as TEXT.
*/
package sqlset

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mrcluk/sprig/dataset"
	"github.com/mrcluk/sprig/feature"
)

// MaxEventInsertionsPerStatement is the maximum number
// of events that are inserted with a single insert command
// by WriteEvents. Trying to add more will result in making
// more insertion commands
const MaxEventInsertionsPerStatement = 10

// Queryer is the subset of *sql.DB used to read events.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// Execer is the subset of *sql.DB used to write events.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

/*
ReadEvents takes a context, a database, the name of a table, a schema and
the name of the outcome column and returns the events stored in the table,
in the order the database returns them. Every dimension of the schema is
read from the column with its name.

It returns an error if the names are not valid column names, the query
fails or a row holds a NULL or a value that is not valid for its
dimension.
*/
func ReadEvents(ctx context.Context, db Queryer, table string, s *feature.Schema, outcomeColumn string) ([]dataset.Event, error) {
	query, err := selectStatement(table, s, outcomeColumn)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying events from %s: %v", table, err)
	}
	defer rows.Close()
	var events []dataset.Event
	values := make([]sql.NullString, s.Len()+1)
	dest := make([]interface{}, len(values))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		err = rows.Scan(dest...)
		if err != nil {
			return nil, fmt.Errorf("scanning event %d from %s: %v", len(events)+1, table, err)
		}
		e, err := parseRow(s, values)
		if err != nil {
			return nil, fmt.Errorf("parsing event %d from %s: %w", len(events)+1, table, err)
		}
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("reading events from %s: %v", table, err)
	}
	return events, nil
}

/*
WriteEvents takes a context, a database, the name of a table, a schema, the
name of the outcome column and a slice of events, creates the table if it
does not exist and inserts the events into it. It returns the number of
events inserted and an error if not all of them could be inserted.
*/
func WriteEvents(ctx context.Context, db Execer, table string, s *feature.Schema, outcomeColumn string, events []dataset.Event) (int, error) {
	stmt, err := createStatement(table, s, outcomeColumn)
	if err != nil {
		return 0, err
	}
	_, err = db.ExecContext(ctx, stmt)
	if err != nil {
		return 0, fmt.Errorf("creating table %s: %v", table, err)
	}
	var n int
	for len(events) > 0 {
		batch := events
		if len(batch) > MaxEventInsertionsPerStatement {
			batch = batch[:MaxEventInsertionsPerStatement]
		}
		stmt, args, err := insertStatement(table, s, outcomeColumn, batch)
		if err != nil {
			return n, err
		}
		_, err = db.ExecContext(ctx, stmt, args...)
		if err != nil {
			return n, fmt.Errorf("inserting events into %s: %v", table, err)
		}
		n += len(batch)
		events = events[len(batch):]
	}
	return n, nil
}

func parseRow(s *feature.Schema, values []sql.NullString) (dataset.Event, error) {
	features := make([]feature.Feature, s.Len())
	for i := range features {
		if !values[i].Valid {
			return dataset.Event{}, fmt.Errorf("NULL value for %s: %w", s.Declaration(i).Name, feature.ErrInvalidData)
		}
		f, err := s.Parse(i, values[i].String)
		if err != nil {
			return dataset.Event{}, err
		}
		features[i] = f
	}
	outcome := values[len(values)-1]
	if !outcome.Valid {
		return dataset.Event{}, fmt.Errorf("NULL outcome: %w", feature.ErrInvalidData)
	}
	return dataset.NewEvent(features, feature.StringValue(outcome.String)), nil
}

func selectStatement(table string, s *feature.Schema, outcomeColumn string) (string, error) {
	columns, err := columnList(s, outcomeColumn)
	if err != nil {
		return "", err
	}
	t, err := quote(table)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), t), nil
}

func createStatement(table string, s *feature.Schema, outcomeColumn string) (string, error) {
	columns, err := columnList(s, outcomeColumn)
	if err != nil {
		return "", err
	}
	t, err := quote(table)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	buf.WriteString("CREATE TABLE IF NOT EXISTS ")
	buf.WriteString(t)
	buf.WriteString("(")
	for i, c := range columns {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(c)
		if i < s.Len() && s.Declaration(i).Kind == feature.Continuous {
			buf.WriteString(" DOUBLE PRECISION NOT NULL")
		} else {
			buf.WriteString(" TEXT NOT NULL")
		}
	}
	buf.WriteString(")")
	return buf.String(), nil
}

func insertStatement(table string, s *feature.Schema, outcomeColumn string, events []dataset.Event) (string, []interface{}, error) {
	columns, err := columnList(s, outcomeColumn)
	if err != nil {
		return "", nil, err
	}
	t, err := quote(table)
	if err != nil {
		return "", nil, err
	}
	var buf bytes.Buffer
	args := make([]interface{}, 0, len(events)*len(columns))
	fmt.Fprintf(&buf, "INSERT INTO %s(%s) VALUES ", t, strings.Join(columns, ", "))
	for i, e := range events {
		if e.Len() != s.Len() {
			return "", nil, fmt.Errorf("inserting event %v: %d features, expected %d: %w", e, e.Len(), s.Len(), feature.ErrInvalidData)
		}
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(")
		for _, f := range e.Features() {
			fmt.Fprintf(&buf, "$%d, ", len(args)+1)
			args = append(args, sqlValue(f.Value()))
		}
		fmt.Fprintf(&buf, "$%d)", len(args)+1)
		args = append(args, e.Outcome().String())
	}
	return buf.String(), args, nil
}

func sqlValue(v feature.Value) interface{} {
	if f, ok := v.Float(); ok {
		return f
	}
	return v.String()
}

func columnList(s *feature.Schema, outcomeColumn string) ([]string, error) {
	names := append(s.Names(), outcomeColumn)
	columns := make([]string, len(names))
	for i, n := range names {
		c, err := quote(n)
		if err != nil {
			return nil, err
		}
		columns[i] = c
	}
	return columns, nil
}

func quote(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty column or table name")
	}
	if strings.ContainsAny(name, `"`) {
		return "", fmt.Errorf(`name '%s' contains invalid character '"'`, name)
	}
	return `"` + name + `"`, nil
}
