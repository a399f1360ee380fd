package sqlset

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
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
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "x", "color", "label" FROM "events"`)).
		WillReturnRows(sqlmock.NewRows([]string{"x", "color", "label"}).
			AddRow(1.5, "red", "hot").
			AddRow("3", "blue", "cold"))

	events, err := ReadEvents(context.Background(), db, "events", mixedSchema, "label")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, feature.NewContinuous("x", 1.5), events[0].Feature(0))
	assert.Equal(t, feature.NewCategorical("color", feature.StringValue("red")), events[0].Feature(1))
	assert.Equal(t, feature.StringValue("hot"), events[0].Outcome())
	assert.Equal(t, feature.NewContinuous("x", 3), events[1].Feature(0))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadEventsInvalidRows(t *testing.T) {
	tests := []struct {
		name string
		row  []driver.Value
	}{
		{"null feature", []driver.Value{nil, "red", "hot"}},
		{"null outcome", []driver.Value{1.0, "red", nil}},
		{"not a number", []driver.Value{"one", "red", "hot"}},
		{"not finite", []driver.Value{"NaN", "red", "hot"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			mock.ExpectQuery("SELECT").
				WillReturnRows(sqlmock.NewRows([]string{"x", "color", "label"}).AddRow(tc.row...))
			_, err = ReadEvents(context.Background(), db, "events", mixedSchema, "label")
			assert.True(t, errors.Is(err, feature.ErrInvalidData), "%v", err)
		})
	}
}

func TestReadEventsQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("no such table"))
	_, err = ReadEvents(context.Background(), db, "events", mixedSchema, "label")
	assert.Error(t, err)

	_, err = ReadEvents(context.Background(), db, `ev"ents`, mixedSchema, "label")
	assert.Error(t, err)
}

func TestWriteEvents(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var events []dataset.Event
	for i := 0; i < MaxEventInsertionsPerStatement+1; i++ {
		events = append(events, dataset.NewEvent([]feature.Feature{
			feature.NewContinuous("x", float64(i)),
			feature.NewCategorical("color", feature.StringValue("red")),
		}, feature.StringValue("hot")))
	}

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS "events"("x" DOUBLE PRECISION NOT NULL, "color" TEXT NOT NULL, "label" TEXT NOT NULL)`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "events"("x", "color", "label") VALUES ($1, $2, $3), ($4, $5, $6)`)).
		WillReturnResult(sqlmock.NewResult(0, MaxEventInsertionsPerStatement))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "events"("x", "color", "label") VALUES ($1, $2, $3)`)).
		WithArgs(float64(MaxEventInsertionsPerStatement), "red", "hot").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := WriteEvents(context.Background(), db, "events", mixedSchema, "label", events)
	require.NoError(t, err)
	assert.Equal(t, len(events), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpen(t *testing.T) {
	assert.True(t, IsDatabase("postgresql://localhost/iris"))
	assert.True(t, IsDatabase("iris.db"))
	assert.False(t, IsDatabase("iris.csv"))
	assert.False(t, IsDatabase(""))

	_, err := Open("iris.csv")
	assert.Error(t, err)
}
