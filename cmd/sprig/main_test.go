package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mrcluk/sprig/dataset/csv"
	"github.com/mrcluk/sprig/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent(t *testing.T) {
	e, err := parseEvent(feature.Iris, []string{
		"Petal width=0.2", "Sepal length=5.1", "Sepal width=3.5", "Petal length=1.4",
	})
	require.NoError(t, err)
	assert.Equal(t, feature.NewContinuous("Sepal length", 5.1), e.Feature(0))
	assert.Equal(t, feature.NewContinuous("Petal width", 0.2), e.Feature(3))
	assert.True(t, e.Outcome().IsAbsent())

	for _, args := range [][]string{
		{"Sepal length=5.1"},
		{"Sepal length"},
		{"Petal colour=blue"},
		{"Sepal length=big", "Sepal width=3.5", "Petal length=1.4", "Petal width=0.2"},
	} {
		_, err = parseEvent(feature.Iris, args)
		assert.Error(t, err, "%v", args)
	}
}

func TestTrainingConfigFromEnv(t *testing.T) {
	c := trainingConfig(newViper())
	assert.Equal(t, 3, c.MinSamples)
	assert.Equal(t, 10, c.MaxDepth)
	assert.False(t, c.Parallel)

	t.Setenv("SPRIG_MAX_DEPTH", "4")
	t.Setenv("SPRIG_PARALLEL", "true")
	c = trainingConfig(newViper())
	assert.Equal(t, 4, c.MaxDepth)
	assert.True(t, c.Parallel)
}

func TestTrainingConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprig.yml")
	require.NoError(t, os.WriteFile(path, []byte("min-samples: 5\nmax-depth: 2\n"), 0644))
	v := newViper()
	require.NoError(t, loadConfigFile(v, path))
	c := trainingConfig(v)
	assert.Equal(t, 5, c.MinSamples)
	assert.Equal(t, 2, c.MaxDepth)

	assert.Error(t, loadConfigFile(newViper(), filepath.Join(t.TempDir(), "missing.yml")))
}

func TestGrowAndLoad(t *testing.T) {
	output := filepath.Join(t.TempDir(), "tree.json")
	cmd := cliParser()
	cmd.SetArgs([]string{"grow", "-m", "../../testdata/iris.yml", "-i", "../../testdata/iris.csv", "-o", output, "--max-depth", "4"})
	require.NoError(t, cmd.Execute())

	tr, err := loadTree(context.Background(), output)
	require.NoError(t, err)
	assert.LessOrEqual(t, tr.Depth(), 4)

	events, err := csv.ReadEventsFromFile("../../testdata/iris.csv", tr.Schema, "Class")
	require.NoError(t, err)
	rate, unpredicted, err := tr.Test(context.Background(), events)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, rate, 0.95)
	assert.Equal(t, 0, unpredicted)
}

func TestTreeFromFile(t *testing.T) {
	output := filepath.Join(t.TempDir(), "tree.json")
	cmd := cliParser()
	cmd.SetArgs([]string{"grow", "-m", "../../testdata/iris.yml", "-i", "../../testdata/iris.csv", "-o", output, "--max-depth", "2"})
	require.NoError(t, cmd.Execute())
	want, err := loadTree(context.Background(), output)
	require.NoError(t, err)

	config := &rootCmdConfig{v: newViper(), log: newLogger(false), ctx: context.Background()}
	store, id, err := config.treeStore(output, "")
	require.NoError(t, err)
	got, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, want.Root, got.Root)
	require.NoError(t, store.Close(context.Background()))

	got, err = config.treeFrom(output, "")
	require.NoError(t, err)
	assert.Equal(t, want.Root, got.Root)

	_, err = config.treeFrom("", "")
	assert.Error(t, err)
	_, err = config.treeFrom(filepath.Join(t.TempDir(), "missing.json"), "")
	assert.Error(t, err)
	_, err = config.treeFrom("", "42")
	assert.Error(t, err, "a tree id without a redis address")
}
