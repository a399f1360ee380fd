package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mrcluk/sprig/dataset"
	"github.com/mrcluk/sprig/dataset/csv"
	"github.com/mrcluk/sprig/dataset/sqlset"
	"github.com/mrcluk/sprig/feature"
	"github.com/mrcluk/sprig/feature/yaml"
	"github.com/mrcluk/sprig/tree"
	"github.com/mrcluk/sprig/tree/json"
	"github.com/mrcluk/sprig/tree/redisstore"
	"github.com/sirupsen/logrus"
	"gopkg.in/redis.v5"
)

// readEvents reads events from a CSV file (STDIN when input is empty),
// an SQLite3 .db file or a postgresql:// URL.
func (rcc *rootCmdConfig) readEvents(input, table string, s *feature.Schema, outcome string) ([]dataset.Event, error) {
	if sqlset.IsDatabase(input) {
		rcc.log.WithField("input", input).Debug("opening database to read events")
		db, err := sqlset.Open(input)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		if outcome == "" {
			return nil, fmt.Errorf("reading events from %s: no outcome column", input)
		}
		return sqlset.ReadEvents(rcc.Context(), db, table, s, outcome)
	}
	if input == "" {
		rcc.log.Debug("reading events from STDIN")
	} else {
		rcc.log.WithField("input", input).Debug("reading events")
	}
	return csv.ReadEventsFromFile(input, s, outcome)
}

func readMetadata(path string) (*yaml.Metadata, error) {
	if path == "" {
		return nil, fmt.Errorf("required metadata flag was not set")
	}
	return yaml.ReadMetadataFromFile(path)
}

func loadTree(ctx context.Context, filepath string) (*tree.Tree, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading tree in JSON from %s: %v", filepath, err)
	}
	defer f.Close()
	t, err := json.ReadJSONTree(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("parsing tree in JSON from %s: %w", filepath, err)
	}
	return t, nil
}

func outputTree(ctx context.Context, outputPath string, t *tree.Tree) error {
	var f *os.File
	var err error
	if outputPath == "" {
		f = os.Stdout
	} else {
		f, err = os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
	}
	return json.WriteJSONTree(ctx, t, f)
}

func redisStore(addr, prefix string) (tree.Store, *redis.Client) {
	rc := redis.NewClient(&redis.Options{Addr: addr})
	return redisstore.New(rc, prefix, json.EncodeDecoder{}), rc
}

// treeStore opens the store holding the tree to use and returns it along
// with the tree's id. A tree given by path is loaded into a memory store,
// one given by id is looked up in the redis store at the configured address.
func (rcc *rootCmdConfig) treeStore(path, id string) (tree.Store, string, error) {
	ctx := rcc.Context()
	if id == "" {
		if path == "" {
			return nil, "", fmt.Errorf("required tree flag was not set")
		}
		rcc.log.WithField("tree", path).Debug("reading tree")
		t, err := loadTree(ctx, path)
		if err != nil {
			return nil, "", err
		}
		store := tree.NewMemoryStore()
		id, err = store.Create(ctx, t)
		if err != nil {
			return nil, "", err
		}
		return store, id, nil
	}
	addr := rcc.v.GetString(redisAddrKey)
	if addr == "" {
		return nil, "", fmt.Errorf("a tree id requires the redis-addr flag")
	}
	rcc.log.WithFields(logrus.Fields{"redis": addr, "id": id}).Debug("retrieving tree")
	store, rc := redisStore(addr, rcc.v.GetString(redisKeyKey))
	return &closingStore{baseStore: store, rc: rc}, id, nil
}

// treeFrom returns the tree given by path or id, see treeStore.
func (rcc *rootCmdConfig) treeFrom(path, id string) (*tree.Tree, error) {
	store, id, err := rcc.treeStore(path, id)
	if err != nil {
		return nil, err
	}
	defer store.Close(rcc.Context())
	return store.Get(rcc.Context(), id)
}

// closingStore closes the redis client along with the store.
type closingStore struct {
	baseStore
	rc *redis.Client
}

// baseStore names the embedded tree.Store so the field does not clash with
// its Store method.
type baseStore = tree.Store

func (cs *closingStore) Close(ctx context.Context) error {
	err := cs.baseStore.Close(ctx)
	if cerr := cs.rc.Close(); err == nil {
		err = cerr
	}
	return err
}
