package redisstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mrcluk/sprig/dataset"
	"github.com/mrcluk/sprig/feature"
	"github.com/mrcluk/sprig/tree"
	treejson "github.com/mrcluk/sprig/tree/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/redis.v5"
)

type fakeClient struct {
	lock sync.Mutex
	data map[string]string
	err  error
}

func newFakeClient() *fakeClient {
	return &fakeClient{data: make(map[string]string)}
}

func (fc *fakeClient) Get(key string) *redis.StringCmd {
	fc.lock.Lock()
	defer fc.lock.Unlock()
	if fc.err != nil {
		return redis.NewStringResult("", fc.err)
	}
	v, ok := fc.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (fc *fakeClient) Set(key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	fc.lock.Lock()
	defer fc.lock.Unlock()
	if fc.err != nil {
		return redis.NewStatusResult("", fc.err)
	}
	fc.data[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func (fc *fakeClient) SetNX(key string, value interface{}, _ time.Duration) *redis.BoolCmd {
	fc.lock.Lock()
	defer fc.lock.Unlock()
	if fc.err != nil {
		return redis.NewBoolResult(false, fc.err)
	}
	if _, ok := fc.data[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	fc.data[key] = string(value.([]byte))
	return redis.NewBoolResult(true, nil)
}

func (fc *fakeClient) Del(keys ...string) *redis.IntCmd {
	fc.lock.Lock()
	defer fc.lock.Unlock()
	if fc.err != nil {
		return redis.NewIntResult(0, fc.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := fc.data[k]; ok {
			delete(fc.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func testTree(t *testing.T) *tree.Tree {
	s := feature.MustSchema(feature.Declaration{Name: "x", Kind: feature.Continuous})
	root, err := tree.NewDecision("x", feature.NumberValue(2.5),
		tree.NewLeaf(feature.StringValue("A"), 2),
		tree.NewLeaf(feature.StringValue("B"), 2))
	require.NoError(t, err)
	return tree.New(root, s)
}

func TestCreateGetDelete(t *testing.T) {
	ctx := context.Background()
	fc := newFakeClient()
	rs := newRedisStore(fc, "sprig", treejson.EncodeDecoder{})

	id, err := rs.Create(ctx, testTree(t))
	require.NoError(t, err)
	assert.Len(t, id, 20)
	assert.Contains(t, fc.data, "sprig:"+id)

	got, err := rs.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, testTree(t).String(), got.String())

	require.NoError(t, rs.Delete(ctx, id))
	_, err = rs.Get(ctx, id)
	assert.True(t, errors.Is(err, tree.ErrNotFound))
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	fc := newFakeClient()
	rs := newRedisStore(fc, "sprig", treejson.EncodeDecoder{})

	require.NoError(t, rs.Store(ctx, "iris", testTree(t)))
	got, err := rs.Get(ctx, "iris")
	require.NoError(t, err)
	e := dataset.NewEvent([]feature.Feature{feature.NewContinuous("x", 3)}, feature.Value{})
	v, err := got.Classify(e)
	require.NoError(t, err)
	assert.Equal(t, feature.StringValue("B"), v)
}

func TestRedisErrors(t *testing.T) {
	ctx := context.Background()
	fc := newFakeClient()
	fc.err = errors.New("connection refused")
	rs := newRedisStore(fc, "sprig", treejson.EncodeDecoder{})

	_, err := rs.Create(ctx, testTree(t))
	assert.Error(t, err)
	_, err = rs.Get(ctx, "iris")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, tree.ErrNotFound))
	assert.Error(t, rs.Store(ctx, "iris", testTree(t)))
	assert.Error(t, rs.Delete(ctx, "iris"))
}

func TestCorruptedTree(t *testing.T) {
	fc := newFakeClient()
	fc.data["sprig:bad"] = "{not json"
	rs := newRedisStore(fc, "sprig", treejson.EncodeDecoder{})
	_, err := rs.Get(context.Background(), "bad")
	assert.Error(t, err)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rs := newRedisStore(newFakeClient(), "sprig", treejson.EncodeDecoder{})
	_, err := rs.Create(ctx, testTree(t))
	assert.Equal(t, context.Canceled, err)
}
