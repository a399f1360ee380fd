package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/mrcluk/sprig/tree"
	"gopkg.in/redis.v5"
)

/*
TreeEncodeDecoder is an interface for objects
that allow encoding trees into slices of
bytes and decoding them back to trees.
*/
type TreeEncodeDecoder interface {

	//Encode receives a *tree.Tree
	// and returns a slice of bytes with the tree
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(*tree.Tree) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a *tree.Tree decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (*tree.Tree, error)
}

// client is the subset of *redis.Client used by the store
type client interface {
	Get(key string) *redis.StringCmd
	Set(key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(keys ...string) *redis.IntCmd
}

type redisStore struct {
	rc      client
	prefix  string
	tencdec TreeEncodeDecoder
}

//New builds a tree.Store backed by a redis DB. Trees are stored
//encoded with tencdec under keys made of the prefix and their ID.
func New(rc *redis.Client, prefix string, tencdec TreeEncodeDecoder) tree.Store {
	return newRedisStore(rc, prefix, tencdec)
}

func newRedisStore(rc client, prefix string, tencdec TreeEncodeDecoder) *redisStore {
	return &redisStore{rc, prefix, tencdec}
}

func (rs *redisStore) Create(ctx context.Context, t *tree.Tree) (string, error) {
	data, err := rs.tencdec.Encode(t)
	if err != nil {
		return "", fmt.Errorf("creating tree: encoding tree: %v", err)
	}
	var ok bool
	var id string
	for !ok {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		id = randString(20)
		ok, err = rs.rc.SetNX(rs.keyFor(id), data, 0).Result()
		if err != nil {
			return "", fmt.Errorf("creating tree in redis: %v", err)
		}
	}
	return id, nil
}

func (rs *redisStore) Get(ctx context.Context, id string) (*tree.Tree, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	data, err := rs.rc.Get(rs.keyFor(id)).Result()
	if err == redis.Nil {
		return nil, fmt.Errorf("retrieving tree %q: %w", id, tree.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving tree %q: %v", id, err)
	}
	t, err := rs.tencdec.Decode([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("retrieving tree %q: decoding %q: %w", id, data, err)
	}
	return t, nil
}

func (rs *redisStore) Store(ctx context.Context, id string, t *tree.Tree) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	redisID := rs.keyFor(id)
	data, err := rs.tencdec.Encode(t)
	if err != nil {
		return fmt.Errorf("storing tree %q: encoding tree: %v", redisID, err)
	}
	_, err = rs.rc.Set(redisID, data, 0).Result()
	if err != nil {
		return fmt.Errorf("storing tree %q in redis: %v", redisID, err)
	}
	return nil
}

func (rs *redisStore) Delete(ctx context.Context, id string) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	redisID := rs.keyFor(id)
	_, err := rs.rc.Del(redisID).Result()
	if err != nil {
		return fmt.Errorf("deleting tree %q from redis: %v", redisID, err)
	}
	return nil
}

func (rs *redisStore) Close(ctx context.Context) error {
	return nil
}

func (rs *redisStore) keyFor(id string) string {
	return fmt.Sprintf("%s:%s", rs.prefix, id)
}
