package kv

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrRouteNotCached = errors.New("route not cached")
)

const routeKeyPrefix = "route:"

type KVDB struct {
	db *badger.DB
}

func NewKVDB(db *badger.DB) *KVDB {
	return &KVDB{db}
}

// OpenBadger opens (or creates) the route cache in dir. an empty dir keeps the cache in memory.
func OpenBadger(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts = opts.WithLogger(nil)
	return badger.Open(opts)
}

func (k *KVDB) Close() error {
	return k.db.Close()
}

// routeKey. cached paths are per search strategy, both strategies return the same length but not always
// the same path.
func routeKey(strategy string, from, to int64) []byte {
	return []byte(routeKeyPrefix + strategy + ":" + strconv.FormatInt(from, 10) + ":" + strconv.FormatInt(to, 10))
}

func (k *KVDB) SaveRoute(ctx context.Context, strategy string, from, to int64, route CachedRoute) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	val, err := encodeRoute(route)
	if err != nil {
		return err
	}

	return k.db.Update(func(txn *badger.Txn) error {
		return txn.Set(routeKey(strategy, from, to), val)
	})
}

type RouteEntry struct {
	From  int64
	To    int64
	Route CachedRoute
}

// SaveRoutes writes all entries in a single write batch.
func (k *KVDB) SaveRoutes(ctx context.Context, strategy string, entries []RouteEntry) error {
	batch := k.db.NewWriteBatch()
	defer batch.Cancel()

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled")
		default:
		}

		val, err := encodeRoute(entry.Route)
		if err != nil {
			return err
		}

		if err := batch.Set(routeKey(strategy, entry.From, entry.To), val); err != nil {
			return err
		}
	}

	if err := batch.Flush(); err != nil {
		log.Printf("error saving routes: %v", err)
		return err
	}
	return nil
}

func (k *KVDB) get(key []byte) ([]byte, error) {
	var val []byte
	err := k.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		val, err = item.ValueCopy(nil)
		return err
	})
	return val, err
}

func (k *KVDB) GetRoute(ctx context.Context, strategy string, from, to int64) (CachedRoute, error) {
	select {
	case <-ctx.Done():
		return CachedRoute{}, ctx.Err()
	default:
	}

	val, err := k.get(routeKey(strategy, from, to))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return CachedRoute{}, fmt.Errorf("route %d -> %d: %w", from, to, ErrRouteNotCached)
	}
	if err != nil {
		return CachedRoute{}, err
	}

	return decodeRoute(val)
}
