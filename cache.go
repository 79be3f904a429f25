package keyedcache

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"sync"

	"github.com/samber/lo"

	c "github.com/unkn0wn-root/keyedcache/codec"
	pr "github.com/unkn0wn-root/keyedcache/provider"
)

type cache[V any] struct {
	prefix   string
	get      Getter
	set      Setter
	remove   Remover
	provider pr.Provider
	codec    c.Codec[V]
	log      Logger
	hooks    Hooks

	empty    V
	emptyRaw string
	equal    func(a, b V) bool

	// in-memory layer; a missing key is unknown
	mu      sync.Mutex
	entries map[string]V
}

func newCache[V any](opts Options[V]) (*cache[V], error) {
	cc := &cache[V]{
		prefix:   coalesce(opts.Prefix, DefaultPrefix),
		get:      opts.Getter,
		set:      opts.Setter,
		remove:   opts.Remover,
		provider: opts.Provider,
		codec:    opts.Codec,
		empty:    opts.Empty,
		equal:    opts.Equal,
		entries:  make(map[string]V),
	}

	if p := opts.Provider; p != nil {
		g, s, r := bindProvider(p)
		if cc.get == nil {
			cc.get = g
		}
		if cc.set == nil {
			cc.set = s
		}
		if cc.remove == nil {
			cc.remove = r
		}
	}
	if cc.get == nil {
		return nil, &ConfigError{Field: "Getter", Reason: "getter or provider is required"}
	}
	if cc.set == nil {
		return nil, &ConfigError{Field: "Setter", Reason: "setter or provider is required"}
	}

	if cc.codec == nil {
		cc.codec = c.JSON[V]{}
	}
	if cc.equal == nil {
		cc.equal = defaultEqual[V]
	}
	emptyRaw, err := cc.codec.Encode(cc.empty)
	if err != nil {
		return nil, &ConfigError{Field: "Empty", Reason: "cannot encode empty value: " + err.Error()}
	}
	cc.emptyRaw = string(emptyRaw)
	if cc.remove == nil {
		// default remover: the raw empty marker goes through the setter
		cc.remove = func(ctx context.Context, storageKey string) error {
			return cc.set(ctx, storageKey, cc.emptyRaw)
		}
	}

	if opts.Logger != nil {
		cc.log = opts.Logger
	} else {
		cc.log = NopLogger{}
	}
	if opts.Hooks != nil {
		cc.hooks = opts.Hooks
	} else {
		cc.hooks = NopHooks{}
	}
	return cc, nil
}

func (cc *cache[V]) Close(ctx context.Context) error {
	if cc.provider != nil {
		return cc.provider.Close(ctx)
	}
	return nil
}

func (cc *cache[V]) Get(ctx context.Context, key string) (V, error) {
	if err := checkKey("get", key); err != nil {
		return cc.empty, err
	}
	if v, ok := cc.cached(key); ok {
		return v, nil
	}
	v, _, err := cc.load(ctx, "get", key)
	return v, err
}

func (cc *cache[V]) Has(ctx context.Context, key string) (bool, error) {
	if err := checkKey("has", key); err != nil {
		return false, err
	}
	v, ok := cc.cached(key)
	if !ok {
		var err error
		if v, _, err = cc.load(ctx, "has", key); err != nil {
			return false, err
		}
	}
	return !cc.isEmpty(v), nil
}

func (cc *cache[V]) Set(ctx context.Context, key string, value V) (V, error) {
	if err := checkKey("set", key); err != nil {
		return cc.empty, err
	}
	if v, ok := cc.cached(key); ok && cc.equal(v, value) {
		cc.hooks.WriteSkipped(cc.storageKey(key))
		return value, nil
	}
	if err := cc.write(ctx, "set", key, value); err != nil {
		return cc.empty, err
	}
	return value, nil
}

func (cc *cache[V]) Remove(ctx context.Context, key string) error {
	if err := checkKey("remove", key); err != nil {
		return err
	}
	return cc.removeKey(ctx, "remove", key)
}

func (cc *cache[V]) Default(ctx context.Context, key string, def V) (V, error) {
	if err := checkKey("default", key); err != nil {
		return cc.empty, err
	}
	if v, ok := cc.cached(key); ok {
		return v, nil
	}
	v, found, err := cc.load(ctx, "default", key)
	if err != nil {
		return cc.empty, err
	}
	if found && !cc.isEmpty(v) {
		return v, nil
	}
	if err := cc.write(ctx, "default", key, def); err != nil {
		return cc.empty, err
	}
	cc.hooks.Defaulted(cc.storageKey(key))
	cc.log.Debug("default persisted", Fields{"key": key})
	return def, nil
}

func (cc *cache[V]) Clear(ctx context.Context) error {
	cc.mu.Lock()
	keys := lo.Keys(cc.entries)
	cc.mu.Unlock()
	slices.Sort(keys)

	var failed map[string]error
	for _, k := range keys {
		if err := cc.removeKey(ctx, "clear", k); err != nil {
			if failed == nil {
				failed = make(map[string]error)
			}
			failed[k] = err
		}
	}
	if failed != nil {
		return &ClearError{Errs: failed}
	}
	cc.log.Debug("cleared cached keys", Fields{"count": len(keys)})
	return nil
}

// load reads key from the store. found is false when the store has no entry;
// the in-memory layer is left unset in that case.
func (cc *cache[V]) load(ctx context.Context, op, key string) (v V, found bool, err error) {
	sk := cc.storageKey(key)
	raw, ok, err := cc.get(ctx, sk)
	if err != nil {
		cc.hooks.StoreError("get", sk, err)
		cc.log.Error("store read failed", Fields{"key": key, "err": err})
		return cc.empty, false, &StoreError{Op: op, Key: key, Err: err}
	}
	if !ok {
		cc.hooks.Missed(sk)
		return cc.empty, false, nil
	}

	if raw == cc.emptyRaw {
		v = cc.empty
	} else {
		v, err = cc.codec.Decode([]byte(raw))
		if err != nil {
			cc.hooks.DecodeError(sk, err)
			cc.log.Warn("stored value not decodable", Fields{"key": key, "err": err})
			return cc.empty, false, &SerializationError{Op: op, Key: key, Err: err}
		}
	}
	cc.store(key, v)
	cc.hooks.Loaded(sk)
	return v, true, nil
}

// write persists value (or removes the key for the empty value) and then
// updates the in-memory layer.
func (cc *cache[V]) write(ctx context.Context, op, key string, value V) error {
	if cc.isEmpty(value) {
		return cc.removeKey(ctx, op, key)
	}
	payload, err := cc.codec.Encode(value)
	if err != nil {
		return &SerializationError{Op: op, Key: key, Err: err}
	}
	sk := cc.storageKey(key)
	if err := cc.set(ctx, sk, string(payload)); err != nil {
		cc.hooks.StoreError("set", sk, err)
		cc.log.Error("store write failed", Fields{"key": key, "err": err})
		return &StoreError{Op: op, Key: key, Err: err}
	}
	cc.store(key, value)
	cc.log.Debug("value written through", Fields{"key": key, "bytes": len(payload)})
	return nil
}

func (cc *cache[V]) removeKey(ctx context.Context, op, key string) error {
	sk := cc.storageKey(key)
	if err := cc.remove(ctx, sk); err != nil {
		cc.hooks.StoreError("remove", sk, err)
		cc.log.Error("store remove failed", Fields{"key": key, "err": err})
		return &StoreError{Op: op, Key: key, Err: err}
	}
	cc.store(key, cc.empty)
	cc.log.Debug("key removed", Fields{"key": key})
	return nil
}

func (cc *cache[V]) cached(key string) (V, bool) {
	cc.mu.Lock()
	v, ok := cc.entries[key]
	cc.mu.Unlock()
	return v, ok
}

func (cc *cache[V]) store(key string, v V) {
	cc.mu.Lock()
	cc.entries[key] = v
	cc.mu.Unlock()
}

func (cc *cache[V]) isEmpty(v V) bool { return cc.equal(v, cc.empty) }

func (cc *cache[V]) storageKey(key string) string {
	// isolate by prefix
	return cc.prefix + key
}

func checkKey(op, key string) error {
	if key == "" {
		return &ArgumentError{Op: op, Arg: "key", Reason: "must not be empty"}
	}
	return nil
}

type equaler[V any] interface {
	Equal(V) bool
}

func defaultEqual[V any](a, b V) bool {
	if e, ok := any(a).(equaler[V]); ok {
		return e.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}

func bindProvider(p pr.Provider) (Getter, Setter, Remover) {
	get := func(ctx context.Context, storageKey string) (string, bool, error) {
		b, ok, err := p.Get(ctx, storageKey)
		if err != nil || !ok {
			return "", false, err
		}
		return string(b), true, nil
	}
	set := func(ctx context.Context, storageKey, raw string) error {
		return p.Set(ctx, storageKey, []byte(raw))
	}
	del := func(ctx context.Context, storageKey string) error {
		err := p.Del(ctx, storageKey)
		if errors.Is(err, pr.ErrNotFound) {
			return nil
		}
		return err
	}
	return get, set, del
}
