package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/angelmondragon/hra-tradeshow-backend/pkg/config"
)

func newTestClient(store cmdable) *Client {
	return &Client{store: store, keys: NewKeyspace("hra")}
}

func TestFixedWindowAllowStartsWindowOnFirstHit(t *testing.T) {
	ctx := context.Background()
	store := newFakeCmdable()
	client := newTestClient(store)

	var got []bool
	for i := 0; i < 3; i++ {
		allowed, count, err := client.FixedWindowAllow(ctx, "login:ip:1.2.3.4", 2, time.Minute)
		if err != nil {
			t.Fatalf("allow %d: %v", i, err)
		}
		if count != int64(i+1) {
			t.Fatalf("expected count %d, got %d", i+1, count)
		}
		got = append(got, allowed)
	}

	if !got[0] || !got[1] || got[2] {
		t.Fatalf("expected [true true false], got %v", got)
	}
	if len(store.expires) != 1 {
		t.Fatalf("expected expiry set once, got %d", len(store.expires))
	}
	if store.expires[0].key != "hra:rate_limit:login:ip:1.2.3.4" {
		t.Fatalf("unexpected key %s", store.expires[0].key)
	}
	if store.expires[0].ttl != time.Minute {
		t.Fatalf("unexpected ttl %s", store.expires[0].ttl)
	}
}

func TestFixedWindowAllowSurfacesStoreErrors(t *testing.T) {
	store := newFakeCmdable()
	store.incrErr = errors.New("connection reset")

	allowed, _, err := newTestClient(store).FixedWindowAllow(context.Background(), "login:ip:x", 1, time.Minute)
	if allowed {
		t.Fatal("expected request denied on store error")
	}
	if err == nil || !strings.Contains(err.Error(), "connection reset") {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(newFakeCmdable())

	key := client.AccessSessionKey("access-1")
	if err := client.Set(ctx, key, "refresh-token", 10*time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := client.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "refresh-token" {
		t.Fatalf("unexpected value %q", got)
	}

	if err := client.Del(ctx, key); err != nil {
		t.Fatalf("del: %v", err)
	}
	if _, err := client.Get(ctx, key); !errors.Is(err, redis.Nil) {
		t.Fatalf("expected redis.Nil after delete, got %v", err)
	}
}

func TestSetNXFirstWriterWins(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(newFakeCmdable())

	ok, err := client.SetNX(ctx, "k", "first", time.Minute)
	if err != nil || !ok {
		t.Fatalf("expected first setnx to win: %v %v", ok, err)
	}

	ok, err = client.SetNX(ctx, "k", "second", time.Minute)
	if err != nil || ok {
		t.Fatalf("expected second setnx to lose: %v %v", ok, err)
	}

	v, err := client.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v != "first" {
		t.Fatalf("expected first value kept, got %q", v)
	}
}

func TestUnconnectedClient(t *testing.T) {
	client := &Client{}
	ctx := context.Background()

	if err := client.Ping(ctx); !errors.Is(err, errNotConnected) {
		t.Fatalf("ping: %v", err)
	}
	if err := client.Set(ctx, "k", "v", 0); !errors.Is(err, errNotConnected) {
		t.Fatalf("set: %v", err)
	}
	if _, _, err := client.FixedWindowAllow(ctx, "s", 1, time.Second); !errors.Is(err, errNotConnected) {
		t.Fatalf("allow: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{URL: "  "}); err == nil {
		t.Fatal("expected error for blank url")
	}

	opts, err := optionsFromConfig(config.RedisConfig{
		URL:         "redis://localhost:6379/2?pool_size=3",
		PoolSize:    7,
		DialTimeout: 3 * time.Second,
	})
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Addr != "localhost:6379" || opts.DB != 2 {
		t.Fatalf("unexpected addr/db %s/%d", opts.Addr, opts.DB)
	}
	// the url wins over config
	if opts.PoolSize != 3 {
		t.Fatalf("expected pool size from url, got %d", opts.PoolSize)
	}
	if opts.DialTimeout != 3*time.Second {
		t.Fatalf("expected dial timeout from config, got %s", opts.DialTimeout)
	}
}

func TestKeyspace(t *testing.T) {
	cases := []struct {
		prefix string
		parts  []string
		want   string
	}{
		{prefix: "hra", parts: []string{"idempotency", "POST /api/admin/v1/deals", "abc"}, want: "hra:idempotency:POST /api/admin/v1/deals:abc"},
		{prefix: "", parts: []string{"session", "access", "id"}, want: "hra:session:access:id"},
		{prefix: " show-2025: ", parts: []string{"rate_limit", "", "login"}, want: "show-2025:rate_limit:login"},
	}
	for _, tc := range cases {
		if got := NewKeyspace(tc.prefix).Key(tc.parts...); got != tc.want {
			t.Fatalf("prefix %q: expected %s, got %s", tc.prefix, tc.want, got)
		}
	}

	var zero Keyspace
	if got := zero.Key("x"); got != "hra:x" {
		t.Fatalf("zero keyspace: got %s", got)
	}
}

type expireCall struct {
	key string
	ttl time.Duration
}

type fakeCmdable struct {
	data    map[string]string
	counts  map[string]int64
	expires []expireCall
	incrErr error
}

func newFakeCmdable() *fakeCmdable {
	return &fakeCmdable{data: map[string]string{}, counts: map[string]int64{}}
}

func (f *fakeCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeCmdable) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	f.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeCmdable) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeCmdable) SetNX(_ context.Context, key string, value any, _ time.Duration) *redis.BoolCmd {
	if _, ok := f.data[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.data[key] = fmt.Sprint(value)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeCmdable) Incr(_ context.Context, key string) *redis.IntCmd {
	if f.incrErr != nil {
		return redis.NewIntResult(0, f.incrErr)
	}
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeCmdable) Expire(_ context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	f.expires = append(f.expires, expireCall{key: key, ttl: ttl})
	return redis.NewBoolResult(true, nil)
}

func (f *fakeCmdable) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(f.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
