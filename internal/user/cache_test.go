package user

import (
	"context"
	"errors"
	"testing"
	"time"
)

type memCache struct {
	data map[string]string
	sets int
	fail bool
}

func (m *memCache) Get(ctx context.Context, key string) (string, error) {
	if m.fail {
		return "", errors.New("connection refused")
	}
	v, ok := m.data[key]
	if !ok {
		return "", ErrCacheMiss
	}
	return v, nil
}

func (m *memCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.fail {
		return errors.New("connection refused")
	}
	m.sets++
	m.data[key] = value
	return nil
}

type countingLookup struct {
	users map[int]*User
	calls int
}

func (c *countingLookup) GetUserByID(ctx context.Context, id int) (*User, error) {
	c.calls++
	return c.users[id], nil
}

func TestCachedLookupReadThrough(t *testing.T) {
	next := &countingLookup{users: map[int]*User{7: {ID: 7, Username: "alice", FirstName: "Alice", LastName: "Smith", Password: "hash"}}}
	cache := &memCache{data: map[string]string{}}
	l := NewCachedLookup(next, cache, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		u, err := l.GetUserByID(ctx, 7)
		if err != nil {
			t.Fatal(err)
		}
		if u.FullName() != "Alice Smith" {
			t.Fatalf("name = %q", u.FullName())
		}
		if u.Password != "" {
			t.Fatal("password leaked through cache")
		}
	}
	if next.calls != 1 {
		t.Fatalf("database calls = %d, want 1", next.calls)
	}
}

func TestCachedLookupDoesNotCacheMissingUsers(t *testing.T) {
	next := &countingLookup{users: map[int]*User{}}
	cache := &memCache{data: map[string]string{}}
	l := NewCachedLookup(next, cache, time.Minute)

	u, err := l.GetUserByID(context.Background(), 9)
	if err != nil || u != nil {
		t.Fatalf("got (%v, %v)", u, err)
	}
	if cache.sets != 0 {
		t.Fatalf("sets = %d", cache.sets)
	}
}

func TestCachedLookupFallsBackWhenCacheDown(t *testing.T) {
	next := &countingLookup{users: map[int]*User{1: {ID: 1, FirstName: "A", LastName: "B"}}}
	l := NewCachedLookup(next, &memCache{fail: true}, time.Minute)

	u, err := l.GetUserByID(context.Background(), 1)
	if err != nil || u == nil {
		t.Fatalf("got (%v, %v)", u, err)
	}
}
