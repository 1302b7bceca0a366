package store

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"
)

// memKV is an in-memory KV that counts writes and can be made to fail.
type memKV struct {
	mu      sync.Mutex
	data    map[string]string
	writes  int
	failSet error
	failGet error
}

func newMemKV() *memKV {
	return &memKV{data: map[string]string{}}
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return "", false, m.failGet
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) SetMany(_ context.Context, entries map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet != nil {
		return m.failSet
	}
	maps.Copy(m.data, entries)
	m.writes++
	return nil
}

func (m *memKV) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

var errDiskFull = errors.New("disk full")

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.UnixMilli(1_700_000_000_000)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
