package ops

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/jotter/internal/db"
	"github.com/hpungsan/jotter/internal/store"
)

// stepClock advances one second on every reading.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

// newTestStore returns a loaded Store backed by SQLite in a temp dir, plus the base dir.
func newTestStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	baseDir := t.TempDir()
	database, err := db.Init(baseDir)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	clock := &stepClock{t: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
	st := store.New(db.NewKV(database), store.WithClock(clock.Now))
	require.NoError(t, st.Load(context.Background()))
	return st, baseDir
}
