package kv

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	lite, err := OpenSQLite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = lite.Close() })
	return map[string]Store{"memory": NewMemory(), "sqlite": lite}
}

func TestStore_GetMissingKey(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			v, found, err := s.Get(context.Background(), "absent")
			require.NoError(t, err)
			assert.False(t, found)
			assert.Nil(t, v)
		})
	}
}

func TestStore_UpdateWritesAndSkips(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Update(ctx, "k", func(cur []byte, found bool) ([]byte, error) {
				assert.False(t, found)
				return []byte("one"), nil
			}))
			require.NoError(t, s.Update(ctx, "k", func(cur []byte, found bool) ([]byte, error) {
				assert.True(t, found)
				assert.Equal(t, "one", string(cur))
				return nil, nil
			}))

			v, found, err := s.Get(ctx, "k")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "one", string(v))
		})
	}
}

func TestStore_UpdateErrorLeavesValue(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Update(ctx, "k", func([]byte, bool) ([]byte, error) { return []byte("v1"), nil }))
			err := s.Update(ctx, "k", func([]byte, bool) ([]byte, error) { return []byte("v2"), boom })
			require.ErrorIs(t, err, boom)

			v, _, err := s.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "v1", string(v))
		})
	}
}

func TestStore_ConcurrentUpdatesAreSerialised(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					err := s.Update(ctx, "counter", func(cur []byte, found bool) ([]byte, error) {
						n := 0
						if found {
							n, _ = strconv.Atoi(string(cur))
						}
						return []byte(strconv.Itoa(n + 1)), nil
					})
					assert.NoError(t, err)
				}()
			}
			wg.Wait()

			v, _, err := s.Get(ctx, "counter")
			require.NoError(t, err)
			assert.Equal(t, "20", string(v))
		})
	}
}

func TestSQLite_ReopenKeepsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	ctx := context.Background()

	s1, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s1.Update(ctx, "k", func([]byte, bool) ([]byte, error) { return []byte("kept"), nil }))
	require.NoError(t, s1.Close())

	s2, err := OpenSQLite(path)
	require.NoError(t, err)
	defer s2.Close()

	v, found, err := s2.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "kept", string(v))
}

func TestMemory_Closed(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Close())
	_, _, err := m.Get(context.Background(), "k")
	require.ErrorIs(t, err, ErrClosed)
}
