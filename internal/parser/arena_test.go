package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArenaRegisterDeregister(t *testing.T) {
	a := NewArena(0)
	ls := &Linestring{}
	r := &Ring{}

	require.NoError(t, a.Register(KindLinestring, ls))
	require.NoError(t, a.Register(KindRing, r))
	require.Equal(t, 2, a.Stats().Live)

	kind, ok := a.Deregister(r)
	require.True(t, ok)
	require.Equal(t, KindRing, kind)

	_, ok = a.Deregister(r)
	require.False(t, ok, "second deregister must miss")

	require.True(t, a.Absorb(ls))
	require.False(t, a.Release(ls))

	st := a.Stats()
	require.Equal(t, 0, st.Live)
	require.Equal(t, 2, st.Registered)
	require.Equal(t, 1, st.Absorbed)
	require.Equal(t, 0, st.Released)
}

func TestArenaBlocks(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		blocks int
	}{
		{"one record", 1, 1},
		{"full block", BlockSize, 1},
		{"one past a block", BlockSize + 1, 2},
		{"three blocks", 2*BlockSize + 7, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewArena(0)
			for i := 0; i < tt.n; i++ {
				if err := a.Register(KindLinestring, &Linestring{}); err != nil {
					t.Fatalf("Register() error = %v", err)
				}
			}
			if got := a.Stats().Blocks; got != tt.blocks {
				t.Errorf("Blocks = %d, want %d", got, tt.blocks)
			}
			if got := a.Sweep(true); got != tt.n {
				t.Errorf("Sweep(true) = %d, want %d", got, tt.n)
			}
		})
	}
}

func TestArenaDeregisterAcrossBlocks(t *testing.T) {
	a := NewArena(0)
	handles := make([]*Ring, 3*BlockSize)
	for i := range handles {
		handles[i] = &Ring{}
		require.NoError(t, a.Register(KindRing, handles[i]))
	}

	// Out of order: last block first, then from the front.
	for i := len(handles) - 1; i >= 2*BlockSize; i-- {
		require.True(t, a.Release(handles[i]))
	}
	for i := 0; i < 2*BlockSize; i++ {
		require.True(t, a.Release(handles[i]))
	}
	require.Equal(t, 0, a.Stats().Live)
	require.Equal(t, 0, a.Sweep(true))
	require.Equal(t, 3*BlockSize, a.Stats().Released)
}

func TestArenaSweep(t *testing.T) {
	build := func() (*Arena, *Collection) {
		a := NewArena(0)
		c := &Collection{}
		require.NoError(t, a.Register(KindGeometry, c))
		p, err := newBuilder(a, true).newPoint(1, 2, 0, DimXY)
		require.NoError(t, err)
		c.Points = append(c.Points, p)
		require.True(t, a.Absorb(p))
		return a, c
	}

	t.Run("release all", func(t *testing.T) {
		a, c := build()
		require.Equal(t, 1, a.Sweep(true))
		require.Nil(t, c.Points)
		st := a.Stats()
		require.Equal(t, 1, st.Released)
		require.Equal(t, 0, st.Transferred)
		require.Equal(t, 0, st.Live)
	})

	t.Run("transfer", func(t *testing.T) {
		a, c := build()
		require.Equal(t, 1, a.Sweep(false))
		require.Len(t, c.Points, 1)
		st := a.Stats()
		require.Equal(t, 0, st.Released)
		require.Equal(t, 1, st.Transferred)
	})
}

func TestArenaLimit(t *testing.T) {
	a := NewArena(2)
	require.NoError(t, a.Register(KindRing, &Ring{}))
	last := &Ring{}
	require.NoError(t, a.Register(KindRing, last))

	err := a.Register(KindPolygon, &Polygon{})
	var allocErr *ErrAllocation
	require.True(t, errors.As(err, &allocErr))
	require.Equal(t, KindPolygon, allocErr.Kind)
	require.Equal(t, 2, allocErr.Limit)

	// The limit counts live fragments, not registrations.
	require.True(t, a.Release(last))
	require.NoError(t, a.Register(KindPolygon, &Polygon{}))
}

func TestArenaReuseAfterSweep(t *testing.T) {
	a := NewArena(0)
	require.NoError(t, a.Register(KindRing, &Ring{}))
	a.Sweep(true)

	r := &Ring{}
	require.NoError(t, a.Register(KindRing, r))
	require.True(t, a.Release(r))
	require.Equal(t, 2, a.Stats().Blocks)
}
