package bitvec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetGetRoundTrip(t *testing.T) {
	for _, size := range []int{0, 1, 63, 64, 65, 130} {
		v := New(size)
		for i := range size {
			v.Set(i, i%3 == 0)
		}
		for i := range size {
			got, ok := v.Get(i)
			require.True(t, ok)
			require.Equal(t, i%3 == 0, got, "size %d bit %d", size, i)
		}
		_, ok := v.Get(size)
		require.False(t, ok)
		_, ok = v.Get(-1)
		require.False(t, ok)
	}
}

func TestMostSignificantBitFirst(t *testing.T) {
	v := New(70)
	v.Set(0, true)
	v.Set(65, true)
	require.Equal(t, uint64(1)<<63, v.words[0])
	require.Equal(t, uint64(1)<<62, v.words[1])

	v.Set(0, false)
	require.Zero(t, v.words[0])
}

func TestSetOutOfRangePanics(t *testing.T) {
	v := New(10)
	require.Panics(t, func() { v.Set(10, true) })
	require.Panics(t, func() { v.Set(-1, true) })
}

func TestSetAll(t *testing.T) {
	v := New(70)
	v.SetAllTrue()
	require.Equal(t, 70, v.Count())
	for i := range 70 {
		require.True(t, v.Has(i))
	}
	v.SetAllFalse()
	require.Zero(t, v.Count())
}

func TestOrAssignIsPointwise(t *testing.T) {
	a, b := New(100), New(100)
	for i := range 100 {
		a.Set(i, i%2 == 0)
		b.Set(i, i%5 == 0)
	}
	before := a.Clone()
	a.OrAssign(b)
	for i := range 100 {
		require.Equal(t, before.Has(i) || b.Has(i), a.Has(i), "bit %d", i)
	}
	require.Panics(t, func() { a.OrAssign(New(99)) })
}

func TestAndNotCloneEqual(t *testing.T) {
	a := New(66)
	a.SetAllTrue()
	b := New(66)
	b.Set(1, true)
	b.Set(65, true)
	c := a.Clone()
	c.AndNotAssign(b)
	require.Equal(t, 64, c.Count())
	require.False(t, c.Has(65))
	require.True(t, a.Has(65), "clone must not alias")

	d := New(66)
	for i := range 66 {
		d.Set(i, i != 1 && i != 65)
	}
	require.True(t, c.Equal(d), "bits past Len are ignored")
	require.False(t, c.Equal(New(67)))
	require.Equal(t, []int{1, 65}, b.Indices())
}

func TestString(t *testing.T) {
	v := New(4)
	v.Set(1, true)
	require.Equal(t, "0100", v.String())
}
