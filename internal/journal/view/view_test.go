package view

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewList_CopiesInput(t *testing.T) {
	src := []int{1, 2, 3}
	l := NewList(src)

	src[0] = 99

	require.Equal(t, 1, l.At(0), "snapshot should be detached from the source slice")
	require.Equal(t, 3, l.Len())
}

func TestList_ZeroValueIsEmpty(t *testing.T) {
	var l List[string]
	require.Equal(t, 0, l.Len())
	require.Empty(t, l.Slice())
}

func TestList_AllIteratesInOrder(t *testing.T) {
	l := NewList([]string{"a", "b", "c"})

	var got []string
	for item := range l.All() {
		got = append(got, item)
	}
	require.Equal(t, []string{"a", "b", "c"}, got)
}

func TestList_AllSupportsEarlyBreak(t *testing.T) {
	l := NewList([]int{1, 2, 3, 4})

	var got []int
	for item := range l.All() {
		got = append(got, item)
		if len(got) == 2 {
			break
		}
	}
	require.Equal(t, []int{1, 2}, got)
}

func TestList_SliceReturnsIndependentCopy(t *testing.T) {
	l := NewList([]int{10, 20})

	cp := l.Slice()
	cp[0] = -1
	cp = append(cp, 30)

	require.Equal(t, 10, l.At(0), "mutating the copy must not affect the snapshot")
	require.Equal(t, 2, l.Len())
	require.Len(t, cp, 3)
}

func TestList_AppendPanicsReadOnly(t *testing.T) {
	l := NewList([]int{1})

	require.PanicsWithValue(t, ErrReadOnly, func() {
		l.Append(2)
	})

	// The failed mutation attempt must not disturb the snapshot.
	require.Equal(t, 1, l.Len())
	require.Equal(t, 1, l.At(0))
}

func TestList_SetPanicsReadOnly(t *testing.T) {
	l := NewList([]string{"keep"})

	require.PanicsWithValue(t, ErrReadOnly, func() {
		l.Set(0, "overwrite")
	})
	require.Equal(t, "keep", l.At(0))
}
