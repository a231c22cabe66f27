package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comalice/fsmx/container"
)

func TestSet(t *testing.T) {
	s := container.NewSet[int]()

	assert.True(t, s.Insert(1))
	assert.False(t, s.Insert(1), "duplicate insert must fail")
	assert.True(t, s.Insert(2))

	assert.True(t, s.Contains(1))
	assert.False(t, s.Contains(3))
	assert.Equal(t, 2, s.Len())
	assert.ElementsMatch(t, []int{1, 2}, s.All())

	assert.True(t, s.Remove(1))
	assert.False(t, s.Remove(1))
	assert.Equal(t, 1, s.Len())

	s.Clear()
	assert.Zero(t, s.Len())
}

func TestDequeOrdering(t *testing.T) {
	d := container.NewDeque[string](4)

	d.PushBack("b")
	d.PushBack("c")
	d.PushFront("a")

	assert.Equal(t, 3, d.Len())

	for _, want := range []string{"a", "b", "c"} {
		got, ok := d.PopFront()
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := d.PopFront()
	assert.False(t, ok, "empty deque")
}

func TestDequeClear(t *testing.T) {
	d := container.NewDeque[int](0)
	d.PushBack(1)
	d.PushFront(2)

	d.Clear()
	assert.Zero(t, d.Len())

	d.PushBack(3)
	got, ok := d.PopFront()
	assert.True(t, ok)
	assert.Equal(t, 3, got)
}
