package taskwheel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotVisit(t *testing.T) {
	tests := []struct {
		name        string
		cylinders   []uint64
		wantFired   int
		wantWaiting int
	}{
		{name: "all_due", cylinders: []uint64{0, 0, 0}, wantFired: 3, wantWaiting: 0},
		{name: "none_due", cylinders: []uint64{2, 3}, wantFired: 0, wantWaiting: 2},
		{name: "mixed", cylinders: []uint64{0, 1, 0, 5}, wantFired: 2, wantWaiting: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &slot{}
			for i, c := range tt.cylinders {
				n := &taskNode{task: &Task{ID: TaskID(i + 1)}, cylinder: c}
				s.pushBack(n)
			}

			fired := s.visit()
			assert.Len(t, fired, tt.wantFired, "fire set size")

			waiting := 0
			for n := s.head; n != nil; n = n.next {
				waiting++
			}
			assert.Equal(t, tt.wantWaiting, waiting, "remaining slot size")
		})
	}
}

func TestSlotVisitDecrementsWaitingCylinders(t *testing.T) {
	s := &slot{}
	n := &taskNode{task: &Task{ID: 1}, cylinder: 3}
	s.pushBack(n)

	s.visit()
	assert.Equal(t, uint64(2), n.cylinder)

	s.visit()
	assert.Equal(t, uint64(1), n.cylinder)
}

func TestWheelRemoveFromUnlinksMiddleNode(t *testing.T) {
	w := newWheel(8)
	a := &taskNode{task: &Task{ID: 1}}
	b := &taskNode{task: &Task{ID: 2}}
	c := &taskNode{task: &Task{ID: 3}}

	w.place(2, a)
	w.place(2, b)
	w.place(2, c)

	w.removeFrom(b)

	fired := w.at(2).visit()
	require.Len(t, fired, 2)
	ids := []TaskID{fired[0].task.ID, fired[1].task.ID}
	assert.ElementsMatch(t, []TaskID{1, 3}, ids)
}

func TestTaskMarksRoundTrip(t *testing.T) {
	tm := newTaskMarks()
	n := &taskNode{task: &Task{ID: 42}}

	_, ok := tm.get(42)
	assert.False(t, ok, "unset mark should report not found")

	tm.set(42, n)
	got, ok := tm.get(42)
	require.True(t, ok)
	assert.Same(t, n, got)

	tm.delete(42)
	_, ok = tm.get(42)
	assert.False(t, ok, "deleted mark should report not found")
}

func TestWheelAtWrapsModuloSize(t *testing.T) {
	w := newWheel(4)
	assert.Same(t, w.slots[0], w.at(0))
	assert.Same(t, w.slots[1], w.at(5))
	assert.Same(t, w.slots[3], w.at(3))
}
