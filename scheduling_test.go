package taskwheel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceTaskOnTimePlacement(t *testing.T) {
	h := newHeader(10)
	h.globalTime.Store(1000)
	h.secondHand.Store(3)

	node := &taskNode{task: &Task{ID: 7}}
	execTime := time.Unix(1005, 0) // 5s in the future

	placeTask(h, node, execTime)

	// timeSeed = delta(5) + secondHand(3) = 8; slot = 8 % 10; cylinder = 0
	assert.Equal(t, 8, node.slotIdx)
	assert.Equal(t, uint64(0), node.cylinder)

	marked, ok := h.marks.get(7)
	require.True(t, ok)
	assert.Same(t, node, marked)
}

func TestPlaceTaskWrapsIntoNextCylinder(t *testing.T) {
	h := newHeader(10)
	h.globalTime.Store(1000)
	h.secondHand.Store(0)

	node := &taskNode{task: &Task{ID: 1}}
	execTime := time.Unix(1023, 0) // 23s out, wheel size 10

	placeTask(h, node, execTime)

	assert.Equal(t, 3, node.slotIdx)
	assert.Equal(t, uint64(2), node.cylinder)
}

func TestPlaceTaskFalsificationGuardSpreadsOverdueTasksByID(t *testing.T) {
	h := newHeader(100)
	h.globalTime.Store(2000)
	h.secondHand.Store(0)

	// execTime already in the past: both tasks fell behind the tick.
	past := time.Unix(1000, 0)

	n1 := &taskNode{task: &Task{ID: 5}}
	n2 := &taskNode{task: &Task{ID: 37}}

	placeTask(h, n1, past)
	placeTask(h, n2, past)

	// Falsification guard uses task_id mod W, not a shared "next tick"
	// slot, so distinct ids land in distinct slots instead of piling up.
	assert.Equal(t, 5, n1.slotIdx)
	assert.Equal(t, 37, n2.slotIdx)
	assert.NotEqual(t, n1.slotIdx, n2.slotIdx)
}
