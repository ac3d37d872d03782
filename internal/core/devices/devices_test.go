package devices

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIncrementToCapacityFiresEnterOnce(t *testing.T) {
	counter := New(4, 0)
	enter, leave := 0, 0
	counter.AssociateMaxCallbacks(func() { enter++ }, func() { leave++ })

	for i := 0; i < 3; i++ {
		counter.Increment()
		assert.Equal(t, 0, enter)
	}
	counter.Increment()
	assert.Equal(t, 1, enter)
	assert.True(t, counter.Full())

	counter.Increment()
	assert.Equal(t, 1, enter)
	assert.Equal(t, 4, counter.Count())
	assert.Equal(t, 0, leave)
}

func TestDecrementFromFullFiresLeaveBeforeChange(t *testing.T) {
	counter := New(4, 4)
	countAtLeave := -1
	leave := 0
	counter.AssociateMaxCallbacks(func() {}, func() {
		leave++
		countAtLeave = counter.Count()
	})

	counter.Decrement()
	assert.Equal(t, 1, leave)
	assert.Equal(t, 4, countAtLeave)
	assert.Equal(t, 3, counter.Count())

	counter.Decrement()
	assert.Equal(t, 1, leave)
}

func TestDecrementAtZeroIsNoop(t *testing.T) {
	counter := New(4, 0)
	rendered := 0
	counter.SetRenderer(func([]bool) { rendered++ })
	rendered = 0

	counter.Decrement()
	assert.Equal(t, 0, counter.Count())
	assert.Equal(t, 0, rendered)
}

func TestSlotsMatchCount(t *testing.T) {
	counter := New(4, 0)
	var last []bool
	counter.SetRenderer(func(slots []bool) { last = slots })
	assert.Equal(t, []bool{false, false, false, false}, last)

	counter.Increment()
	counter.Increment()
	assert.Equal(t, []bool{true, true, false, false}, last)

	counter.Decrement()
	assert.Equal(t, []bool{true, false, false, false}, last)
	assert.Equal(t, last, counter.Slots())
}

func TestNewClampsInitial(t *testing.T) {
	counter := New(2, 5)
	assert.Equal(t, 2, counter.Count())
	assert.Equal(t, []bool{true, true}, counter.Slots())
}
