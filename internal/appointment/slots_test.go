package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotGrid(t *testing.T) {
	require.Len(t, Slots, 26)

	assert.Equal(t, "10:00-10:30", Slots[0].String())
	assert.Equal(t, "22:30-23:00", Slots[len(Slots)-1].String())

	// Contiguous half-hour grid: each slot starts where the previous ended.
	for i := 1; i < len(Slots); i++ {
		assert.Equal(t, Slots[i-1].End, Slots[i].Start, "gap before slot %d", i)
	}
}

func TestSlotFromString(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"10:00-10:30", true},
		{"22:30-23:00", true},
		{"09:30-10:00", false}, // before clinic opening
		{"23:00-23:30", false}, // after last slot
		{"10:00-11:00", false}, // full hour, not on the grid
		{"10:00 - 10:30", false},
		{"", false},
	}

	for _, tt := range tests {
		slot, ok := SlotFromString(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if ok {
			assert.Equal(t, tt.in, slot.String())
		}
	}
}

func TestConflictCandidates(t *testing.T) {
	date := time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC)

	t.Run("middle slot covers itself and its successor", func(t *testing.T) {
		slot, ok := SlotFromString("11:00-11:30")
		require.True(t, ok)

		got := conflictCandidates(date, slot)
		require.Len(t, got, 2)
		// The requested start lands in the slot's own window; the requested
		// end lands exactly on the next slot's start boundary.
		assert.Equal(t, "11:00-11:30", got[0].String())
		assert.Equal(t, "11:30-12:00", got[1].String())
	})

	t.Run("last slot covers only itself", func(t *testing.T) {
		slot, ok := SlotFromString("22:30-23:00")
		require.True(t, ok)

		got := conflictCandidates(date, slot)
		require.Len(t, got, 1)
		assert.Equal(t, "22:30-23:00", got[0].String())
	})

	t.Run("first slot covers itself and its successor", func(t *testing.T) {
		slot, ok := SlotFromString("10:00-10:30")
		require.True(t, ok)

		got := conflictCandidates(date, slot)
		require.Len(t, got, 2)
		assert.Equal(t, "10:00-10:30", got[0].String())
		assert.Equal(t, "10:30-11:00", got[1].String())
	})
}

func TestWithin(t *testing.T) {
	date := time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC)
	start := instantOn(date, "10:00")
	end := instantOn(date, "10:30")

	assert.True(t, within(start, start, end), "closed at the start")
	assert.False(t, within(end, start, end), "open at the end")
	assert.True(t, within(instantOn(date, "10:15"), start, end))
	assert.False(t, within(instantOn(date, "09:59"), start, end))
}
