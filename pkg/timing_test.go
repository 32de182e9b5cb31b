package evsel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimingWindowFlags(t *testing.T) {
	t.Parallel()

	p := NewSelectionParams(SystemPP)

	t.Run("time inside beam-beam window sets only its flag", func(t *testing.T) {
		t.Parallel()
		times := goodTimes(p)
		var flags [NumSelectionFlags]bool
		p.applyTimingFlags(times, &flags)
		assert.True(t, flags[IsBBV0A])

		// move V0A out of its window, everything else must stay put
		times.TimeV0A = p.V0ABB.Upper + 1
		var flipped [NumSelectionFlags]bool
		p.applyTimingFlags(times, &flipped)
		assert.False(t, flipped[IsBBV0A])
		for i := SelectionFlag(0); i < NumSelectionFlags; i++ {
			if i == IsBBV0A {
				continue
			}
			assert.Equal(t, flags[i], flipped[i], "slot %s", SelectionLabels[i])
		}
	})

	t.Run("window bounds are inclusive", func(t *testing.T) {
		t.Parallel()
		assert.True(t, p.V0ABB.Contains(p.V0ABB.Lower))
		assert.True(t, p.V0ABB.Contains(p.V0ABB.Upper))
		assert.False(t, p.V0ABB.Contains(p.V0ABB.Upper+0.001))
	})

	t.Run("beam-gas flag is the negation of the window", func(t *testing.T) {
		t.Parallel()
		times := goodTimes(p)
		times.TimeV0A = -p.V0ADist // right in the beam-gas window
		var flags [NumSelectionFlags]bool
		p.applyTimingFlags(times, &flags)
		assert.False(t, flags[NoBGV0A])
		assert.False(t, flags[IsBBV0A])
	})

	t.Run("missing time fails closed on both flags", func(t *testing.T) {
		t.Parallel()
		times := goodTimes(p)
		times.TimeV0A = TimeNotAvailable
		var flags [NumSelectionFlags]bool
		p.applyTimingFlags(times, &flags)
		assert.False(t, flags[IsBBV0A])
		assert.False(t, flags[NoBGV0A])
		// the other channels are unaffected
		assert.True(t, flags[IsBBV0C])
		assert.True(t, flags[NoBGV0C])
	})
}

func TestZNCombinedCut(t *testing.T) {
	t.Parallel()

	p := NewSelectionParams(SystemPP)

	t.Run("both dif and sum inside pass", func(t *testing.T) {
		t.Parallel()
		times := ChannelTimes{TimeZNA: 0.5, TimeZNC: -0.5}
		assert.True(t, p.znCombinedCut(times)) // dif 1.0, sum 0.0
	})

	t.Run("dif outside fails even with sum inside", func(t *testing.T) {
		t.Parallel()
		times := ChannelTimes{TimeZNA: 1.5, TimeZNC: -1.5}
		assert.False(t, p.znCombinedCut(times)) // dif 3.0 > 2 sigma
	})

	t.Run("sum outside fails even with dif inside", func(t *testing.T) {
		t.Parallel()
		times := ChannelTimes{TimeZNA: 1.5, TimeZNC: 1.5}
		assert.False(t, p.znCombinedCut(times)) // sum 3.0 > 2 sigma
	})

	t.Run("rectangular corner passes despite the circular name", func(t *testing.T) {
		t.Parallel()
		// dif 1.9, sum 1.9: outside a circle of radius 2, inside both bounds
		times := ChannelTimes{TimeZNA: 1.9, TimeZNC: 0.0}
		assert.True(t, p.znCombinedCut(times))
	})

	t.Run("one missing ZN time fails closed", func(t *testing.T) {
		t.Parallel()
		times := ChannelTimes{TimeZNA: 0, TimeZNC: TimeNotAvailable}
		assert.False(t, p.znCombinedCut(times))
	})
}
