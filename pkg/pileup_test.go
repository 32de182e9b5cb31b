package evsel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrelationFlags(t *testing.T) {
	t.Parallel()

	p := NewSelectionParams(SystemPP)

	apply := func(mult MultiplicityCorrelations) [NumSelectionFlags]bool {
		var flags [NumSelectionFlags]bool
		p.applyCorrelationFlags(mult, &flags)
		return flags
	}

	t.Run("good multiplicities pass every cut", func(t *testing.T) {
		t.Parallel()
		flags := apply(goodMult())
		assert.True(t, flags[NoV0MOnVsOfPileup])
		assert.True(t, flags[NoSPDOnVsOfPileup])
		assert.True(t, flags[NoV0Casymmetry])
		assert.True(t, flags[NoSPDClsVsTklBG])
		assert.True(t, flags[NoV0C012vsTklBG])
	})

	t.Run("online deficit flags V0M pileup", func(t *testing.T) {
		t.Parallel()
		mult := goodMult()
		// predicted = -59.56 + 5.22*100 = 462.44
		mult.MultOnlineV0M = 400
		flags := apply(mult)
		assert.False(t, flags[NoV0MOnVsOfPileup])
		assert.True(t, flags[NoSPDOnVsOfPileup], "other cuts unaffected")
	})

	t.Run("the pileup inequality is strict", func(t *testing.T) {
		t.Parallel()
		mult := goodMult()
		mult.MultOfflineV0M = 100
		mult.MultOnlineV0M = p.V0MOnVsOfA + p.V0MOnVsOfB*100 // exactly on the line
		flags := apply(mult)
		assert.True(t, flags[NoV0MOnVsOfPileup])
	})

	t.Run("cluster excess flags SPD beam-gas", func(t *testing.T) {
		t.Parallel()
		mult := goodMult()
		// predicted = 65 + 4*10 = 105
		mult.MultClustersSPD = 200
		flags := apply(mult)
		assert.False(t, flags[NoSPDClsVsTklBG])
		assert.True(t, flags[NoV0C012vsTklBG])
	})

	t.Run("V0C012 excess over tracklets flags beam-gas", func(t *testing.T) {
		t.Parallel()
		mult := goodMult()
		// predicted = 150 + 20*10 = 350
		mult.MultV0C012 = 400
		flags := apply(mult)
		assert.False(t, flags[NoV0C012vsTklBG])
	})

	t.Run("outer-ring deficit flags V0C asymmetry", func(t *testing.T) {
		t.Parallel()
		mult := goodMult()
		// predicted = -25 + 0.15*100 = -10
		mult.MultV0C3 = -20
		flags := apply(mult)
		assert.False(t, flags[NoV0Casymmetry])
	})

	t.Run("missing input fails closed for its cut only", func(t *testing.T) {
		t.Parallel()
		mult := goodMult()
		mult.MultOnlineSPD = MultNotAvailable
		flags := apply(mult)
		assert.False(t, flags[NoSPDOnVsOfPileup])
		assert.True(t, flags[NoV0MOnVsOfPileup])
		assert.True(t, flags[NoV0Casymmetry])
	})
}
