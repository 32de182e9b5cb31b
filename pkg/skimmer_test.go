package evsel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSkimmer(config Configuration) (*Skimmer, *memoryWriter) {
	params := NewSelectionParams(SystemPP)
	writer := &memoryWriter{}
	skimmer := NewSkimmer(params, writer, nil, config)
	return skimmer, writer
}

func TestSkimmerScenarios(t *testing.T) {
	t.Parallel()

	t.Run("good collision with matched primary track", func(t *testing.T) {
		t.Parallel()
		config := skimConfig()
		config.ProcessTableData = false
		config.ProcessTableMC = true
		skimmer, writer := newTestSkimmer(config)

		collision := goodCollision(skimmer.Params)
		collision.HasMCCollision = true
		track := goodTrack()
		track.MCParticle = 0
		collision.Tracks = []TrackData{track}
		collision.Particles = []ParticleData{
			{Pt: 1.0, Eta: 0.2, Phi: 1.5, PdgCode: 211, IsPhysicalPrimary: true},
		}

		skimmer.ProcessCollision(&collision)

		require.Len(t, writer.collisions, 1)
		assert.Equal(t, float32(0), writer.collisions[0].pos_z)
		assert.Equal(t, uint8(1), writer.collisions[0].sel)
		assert.Equal(t, int32(123456), writer.collisions[0].run_number)

		require.Len(t, writer.tracks, 1)
		assert.Equal(t, int32(0), writer.tracks[0].collision_id)
		assert.Equal(t, float32(1.0), writer.tracks[0].pt)

		require.Len(t, writer.recoParticles, 1)
		assert.Equal(t, int32(211), writer.recoParticles[0].pdg_code)
		assert.Equal(t, ProductionPrimary, writer.recoParticles[0].production)

		assert.Empty(t, writer.nonReco)
	})

	t.Run("vertex outside the z window emits nothing", func(t *testing.T) {
		t.Parallel()
		skimmer, writer := newTestSkimmer(skimConfig())

		collision := goodCollision(skimmer.Params)
		collision.PosZ = 150
		collision.Tracks = []TrackData{goodTrack()}

		skimmer.ProcessCollision(&collision)

		assert.Empty(t, writer.collisions)
		assert.Empty(t, writer.tracks)
		assert.Empty(t, writer.recoParticles)
		assert.Empty(t, writer.nonReco)
		assert.Equal(t, 0, skimmer.EmittedEvents())
	})

	t.Run("track failing charge filter keeps the collision row", func(t *testing.T) {
		t.Parallel()
		config := skimConfig()
		config.SelectCharge = -1
		skimmer, writer := newTestSkimmer(config)

		collision := goodCollision(skimmer.Params)
		collision.Tracks = []TrackData{goodTrack()} // sign +1

		skimmer.ProcessCollision(&collision)

		require.Len(t, writer.collisions, 1)
		assert.Empty(t, writer.tracks)
		assert.Empty(t, writer.recoParticles)
	})
}

func TestSkimmerGates(t *testing.T) {
	t.Parallel()

	t.Run("rejected collision emits nothing", func(t *testing.T) {
		t.Parallel()
		skimmer, writer := newTestSkimmer(skimConfig())
		collision := goodCollision(skimmer.Params)
		collision.Times.TimeV0A = TimeNotAvailable
		collision.Tracks = []TrackData{goodTrack()}

		skimmer.ProcessCollision(&collision)
		assert.Empty(t, writer.collisions)
	})

	t.Run("good-event selection off keeps rejected collisions", func(t *testing.T) {
		t.Parallel()
		config := skimConfig()
		config.SelectGoodEvents = false
		skimmer, writer := newTestSkimmer(config)
		collision := goodCollision(skimmer.Params)
		collision.Times.TimeV0A = TimeNotAvailable

		skimmer.ProcessCollision(&collision)
		require.Len(t, writer.collisions, 1)
		assert.Equal(t, uint8(0), writer.collisions[0].sel)
	})

	t.Run("target zero emits zero collisions", func(t *testing.T) {
		t.Parallel()
		config := skimConfig()
		config.TargetEvents = 0
		skimmer, writer := newTestSkimmer(config)

		for i := 0; i < 10; i++ {
			collision := goodCollision(skimmer.Params)
			skimmer.ProcessCollision(&collision)
		}
		assert.Empty(t, writer.collisions)
		assert.Equal(t, 0, skimmer.EmittedEvents())
	})

	t.Run("target caps the emitted count", func(t *testing.T) {
		t.Parallel()
		config := skimConfig()
		config.TargetEvents = 3
		skimmer, writer := newTestSkimmer(config)

		for i := 0; i < 10; i++ {
			collision := goodCollision(skimmer.Params)
			skimmer.ProcessCollision(&collision)
		}
		assert.Len(t, writer.collisions, 3)
	})

	t.Run("full sampling fraction never draws", func(t *testing.T) {
		t.Parallel()
		skimmer, writer := newTestSkimmer(skimConfig())
		skimmer.SetDraw(func() float32 {
			t.Fatal("draw must not be called with samplingFraction = 1.0")
			return 0
		})
		collision := goodCollision(skimmer.Params)
		skimmer.ProcessCollision(&collision)
		assert.Len(t, writer.collisions, 1)
	})

	t.Run("sampling draw above the fraction skips the collision", func(t *testing.T) {
		t.Parallel()
		config := skimConfig()
		config.SamplingFraction = 0.5
		skimmer, writer := newTestSkimmer(config)

		draws := []float32{0.9, 0.1}
		skimmer.SetDraw(func() float32 {
			draw := draws[0]
			draws = draws[1:]
			return draw
		})

		first := goodCollision(skimmer.Params)
		skimmer.ProcessCollision(&first)
		second := goodCollision(skimmer.Params)
		skimmer.ProcessCollision(&second)

		assert.Len(t, writer.collisions, 1)
	})

	t.Run("legacy run uses the full flag set", func(t *testing.T) {
		t.Parallel()
		config := skimConfig()
		config.LegacyRun = true
		skimmer, writer := newTestSkimmer(config)

		collision := goodCollision(skimmer.Params)
		collision.Mult.MultOnlineV0M = MultNotAvailable // sel7 fails, sel8 would pass
		skimmer.ProcessCollision(&collision)
		assert.Empty(t, writer.collisions)
	})
}

func TestSkimmerParticleRows(t *testing.T) {
	t.Parallel()

	mcConfig := func() Configuration {
		config := skimConfig()
		config.ProcessTableData = false
		config.ProcessTableMC = true
		return config
	}

	t.Run("production categories", func(t *testing.T) {
		t.Parallel()
		skimmer, writer := newTestSkimmer(mcConfig())

		collision := goodCollision(skimmer.Params)
		collision.HasMCCollision = true
		tracks := make([]TrackData, 3)
		for i := range tracks {
			tracks[i] = goodTrack()
			tracks[i].MCParticle = int32(i)
		}
		collision.Tracks = tracks
		collision.Particles = []ParticleData{
			{PdgCode: 211, IsPhysicalPrimary: true},
			{PdgCode: 211, Process: 4},
			{PdgCode: 2212, Process: 13},
		}

		skimmer.ProcessCollision(&collision)

		require.Len(t, writer.recoParticles, 3)
		assert.Equal(t, ProductionPrimary, writer.recoParticles[0].production)
		assert.Equal(t, ProductionSecondaryDecay, writer.recoParticles[1].production)
		assert.Equal(t, ProductionSecondaryOther, writer.recoParticles[2].production)
	})

	t.Run("unlinked track gets a sentinel particle row", func(t *testing.T) {
		t.Parallel()
		skimmer, writer := newTestSkimmer(mcConfig())

		collision := goodCollision(skimmer.Params)
		collision.HasMCCollision = true
		track := goodTrack()
		track.Pt = 2.5
		track.MCParticle = -1
		collision.Tracks = []TrackData{track}

		skimmer.ProcessCollision(&collision)

		require.Len(t, writer.recoParticles, 1)
		assert.Equal(t, float32(2.5), writer.recoParticles[0].pt)
		assert.Equal(t, int32(0), writer.recoParticles[0].pdg_code)
		assert.Equal(t, ProductionUnmatched, writer.recoParticles[0].production)
	})

	t.Run("unmatched particles produce non-reco rows", func(t *testing.T) {
		t.Parallel()
		skimmer, writer := newTestSkimmer(mcConfig())

		collision := goodCollision(skimmer.Params)
		collision.HasMCCollision = true
		track := goodTrack()
		track.MCParticle = 0
		collision.Tracks = []TrackData{track}
		collision.Particles = []ParticleData{
			{PdgCode: 211, IsPhysicalPrimary: true},
			{PdgCode: 2212, IsPhysicalPrimary: true, Vx: 0.1, Vy: 0.2, Vz: 0.3},
		}

		skimmer.ProcessCollision(&collision)

		require.Len(t, writer.nonReco, 1)
		assert.Equal(t, int32(2212), writer.nonReco[0].pdg_code)
		assert.Equal(t, int32(0), writer.nonReco[0].collision_id)
		assert.Equal(t, float32(0.3), writer.nonReco[0].vz)
	})

	t.Run("no truth collision link skips non-reco rows", func(t *testing.T) {
		t.Parallel()
		skimmer, writer := newTestSkimmer(mcConfig())

		collision := goodCollision(skimmer.Params)
		collision.HasMCCollision = false
		track := goodTrack()
		track.MCParticle = 0
		collision.Tracks = []TrackData{track}
		collision.Particles = []ParticleData{
			{PdgCode: 211, IsPhysicalPrimary: true},
			{PdgCode: 2212, IsPhysicalPrimary: true},
		}

		skimmer.ProcessCollision(&collision)

		require.Len(t, writer.tracks, 1)
		assert.Empty(t, writer.nonReco)
	})
}

func TestSkimmerDerivedFields(t *testing.T) {
	t.Parallel()

	skimmer, writer := newTestSkimmer(skimConfig())

	collision := goodCollision(skimmer.Params)
	track := goodTrack()
	track.C1Pt21Pt2 = 0.04
	track.TOFSignal = 12500
	track.TOFEvTime = 12000
	collision.Tracks = []TrackData{track}

	skimmer.ProcessCollision(&collision)

	require.Len(t, writer.tracks, 1)
	expectedReso := track.Pt * float32(math.Sqrt(0.04))
	assert.InDelta(t, expectedReso, writer.tracks[0].pt_reso, 1e-6)
	assert.InDelta(t, 500, writer.tracks[0].tof_minus_evtime, 1e-3)
}

func TestSkimmerCollisionIDStamping(t *testing.T) {
	t.Parallel()

	skimmer, writer := newTestSkimmer(skimConfig())

	for i := 0; i < 3; i++ {
		collision := goodCollision(skimmer.Params)
		collision.Tracks = []TrackData{goodTrack()}
		skimmer.ProcessCollision(&collision)
	}

	require.Len(t, writer.collisions, 3)
	require.Len(t, writer.tracks, 3)
	for i, track := range writer.tracks {
		assert.Equal(t, int32(i), track.collision_id)
	}
}
