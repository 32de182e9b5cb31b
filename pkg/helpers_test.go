package evsel

// Shared fixtures for the selection and emission tests.

// goodTimes puts every channel inside its beam-beam window and outside its
// beam-gas window.
func goodTimes(p *SelectionParams) ChannelTimes {
	return ChannelTimes{
		TimeV0A: p.V0ADist,
		TimeV0C: p.V0CDist,
		TimeFDA: p.FDADist,
		TimeFDC: p.FDCDist,
		TimeZNA: 0,
		TimeZNC: 0,
		TimeT0A: 0,
		TimeT0C: 0,
	}
}

// goodMult satisfies every correlation cut with the default coefficients.
func goodMult() MultiplicityCorrelations {
	return MultiplicityCorrelations{
		MultOnlineV0M:   1000,
		MultOfflineV0M:  100,
		MultOnlineSPD:   100,
		MultOfflineSPD:  100,
		MultClustersSPD: 50,
		MultTracklets:   10,
		MultV0C012:      100,
		MultV0C3:        50,
	}
}

func goodOnline() OnlineFlags {
	return OnlineFlags{GoodTimeRange: true}
}

func goodTrack() TrackData {
	return TrackData{
		Pt:            1.0,
		Eta:           0.2,
		Phi:           1.5,
		Sign:          1,
		IsGlobalTrack: true,
		MCParticle:    -1,
		C1Pt21Pt2:     0.01,
		HasITS:        true,
		HasTPC:        true,
	}
}

func goodCollision(p *SelectionParams) CollisionData {
	return CollisionData{
		RunNumber:  123456,
		PosZ:       0,
		NumContrib: 3,
		Times:      goodTimes(p),
		Mult:       goodMult(),
		Online:     goodOnline(),
	}
}

// memoryWriter collects emitted rows for assertions.
type memoryWriter struct {
	collisions    []CollisionHDF5
	tracks        []TrackHDF5
	recoParticles []RecoParticleHDF5
	nonReco       []NonRecoParticleHDF5
}

func (w *memoryWriter) WriteCollision(row CollisionHDF5) int {
	w.collisions = append(w.collisions, row)
	return len(w.collisions) - 1
}

func (w *memoryWriter) WriteTrack(row TrackHDF5) {
	w.tracks = append(w.tracks, row)
}

func (w *memoryWriter) WriteRecoParticle(row RecoParticleHDF5) {
	w.recoParticles = append(w.recoParticles, row)
}

func (w *memoryWriter) WriteNonRecoParticle(row NonRecoParticleHDF5) {
	w.nonReco = append(w.nonReco, row)
}

func skimConfig() Configuration {
	return Configuration{
		SelectGoodEvents:   true,
		SelectGlobalTracks: true,
		MaxVtxZ:            100,
		TargetEvents:       10000000,
		SamplingFraction:   1.0,
		ProcessTableData:   true,
		WriteData:          true,
	}
}
