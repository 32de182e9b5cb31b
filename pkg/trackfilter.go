package evsel

// TrackSelection is the configurable per-track acceptance filter. A zero
// Charge, PDG, PtMax or EtaMax disables the corresponding check.
type TrackSelection struct {
	Charge     int
	SelectPrim bool
	SelectSec  bool
	SelectPDG  int
	GlobalOnly bool
	PtMin      float32
	PtMax      float32
	EtaMax     float32
}

func TrackSelectionFromConfig(config Configuration) TrackSelection {
	return TrackSelection{
		Charge:     config.SelectCharge,
		SelectPrim: config.SelectPrim,
		SelectSec:  config.SelectSec,
		SelectPDG:  config.SelectPDG,
		GlobalOnly: config.SelectGlobalTracks,
		PtMin:      config.PtMin,
		PtMax:      config.PtMax,
		EtaMax:     config.EtaMax,
	}
}

// Accept applies all configured predicates as a logical AND. mc says whether
// truth information is available for this dataset: truth-based predicates
// reject outright when a track has no particle link. SelectPrim together
// with SelectSec rejects everything; evaluated literally, not validated.
func (s TrackSelection) Accept(track TrackData, particle *ParticleData, mc bool) bool {
	if s.GlobalOnly && !track.IsGlobalTrack {
		return false
	}
	if s.PtMin > 0 && !(track.Pt > s.PtMin) {
		return false
	}
	if s.PtMax > 0 && !(track.Pt < s.PtMax) {
		return false
	}
	if s.EtaMax > 0 && !(abs32(track.Eta) < s.EtaMax) {
		return false
	}
	if s.Charge != 0 && s.Charge != int(track.Sign) {
		return false
	}
	if mc {
		if particle == nil {
			if s.SelectPrim || s.SelectSec || s.SelectPDG != 0 {
				return false
			}
			return true
		}
		isPrimary := particle.IsPhysicalPrimary
		if s.SelectPrim && !isPrimary {
			return false
		}
		if s.SelectSec && isPrimary {
			return false
		}
		if s.SelectPDG != 0 && s.SelectPDG != absInt(int(particle.PdgCode)) {
			return false
		}
	}
	return true
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
