package evsel

// MultNotAvailable marks a missing multiplicity measurement.
const MultNotAvailable float32 = -999.0

// MultiplicityCorrelations carries the inputs of the affine correlation cuts.
type MultiplicityCorrelations struct {
	MultOnlineV0M   float32 `json:"mult_online_v0m"`
	MultOfflineV0M  float32 `json:"mult_offline_v0m"`
	MultOnlineSPD   float32 `json:"mult_online_spd"`
	MultOfflineSPD  float32 `json:"mult_offline_spd"`
	MultClustersSPD float32 `json:"mult_clusters_spd"`
	MultTracklets   float32 `json:"mult_tracklets"`
	MultV0C012      float32 `json:"mult_v0c012"`
	MultV0C3        float32 `json:"mult_v0c3"`
}

func hasMult(m float32) bool {
	return m != MultNotAvailable
}

// noPileupOnVsOf: out-of-bunch pileup shows up as an online multiplicity
// deficit, pileup if online < A + B*offline (strict).
func noPileupOnVsOf(online, offline, a, b float32) bool {
	if !hasMult(online) || !hasMult(offline) {
		return false
	}
	return !(online < a+b*offline)
}

// noBGOverPredicted: beam-gas shows up as an excess over the affine
// prediction, background if value > A + B*reference (strict).
func noBGOverPredicted(value, reference, a, b float32) bool {
	if !hasMult(value) || !hasMult(reference) {
		return false
	}
	return !(value > a+b*reference)
}

// noV0CAsymmetry: beam-gas from the C side depletes the outer V0C ring,
// background if V0C3 < A + B*V0C012 (strict).
func noV0CAsymmetry(v0c3, v0c012, a, b float32) bool {
	if !hasMult(v0c3) || !hasMult(v0c012) {
		return false
	}
	return !(v0c3 < a+b*v0c012)
}

// applyCorrelationFlags fills the pileup/background correlation slots.
func (p *SelectionParams) applyCorrelationFlags(mult MultiplicityCorrelations, flags *[NumSelectionFlags]bool) {
	flags[NoV0MOnVsOfPileup] = noPileupOnVsOf(mult.MultOnlineV0M, mult.MultOfflineV0M, p.V0MOnVsOfA, p.V0MOnVsOfB)
	flags[NoSPDOnVsOfPileup] = noPileupOnVsOf(mult.MultOnlineSPD, mult.MultOfflineSPD, p.SPDOnVsOfA, p.SPDOnVsOfB)
	flags[NoV0Casymmetry] = noV0CAsymmetry(mult.MultV0C3, mult.MultV0C012, p.V0CasymA, p.V0CasymB)
	flags[NoSPDClsVsTklBG] = noBGOverPredicted(mult.MultClustersSPD, mult.MultTracklets, p.SPDClsVsTklA, p.SPDClsVsTklB)
	flags[NoV0C012vsTklBG] = noBGOverPredicted(mult.MultV0C012, mult.MultTracklets, p.V0C012vsTklA, p.V0C012vsTklB)
}
