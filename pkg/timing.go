package evsel

// TimeNotAvailable marks a channel with no reading. Any cut fed a missing
// time evaluates to false, it never errors out.
const TimeNotAvailable float32 = -999.0

// ChannelTimes carries one cell-averaged time per detector channel, in ns.
type ChannelTimes struct {
	TimeV0A float32 `json:"time_v0a"`
	TimeV0C float32 `json:"time_v0c"`
	TimeFDA float32 `json:"time_fda"`
	TimeFDC float32 `json:"time_fdc"`
	TimeZNA float32 `json:"time_zna"`
	TimeZNC float32 `json:"time_znc"`
	TimeT0A float32 `json:"time_t0a"`
	TimeT0C float32 `json:"time_t0c"`
}

func hasTime(t float32) bool {
	return t != TimeNotAvailable
}

func isBB(t float32, window TimeWindow) bool {
	return hasTime(t) && window.Contains(t)
}

func noBG(t float32, window TimeWindow) bool {
	return hasTime(t) && !window.Contains(t)
}

// znCombinedCut is the historical "circular" cut in the ZNA-ZNC plane. It is
// in fact two independent rectangular bounds on the time difference and sum,
// kept as-is to stay comparable with the legacy selections.
func (p *SelectionParams) znCombinedCut(times ChannelTimes) bool {
	if !hasTime(times.TimeZNA) || !hasTime(times.TimeZNC) {
		return false
	}
	dif := times.TimeZNA - times.TimeZNC
	sum := times.TimeZNA + times.TimeZNC
	if dif < p.ZNDifMean-p.ZNDifSigma || dif > p.ZNDifMean+p.ZNDifSigma {
		return false
	}
	if sum < p.ZNSumMean-p.ZNSumSigma || sum > p.ZNSumMean+p.ZNSumSigma {
		return false
	}
	return true
}

// applyTimingFlags fills the timing-window slots of the result.
func (p *SelectionParams) applyTimingFlags(times ChannelTimes, flags *[NumSelectionFlags]bool) {
	flags[IsBBV0A] = isBB(times.TimeV0A, p.V0ABB)
	flags[IsBBV0C] = isBB(times.TimeV0C, p.V0CBB)
	flags[IsBBFDA] = isBB(times.TimeFDA, p.FDABB)
	flags[IsBBFDC] = isBB(times.TimeFDC, p.FDCBB)
	flags[NoBGV0A] = noBG(times.TimeV0A, p.V0ABG)
	flags[NoBGV0C] = noBG(times.TimeV0C, p.V0CBG)
	flags[NoBGFDA] = noBG(times.TimeFDA, p.FDABG)
	flags[NoBGFDC] = noBG(times.TimeFDC, p.FDCBG)
	flags[IsBBT0A] = isBB(times.TimeT0A, p.T0ABB)
	flags[IsBBT0C] = isBB(times.TimeT0C, p.T0CBB)
	flags[IsBBZNA] = isBB(times.TimeZNA, p.ZNABB)
	flags[IsBBZNC] = isBB(times.TimeZNC, p.ZNCBB)
	flags[IsBBZAC] = p.znCombinedCut(times)
	flags[NoBGZNA] = noBG(times.TimeZNA, p.ZNABG)
	flags[NoBGZNC] = noBG(times.TimeZNC, p.ZNCBG)
}
