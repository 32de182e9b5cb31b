package evsel

import "fmt"

// OnlineFlags are per-collision DAQ and detector status bits that map
// one-to-one onto selection slots.
type OnlineFlags struct {
	GoodTimeRange  bool `json:"good_time_range"`
	IncompleteDAQ  bool `json:"incomplete_daq"`
	TPCLaserWarmUp bool `json:"tpc_laser_warmup"`
	TPCHVdip       bool `json:"tpc_hv_dip"`
	PileupFromSPD  bool `json:"pileup_from_spd"`
	V0PFPileup     bool `json:"v0_pf_pileup"`
}

// SelectionResult is the evaluated flag set of one collision. Slot index is
// the flag identity.
type SelectionResult struct {
	Flags [NumSelectionFlags]bool
}

// Evaluate computes every selection flag of a collision. Each slot is filled
// independently, no flag depends on another one. Missing channel inputs leave
// their slots false.
func (p *SelectionParams) Evaluate(times ChannelTimes, mult MultiplicityCorrelations, online OnlineFlags) SelectionResult {
	var result SelectionResult

	p.applyTimingFlags(times, &result.Flags)
	p.applyCorrelationFlags(mult, &result.Flags)

	result.Flags[IsGoodTimeRange] = online.GoodTimeRange
	result.Flags[NoIncompleteDAQ] = !online.IncompleteDAQ
	result.Flags[NoTPCLaserWarmUp] = !online.TPCLaserWarmUp
	result.Flags[NoTPCHVdip] = !online.TPCHVdip
	result.Flags[NoPileupFromSPD] = !online.PileupFromSPD
	result.Flags[NoV0PFPileup] = !online.V0PFPileup

	if configuration.Verbosity > 2 && logger != nil {
		for i := SelectionFlag(0); i < NumSelectionFlags; i++ {
			message := fmt.Sprintf("Flag %s: %t", SelectionLabels[i], result.Flags[i])
			logger.Info(message, "selection")
		}
	}

	return result
}

// Passes reports whether every flag required by the chosen template is set.
func (r SelectionResult) Passes(p *SelectionParams, variant SelectionVariant) bool {
	template := p.GetSelection(variant)
	for i := SelectionFlag(0); i < NumSelectionFlags; i++ {
		if template[i] && !r.Flags[i] {
			return false
		}
	}
	return true
}

// Sel7 is the legacy-run decision: all barrel-template flags required.
func (r SelectionResult) Sel7(p *SelectionParams) bool {
	return r.Passes(p, VariantBarrel)
}

// Sel8 is the current-run decision: the barrel template minus the
// out-of-bunch pileup slots, which have no equivalent inputs anymore.
func (r SelectionResult) Sel8(p *SelectionParams) bool {
	template := p.GetSelection(VariantBarrel)
	for i := SelectionFlag(0); i < NumSelectionFlags; i++ {
		if !template[i] {
			continue
		}
		if isOutOfBunchPileupFlag(i) {
			continue
		}
		if !r.Flags[i] {
			return false
		}
	}
	return true
}

func isOutOfBunchPileupFlag(flag SelectionFlag) bool {
	for _, f := range outOfBunchPileupFlags {
		if f == flag {
			return true
		}
	}
	return false
}
