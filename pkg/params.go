package evsel

// Collision selection criteria. The order is significant: the slot index is
// the identity of the flag in the output tables and in the conditions DB.
type SelectionFlag int

const (
	IsBBV0A            SelectionFlag = iota // cell-averaged time in V0A in beam-beam window
	IsBBV0C                                 // cell-averaged time in V0C in beam-beam window (legacy runs only)
	IsBBFDA                                 // cell-averaged time in FDA (or AD in legacy runs) in beam-beam window
	IsBBFDC                                 // cell-averaged time in FDC (or AD in legacy runs) in beam-beam window
	NoBGV0A                                 // cell-averaged time in V0A outside the beam-gas window
	NoBGV0C                                 // cell-averaged time in V0C outside the beam-gas window (legacy runs only)
	NoBGFDA                                 // cell-averaged time in FDA outside the beam-gas window
	NoBGFDC                                 // cell-averaged time in FDC outside the beam-gas window
	IsBBT0A                                 // cell-averaged time in T0A in beam-beam window
	IsBBT0C                                 // cell-averaged time in T0C in beam-beam window
	IsBBZNA                                 // time in common ZNA channel in beam-beam window
	IsBBZNC                                 // time in common ZNC channel in beam-beam window
	IsBBZAC                                 // time in ZNA and ZNC in beam-beam window, "circular" cut in the ZNA-ZNC plane
	NoBGZNA                                 // time in common ZNA channel outside the beam-gas window
	NoBGZNC                                 // time in common ZNC channel outside the beam-gas window
	NoV0MOnVsOfPileup                       // no out-of-bunch pileup according to online-vs-offline V0M correlation
	NoSPDOnVsOfPileup                       // no out-of-bunch pileup according to online-vs-offline SPD correlation
	NoV0Casymmetry                          // no beam-gas according to correlation of V0C multiplicities in V0C3 and V0C012
	IsGoodTimeRange                         // good time range
	NoIncompleteDAQ                         // complete event according to DAQ flags
	NoTPCLaserWarmUp                        // no TPC laser warm-up event (legacy runs only)
	NoTPCHVdip                              // no TPC HV dip
	NoPileupFromSPD                         // no pileup according to SPD vertexer
	NoV0PFPileup                            // no out-of-bunch pileup according to V0 past-future info
	NoSPDClsVsTklBG                         // no beam-gas according to cluster-vs-tracklet correlation
	NoV0C012vsTklBG                         // no beam-gas according to V0C012-vs-tracklet correlation
	NumSelectionFlags                       // counter
)

var SelectionLabels = [NumSelectionFlags]string{
	"IsBBV0A",
	"IsBBV0C",
	"IsBBFDA",
	"IsBBFDC",
	"NoBGV0A",
	"NoBGV0C",
	"NoBGFDA",
	"NoBGFDC",
	"IsBBT0A",
	"IsBBT0C",
	"IsBBZNA",
	"IsBBZNC",
	"IsBBZAC",
	"NoBGZNA",
	"NoBGZNC",
	"NoV0MOnVsOfPileup",
	"NoSPDOnVsOfPileup",
	"NoV0Casymmetry",
	"IsGoodTimeRange",
	"NoIncompleteDAQ",
	"NoTPCLaserWarmUp",
	"NoTPCHVdip",
	"NoPileupFromSPD",
	"NoV0PFPileup",
	"NoSPDClsVsTklBG",
	"NoV0C012vsTklBG",
}

// The flags driven by the multiplicity correlations. These are the ones
// switched off together when out-of-bunch pileup cuts are not applicable.
var outOfBunchPileupFlags = []SelectionFlag{
	NoV0MOnVsOfPileup,
	NoSPDOnVsOfPileup,
	NoV0Casymmetry,
	NoV0PFPileup,
	NoSPDClsVsTklBG,
	NoV0C012vsTklBG,
}

type CollisionSystem int

const (
	SystemPP CollisionSystem = iota
	SystemPbPb
)

const speedOfLight float32 = 29.9792458 // cm/ns

// Detector flight distances from the interaction point, in cm.
const (
	v0ADistCm float32 = 329.00
	v0CDistCm float32 = 87.15
	fdaDistCm float32 = (1695.30 + 1698.04) / 2.
	fdcDistCm float32 = (1952.90 + 1955.90) / 2.
)

type TimeWindow struct {
	Lower float32
	Upper float32
}

// Contains is inclusive on both edges.
func (w TimeWindow) Contains(t float32) bool {
	return t >= w.Lower && t <= w.Upper
}

// SelectionParams holds the per-channel timing windows, the affine
// coefficients of the multiplicity-correlation cuts and the three selection
// templates. Built once per run configuration and treated as immutable
// afterwards, except for the explicit disable/override setters.
type SelectionParams struct {
	V0ADist float32 // ns
	V0CDist float32 // ns
	FDADist float32 // ns
	FDCDist float32 // ns

	V0ABB TimeWindow
	V0ABG TimeWindow
	V0CBB TimeWindow
	V0CBG TimeWindow
	FDABB TimeWindow
	FDABG TimeWindow
	FDCBB TimeWindow
	FDCBG TimeWindow
	ZNABB TimeWindow
	ZNABG TimeWindow
	ZNCBB TimeWindow
	ZNCBG TimeWindow
	T0ABB TimeWindow
	T0CBB TimeWindow

	ZNDifMean  float32
	ZNDifSigma float32
	ZNSumMean  float32
	ZNSumSigma float32

	SPDClsVsTklA float32
	SPDClsVsTklB float32
	V0C012vsTklA float32
	V0C012vsTklB float32
	V0MOnVsOfA   float32
	V0MOnVsOfB   float32
	SPDOnVsOfA   float32
	SPDOnVsOfB   float32
	V0CasymA     float32
	V0CasymB     float32

	SelectionBarrel            [NumSelectionFlags]bool
	SelectionMuonWithPileup    [NumSelectionFlags]bool
	SelectionMuonWithoutPileup [NumSelectionFlags]bool
}

func NewSelectionParams(system CollisionSystem) *SelectionParams {
	p := &SelectionParams{
		V0ADist: v0ADistCm / speedOfLight,
		V0CDist: v0CDistCm / speedOfLight,
		FDADist: fdaDistCm / speedOfLight,
		FDCDist: fdcDistCm / speedOfLight,

		ZNDifMean:  0,
		ZNDifSigma: 2,
		ZNSumMean:  0,
		ZNSumSigma: 2,

		// Defaults come from the pp trigger analysis
		SPDClsVsTklA: 65,
		SPDClsVsTklB: 4,
		V0C012vsTklA: 150,
		V0C012vsTklB: 20,
		V0MOnVsOfA:   -59.56,
		V0MOnVsOfB:   5.22,
		SPDOnVsOfA:   -5.62,
		SPDOnVsOfB:   0.85,
		V0CasymA:     -25,
		V0CasymB:     0.15,
	}

	// Beam-beam and beam-gas windows: flight time plus tuned asymmetric margins
	p.V0ABB = TimeWindow{+p.V0ADist - 9.5, +p.V0ADist + 22.5}
	p.V0ABG = TimeWindow{-p.V0ADist - 2.5, -p.V0ADist + 5.0}
	p.V0CBB = TimeWindow{+p.V0CDist - 2.5, +p.V0CDist + 22.5}
	p.V0CBG = TimeWindow{-p.V0CDist - 2.5, -p.V0CDist + 2.5}
	p.FDABB = TimeWindow{+p.FDADist - 2.5, +p.FDADist + 2.5}
	p.FDABG = TimeWindow{-p.FDADist - 4.0, -p.FDADist + 4.0}
	p.FDCBB = TimeWindow{+p.FDCDist - 1.5, +p.FDCDist + 1.5}
	p.FDCBG = TimeWindow{-p.FDCDist - 2.0, -p.FDCDist + 2.0}
	p.ZNABB = TimeWindow{-2.0, 2.0}
	p.ZNABG = TimeWindow{5.0, 100.0}
	p.ZNCBB = TimeWindow{-2.0, 2.0}
	p.ZNCBG = TimeWindow{5.0, 100.0}
	// TODO rough cuts to be adjusted
	p.T0ABB = TimeWindow{-2.0, 2.0}
	p.T0CBB = TimeWindow{-2.0, 2.0}

	for i := SelectionFlag(0); i < NumSelectionFlags; i++ {
		p.SelectionBarrel[i] = true
		p.SelectionMuonWithPileup[i] = true
		p.SelectionMuonWithoutPileup[i] = true
	}
	for _, flag := range outOfBunchPileupFlags {
		p.SelectionMuonWithoutPileup[flag] = false
	}

	if system == SystemPbPb {
		p.SetOnVsOfParams(-130.0, 2.5, -20.0, 0.7)
	}

	return p
}

// SetOnVsOfParams overrides the online-vs-offline correlation coefficients,
// e.g. with per-run values from the conditions database.
func (p *SelectionParams) SetOnVsOfParams(v0mA, v0mB, spdA, spdB float32) {
	p.V0MOnVsOfA = v0mA
	p.V0MOnVsOfB = v0mB
	p.SPDOnVsOfA = spdA
	p.SPDOnVsOfB = spdB
}

// DisableOutOfBunchPileupCuts switches the correlation-driven flags off in
// all three templates. Other slots are left untouched.
func (p *SelectionParams) DisableOutOfBunchPileupCuts() {
	for _, flag := range outOfBunchPileupFlags {
		p.SelectionBarrel[flag] = false
		p.SelectionMuonWithPileup[flag] = false
		p.SelectionMuonWithoutPileup[flag] = false
	}
}

type SelectionVariant int

const (
	VariantBarrel SelectionVariant = iota
	VariantMuonWithPileup
	VariantMuonWithoutPileup
)

func (p *SelectionParams) GetSelection(variant SelectionVariant) *[NumSelectionFlags]bool {
	switch variant {
	case VariantMuonWithPileup:
		return &p.SelectionMuonWithPileup
	case VariantMuonWithoutPileup:
		return &p.SelectionMuonWithoutPileup
	default:
		return &p.SelectionBarrel
	}
}
