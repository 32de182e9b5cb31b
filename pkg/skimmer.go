package evsel

import (
	"math"
	"math/rand"

	"golang.org/x/exp/slices"
)

// Production categories of the particle rows.
const (
	ProductionPrimary        int32 = 0
	ProductionSecondaryDecay int32 = 1
	ProductionSecondaryOther int32 = 2
	ProductionUnmatched      int32 = -1
)

// Generator process code of particles produced in decays.
const processDecay int32 = 4

// Skimmer produces the derived tables: one reduced collision row per
// accepted collision, one row per accepted track and, in MC mode, one row
// per matched and unmatched generated particle. Single collision at a time,
// the emitted-event counter is the only state crossing collision boundaries.
type Skimmer struct {
	Params   *SelectionParams
	Writer   RecordWriter
	Histos   *HistogramRegistry
	TrackSel TrackSelection

	LegacyRun        bool
	SelectGoodEvents bool
	MaxVtxZ          float32
	TargetEvents     int
	SamplingFraction float32
	MC               bool

	eventCounter int

	// draw is the uniform sampling draw in [0,1). Swappable so the
	// downsampling gate can be driven deterministically in tests.
	draw func() float32
}

func NewSkimmer(params *SelectionParams, writer RecordWriter, histos *HistogramRegistry, config Configuration) *Skimmer {
	return &Skimmer{
		Params:           params,
		Writer:           writer,
		Histos:           histos,
		TrackSel:         TrackSelectionFromConfig(config),
		LegacyRun:        config.LegacyRun,
		SelectGoodEvents: config.SelectGoodEvents,
		MaxVtxZ:          config.MaxVtxZ,
		TargetEvents:     config.TargetEvents,
		SamplingFraction: config.SamplingFraction,
		MC:               config.ProcessTableMC,
		draw:             rand.Float32,
	}
}

// SetDraw overrides the sampling draw.
func (s *Skimmer) SetDraw(draw func() float32) {
	s.draw = draw
}

// EmittedEvents is the number of collisions written so far.
func (s *Skimmer) EmittedEvents() int {
	return s.eventCounter
}

func (s *Skimmer) decision(result SelectionResult) bool {
	if s.LegacyRun {
		return result.Sel7(s.Params)
	}
	return result.Sel8(s.Params)
}

func (s *Skimmer) particleFor(collision *CollisionData, track TrackData) *ParticleData {
	if track.MCParticle < 0 || int(track.MCParticle) >= len(collision.Particles) {
		return nil
	}
	return &collision.Particles[track.MCParticle]
}

func productionCategory(particle ParticleData) int32 {
	if particle.IsPhysicalPrimary {
		return ProductionPrimary
	}
	if particle.Process == processDecay {
		return ProductionSecondaryDecay
	}
	return ProductionSecondaryOther
}

// ProcessCollision runs one collision through the gates and emits its rows.
// A collision is either emitted completely or not at all.
func (s *Skimmer) ProcessCollision(collision *CollisionData) {
	result := s.Params.Evaluate(collision.Times, collision.Mult, collision.Online)
	s.Emit(collision, result)
}

// Emit applies the gates to an already evaluated collision and writes its
// rows. Evaluation can run in parallel across collisions, emission must stay
// single-threaded: the event counter and the writer row indices depend on it.
func (s *Skimmer) Emit(collision *CollisionData, result SelectionResult) {
	decision := s.decision(result)

	if s.SelectGoodEvents && !decision {
		return
	}
	if abs32(collision.PosZ) > s.MaxVtxZ {
		return
	}
	if s.SamplingFraction < 1.0 && s.draw() > s.SamplingFraction {
		return
	}
	if s.eventCounter >= s.TargetEvents {
		return
	}
	s.eventCounter++

	collisionID := int32(s.Writer.WriteCollision(CollisionHDF5{
		pos_z:      collision.PosZ,
		sel:        boolToUint8(decision),
		run_number: collision.RunNumber,
	}))

	nTracks := 0
	for _, track := range collision.Tracks {
		if !s.TrackSel.Accept(track, s.particleFor(collision, track), s.MC) {
			continue
		}
		nTracks++
	}
	if s.Histos != nil {
		s.Histos.Fill("Events/nTracks", float64(nTracks))
	}

	recoPartIndices := make([]int32, 0, nTracks)
	for _, track := range collision.Tracks {
		particle := s.particleFor(collision, track)
		if !s.TrackSel.Accept(track, particle, s.MC) {
			continue
		}
		s.Writer.WriteTrack(TrackHDF5{
			collision_id:                   collisionID,
			pt:                             track.Pt,
			eta:                            track.Eta,
			phi:                            track.Phi,
			pt_reso:                        track.Pt * float32(math.Sqrt(float64(track.C1Pt21Pt2))),
			flags:                          track.Flags,
			sign:                           track.Sign,
			dca_xy:                         track.DcaXY,
			dca_z:                          track.DcaZ,
			length:                         track.Length,
			its_cluster_map:                track.ITSClusterMap,
			its_chi2_ncl:                   track.ITSChi2NCl,
			tpc_chi2_ncl:                   track.TPCChi2NCl,
			trd_chi2:                       track.TRDChi2,
			tof_chi2:                       track.TOFChi2,
			has_its:                        boolToUint8(track.HasITS),
			has_tpc:                        boolToUint8(track.HasTPC),
			has_trd:                        boolToUint8(track.HasTRD),
			has_tof:                        boolToUint8(track.HasTOF),
			tpc_ncls_found:                 track.TPCNClsFound,
			tpc_crossed_rows:               track.TPCNClsCrossedRows,
			tpc_crossed_rows_over_findable: track.TPCCrossedRowsOverFindable,
			tpc_found_over_findable:        track.TPCFoundOverFindable,
			tpc_fraction_shared:            track.TPCFractionSharedCls,
			its_ncls:                       track.ITSNCls,
			its_ncls_inner_barrel:          track.ITSNClsInnerBarrel,
			tpc_signal:                     track.TPCSignal,
			tof_minus_evtime:               track.TOFSignal - track.TOFEvTime,
		})

		if s.MC {
			if particle != nil {
				recoPartIndices = append(recoPartIndices, track.MCParticle)
				s.Writer.WriteRecoParticle(RecoParticleHDF5{
					pt:         particle.Pt,
					eta:        particle.Eta,
					phi:        particle.Phi,
					pdg_code:   particle.PdgCode,
					production: productionCategory(*particle),
				})
			} else {
				// No generated match: fill with the track values and
				// tag the production with the unmatched sentinel.
				s.Writer.WriteRecoParticle(RecoParticleHDF5{
					pt:         track.Pt,
					eta:        track.Eta,
					phi:        track.Phi,
					pdg_code:   0,
					production: ProductionUnmatched,
				})
			}
		}
	}

	if s.MC {
		if !collision.HasMCCollision {
			return
		}
		for i := range collision.Particles {
			if slices.Contains(recoPartIndices, int32(i)) {
				continue
			}
			particle := collision.Particles[i]
			s.Writer.WriteNonRecoParticle(NonRecoParticleHDF5{
				collision_id: collisionID,
				pt:           particle.Pt,
				eta:          particle.Eta,
				phi:          particle.Phi,
				pdg_code:     particle.PdgCode,
				production:   productionCategory(particle),
				vx:           particle.Vx,
				vy:           particle.Vy,
				vz:           particle.Vz,
			})
		}
	}
}
