package evsel

import (
	"math"
)

// QATask fills the control histograms of selected collisions and tracks.
type QATask struct {
	Params   *SelectionParams
	Histos   *HistogramRegistry
	TrackSel TrackSelection

	LegacyRun        bool
	SelectGoodEvents bool
	MC               bool
}

func NewQATask(params *SelectionParams, histos *HistogramRegistry, config Configuration) *QATask {
	task := &QATask{
		Params:           params,
		Histos:           histos,
		TrackSel:         TrackSelectionFromConfig(config),
		LegacyRun:        config.LegacyRun,
		SelectGoodEvents: config.SelectGoodEvents,
		MC:               config.ProcessTableMC,
	}
	task.initHistograms()
	return task
}

var ptEdges = []float64{0.0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0, 1.1, 1.2, 1.3, 1.4, 1.5, 2.0, 5.0, 10.0, 20.0, 50.0}

func (t *QATask) initHistograms() {
	h := t.Histos

	// collision
	h.Add1D("Events/recoEff", "", 2, 0.5, 2.5)
	h.Add1D("Events/posX", "X [cm]", 500, -1, 1)
	h.Add1D("Events/posY", "Y [cm]", 500, -1, 1)
	h.Add1D("Events/posZ", "Z [cm]", 100, -20, 20)
	h.Add2D("Events/posXY", "", 500, -1, 1, 500, -1, 1)
	h.Add2D("Events/posXvsNContrib", "", 500, -1, 1, 200, 0, 200)
	h.Add2D("Events/posYvsNContrib", "", 500, -1, 1, 200, 0, 200)
	h.Add2D("Events/posZvsNContrib", "", 100, -20, 20, 200, 0, 200)
	h.Add1D("Events/nContrib", "Number of contributors to the PV", 200, 0, 200)
	h.Add2D("Events/nContribVsMult", "", 200, 0, 200, 200, 0, 200)
	h.Add1D("Events/vertexChi2", "chi2", 100, 0, 100)
	h.Add1D("Events/covXX", "Cov_xx [cm^2]", 100, -0.005, 0.005)
	h.Add1D("Events/covXY", "Cov_xy [cm^2]", 100, -0.005, 0.005)
	h.Add1D("Events/covXZ", "Cov_xz [cm^2]", 100, -0.005, 0.005)
	h.Add1D("Events/covYY", "Cov_yy [cm^2]", 100, -0.005, 0.005)
	h.Add1D("Events/covYZ", "Cov_yz [cm^2]", 100, -0.005, 0.005)
	h.Add1D("Events/covZZ", "Cov_zz [cm^2]", 100, -0.005, 0.005)
	h.Add1D("Events/nTracks", "Track multiplicity", 200, 0, 200)

	if t.MC {
		h.Add2D("Events/resoX", "X_rec - X_gen [cm]", 100, -0.5, 0.5, 200, 0, 200)
		h.Add2D("Events/resoY", "Y_rec - Y_gen [cm]", 100, -0.5, 0.5, 200, 0, 200)
		h.Add2D("Events/resoZ", "Z_rec - Z_gen [cm]", 100, -0.5, 0.5, 200, 0, 200)
	}

	h.Add1D("Tracks/recoEff", "", 2, 0.5, 2.5)

	// kine histograms
	h.Add1DVar("Tracks/Kine/pt", "pt [GeV/c]", ptEdges)
	h.Add1D("Tracks/Kine/eta", "eta", 180, -0.9, 0.9)
	h.Add1D("Tracks/Kine/phi", "phi [rad]", 180, 0, 2*math.Pi)
	h.Add2D("Tracks/Kine/relativeResoPt", "relative pt resolution", 100, 0, 50, 100, 0, 0.3)
	if t.MC {
		h.Add2D("Tracks/Kine/resoPt", "pt_rec - pt_gen", 100, -0.5, 0.5, 100, 0, 50)
		h.Add2D("Tracks/Kine/resoEta", "eta_rec - eta_gen", 100, -0.1, 0.1, 180, -0.9, 0.9)
		h.Add2D("Tracks/Kine/resoPhi", "phi_rec - phi_gen", 100, -0.1, 0.1, 180, 0, 2*math.Pi)
	}

	// track parameter histograms
	h.Add1D("Tracks/x", "track x position at dca in local coordinate system [cm]", 200, -0.36, 0.36)
	h.Add1D("Tracks/y", "track y position at dca in local coordinate system [cm]", 200, -0.5, 0.5)
	h.Add1D("Tracks/z", "track z position at dca in local coordinate system [cm]", 200, -11, 11)
	h.Add1D("Tracks/alpha", "rotation angle of local wrt. global coordinate system [rad]", 36, -math.Pi, math.Pi)
	h.Add1D("Tracks/signed1Pt", "track signed 1/pt", 200, -8, 8)
	h.Add1D("Tracks/snp", "sinus of track momentum azimuthal angle", 11, -0.1, 0.1)
	h.Add1D("Tracks/tgl", "tangent of the track momentum dip angle", 200, -1, 1)
	h.Add1D("Tracks/flags", "track flag bit", 64, -0.5, 63.5)
	h.Add1D("Tracks/dcaXY", "distance of closest approach in xy plane [cm]", 200, -0.15, 0.15)
	h.Add1D("Tracks/dcaZ", "distance of closest approach in z [cm]", 200, -0.15, 0.15)
	h.Add2D("Tracks/dcaXYvsPt", "", 200, -0.15, 0.15, 100, 0, 50)
	h.Add2D("Tracks/dcaZvsPt", "", 200, -0.15, 0.15, 100, 0, 50)
	h.Add1D("Tracks/length", "track length [cm]", 400, 0, 1000)

	// its histograms
	h.Add1D("Tracks/ITS/itsNCls", "number of found ITS clusters", 8, -0.5, 7.5)
	h.Add1D("Tracks/ITS/itsChi2NCl", "chi2 per ITS cluster", 100, 0, 40)
	h.Add2D("Tracks/ITS/itsHits", "number of hits vs ITS layer", 8, -1.5, 6.5, 8, -0.5, 7.5)
	h.Add1DVar("Tracks/ITS/hasITS", "pt distribution of tracks crossing ITS", ptEdges)
	h.Add1DVar("Tracks/ITS/hasITSANDhasTPC", "pt distribution of tracks crossing both ITS and TPC", ptEdges)

	// tpc histograms
	h.Add1D("Tracks/TPC/tpcNClsFindable", "number of findable TPC clusters", 165, -0.5, 164.5)
	h.Add1D("Tracks/TPC/tpcNClsFound", "number of found TPC clusters", 165, -0.5, 164.5)
	h.Add1D("Tracks/TPC/tpcNClsShared", "number of shared TPC clusters", 165, -0.5, 164.5)
	h.Add1D("Tracks/TPC/tpcCrossedRows", "number of crossed TPC rows", 165, -0.5, 164.5)
	h.Add1D("Tracks/TPC/tpcFractionSharedCls", "fraction of shared TPC clusters", 100, 0, 1)
	h.Add1D("Tracks/TPC/tpcCrossedRowsOverFindableCls", "crossed TPC rows over findable clusters", 60, 0.7, 1.3)
	h.Add1D("Tracks/TPC/tpcChi2NCl", "chi2 per TPC cluster", 100, 0, 10)
	h.Add1DVar("Tracks/TPC/hasTPC", "pt distribution of tracks crossing TPC", ptEdges)
}

func (t *QATask) isSelectedCollision(collision *CollisionData, fill bool) bool {
	if fill {
		t.Histos.Fill("Events/recoEff", 1)
	}
	result := t.Params.Evaluate(collision.Times, collision.Mult, collision.Online)
	var decision bool
	if t.LegacyRun {
		decision = result.Sel7(t.Params)
	} else {
		decision = result.Sel8(t.Params)
	}
	if t.SelectGoodEvents && !decision {
		return false
	}
	if fill {
		t.Histos.Fill("Events/recoEff", 2)
	}
	return true
}

func itsHitsFromMap(clusterMap uint8) int {
	hits := 0
	for i := 0; i < 7; i++ {
		if clusterMap&(1<<i) != 0 {
			hits++
		}
	}
	return hits
}

// FillRecoHistograms fills every QA histogram for one collision.
func (t *QATask) FillRecoHistograms(collision *CollisionData) {
	if !t.isSelectedCollision(collision, true) {
		return
	}
	h := t.Histos

	particleFor := func(track TrackData) *ParticleData {
		if track.MCParticle < 0 || int(track.MCParticle) >= len(collision.Particles) {
			return nil
		}
		return &collision.Particles[track.MCParticle]
	}

	nTracks := 0
	for _, track := range collision.Tracks {
		if !t.TrackSel.Accept(track, particleFor(track), t.MC) {
			continue
		}
		nTracks++
	}

	h.Fill("Events/posX", float64(collision.PosX))
	h.Fill("Events/posY", float64(collision.PosY))
	h.Fill("Events/posZ", float64(collision.PosZ))
	h.Fill2("Events/posXY", float64(collision.PosX), float64(collision.PosY))
	h.Fill2("Events/posXvsNContrib", float64(collision.PosX), float64(collision.NumContrib))
	h.Fill2("Events/posYvsNContrib", float64(collision.PosY), float64(collision.NumContrib))
	h.Fill2("Events/posZvsNContrib", float64(collision.PosZ), float64(collision.NumContrib))
	h.Fill("Events/nContrib", float64(collision.NumContrib))
	h.Fill2("Events/nContribVsMult", float64(collision.NumContrib), float64(nTracks))
	h.Fill("Events/vertexChi2", float64(collision.Chi2))
	h.Fill("Events/covXX", float64(collision.CovXX))
	h.Fill("Events/covXY", float64(collision.CovXY))
	h.Fill("Events/covXZ", float64(collision.CovXZ))
	h.Fill("Events/covYY", float64(collision.CovYY))
	h.Fill("Events/covYZ", float64(collision.CovYZ))
	h.Fill("Events/covZZ", float64(collision.CovZZ))
	h.Fill("Events/nTracks", float64(nTracks))

	// vertex resolution
	if t.MC && collision.HasMCCollision {
		h.Fill2("Events/resoX", float64(collision.PosX-collision.MCPosX), float64(collision.NumContrib))
		h.Fill2("Events/resoY", float64(collision.PosY-collision.MCPosY), float64(collision.NumContrib))
		h.Fill2("Events/resoZ", float64(collision.PosZ-collision.MCPosZ), float64(collision.NumContrib))
	}

	for i := 0; i < len(collision.Tracks); i++ {
		h.Fill("Tracks/recoEff", 1)
	}
	for i := 0; i < nTracks; i++ {
		h.Fill("Tracks/recoEff", 2)
	}

	for _, track := range collision.Tracks {
		particle := particleFor(track)
		if !t.TrackSel.Accept(track, particle, t.MC) {
			continue
		}

		// kinematic variables
		h.Fill("Tracks/Kine/pt", float64(track.Pt))
		h.Fill("Tracks/Kine/eta", float64(track.Eta))
		h.Fill("Tracks/Kine/phi", float64(track.Phi))
		ptReso := float64(track.Pt) * math.Sqrt(float64(track.C1Pt21Pt2))
		h.Fill2("Tracks/Kine/relativeResoPt", float64(track.Pt), ptReso)

		// track parameters
		h.Fill("Tracks/alpha", float64(track.Alpha))
		h.Fill("Tracks/x", float64(track.X))
		h.Fill("Tracks/y", float64(track.Y))
		h.Fill("Tracks/z", float64(track.Z))
		h.Fill("Tracks/signed1Pt", float64(track.Signed1Pt))
		h.Fill("Tracks/snp", float64(track.Snp))
		h.Fill("Tracks/tgl", float64(track.Tgl))
		for i := 0; i < 32; i++ {
			if track.Flags&(1<<i) != 0 {
				h.Fill("Tracks/flags", float64(i))
			}
		}
		h.Fill("Tracks/dcaXY", float64(track.DcaXY))
		h.Fill("Tracks/dcaZ", float64(track.DcaZ))
		h.Fill2("Tracks/dcaXYvsPt", float64(track.DcaXY), float64(track.Pt))
		h.Fill2("Tracks/dcaZvsPt", float64(track.DcaZ), float64(track.Pt))
		h.Fill("Tracks/length", float64(track.Length))

		// ITS variables
		h.Fill("Tracks/ITS/itsNCls", float64(track.ITSNCls))
		h.Fill("Tracks/ITS/itsChi2NCl", float64(track.ITSChi2NCl))
		itsNhits := itsHitsFromMap(track.ITSClusterMap)
		trkHasITS := false
		for i := 0; i < 7; i++ {
			if track.ITSClusterMap&(1<<i) != 0 {
				trkHasITS = true
				h.Fill2("Tracks/ITS/itsHits", float64(i), float64(itsNhits))
			}
		}
		if !trkHasITS {
			h.Fill2("Tracks/ITS/itsHits", -1, float64(itsNhits))
		}

		// TPC variables
		h.Fill("Tracks/TPC/tpcNClsFindable", float64(track.TPCNClsFindable))
		h.Fill("Tracks/TPC/tpcNClsFound", float64(track.TPCNClsFound))
		h.Fill("Tracks/TPC/tpcNClsShared", float64(track.TPCNClsShared))
		h.Fill("Tracks/TPC/tpcCrossedRows", float64(track.TPCNClsCrossedRows))
		h.Fill("Tracks/TPC/tpcCrossedRowsOverFindableCls", float64(track.TPCCrossedRowsOverFindable))
		h.Fill("Tracks/TPC/tpcFractionSharedCls", float64(track.TPCFractionSharedCls))
		h.Fill("Tracks/TPC/tpcChi2NCl", float64(track.TPCChi2NCl))

		if t.MC && particle != nil {
			h.Fill2("Tracks/Kine/resoPt", float64(track.Pt-particle.Pt), float64(track.Pt))
			h.Fill2("Tracks/Kine/resoEta", float64(track.Eta-particle.Eta), float64(track.Eta))
			h.Fill2("Tracks/Kine/resoPhi", float64(track.Phi-particle.Phi), float64(track.Phi))
		}

		// ITS-TPC matching pt distributions
		if track.HasITS {
			h.Fill("Tracks/ITS/hasITS", float64(track.Pt))
		}
		if track.HasTPC {
			h.Fill("Tracks/TPC/hasTPC", float64(track.Pt))
		}
		if track.HasITS && track.HasTPC {
			h.Fill("Tracks/ITS/hasITSANDhasTPC", float64(track.Pt))
		}
	}
}
