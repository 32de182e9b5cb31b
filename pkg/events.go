package evsel

// CollisionData is one reconstructed collision as read from the input
// bundle, together with its tracks and (optionally) the generated particles.
type CollisionData struct {
	RunNumber  int32   `json:"run_number"`
	PosX       float32 `json:"pos_x"`
	PosY       float32 `json:"pos_y"`
	PosZ       float32 `json:"pos_z"`
	CovXX      float32 `json:"cov_xx"`
	CovXY      float32 `json:"cov_xy"`
	CovXZ      float32 `json:"cov_xz"`
	CovYY      float32 `json:"cov_yy"`
	CovYZ      float32 `json:"cov_yz"`
	CovZZ      float32 `json:"cov_zz"`
	NumContrib int32   `json:"num_contrib"`
	Chi2       float32 `json:"chi2"`

	Times  ChannelTimes             `json:"times"`
	Mult   MultiplicityCorrelations `json:"mult"`
	Online OnlineFlags              `json:"online"`

	HasMCCollision bool    `json:"has_mc_collision"`
	MCPosX         float32 `json:"mc_pos_x"`
	MCPosY         float32 `json:"mc_pos_y"`
	MCPosZ         float32 `json:"mc_pos_z"`

	Tracks    []TrackData    `json:"tracks"`
	Particles []ParticleData `json:"particles"`
}

// TrackData is one reconstructed track. MCParticle indexes into the
// collision's Particles slice, -1 when the track has no generated match.
type TrackData struct {
	Pt   float32 `json:"pt"`
	Eta  float32 `json:"eta"`
	Phi  float32 `json:"phi"`
	Sign int16   `json:"sign"`

	X         float32 `json:"x"`
	Y         float32 `json:"y"`
	Z         float32 `json:"z"`
	Alpha     float32 `json:"alpha"`
	Signed1Pt float32 `json:"signed_1pt"`
	Snp       float32 `json:"snp"`
	Tgl       float32 `json:"tgl"`

	ITSClusterMap      uint8   `json:"its_cluster_map"`
	ITSNCls            uint8   `json:"its_ncls"`
	ITSNClsInnerBarrel uint8   `json:"its_ncls_inner_barrel"`
	ITSChi2NCl         float32 `json:"its_chi2_ncl"`

	TPCNClsFindable              int16   `json:"tpc_ncls_findable"`
	TPCNClsFound                 int16   `json:"tpc_ncls_found"`
	TPCNClsShared                int16   `json:"tpc_ncls_shared"`
	TPCNClsCrossedRows           int16   `json:"tpc_ncls_crossed_rows"`
	TPCCrossedRowsOverFindable   float32 `json:"tpc_crossed_rows_over_findable"`
	TPCFoundOverFindable         float32 `json:"tpc_found_over_findable"`
	TPCFractionSharedCls         float32 `json:"tpc_fraction_shared_cls"`
	TPCChi2NCl                   float32 `json:"tpc_chi2_ncl"`
	TRDChi2                      float32 `json:"trd_chi2"`
	TOFChi2                      float32 `json:"tof_chi2"`

	HasITS bool `json:"has_its"`
	HasTPC bool `json:"has_tpc"`
	HasTRD bool `json:"has_trd"`
	HasTOF bool `json:"has_tof"`

	DcaXY  float32 `json:"dca_xy"`
	DcaZ   float32 `json:"dca_z"`
	Length float32 `json:"length"`
	Flags  uint32  `json:"flags"`

	TPCSignal float32 `json:"tpc_signal"`
	TOFSignal float32 `json:"tof_signal"`
	TOFEvTime float32 `json:"tof_ev_time"`
	C1Pt21Pt2 float32 `json:"c_1pt2_1pt2"`

	IsGlobalTrack bool  `json:"is_global_track"`
	MCParticle    int32 `json:"mc_particle"`
}

// ParticleData is one generated particle of the collision.
type ParticleData struct {
	Pt                float32 `json:"pt"`
	Eta               float32 `json:"eta"`
	Phi               float32 `json:"phi"`
	PdgCode           int32   `json:"pdg_code"`
	IsPhysicalPrimary bool    `json:"is_physical_primary"`
	Process           int32   `json:"process"`
	Vx                float32 `json:"vx"`
	Vy                float32 `json:"vy"`
	Vz                float32 `json:"vz"`
}
