package evsel

import (
	"encoding/json"
	"os"
)

type Configuration struct {
	MaxEvents          int     `json:"max_events"`
	Verbosity          int     `json:"verbosity"`
	Skip               int     `json:"skip"`
	FileIn             string  `json:"file_in"`
	FileOut            string  `json:"file_out"`
	QAFileOut          string  `json:"qa_file_out"`
	SummaryDB          string  `json:"summary_db"`
	LegacyRun          bool    `json:"legacy_run"`
	System             string  `json:"system"`
	SelectGoodEvents   bool    `json:"select_good_events"`
	SelectGlobalTracks bool    `json:"select_global_tracks"`
	MaxVtxZ            float32 `json:"max_vtx_z"`
	TargetEvents       int     `json:"target_events"`
	SamplingFraction   float32 `json:"sampling_fraction"`
	SelectCharge       int     `json:"select_charge"`
	SelectPrim         bool    `json:"select_prim"`
	SelectSec          bool    `json:"select_sec"`
	SelectPDG          int     `json:"select_pdg"`
	PtMin              float32 `json:"pt_min"`
	PtMax              float32 `json:"pt_max"`
	EtaMax             float32 `json:"eta_max"`
	ProcessTableData   bool    `json:"process_table_data"`
	ProcessTableMC     bool    `json:"process_table_mc"`
	NoDB               bool    `json:"no_db"`
	Host               string  `json:"host"`
	User               string  `json:"user"`
	Passwd             string  `json:"pass"`
	DBName             string  `json:"dbname"`
	NumWorkers         int     `json:"num_workers"`
	WriteData          bool    `json:"write_data"`
}

var configuration Configuration

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}

func LoadConfiguration(filename string) (Configuration, error) {
	var config Configuration

	// Set default values
	config.MaxEvents = 1000000000
	config.Verbosity = 0
	config.Skip = 0
	config.System = "pp"
	config.SelectGoodEvents = true
	config.SelectGlobalTracks = true
	config.MaxVtxZ = 100
	config.TargetEvents = 10000000
	config.SamplingFraction = 1.0
	config.SelectCharge = 0
	config.PtMin = 0
	config.PtMax = 0
	config.EtaMax = 0
	config.ProcessTableData = true
	config.ProcessTableMC = false
	config.NoDB = false
	config.Host = "alidb.cern.ch"
	config.User = "evselreader"
	config.Passwd = "readonly"
	config.DBName = "EVSEL"
	config.NumWorkers = 1
	config.WriteData = true

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	return config, nil
}

// ValidateConfiguration checks the one contradiction we refuse to run with.
// Every other questionable combination is evaluated literally downstream.
func ValidateConfiguration(config Configuration) error {
	if config.ProcessTableData && config.ProcessTableMC {
		return &ErrConflictingModes{ModeA: "process_table_data", ModeB: "process_table_mc"}
	}
	return nil
}
