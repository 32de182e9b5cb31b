package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	evsel "github.com/alice-dpg/evskim_go/pkg"
)

type qaLogger struct {
	log *slog.Logger
}

func (l qaLogger) Info(message string, module string) {
	l.log.Info(message, "module", module)
}

func (l qaLogger) Error(message string) {
	l.log.Error(message)
}

var configuration evsel.Configuration
var logger qaLogger

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	flag.Parse()

	logger = qaLogger{log: slog.New(slog.NewTextHandler(os.Stdout, nil))}

	var err error
	configuration, err = evsel.LoadConfiguration(*configFilename)
	if err != nil {
		logger.Error(fmt.Sprintf("Error reading configuration file: %v", err))
		os.Exit(1)
	}
	evsel.SetConfiguration(configuration)
	evsel.SetLogger(logger)

	system := evsel.SystemPP
	if configuration.System == "PbPb" {
		system = evsel.SystemPbPb
	}

	file, err := os.Open(configuration.FileIn)
	if err != nil {
		logger.Error(fmt.Sprintf("Error opening file: %v", err))
		os.Exit(1)
	}
	defer file.Close()

	_, runNumber := evsel.CountCollisions(file)

	var params *evsel.SelectionParams
	if configuration.NoDB {
		params = evsel.NewSelectionParams(system)
	} else {
		dbConn, err := evsel.ConnectToDatabase(configuration.User, configuration.Passwd, configuration.Host, configuration.DBName)
		if err != nil {
			logger.Error(fmt.Sprintf("Error connecting to database: %v", err))
			os.Exit(1)
		}
		defer dbConn.Close()
		params, err = evsel.LoadSelectionParams(dbConn, runNumber, system)
		if err != nil {
			os.Exit(1)
		}
	}

	histos := evsel.NewHistogramRegistry()
	task := evsel.NewQATask(params, histos, configuration)

	fileReader := evsel.NewFileReader(file)
	processed := 0
	for {
		collision, err := fileReader.NextCollision()
		if err != nil {
			if err != io.EOF {
				logger.Error(fmt.Sprintf("error reading collision: %v", err))
			}
			break
		}
		task.FillRecoHistograms(&collision)
		processed++
	}

	qaWriter, err := evsel.NewQAWriter(configuration.QAFileOut)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	if err := qaWriter.WriteRegistry(histos); err != nil {
		logger.Error(err.Error())
	}
	qaWriter.Close()

	if configuration.SummaryDB != "" {
		store, err := evsel.NewQAStore(configuration.SummaryDB)
		if err != nil {
			logger.Error(fmt.Sprintf("error opening summary store: %v", err))
			os.Exit(1)
		}
		defer store.Close()

		selected := int64(0)
		if h := histos.Get1D("Events/posZ"); h != nil {
			selected = h.Entries
		}
		if err := store.RecordRun(int32(runNumber), processed, int(selected)); err != nil {
			logger.Error(fmt.Sprintf("error recording run summary: %v", err))
		}
		if err := store.RecordRegistry(histos); err != nil {
			logger.Error(fmt.Sprintf("error recording histogram summary: %v", err))
		}
	}

	logger.Info(fmt.Sprintf("Collisions processed: %d", processed), "main")
}
