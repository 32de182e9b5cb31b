package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	evsel "github.com/alice-dpg/evskim_go/pkg"
	sqlx "github.com/jmoiron/sqlx"
)

var dbConn *sqlx.DB
var configuration evsel.Configuration

var (
	logger         Logger
	VerbosityLevel int
)

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	handlerStdOut := NewHandler(os.Stdout, opts)
	handlerStdErr := slog.NewJSONHandler(os.Stderr, opts)
	logger = Logger{
		InfoLog:  slog.New(handlerStdOut),
		ErrorLog: slog.New(handlerStdErr),
	}
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	flag.Parse()

	var err error
	configuration, err = evsel.LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	if err := evsel.ValidateConfiguration(configuration); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	evsel.SetConfiguration(configuration)
	evsel.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", *configFilename)
		logger.Info(message, "main")
		printConfiguration(configuration, logger)
	}

	system := evsel.SystemPP
	if configuration.System == "PbPb" {
		system = evsel.SystemPbPb
	}

	file, err := os.Open(configuration.FileIn)
	if err != nil {
		message := fmt.Errorf("Error opening file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	defer file.Close()

	evtCount, runNumber := evsel.CountCollisions(file)
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Number of collisions: %d (run %d)", evtCount, runNumber)
		logger.Info(message, "main")
	}

	var params *evsel.SelectionParams
	if configuration.NoDB {
		params = evsel.NewSelectionParams(system)
	} else {
		dbConn, err = evsel.ConnectToDatabase(configuration.User, configuration.Passwd, configuration.Host, configuration.DBName)
		if err != nil {
			message := fmt.Errorf("Error connecting to database: %w", err)
			logger.Error(message.Error())
			os.Exit(1)
		}
		defer dbConn.Close()

		params, err = evsel.LoadSelectionParams(dbConn, runNumber, system)
		if err != nil {
			os.Exit(1)
		}
	}

	writer, err := evsel.NewWriter(configuration.FileOut)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	skimmer := evsel.NewSkimmer(params, writer, nil, configuration)
	fileReader := evsel.NewFileReader(file)

	start := time.Now()

	numWorkers := configuration.NumWorkers
	if numWorkers < 1 {
		numWorkers = 1
	}
	jobs := make(chan evsel.CollisionData, numWorkers)
	results := make(chan WorkerResult, numWorkers)

	var wg sync.WaitGroup
	for w := 1; w <= numWorkers; w++ {
		wg.Add(1)
		go worker(w, params, jobs, results, &wg)
	}
	go func() {
		wg.Wait()
		close(results)
	}()
	go sendCollisionsToWorkers(fileReader, jobs)

	processed := processWorkerResults(results, skimmer)

	writer.WriteRunInfo(int32(runNumber))
	writer.Close()

	duration := time.Since(start)
	message := fmt.Sprintf("Collisions processed: %d, emitted: %d, time: %d ms",
		processed, skimmer.EmittedEvents(), duration.Milliseconds())
	logger.Info(message, "main")
}

func printConfiguration(config evsel.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("System: %s", config.System), "config")
	logger.Info(fmt.Sprintf("Legacy run: %t", config.LegacyRun), "config")
	logger.Info(fmt.Sprintf("Select good events: %t", config.SelectGoodEvents), "config")
	logger.Info(fmt.Sprintf("Select global tracks: %t", config.SelectGlobalTracks), "config")
	logger.Info(fmt.Sprintf("Max vertex Z: %f", config.MaxVtxZ), "config")
	logger.Info(fmt.Sprintf("Target events: %d", config.TargetEvents), "config")
	logger.Info(fmt.Sprintf("Sampling fraction: %f", config.SamplingFraction), "config")
	logger.Info(fmt.Sprintf("Process table data: %t", config.ProcessTableData), "config")
	logger.Info(fmt.Sprintf("Process table MC: %t", config.ProcessTableMC), "config")
	logger.Info(fmt.Sprintf("Skip: %d", config.Skip), "config")
	logger.Info(fmt.Sprintf("Max events: %d", config.MaxEvents), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Write data: %t", config.WriteData), "config")
	logger.Info(fmt.Sprintf("Number of workers: %d", config.NumWorkers), "config")
}
