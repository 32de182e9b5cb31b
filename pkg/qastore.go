package evsel

import (
	"database/sql"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// QAStore keeps a per-run summary of the QA pass in a local sqlite file:
// one row per run and one row per histogram with its basic statistics.
type QAStore struct {
	*sql.DB
	RunID string
}

func NewQAStore(path string) (*QAStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS qa_runs (
			run_id TEXT PRIMARY KEY,
			run_number INTEGER,
			events_processed INTEGER,
			events_selected INTEGER,
			timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS qa_histograms (
			run_id TEXT,
			path TEXT,
			entries INTEGER,
			mean DOUBLE,
			stddev DOUBLE,
			underflow DOUBLE,
			overflow DOUBLE,
			FOREIGN KEY(run_id) REFERENCES qa_runs(run_id)
		);
	`)
	if err != nil {
		return nil, err
	}

	return &QAStore{DB: db, RunID: uuid.NewString()}, nil
}

func (db *QAStore) RecordRun(runNumber int32, eventsProcessed, eventsSelected int) error {
	_, err := db.Exec("INSERT INTO qa_runs (run_id, run_number, events_processed, events_selected) VALUES (?, ?, ?, ?)",
		db.RunID, runNumber, eventsProcessed, eventsSelected)
	return err
}

func (db *QAStore) RecordHistogram(path string, h *H1) error {
	_, err := db.Exec("INSERT INTO qa_histograms (run_id, path, entries, mean, stddev, underflow, overflow) VALUES (?, ?, ?, ?, ?, ?, ?)",
		db.RunID, path, h.Entries, h.Mean(), h.StdDev(), h.Underflow, h.Overflow)
	return err
}

// RecordRegistry stores a summary row for every 1D histogram.
func (db *QAStore) RecordRegistry(histos *HistogramRegistry) error {
	for _, path := range histos.Paths1D() {
		if err := db.RecordHistogram(path, histos.Get1D(path)); err != nil {
			return err
		}
	}
	return nil
}
