package evsel

import (
	"math"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

// RecordWriter is the table-writer contract of the emitter. WriteCollision
// returns the row index of the appended collision so subsequent track and
// particle rows can be stamped with it.
type RecordWriter interface {
	WriteCollision(row CollisionHDF5) int
	WriteTrack(row TrackHDF5)
	WriteRecoParticle(row RecoParticleHDF5)
	WriteNonRecoParticle(row NonRecoParticleHDF5)
}

// Writer writes the derived tables to HDF5.
type Writer struct {
	File                 *hdf5.File
	EventsGroup          *hdf5.Group
	TracksGroup          *hdf5.Group
	MCGroup              *hdf5.Group
	RunGroup             *hdf5.Group
	CollisionTable       *hdf5.Dataset
	TrackTable           *hdf5.Dataset
	RecoParticleTable    *hdf5.Dataset
	NonRecoParticleTable *hdf5.Dataset
	RunInfoTable         *hdf5.Dataset
	CollisionCounter     int
	runInfoWritten       bool
}

func NewWriter(fname string) (*Writer, error) {
	writer := &Writer{CollisionCounter: -1}

	var err error
	writer.File, err = openFile(fname)
	if err != nil {
		return nil, err
	}
	if writer.EventsGroup, err = createGroup(writer.File, "Events"); err != nil {
		return nil, err
	}
	if writer.TracksGroup, err = createGroup(writer.File, "Tracks"); err != nil {
		return nil, err
	}
	if writer.MCGroup, err = createGroup(writer.File, "MC"); err != nil {
		return nil, err
	}
	if writer.RunGroup, err = createGroup(writer.File, "Run"); err != nil {
		return nil, err
	}
	if writer.CollisionTable, err = createTable(writer.EventsGroup, "collisions", CollisionHDF5{}); err != nil {
		return nil, err
	}
	if writer.TrackTable, err = createTable(writer.TracksGroup, "tracks", TrackHDF5{}); err != nil {
		return nil, err
	}
	if writer.RecoParticleTable, err = createTable(writer.MCGroup, "recoParticles", RecoParticleHDF5{}); err != nil {
		return nil, err
	}
	if writer.NonRecoParticleTable, err = createTable(writer.MCGroup, "nonRecoParticles", NonRecoParticleHDF5{}); err != nil {
		return nil, err
	}
	if writer.RunInfoTable, err = createTable(writer.RunGroup, "runInfo", RunInfoHDF5{}); err != nil {
		return nil, err
	}
	return writer, nil
}

func (w *Writer) WriteCollision(row CollisionHDF5) int {
	writeEntryToTable(w.CollisionTable, row)
	w.CollisionCounter++
	return w.CollisionCounter
}

func (w *Writer) WriteTrack(row TrackHDF5) {
	writeEntryToTable(w.TrackTable, row)
}

func (w *Writer) WriteRecoParticle(row RecoParticleHDF5) {
	writeEntryToTable(w.RecoParticleTable, row)
}

func (w *Writer) WriteNonRecoParticle(row NonRecoParticleHDF5) {
	writeEntryToTable(w.NonRecoParticleTable, row)
}

// WriteRunInfo stores the run number once per output file.
func (w *Writer) WriteRunInfo(runNumber int32) {
	if w.runInfoWritten {
		return
	}
	writeEntryToTable(w.RunInfoTable, RunInfoHDF5{run_number: runNumber})
	w.runInfoWritten = true
}

func (w *Writer) Close() {
	w.CollisionTable.Close()
	w.TrackTable.Close()
	w.RecoParticleTable.Close()
	w.NonRecoParticleTable.Close()
	w.RunInfoTable.Close()
	w.EventsGroup.Close()
	w.TracksGroup.Close()
	w.MCGroup.Close()
	w.RunGroup.Close()
	w.File.Close()
}

// QAWriter dumps the histogram registry contents into an HDF5 QA file, one
// extendible 2D array per histogram: row 0 bin edges, row 1 bin counts.
type QAWriter struct {
	File    *hdf5.File
	QAGroup *hdf5.Group
}

func NewQAWriter(fname string) (*QAWriter, error) {
	writer := &QAWriter{}

	var err error
	writer.File, err = openFile(fname)
	if err != nil {
		return nil, err
	}
	if writer.QAGroup, err = createGroup(writer.File, "QA"); err != nil {
		return nil, err
	}
	return writer, nil
}

func (w *QAWriter) WriteRegistry(histos *HistogramRegistry) error {
	for _, path := range histos.Paths1D() {
		h := histos.Get1D(path)
		dset, err := create2dArray(w.QAGroup, sanitizePath(path), len(h.Counts)+1)
		if err != nil {
			return err
		}
		edges := make([]float64, len(h.Counts)+1)
		copy(edges, h.Edges)
		write2dArray(dset, &edges)
		counts := make([]float64, len(h.Counts)+1)
		copy(counts, h.Counts)
		counts[len(h.Counts)] = math.NaN() // pad, counts have one entry less than edges
		write2dArray(dset, &counts)
		dset.Close()
	}
	for _, path := range histos.Paths2D() {
		h := histos.Get2D(path)
		ny := len(h.YEdges) - 1
		dset, err := create2dArray(w.QAGroup, sanitizePath(path), ny)
		if err != nil {
			return err
		}
		nx := len(h.XEdges) - 1
		for ix := 0; ix < nx; ix++ {
			row := make([]float64, ny)
			copy(row, h.Counts[ix*ny:(ix+1)*ny])
			write2dArray(dset, &row)
		}
		dset.Close()
	}
	return nil
}

func (w *QAWriter) Close() {
	w.QAGroup.Close()
	w.File.Close()
}

// HDF5 dataset names cannot contain slashes without creating subgroups.
func sanitizePath(path string) string {
	out := make([]byte, len(path))
	for i := 0; i < len(path); i++ {
		if path[i] == '/' {
			out[i] = '.'
		} else {
			out[i] = path[i]
		}
	}
	return string(out)
}
