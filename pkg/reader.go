package evsel

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// FileReader reads line-delimited JSON collision bundles. Channels absent
// from a line keep the not-available sentinel, so downstream cuts fail
// closed instead of treating a missing reading as zero.
type FileReader struct {
	scanner  *bufio.Scanner
	EvtCount int
}

const maxLineSize = 16 * 1024 * 1024

func NewFileReader(file *os.File) *FileReader {
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 1024*1024), maxLineSize)
	return &FileReader{scanner: scanner, EvtCount: -1}
}

func emptyCollision() CollisionData {
	return CollisionData{
		Times: ChannelTimes{
			TimeV0A: TimeNotAvailable,
			TimeV0C: TimeNotAvailable,
			TimeFDA: TimeNotAvailable,
			TimeFDC: TimeNotAvailable,
			TimeZNA: TimeNotAvailable,
			TimeZNC: TimeNotAvailable,
			TimeT0A: TimeNotAvailable,
			TimeT0C: TimeNotAvailable,
		},
		Mult: MultiplicityCorrelations{
			MultOnlineV0M:   MultNotAvailable,
			MultOfflineV0M:  MultNotAvailable,
			MultOnlineSPD:   MultNotAvailable,
			MultOfflineSPD:  MultNotAvailable,
			MultClustersSPD: MultNotAvailable,
			MultTracklets:   MultNotAvailable,
			MultV0C012:      MultNotAvailable,
			MultV0C3:        MultNotAvailable,
		},
	}
}

// NextCollision returns the next collision bundle, honoring the skip and
// max-events settings. io.EOF signals the end of input.
func (f *FileReader) NextCollision() (CollisionData, error) {
	collision := emptyCollision()
	if !f.scanner.Scan() {
		if err := f.scanner.Err(); err != nil {
			return collision, err
		}
		return collision, io.EOF
	}
	f.EvtCount++
	if f.EvtCount >= configuration.MaxEvents {
		if configuration.Verbosity > 0 && logger != nil {
			logger.Info("Max events reached", "reader")
		}
		return collision, io.EOF
	}
	if f.EvtCount < configuration.Skip {
		return f.NextCollision()
	}
	err := json.Unmarshal(f.scanner.Bytes(), &collision)
	if err != nil {
		return collision, fmt.Errorf("error decoding collision %d: %w", f.EvtCount, err)
	}
	return collision, nil
}

// CountCollisions scans a file once, returning the number of collision
// bundles and the run number of the first one.
func CountCollisions(file *os.File) (int, int) {
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 1024*1024), maxLineSize)
	count := 0
	runNumber := 0
	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		if count == 0 {
			collision := emptyCollision()
			if err := json.Unmarshal(scanner.Bytes(), &collision); err == nil {
				runNumber = int(collision.RunNumber)
			}
		}
		count++
	}
	// Go back to the beginning of the file
	file.Seek(0, 0)
	return count, runNumber
}
