package main

import (
	"fmt"
	"io"
	"sync"

	evsel "github.com/alice-dpg/evskim_go/pkg"
)

type WorkerResult struct {
	Collision evsel.CollisionData
	Result    evsel.SelectionResult
	Error     bool
}

// worker evaluates the selection flags, the cheap parallelizable half of the
// pipeline. Emission stays in the results loop.
func worker(id int, params *evsel.SelectionParams, jobs <-chan evsel.CollisionData, results chan<- WorkerResult, wg *sync.WaitGroup) {
	defer wg.Done()
	defer func() {
		if r := recover(); r != nil {
			errMessage := fmt.Sprintf("worker %d recovered from panic: %v", id, r)
			logger.Error(errMessage)
			results <- WorkerResult{Error: true}
		}
	}()

	for collision := range jobs {
		result := params.Evaluate(collision.Times, collision.Mult, collision.Online)
		results <- WorkerResult{Collision: collision, Result: result}
	}
}

func sendCollisionsToWorkers(fileReader *evsel.FileReader, jobs chan<- evsel.CollisionData) {
	for {
		collision, err := fileReader.NextCollision()
		if err != nil {
			if err != io.EOF {
				message := fmt.Errorf("error reading collision: %w", err)
				logger.Error(message.Error())
			}
			break
		}
		jobs <- collision
	}
	close(jobs)
}

func processWorkerResults(results <-chan WorkerResult, skimmer *evsel.Skimmer) int {
	processed := 0
	for result := range results {
		if result.Error {
			continue
		}
		processed++
		if configuration.WriteData {
			skimmer.Emit(&result.Collision, result.Result)
		}
	}
	return processed
}
