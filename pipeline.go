package jiggle

import "sync"

// task fans fn out over data across workersCount goroutines and waits
// for all chunks. A worker count below one is clamped to a single
// worker, which degenerates to a sequential loop and keeps the default
// single-threaded tick deterministic.
func task[T any](workersCount int, data []T, fn func(data T)) {
	if workersCount < 1 {
		workersCount = 1
	}

	var wg sync.WaitGroup
	dataSize := len(data)
	chunkSize := (dataSize + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(data[i])
			}
		}(workerID*chunkSize, min((workerID+1)*chunkSize, dataSize))
	}
	wg.Wait()
}
