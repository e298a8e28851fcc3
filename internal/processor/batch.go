package processor

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"
)

type indexedJob struct {
	index int
	job   Job
}

type indexedResult struct {
	index  int
	result Result
}

// ProcessBatch converts jobs with a pool of concurrency workers. Results keep
// the order of jobs.
func ProcessBatch(client *http.Client, list []Job, concurrency int, opts Options) []Result {
	if concurrency <= 0 {
		concurrency = 1
	}
	if concurrency > len(list) {
		concurrency = len(list)
	}

	jobs := make(chan indexedJob, len(list))
	results := make(chan indexedResult, len(list))

	go func() {
		for i, j := range list {
			jobs <- indexedJob{index: i, job: j}
		}
		close(jobs)
	}()

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				res := Convert(client, j.job, opts)
				if res.Err != nil {
					log.Error().
						Err(res.Err).
						Str("input", j.job.Input).
						Msg("Failed to convert geometry")
				}
				results <- indexedResult{index: j.index, result: res}
			}
		}()
	}
	wg.Wait()
	close(results)

	out := make([]Result, len(list))
	for res := range results {
		out[res.index] = res.result
	}

	var failed, skipped int
	for _, r := range out {
		switch {
		case r.Err != nil:
			failed++
		case r.Skipped:
			skipped++
		}
	}
	log.Info().
		Int("total", len(list)).
		Int("failed", failed).
		Int("skipped", skipped).
		Msg("Batch processed")

	return out
}
