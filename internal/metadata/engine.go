package metadata

import (
	"context"
	"sync"

	csmap "github.com/mhmtszr/concurrent-swiss-map"
	"github.com/sourcegraph/conc"

	"github.com/sidecarr/sidecarr/internal/movie"
)

// Job pairs a resolved movie with the media file its sidecars describe.
type Job struct {
	Movie *movie.Movie
	File  *MovieFile
}

// Result is the complete sidecar output for one movie. Description and
// Images are only populated together: a movie is reported once both halves
// have finished.
type Result struct {
	Movie       *movie.Movie
	Description *MetadataFileResult
	Images      []ImageFileResult
	Err         error
}

// Engine generates sidecar metadata for many movies concurrently. Movies are
// independent of each other; within one movie the description document and
// the image sidecars are produced concurrently.
type Engine struct {
	consumer    Consumer
	workerCount int
	results     *csmap.CsMap[int, *Result]
}

// NewEngine creates an engine running at most workerCount movies at a time.
func NewEngine(consumer Consumer, workerCount int) *Engine {
	if workerCount <= 0 {
		workerCount = 8
	}
	return &Engine{
		consumer:    consumer,
		workerCount: workerCount,
		results: csmap.Create[int, *Result](
			csmap.WithSize[int, *Result](64),
		),
	}
}

// Run processes all jobs and returns one result per job, in input order.
func (e *Engine) Run(ctx context.Context, jobs []Job) []Result {
	workerCount := min(e.workerCount, len(jobs))
	workCh := make(chan Job)

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go e.worker(ctx, &wg, workCh)
	}

	for _, job := range jobs {
		select {
		case workCh <- job:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(workCh)
	wg.Wait()

	results := make([]Result, 0, len(jobs))
	for _, job := range jobs {
		if r, ok := e.results.Load(job.Movie.TmdbID); ok {
			results = append(results, *r)
		}
	}
	return results
}

func (e *Engine) worker(ctx context.Context, wg *sync.WaitGroup, workCh <-chan Job) {
	defer wg.Done()
	for job := range workCh {
		e.process(ctx, job)
	}
}

// process produces both halves of a movie's sidecar output. The result is
// stored only after both have completed.
func (e *Engine) process(ctx context.Context, job Job) {
	result := &Result{Movie: job.Movie}

	var descErr, imgErr error
	var cwg conc.WaitGroup
	cwg.Go(func() {
		result.Description, descErr = e.consumer.MovieMetadata(ctx, job.Movie, job.File)
	})
	cwg.Go(func() {
		result.Images, imgErr = e.consumer.MovieImages(ctx, job.Movie, job.File)
	})
	cwg.Wait()

	if descErr != nil {
		result.Err = descErr
	} else if imgErr != nil {
		result.Err = imgErr
	}

	e.results.Store(job.Movie.TmdbID, result)
}
