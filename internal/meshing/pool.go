package meshing

import (
	"context"
	"sync"

	"worldcraft/internal/world"
)

// buildJob asks a worker for a full build of one chunk.
type buildJob struct {
	world *world.World
	chunk *world.Chunk
}

// buildResult reports one finished job.
type buildResult struct {
	coord    world.ChunkCoord
	vertices int
	err      error
}

// buildPool runs full chunk builds on a fixed set of goroutines. Each chunk
// is submitted once, so each chunk's buffers have a single writer.
type buildPool struct {
	ctx     context.Context
	mesher  *Mesher
	jobs    chan buildJob
	results chan buildResult
	wg      sync.WaitGroup
}

// startBuildPool starts workers goroutines. capacity bounds both queues and
// must cover every job that will be submitted, so workers never block on
// results.
func startBuildPool(ctx context.Context, m *Mesher, workers, capacity int) *buildPool {
	p := &buildPool{
		ctx:     ctx,
		mesher:  m,
		jobs:    make(chan buildJob, capacity),
		results: make(chan buildResult, capacity),
	}
	p.wg.Add(max(workers, 1))
	for i := 0; i < max(workers, 1); i++ {
		go p.work()
	}
	return p
}

func (p *buildPool) work() {
	defer p.wg.Done()
	for job := range p.jobs {
		r := buildResult{coord: job.chunk.Coord()}
		if err := p.ctx.Err(); err != nil {
			r.err = err
		} else {
			r.vertices = p.mesher.Build(job.world, job.chunk)
		}
		p.results <- r
	}
}

// submit queues job. It reports false once the context is done.
func (p *buildPool) submit(job buildJob) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobs <- job:
		return true
	case <-p.ctx.Done():
		return false
	}
}

// close stops accepting jobs and waits for the workers to drain the queue.
func (p *buildPool) close() {
	close(p.jobs)
	p.wg.Wait()
}
