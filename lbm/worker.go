package lbm

import "sync"

// rowJob processes one row mask. Jobs of a single run must only write
// cells of their own row.
type rowJob func(row rowMask)

// workerPool runs row jobs on persistent goroutines. A pool of one worker
// runs jobs inline on the caller's goroutine.
type workerPool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	count   int
	step    int
	pending int
	masks   []workerMask
	job     rowJob
	started bool
	closed  bool
}

// newWorkerPool constructs a pool; goroutines are launched on first use.
func newWorkerPool(count int) *workerPool {
	if count < 1 {
		count = 1
	}
	p := &workerPool{count: count}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// split distributes rows across the pool's workers.
func (p *workerPool) split(rows []rowMask) []workerMask {
	return assignRowMasks(p.count, rows)
}

// run executes job over every row of masks and returns once all workers
// have finished.
func (p *workerPool) run(masks []workerMask, job rowJob) {
	if p.count == 1 {
		for _, mask := range masks {
			for _, row := range mask.rows {
				job(row)
			}
		}
		return
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.startLocked()
	p.masks = masks
	p.job = job
	p.pending = p.count
	p.step++
	p.cond.Broadcast()
	for p.pending > 0 {
		p.cond.Wait()
	}
	p.masks = nil
	p.job = nil
	p.mu.Unlock()
}

// startLocked launches the background goroutines. p.mu must be held.
func (p *workerPool) startLocked() {
	if p.started {
		return
	}
	p.started = true
	for i := 0; i < p.count; i++ {
		go p.loop(i, p.step)
	}
}

// loop waits for a new step, processes the worker's mask and reports back.
func (p *workerPool) loop(index, lastStep int) {
	p.mu.Lock()
	for {
		for p.step == lastStep && !p.closed {
			p.cond.Wait()
		}
		if p.closed {
			p.mu.Unlock()
			return
		}
		lastStep = p.step
		var mask workerMask
		if index < len(p.masks) {
			mask = p.masks[index]
		}
		job := p.job
		p.mu.Unlock()

		for _, row := range mask.rows {
			job(row)
		}

		p.mu.Lock()
		p.pending--
		if p.pending == 0 {
			p.cond.Broadcast()
		}
	}
}

// close stops the worker goroutines.
func (p *workerPool) close() {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()
}
