package core

import (
	"sync"
	"sync/atomic"
)

// Status is the scheduler's coarse state, shared with the worker pool.
type Status int32

const (
	// StatusWaitingOnNextFrame means a full cycle finished and the pool is
	// idle until the driver starts the next accumulator step.
	StatusWaitingOnNextFrame Status = iota
	// StatusWaitingOnJobs means the queue drained inside a cycle; the driver
	// is waiting for in-flight jobs before queueing the next batch.
	StatusWaitingOnJobs
	// StatusReady means jobs are queued and workers should drain them.
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusWaitingOnNextFrame:
		return "waiting-on-next-frame"
	case StatusWaitingOnJobs:
		return "waiting-on-jobs"
	case StatusReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Job processes one chunk. worker identifies the calling goroutine so the
// job can use per-worker scratch state; it is always in [0, Workers()).
type Job func(worker int, ch Chunk)

// Scheduler drives a fixed pool of worker goroutines over batches of chunks.
// Only one batch is queued at a time and RunPattern does not return until
// every job of the batch has finished, so callers that only ever queue
// non-touching chunks get race-free access to the shared grid.
type Scheduler struct {
	job     Job
	workers int

	mu        sync.Mutex
	cond      *sync.Cond
	queue     []Chunk
	status    Status
	remaining int

	processed atomic.Uint64
	shutdown  atomic.Bool
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewScheduler starts workers goroutines that run job. With zero workers
// every batch runs inline on the caller's goroutine.
func NewScheduler(workers int, job Job) *Scheduler {
	if workers < 0 {
		workers = 0
	}
	s := &Scheduler{job: job, workers: workers}
	s.cond = sync.NewCond(&s.mu)
	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go s.work(i)
	}
	return s
}

// Workers reports the number of worker slots (at least one).
func (s *Scheduler) Workers() int {
	if s.workers == 0 {
		return 1
	}
	return s.workers
}

// Status reports the current scheduler state.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Processed reports how many chunk jobs have completed since creation.
func (s *Scheduler) Processed() uint64 { return s.processed.Load() }

// RunCycle runs every batch in order, waiting for each to finish before
// queueing the next.
func (s *Scheduler) RunCycle(batches [PatternCount][]Chunk) {
	for _, batch := range batches {
		s.RunPattern(batch)
	}
	s.setStatus(StatusWaitingOnNextFrame)
}

// RunPattern queues one batch and blocks until all of its jobs are done.
func (s *Scheduler) RunPattern(batch []Chunk) {
	if len(batch) == 0 || s.shutdown.Load() {
		return
	}
	if s.workers == 0 {
		s.setStatus(StatusReady)
		for _, ch := range batch {
			s.run(0, ch)
		}
		s.setStatus(StatusWaitingOnJobs)
		return
	}

	s.mu.Lock()
	s.queue = append(s.queue[:0], batch...)
	s.remaining = len(batch)
	s.status = StatusReady
	s.cond.Broadcast()
	for s.remaining > 0 {
		s.cond.Wait()
	}
	s.mu.Unlock()
}

// Close stops the worker pool and waits for the goroutines to exit. It must
// not be called while RunPattern is in progress.
func (s *Scheduler) Close() {
	s.closeOnce.Do(func() {
		s.shutdown.Store(true)
		s.mu.Lock()
		s.cond.Broadcast()
		s.mu.Unlock()
		s.wg.Wait()
	})
}

func (s *Scheduler) work(id int) {
	defer s.wg.Done()
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		for !s.shutdown.Load() && (s.status != StatusReady || len(s.queue) == 0) {
			s.cond.Wait()
		}
		if s.shutdown.Load() {
			return
		}
		last := len(s.queue) - 1
		ch := s.queue[last]
		s.queue = s.queue[:last]
		if last == 0 {
			s.status = StatusWaitingOnJobs
		}
		s.mu.Unlock()

		s.run(id, ch)

		s.mu.Lock()
		s.remaining--
		if s.remaining == 0 {
			s.cond.Broadcast()
		}
	}
}

func (s *Scheduler) run(worker int, ch Chunk) {
	s.job(worker, ch)
	s.processed.Add(1)
}

func (s *Scheduler) setStatus(st Status) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
}
