package core

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestSchedulerRunsEveryJobOncePerPattern(t *testing.T) {
	chunks := Partition(256, 192, 32)
	patterns := Patterns(chunks)

	var mu sync.Mutex
	counts := map[Chunk]int{}
	s := NewScheduler(4, func(worker int, ch Chunk) {
		mu.Lock()
		counts[ch]++
		mu.Unlock()
	})
	defer s.Close()

	s.RunCycle(patterns)
	for _, ch := range chunks {
		if counts[ch] != 2 {
			t.Fatalf("chunk %+v ran %d times, want 2", ch, counts[ch])
		}
	}
	if got := s.Processed(); got != uint64(2*len(chunks)) {
		t.Fatalf("processed = %d, want %d", got, 2*len(chunks))
	}
	if st := s.Status(); st != StatusWaitingOnNextFrame {
		t.Fatalf("status after cycle = %s", st)
	}
}

func TestSchedulerNeverRunsTouchingChunksTogether(t *testing.T) {
	patterns := Patterns(Partition(512, 512, 32))

	var mu sync.Mutex
	active := map[Chunk]bool{}
	var violations atomic.Int32
	var maxWorker atomic.Int32
	s := NewScheduler(6, func(worker int, ch Chunk) {
		if int32(worker) > maxWorker.Load() {
			maxWorker.Store(int32(worker))
		}
		mu.Lock()
		for other := range active {
			if other.Touches(ch) {
				violations.Add(1)
			}
		}
		active[ch] = true
		mu.Unlock()

		sum := 0
		for i := 0; i < 2000; i++ {
			sum += i
		}
		_ = sum

		mu.Lock()
		delete(active, ch)
		mu.Unlock()
	})
	defer s.Close()

	for i := 0; i < 20; i++ {
		s.RunCycle(patterns)
	}
	if v := violations.Load(); v != 0 {
		t.Fatalf("%d touching chunks ran concurrently", v)
	}
	if w := maxWorker.Load(); int(w) >= s.Workers() {
		t.Fatalf("worker index %d outside pool of %d", w, s.Workers())
	}
}

func TestSchedulerPatternsAreBarriers(t *testing.T) {
	patterns := Patterns(Partition(256, 256, 32))
	var mu sync.Mutex
	current := -1
	bad := false
	s := NewScheduler(3, func(worker int, ch Chunk) {
		mu.Lock()
		defer mu.Unlock()
		found := false
		for _, c := range patterns[current] {
			if c == ch {
				found = true
				break
			}
		}
		if !found {
			bad = true
		}
	})
	defer s.Close()

	for i, batch := range patterns {
		mu.Lock()
		current = i
		mu.Unlock()
		s.RunPattern(batch)
	}
	if bad {
		t.Fatal("a job from one pattern ran while the next pattern was active")
	}
}

func TestSchedulerInline(t *testing.T) {
	patterns := Patterns(Partition(64, 64, 16))
	workers := map[int]bool{}
	n := 0
	s := NewScheduler(0, func(worker int, ch Chunk) {
		workers[worker] = true
		n++
	})
	defer s.Close()
	s.RunCycle(patterns)
	if n != 2*16 {
		t.Fatalf("inline scheduler ran %d jobs, want 32", n)
	}
	if len(workers) != 1 || !workers[0] || s.Workers() != 1 {
		t.Fatalf("inline jobs ran on workers %v", workers)
	}
}

func TestSchedulerCloseIsIdempotent(t *testing.T) {
	s := NewScheduler(2, func(int, Chunk) {})
	s.Close()
	s.Close()
	s.RunPattern([]Chunk{{}})
	if s.Processed() != 0 {
		t.Fatal("closed scheduler ran a job")
	}
}

func TestDefaultWorkers(t *testing.T) {
	if n := DefaultWorkers(); n < 0 {
		t.Fatalf("DefaultWorkers = %d", n)
	}
}
