package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"golang.org/x/sync/errgroup"

	"mad-sand/internal/sims/sand"
	"mad-sand/internal/telemetry"
)

type benchOptions struct {
	scenes    []string
	steps     int
	parallel  int
	every     int
	world     map[string]string
	telemetry string
}

type sceneResult struct {
	scene    string
	steps    int
	elapsed  time.Duration
	updated  uint64
	burning  int
	census   sand.Census
	workers  int
	records  int
	recordTo string
}

func (r sceneResult) ticksPerSecond() float64 {
	if r.elapsed <= 0 {
		return 0
	}
	return float64(r.steps) / r.elapsed.Seconds()
}

type sceneBuilder func(name string, opts map[string]string) (*sand.World, error)

// runBench runs every scene for opts.steps ticks, at most opts.parallel at a
// time. Results come back sorted by scene name.
func runBench(ctx context.Context, opts benchOptions, build sceneBuilder) ([]sceneResult, error) {
	results := make([]sceneResult, len(opts.scenes))
	g, ctx := errgroup.WithContext(ctx)
	if opts.parallel > 0 {
		g.SetLimit(opts.parallel)
	}
	for i, name := range opts.scenes {
		g.Go(func() error {
			res, err := runScene(ctx, name, opts, build)
			if err != nil {
				return fmt.Errorf("scene %s: %w", name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(results, func(a, b int) bool { return results[a].scene < results[b].scene })
	return results, nil
}

func runScene(ctx context.Context, name string, opts benchOptions, build sceneBuilder) (sceneResult, error) {
	w, err := build(name, opts.world)
	if err != nil {
		return sceneResult{}, err
	}
	defer w.Close()

	res := sceneResult{scene: name, workers: w.Workers()}
	var tw *telemetry.Writer
	var self *process.Process
	if opts.telemetry != "" {
		tw = telemetry.NewWriter(filepath.Join(opts.telemetry, name+".jsonl.zst"))
		res.recordTo = tw.Path()
		// Close is idempotent.
		defer tw.Close()
		self, _ = currentProcess()
	}

	start := time.Now()
	for i := 0; i < opts.steps; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		w.Step()
		res.steps++
		if tw != nil && opts.every > 0 && res.steps%opts.every == 0 {
			rec := telemetry.Snapshot(w, time.Since(start))
			if u, err := sampleProcess(self); err == nil {
				rec.CPUPercent = u.cpuPercent
				rec.RSSBytes = u.rssBytes
			}
			if err := tw.Write(rec); err != nil {
				return res, err
			}
			res.records++
		}
	}
	res.elapsed = time.Since(start)
	res.updated = w.Updated()
	res.burning = w.Burning()
	res.census = w.Census()
	if tw != nil {
		if err := tw.Close(); err != nil {
			return res, err
		}
	}
	return res, nil
}

type processUsage struct {
	cpuPercent float64
	rssBytes   uint64
}

func currentProcess() (*process.Process, error) {
	return process.NewProcess(int32(os.Getpid()))
}

func sampleProcess(p *process.Process) (processUsage, error) {
	if p == nil {
		return processUsage{}, errors.New("no process handle")
	}
	var u processUsage
	var err error
	if u.cpuPercent, err = p.CPUPercent(); err != nil {
		return u, err
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		return u, err
	}
	u.rssBytes = mem.RSS
	return u, nil
}
