package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"mad-sand/internal/element"
	"mad-sand/internal/scenes"
	"mad-sand/internal/sims/sand"
	"mad-sand/internal/telemetry"
)

func main() {
	logger := log.New(os.Stderr, "[sand-bench] ", log.LstdFlags|log.Lmicroseconds)

	sceneList := flag.String("scenes", strings.Join(scenes.Names(), ","), "comma separated scenes to run")
	steps := flag.Int("steps", 600, "ticks to simulate per scene")
	parallel := flag.Int("parallel", 1, "scenes to run at the same time")
	workers := flag.Int("workers", -1, "chunk workers per world (negative picks one per core)")
	width := flag.Int("w", 640, "grid width")
	height := flag.Int("h", 384, "grid height")
	configPath := flag.String("config", "", "YAML world config")
	telemetryDir := flag.String("telemetry", "", "directory for per-scene tick records")
	every := flag.Int("every", 10, "ticks between telemetry records")
	replay := flag.String("replay", "", "summarise a telemetry file and exit")
	flag.Parse()

	if *replay != "" {
		if err := summarise(*replay); err != nil {
			logger.Fatal(err)
		}
		return
	}

	opts := benchOptions{
		scenes:    splitList(*sceneList),
		steps:     *steps,
		parallel:  *parallel,
		every:     *every,
		telemetry: *telemetryDir,
		world:     worldOptions(flag.CommandLine, *configPath, *width, *height, *workers),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Printf("running %d scenes for %d steps (%d at a time)", len(opts.scenes), opts.steps, opts.parallel)
	results, err := runBench(ctx, opts, buildScene)
	if err != nil {
		logger.Fatal(err)
	}
	for _, r := range results {
		fmt.Printf("%-10s %6d ticks %8.1f ticks/s  workers=%d  updated=%d  burning=%d  %s\n",
			r.scene, r.steps, r.ticksPerSecond(), r.workers, r.updated, r.burning, censusLine(r.census))
		if r.recordTo != "" {
			fmt.Printf("%-10s %d records -> %s\n", "", r.records, r.recordTo)
		}
	}
	self, err := currentProcess()
	if err != nil {
		logger.Printf("process stats unavailable: %v", err)
		return
	}
	usage, err := sampleProcess(self)
	if err != nil {
		logger.Printf("process stats unavailable: %v", err)
		return
	}
	fmt.Printf("cpu=%.1f%% rss=%.1fMiB\n", usage.cpuPercent, float64(usage.rssBytes)/(1<<20))
}

// worldOptions builds the world option map. Grid size and workers are only
// passed when set on the command line, so a -config file can supply them.
func worldOptions(fs *flag.FlagSet, configPath string, width, height, workers int) map[string]string {
	opts := map[string]string{}
	if configPath != "" {
		opts["config"] = configPath
	} else {
		opts["w"] = strconv.Itoa(width)
		opts["h"] = strconv.Itoa(height)
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "w":
			opts["w"] = strconv.Itoa(width)
		case "h":
			opts["h"] = strconv.Itoa(height)
		case "workers":
			opts["workers"] = strconv.Itoa(workers)
		}
	})
	return opts
}

func buildScene(name string, opts map[string]string) (*sand.World, error) {
	scene, ok := scenes.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (have %v)", name, scenes.Names())
	}
	return sand.New(opts, name, scene)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func censusLine(c sand.Census) string {
	var parts []string
	for _, e := range element.All() {
		if e == element.Air || c.Of(e) == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%d", e, c.Of(e)))
	}
	return strings.Join(parts, " ")
}

func summarise(path string) error {
	recs, err := telemetry.ReadRecords(path)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Printf("%s: no records\n", path)
		return nil
	}
	first, last := recs[0], recs[len(recs)-1]
	fmt.Printf("%s: scene=%s records=%d ticks %d..%d\n", path, last.Scene, len(recs), first.Tick, last.Tick)
	peak := 0
	for _, r := range recs {
		peak = max(peak, r.Burning)
	}
	fmt.Printf("peak burning=%d final census=%v\n", peak, last.Census)
	if last.Elapsed > 0 {
		fmt.Printf("average %.1f ticks/s\n", float64(last.Tick)/last.Elapsed.Seconds())
	}
	return nil
}
