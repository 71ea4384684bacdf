// Command sand-term runs the sand world in a terminal. Each character cell
// shows two grid rows using a half block.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"

	"mad-sand/internal/element"
	"mad-sand/internal/scenes"
	"mad-sand/internal/sims/sand"
)

func main() {
	logger := log.New(os.Stderr, "[sand-term] ", log.LstdFlags|log.Lmicroseconds)

	sceneName := flag.String("scene", "sandbox", "scene to load")
	configPath := flag.String("config", "", "YAML world config")
	workers := flag.Int("workers", -1, "chunk workers (negative picks one per core)")
	seed := flag.Int64("seed", 42, "random seed")
	fps := flag.Int("fps", 30, "redraws per second")
	flag.Parse()

	scene, ok := scenes.Lookup(*sceneName)
	if !ok {
		logger.Fatalf("unknown scene %q (have %v)", *sceneName, scenes.Names())
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		logger.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		logger.Fatal(err)
	}
	screen.EnableMouse()
	cols, rows := screen.Size()

	opts := map[string]string{
		"w":         strconv.Itoa(max(cols, 32)),
		"h":         strconv.Itoa(max((rows-1)*2, 32)),
		"cell_size": "20",
		"seed":      strconv.FormatInt(*seed, 10),
	}
	if *configPath != "" {
		opts["config"] = *configPath
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "workers" {
			opts["workers"] = strconv.Itoa(*workers)
		}
	})
	w, err := sand.New(opts, *sceneName, scene)
	if err != nil {
		screen.Fini()
		logger.Fatal(err)
	}
	defer w.Close()

	t := &term{screen: screen, world: w, view: newView(w)}
	t.run(time.Second / time.Duration(max(*fps, 1)))
	screen.Fini()
	fmt.Printf("%s stopped at tick %d\n", w.Name(), w.Tick())
}

type term struct {
	screen tcell.Screen
	world  *sand.World
	view   *view
	paused bool
}

func (t *term) run(frame time.Duration) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			if !t.handle(ev) {
				return
			}
		case now := <-ticker.C:
			if !t.paused {
				t.world.Advance(now.Sub(last))
			}
			last = now
			t.view.draw(t.screen)
		}
	}
}

func (t *term) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			return t.handleRune(ev.Rune())
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		gx, gy := t.view.gridAt(x, y)
		b := t.world.Brush()
		switch {
		case ev.Buttons()&tcell.Button1 != 0:
			t.world.Paint(b.Element, gx, gy, b.Radius)
		case ev.Buttons()&tcell.Button2 != 0:
			t.world.Paint(element.Air, gx, gy, b.Radius)
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *term) handleRune(r rune) bool {
	b := t.world.Brush()
	switch r {
	case 'q':
		return false
	case ' ':
		t.paused = !t.paused
	case 'r':
		t.world.Reset(0)
	case '+', '=':
		b.Radius++
	case '-':
		b.Radius--
	case '\t':
		b.Element = element.Element((int(b.Element) + 1) % element.Count)
	default:
		if e, ok := elementForKey(r); ok {
			b.Element = e
		}
	}
	t.world.SetBrush(b)
	return true
}
