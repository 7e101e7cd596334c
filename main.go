package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/broadphase/audio"
	"github.com/lixenwraith/broadphase/engine"
	"github.com/lixenwraith/broadphase/journal"
	"github.com/lixenwraith/broadphase/render"
	"github.com/lixenwraith/broadphase/scene"
)

const (
	scenesDir      = "scenes"
	snapshotPPU    = 8.0
	frameInterval  = 16 * time.Millisecond // ~60 FPS redraw
	defaultVolume  = 0.4
	eventQueueSize = 100
)

var (
	sceneFlag    = flag.String("scene", "", "Scene TOML file, or a name under scenes/")
	scaleFlag    = flag.Float64("scale", 0, "Override grid scale in cells per world unit")
	debugFlag    = flag.Bool("debug", false, "Write logs to logs/broadphase.log")
	muteFlag     = flag.Bool("mute", false, "Disable audio")
	recordFlag   = flag.String("record", "", "Record collider changes to a journal file")
	replayFlag   = flag.String("replay", "", "Replay a journal into a fresh index, print stats and exit")
	snapshotFlag = flag.String("snapshot", "", "Run headless for -frames ticks, write a PNG and exit")
	framesFlag   = flag.Int("frames", 120, "Ticks to run before a headless snapshot")
)

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "broadphase: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *replayFlag != "" {
		return replay(*replayFlag, os.Stdout)
	}

	sc, err := loadScene(*sceneFlag)
	if err != nil {
		return err
	}
	if *scaleFlag > 0 {
		sc.Scale = *scaleFlag
	}

	var record io.Writer
	if *recordFlag != "" {
		f, err := os.Create(*recordFlag)
		if err != nil {
			return err
		}
		defer f.Close()
		record = f
	}

	if *snapshotFlag != "" {
		return headless(sc, record, *framesFlag, *snapshotFlag)
	}
	return interactive(sc, record)
}

// loadScene resolves a path, a stored scene name, or the built-in default
func loadScene(ref string) (scene.Scene, error) {
	if ref == "" {
		return scene.Default(), nil
	}
	if filepath.Ext(ref) == ".toml" {
		return scene.Load(ref)
	}
	return scene.NewManager(scenesDir).Load(ref)
}

func headless(sc scene.Scene, record io.Writer, frames int, out string) error {
	sb, err := newSandbox(sc, record, nil)
	if err != nil {
		return err
	}
	for range frames {
		sb.Step()
	}
	log.Printf("headless run: %s", sb.Status())
	if err := sb.WriteSnapshot(out, snapshotPPU); err != nil {
		return err
	}
	return sb.Close()
}

// replay rebuilds the index from a journal at its recorded scale
func replay(path string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header, err := journal.NewReader(f).ReadHeader()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}

	scale := header.Scale
	if *scaleFlag > 0 {
		scale = *scaleFlag
	}
	lookup, err := engine.NewColliderLookup(scale, journal.Tick{})
	if err != nil {
		return err
	}

	start := time.Now()
	ticks, err := journal.Replay(f, lookup)
	if err != nil {
		return fmt.Errorf("%s: after %d ticks: %w", path, ticks, err)
	}
	g := lookup.Grid()
	fmt.Fprintf(out, "journal v%d recorded %s\n", header.Version, header.Created.Format(time.RFC3339))
	fmt.Fprintf(out, "ticks %d in %v\n", ticks, time.Since(start).Round(time.Microsecond))
	fmt.Fprintf(out, "entities %d  cells %d  free %d  scale %g\n", g.Len(), g.CellCount(), g.FreeCount(), g.Scale())
	return nil
}

func interactive(sc scene.Scene, record io.Writer) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	var sound *audio.SoundManager
	if !*muteFlag {
		sound = audio.NewSoundManager(defaultVolume)
		if err := sound.Initialize(); err != nil {
			// Non-fatal, sandbox runs without sound
			log.Printf("Audio initialization failed: %v", err)
		}
		defer sound.Cleanup()
	}

	sb, err := newSandbox(sc, record, sound)
	if err != nil {
		return err
	}
	defer func() {
		if err := sb.Close(); err != nil {
			log.Printf("journal flush failed: %v", err)
		}
	}()

	renderer := render.NewTerminalRenderer(screen)
	loop(screen, sb, renderer, sc.TickDuration())
	return nil
}

func loop(screen tcell.Screen, sb *Sandbox, renderer *render.TerminalRenderer, tick time.Duration) {
	stepTicker := time.NewTicker(tick)
	defer stepTicker.Stop()
	drawTicker := time.NewTicker(frameInterval)
	defer drawTicker.Stop()

	eventChan := make(chan tcell.Event, eventQueueSize)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !handleInput(ev, sb, renderer, screen) {
				return
			}
		case <-stepTicker.C:
			sb.Step()
		case <-drawTicker.C:
			renderer.RenderFrame(sb.Frame())
		}
	}
}

// handleInput returns false when the sandbox should exit
func handleInput(ev tcell.Event, sb *Sandbox, renderer *render.TerminalRenderer, screen tcell.Screen) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			sb.TogglePause()
		case 'g':
			renderer.ShowGrid = !renderer.ShowGrid
		case '+', '=':
			sb.Spawn()
		case '-':
			sb.Despawn()
		case 'p':
			path := fmt.Sprintf("broadphase-%d.png", sb.frame)
			if err := sb.WriteSnapshot(path, snapshotPPU); err != nil {
				log.Printf("snapshot failed: %v", err)
			} else {
				log.Printf("snapshot written to %s", path)
			}
		}
	case *tcell.EventResize:
		screen.Sync()
	}
	return true
}
