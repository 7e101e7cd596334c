package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/lixenwraith/broadphase/collision"
	"github.com/lixenwraith/broadphase/core"
	"github.com/lixenwraith/broadphase/engine"
	"github.com/lixenwraith/broadphase/vmath"
)

var (
	duration = flag.Duration("duration", 5*time.Second, "Benchmark duration")
	bodies   = flag.Int("bodies", 2000, "Number of moving bodies")
	scale    = flag.Float64("scale", 0.25, "Grid scale in cells per world unit")
	arena    = flag.Float64("arena", 500, "Arena side length in world units")
	seed     = flag.Uint64("seed", 1, "Random seed")
)

type body struct {
	shape    collision.Shape
	velocity vmath.Vec2
}

func main() {
	flag.Parse()

	grid, err := engine.NewCacheGrid(*scale)
	if err != nil {
		fmt.Fprintf(os.Stderr, "grid-benchmark: %v\n", err)
		os.Exit(1)
	}

	stop := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		close(stop)
	}()

	rng := vmath.NewFastRand(*seed)
	world := make([]body, *bodies)
	for i := range world {
		size := vmath.V2(rng.Range(0.5, 3), rng.Range(0.5, 3))
		origin := rng.V2In(size, vmath.V2Sub(vmath.V2(*arena, *arena), size))
		world[i] = body{
			shape:    collision.NewEllipse(origin, size),
			velocity: vmath.V2(rng.Range(-1, 1), rng.Range(-1, 1)),
		}
		grid.Update(core.Entity(i+1), world[i].shape)
	}

	var (
		frames      int64
		candidates  int64
		updateTotal time.Duration
		queryTotal  time.Duration
	)
	dst := make(engine.EntitySet)
	start := time.Now()

loop:
	for time.Since(start) < *duration {
		select {
		case <-stop:
			break loop
		default:
		}

		// 1. Update phase
		t0 := time.Now()
		for i := range world {
			b := &world[i]
			b.shape = b.shape.Translated(b.velocity)
			if o := b.shape.Origin; o.X < 0 || o.Y < 0 || o.X > *arena || o.Y > *arena {
				b.velocity = vmath.V2Neg(b.velocity)
			}
			grid.Update(core.Entity(i+1), b.shape)
		}
		updateTotal += time.Since(t0)

		// 2. Query phase
		t0 = time.Now()
		for i := range world {
			x, y := world[i].shape.ProjectAligned()
			clear(dst)
			grid.QueryInto(dst, collision.Smear(x, world[i].velocity.X), collision.Smear(y, world[i].velocity.Y))
			candidates += int64(len(dst))
		}
		queryTotal += time.Since(t0)

		frames++
	}

	elapsed := time.Since(start)
	if frames == 0 {
		frames = 1
	}

	fmt.Printf("Benchmark Results:\n")
	fmt.Printf("  Bodies:         %d\n", *bodies)
	fmt.Printf("  Scale:          %g (arena %gx%g)\n", *scale, *arena, *arena)
	fmt.Printf("  Total Frames:   %d\n", frames)
	fmt.Printf("  Total Time:     %v\n", elapsed)
	fmt.Printf("  Avg FPS:        %.2f\n", float64(frames)/elapsed.Seconds())
	fmt.Printf("  Avg Update:     %v\n", updateTotal/time.Duration(frames))
	fmt.Printf("  Avg Query:      %v\n", queryTotal/time.Duration(frames))
	fmt.Printf("  Avg Candidates: %.2f per body\n", float64(candidates)/float64(frames)/float64(max(1, *bodies)))
	fmt.Printf("  Cells:          %d (free %d)\n", grid.CellCount(), grid.FreeCount())

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fmt.Printf("  Total Alloc:    %d bytes\n", m.TotalAlloc)
	fmt.Printf("  Mallocs:        %d\n", m.Mallocs)
}
