// Command gridboxdemo runs a slab-cached stencil sweep over a structured
// grid and reports summary statistics of the result.
//
// The demo builds a source array, mirrors it to the active device allocator,
// sweeps it along the x direction with a three-slab sliding window, and
// writes the smoothed field back. Grid dimensions come from flags or an
// optional JSONC config file.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"
	"github.com/tailscale/hujson"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/gogpu/gridbox"
	_ "github.com/gogpu/gridbox/backend/wgpu"
	"github.com/gogpu/gridbox/device"
)

// config holds the demo's grid parameters.
type config struct {
	Nx     int `json:"nx"`
	Ny     int `json:"ny"`
	Nz     int `json:"nz"`
	Window int `json:"window"`
}

func defaultConfig() config {
	return config{Nx: 64, Ny: 8, Nz: 4, Window: 3}
}

// loadConfig reads a JSONC config file over the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return cfg, fmt.Errorf("invalid JSONC: %w", err)
	}
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid JSON: %w", err)
	}
	return cfg, nil
}

func main() {
	var (
		configPath = flag.String("config", "", "JSONC config file")
		snapshot   = flag.String("snapshot", "", "write compressed result snapshot to this file")
		verbose    = flag.BoolP("verbose", "v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	gridbox.SetLogger(logger)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("config load failed", "err", err)
		os.Exit(1)
	}
	if err := run(cfg, *snapshot, logger); err != nil {
		logger.Error("demo failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg config, snapshotPath string, logger *slog.Logger) error {
	if cfg.Window < 3 || cfg.Window > device.MaxSlabs {
		return fmt.Errorf("window must be in [3,%d], got %d", device.MaxSlabs, cfg.Window)
	}
	box := gridbox.NewBox(
		gridbox.MakeCoord(0, 0, 0),
		gridbox.MakeCoord(cfg.Nx-1, cfg.Ny-1, cfg.Nz-1),
	)
	logger.Info("sweeping", "box", box.String(), "allocator", gridbox.ActiveAllocator().Name())

	// Source field: a ramp with a bump, one component.
	src := gridbox.NewArray[float64](box, 1)
	for it := gridbox.NewBoxIter(box); it.Ok(); it.Next() {
		c := it.Coord()
		v := float64(c[0]) + 0.25*float64(c[1]-c[2])
		if c[0]%7 == 0 {
			v += 3
		}
		src.Set(c, 0, v)
	}
	out := gridbox.NewArray[float64](box, 1)

	for _, a := range []*gridbox.Array[float64]{src, out} {
		if err := a.EnableMirror(); err != nil {
			return err
		}
		defer a.Release()
	}
	if err := src.CopyToDevice(); err != nil {
		return err
	}

	srcView, err := device.ViewOf(src)
	if err != nil {
		return err
	}
	outView, err := device.ViewOf(out)
	if err != nil {
		return err
	}

	if err := sweep(srcView, outView, cfg.Window); err != nil {
		return err
	}
	if err := out.CopyToHost(); err != nil {
		return err
	}

	report(out.Data())

	if snapshotPath != "" {
		f, err := os.Create(snapshotPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := out.WriteSnapshot(f, box, 0, 0); err != nil {
			return err
		}
		logger.Info("snapshot written", "path", snapshotPath)
	}
	return nil
}

// sweep smooths the x direction with a three-point average, keeping only a
// sliding window of x slabs resident. One worker per (y,z) line.
func sweep(src, out *device.View[float64], window int) error {
	box := src.Box()
	nx := box.HiDir(0) - box.LoDir(0) + 1
	if nx < window {
		return fmt.Errorf("grid too thin for window: %d < %d", nx, window)
	}
	points := box.Size() / nx
	buf := make([]float64, window*points)

	var cache device.SlabCache[float64]
	group := device.NewGroup(points)
	group.Run(func(w *device.Worker) {
		lo, hi := box.LoDir(0), box.HiDir(0)
		winHi := lo + window - 1
		work := cache.Define(w, src, 0, lo, winHi, 1, 0, buf)

		for x := lo + 1; x < hi; x++ {
			left, mid, right := work, work, work
			left[0], mid[0], right[0] = x-1, x, x+1
			out.Set(mid, 0, (cache.At(left, 0)+cache.At(mid, 0)+cache.At(right, 0))/3)
			w.Sync()
			// Advance the window just ahead of the stencil, never past
			// the source.
			if x+1 >= winHi && winHi < hi {
				cache.ShiftLoad(w, 1, work)
				winHi++
			}
		}
	})
	return nil
}

// report prints summary statistics of the smoothed field.
func report(xs []float64) {
	mean := stat.Mean(xs, nil)
	sigma := stat.StdDev(xs, nil)
	fmt.Printf("cells:  %d\n", len(xs))
	fmt.Printf("mean:   %.4f\n", mean)
	fmt.Printf("stddev: %.4f\n", sigma)
	fmt.Printf("min:    %.4f\n", floats.Min(xs))
	fmt.Printf("max:    %.4f\n", floats.Max(xs))
}
