package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/plyview/internal/config"
	"github.com/Faultbox/plyview/internal/logger"
	"github.com/Faultbox/plyview/internal/raster"
	"github.com/Faultbox/plyview/internal/snapshot"
	"github.com/Faultbox/plyview/internal/texture"
)

// renderJob is one model to render and its outcome.
type renderJob struct {
	Input  string
	Output string
	Err    error
}

func cmdRender(cfg *config.Config, args []string) error {
	opts := raster.DefaultOptions()

	fs := flag.NewFlagSet("render", flag.ExitOnError)
	outDir := fs.String("o", ".", "Output directory")
	yaw := fs.Float64("yaw", float64(opts.Yaw), "Camera azimuth in degrees")
	pitch := fs.Float64("pitch", float64(opts.Pitch), "Camera elevation in degrees")
	noTexture := fs.Bool("no-texture", false, "Ignore model textures")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return errors.New("usage: plytool render [-o dir] [-yaw deg] [-pitch deg] <file.ply>...")
	}

	bg, err := raster.ParseColor(cfg.Render.Background)
	if err != nil {
		return fmt.Errorf("render background: %w", err)
	}
	opts.Background = bg
	opts.Faceted = cfg.Render.Faceted
	opts.Yaw = float32(*yaw)
	opts.Pitch = float32(*pitch)
	if cfg.Render.Size > 0 {
		opts.Size = cfg.Render.Size
	}
	if cfg.Render.Supersample > 0 {
		opts.Supersample = cfg.Render.Supersample
	}

	jobs := make([]renderJob, fs.NArg())
	for i, in := range fs.Args() {
		jobs[i] = renderJob{Input: in, Output: outputPath(*outDir, in, cfg.Render.Format)}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	runRenderJobs(ctx, jobs, cfg.Render.Workers, func(job *renderJob) error {
		return renderOne(job, opts, !*noTexture)
	})

	failed := 0
	for _, job := range jobs {
		if job.Err != nil {
			failed++
			fmt.Printf("FAIL  %s  %v\n", job.Input, job.Err)
		} else {
			fmt.Printf("OK    %s -> %s\n", job.Input, job.Output)
		}
	}

	logger.Info("render finished",
		zap.Int("files", len(jobs)),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(start)),
	)
	if failed > 0 {
		return fmt.Errorf("%d of %d renders failed", failed, len(jobs))
	}
	return nil
}

// runRenderJobs runs fn over jobs with at most workers in flight, storing
// each error in its job. Jobs not started before ctx is cancelled get
// ctx.Err().
func runRenderJobs(ctx context.Context, jobs []renderJob, workers int, fn func(*renderJob) error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	var done atomic.Int64
	for i := range jobs {
		job := &jobs[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				job.Err = err
				return nil
			}
			job.Err = fn(job)
			logger.Debug("rendered",
				zap.String("input", job.Input),
				zap.Int64("done", done.Add(1)),
				zap.Int("total", len(jobs)),
				zap.Error(job.Err),
			)
			return nil
		})
	}
	_ = g.Wait()
}

func renderOne(job *renderJob, opts raster.Options, useTexture bool) error {
	_, buf, err := loadMesh(job.Input)
	if err != nil {
		return fmt.Errorf("[%s] %w", errorClass(err), err)
	}

	if useTexture {
		tex, err := texture.Load(texture.PathForModel(job.Input), false)
		switch {
		case err == nil:
			opts.Texture = tex
		case !errors.Is(err, texture.ErrNoTexture):
			logger.Warn("texture unreadable, rendering untextured",
				zap.String("input", job.Input), zap.Error(err))
		}
	}

	return snapshot.Save(job.Output, raster.Render(buf, opts))
}

// outputPath maps "dir/in/model.ply" to "<outDir>/model.<format>".
func outputPath(outDir, input, format string) string {
	base := filepath.Base(input)
	if ext := filepath.Ext(base); strings.EqualFold(ext, ".ply") {
		base = strings.TrimSuffix(base, ext)
	}
	return filepath.Join(outDir, base+"."+format)
}
