package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-volpath/pkg/imageio"
	"github.com/df07/go-volpath/pkg/integrator"
	"github.com/df07/go-volpath/pkg/renderer"
	"github.com/df07/go-volpath/pkg/scene"
	"github.com/urfave/cli"
)

// renderJob is everything a render needs, resolved from the command line
type renderJob struct {
	sceneID    string
	scene      *scene.Scene
	integrator string
	config     renderer.Config
	out        string
	format     imageio.Format
}

// Render a preset scene to an image file.
func Render(ctx *cli.Context) error {
	setupLogging(ctx)

	job, err := newRenderJob(ctx, time.Now())
	if err != nil {
		return err
	}

	integ, err := integrator.New(job.integrator, job.config.IntegratorConfig())
	if err != nil {
		return err
	}
	r, err := renderer.New(job.scene, integ, job.config, nil)
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Noticef("rendering scene %q with the %s integrator (%dx%d, %d spp, %d workers)",
		job.sceneID, job.integrator, job.config.Width, job.config.Height,
		job.config.SamplesPerPixel, r.Config().NumWorkers)
	fb, stats, renderErr := r.Render(sigCtx, nil)
	if renderErr != nil && !errors.Is(renderErr, renderer.ErrInterrupted) {
		return renderErr
	}

	// An interrupted render still saves what it has
	if err := os.MkdirAll(filepath.Dir(job.out), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := imageio.Save(job.out, job.format, fb); err != nil {
		return err
	}
	logger.Noticef("wrote %s", job.out)

	displayRenderStats(stats)
	return renderErr
}

// newRenderJob resolves the settings of a render. Precedence from lowest to
// highest: the scene's preferred settings, the --config file, explicit flags.
func newRenderJob(ctx *cli.Context, now time.Time) (*renderJob, error) {
	sceneID := ctx.String("scene")
	s, info, err := scene.Load(sceneID)
	if err != nil {
		return nil, err
	}

	config := renderer.ConfigForScene(s)
	if path := ctx.String("config"); path != "" {
		if config, err = loadConfigFile(path, config); err != nil {
			return nil, err
		}
	}
	config = applyFlags(ctx, config)
	if config.NumWorkers == 0 {
		config.NumWorkers = defaultWorkerCount()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	integratorName := "path"
	if info.Volumetric {
		integratorName = "volpath"
	}
	if ctx.IsSet("integrator") {
		integratorName = ctx.String("integrator")
	}

	job := &renderJob{
		sceneID:    sceneID,
		scene:      s,
		integrator: integratorName,
		config:     config,
	}

	switch {
	case ctx.IsSet("format"):
		if job.format, err = imageio.ParseFormat(ctx.String("format")); err != nil {
			return nil, err
		}
	case ctx.String("out") != "":
		if job.format, err = imageio.FormatFromPath(ctx.String("out")); err != nil {
			return nil, err
		}
	default:
		job.format = imageio.FormatPNG
	}

	job.out = ctx.String("out")
	if job.out == "" {
		job.out = defaultOutputPath(sceneID, job.format, now)
	}
	return job, nil
}

// defaultOutputPath returns output/<scene>/render_<timestamp>.<format>
func defaultOutputPath(sceneID string, format imageio.Format, now time.Time) string {
	name := fmt.Sprintf("render_%s.%s", now.Format("20060102_150405"), format)
	return filepath.Join("output", sceneID, name)
}
