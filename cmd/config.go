package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/df07/go-volpath/pkg/renderer"
	"github.com/urfave/cli"
)

// loadConfigFile overlays the fields present in a JSON file onto config
func loadConfigFile(path string, config renderer.Config) (renderer.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return config, nil
}

// applyFlags overrides config with the render flags given on the command line
func applyFlags(ctx *cli.Context, config renderer.Config) renderer.Config {
	if ctx.IsSet("width") {
		config.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		config.Height = ctx.Int("height")
	}
	if ctx.IsSet("spp") {
		config.SamplesPerPixel = ctx.Int("spp")
	}
	if ctx.IsSet("max-depth") {
		config.MaxDepth = ctx.Int("max-depth")
	}
	if ctx.IsSet("rr-bounces") {
		config.RRMinBounces = ctx.Int("rr-bounces")
	}
	if ctx.IsSet("tile-size") {
		config.TileSize = ctx.Int("tile-size")
	}
	if ctx.IsSet("passes") {
		config.Passes = ctx.Int("passes")
	}
	if ctx.IsSet("workers") {
		config.NumWorkers = ctx.Int("workers")
	}
	if ctx.IsSet("seed") {
		config.Seed = ctx.Int64("seed")
	}
	return config
}
