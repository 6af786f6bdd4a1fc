package cmd

import (
	"github.com/urfave/cli"
)

// RenderFlags are the options of the render command. Numeric options left
// unset keep the scene's preferred value.
var RenderFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "scene, s",
		Value: "cornell",
		Usage: "preset scene to render (see the scenes command)",
	},
	cli.StringFlag{
		Name:  "integrator, i",
		Usage: "light transport algorithm: path or volpath (default: volpath for scenes with media)",
	},
	cli.IntFlag{
		Name:  "width",
		Usage: "frame width",
	},
	cli.IntFlag{
		Name:  "height",
		Usage: "frame height",
	},
	cli.IntFlag{
		Name:  "spp",
		Usage: "samples per pixel",
	},
	cli.IntFlag{
		Name:  "max-depth",
		Usage: "maximum number of scattering events per path",
	},
	cli.IntFlag{
		Name:  "rr-bounces",
		Usage: "bounces before russian roulette may terminate a path",
	},
	cli.IntFlag{
		Name:  "passes",
		Usage: "progressive passes to spread the samples over",
	},
	cli.IntFlag{
		Name:  "tile-size",
		Usage: "edge length of the square tiles handed to workers",
	},
	cli.IntFlag{
		Name:  "workers",
		Usage: "number of render workers (0 = logical CPU count)",
	},
	cli.Int64Flag{
		Name:  "seed",
		Usage: "random seed; equal seeds give identical images",
	},
	cli.StringFlag{
		Name:  "out, o",
		Usage: "output file (default: output/<scene>/render_<timestamp>.<format>)",
	},
	cli.StringFlag{
		Name:  "format, f",
		Usage: "output format: ppm, png, pfm or pfm.zst (default: from --out, else png)",
	},
	cli.StringFlag{
		Name:  "config, c",
		Usage: "JSON file overriding render settings",
	},
}
