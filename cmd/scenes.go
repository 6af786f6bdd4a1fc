package cmd

import (
	"bytes"
	"fmt"

	"github.com/df07/go-volpath/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListScenes displays the built-in scenes that can be rendered.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Name", "Media", "Description"})
	for _, info := range scene.List() {
		table.Append([]string{info.ID, info.Name, fmt.Sprintf("%t", info.Volumetric), info.Description})
	}
	table.Render()

	fmt.Fprint(ctx.App.Writer, buf.String())
	return nil
}
