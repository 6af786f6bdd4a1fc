package cmd

import (
	"bytes"
	"fmt"
	"runtime"

	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"github.com/urfave/cli"
)

// SysInfo displays the host resources available for rendering.
func SysInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Property", "Value"})

	if info, err := cpu.Info(); err == nil && len(info) > 0 {
		table.Append([]string{"CPU", info[0].ModelName})
		table.Append([]string{"Clock", fmt.Sprintf("%.2f GHz", info[0].Mhz/1000)})
	} else if err != nil {
		logger.Warningf("reading cpu info: %v", err)
	}
	if physical, err := cpu.Counts(false); err == nil {
		table.Append([]string{"Physical cores", fmt.Sprintf("%d", physical)})
	}
	table.Append([]string{"Logical cores", fmt.Sprintf("%d", defaultWorkerCount())})

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		return fmt.Errorf("reading memory info: %w", err)
	}
	table.Append([]string{"Total memory", fmt.Sprintf("%.1f GiB", float64(memInfo.Total)/(1<<30))})
	table.Append([]string{"Available memory", fmt.Sprintf("%.1f GiB", float64(memInfo.Available)/(1<<30))})
	table.Append([]string{"Go", runtime.Version()})

	table.Render()
	logger.Noticef("system information\n%s", buf.String())
	return nil
}

// defaultWorkerCount is the number of logical CPUs, as reported by the OS when
// possible
func defaultWorkerCount() int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		logger.Debugf("falling back to runtime.NumCPU: %v", err)
		return runtime.NumCPU()
	}
	return n
}
