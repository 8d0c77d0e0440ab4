package report

import (
	"fmt"
	"io"

	"appendlist"
	"appendlist/internal/bench"

	"github.com/mitchellh/colorstring"
)

// Printer renders reports, with colours unless disabled.
type Printer struct {
	out      io.Writer
	colorize colorstring.Colorize
}

func NewPrinter(out io.Writer, color bool) *Printer {
	return &Printer{
		out: out,
		colorize: colorstring.Colorize{
			Colors:  colorstring.DefaultColors,
			Disable: !color,
			Reset:   true,
		},
	}
}

func (p *Printer) println(format string, args ...any) {
	fmt.Fprintln(p.out, p.colorize.Color(fmt.Sprintf(format, args...)))
}

// Scenario prints the outcome of one scenario run followed by its chunks.
func (p *Printer) Scenario(report bench.Report) {
	status := "[green]ok[reset]"
	if !report.Scenario.Verify {
		status = "[yellow]unverified[reset]"
	}

	p.println("[bold]%s[reset] %s  %d %s values, first chunk %d, push %s, read %s",
		report.Scenario.Name, status, report.Scenario.Count, report.Scenario.Kind,
		report.FirstChunkSize, report.Push, report.Read)
	p.Chunks(report.Chunks)
}

// Failure prints a scenario that did not complete.
func (p *Printer) Failure(name string) {
	p.println("[bold]%s[reset] [red]failed", name)
}

// Chunks prints one row per chunk.
func (p *Printer) Chunks(chunks []appendlist.ChunkInfo) {
	if len(chunks) == 0 {
		p.println("  [dark_gray](no chunks)")
		return
	}

	p.println("  [dark_gray]%5s %12s %12s %12s", "chunk", "start", "capacity", "len")
	for _, chunk := range chunks {
		fill := "[green]"
		if chunk.Len < chunk.Capacity {
			fill = "[yellow]"
		}

		p.println("  %5d %12d %12d %s%12d", chunk.ID, chunk.Start, chunk.Capacity, fill, chunk.Len)
	}
}

// List prints every element of list on its own line.
func List[T any](p *Printer, list *appendlist.List[T]) {
	for index, item := range list.All() {
		p.println("[dark_gray]%6d[reset] %s", index, fmt.Sprint(*item))
	}
}
