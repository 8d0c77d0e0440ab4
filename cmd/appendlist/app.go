package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"appendlist"
	"appendlist/internal/bench"
	"appendlist/internal/config"
	"appendlist/internal/functional"
	"appendlist/internal/loader"
	"appendlist/internal/logging"
	"appendlist/internal/report"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/urfave/cli/v2"
)

const (
	ConfigFlag         = "config"
	FirstChunkSizeFlag = "first-chunk-size"
	ParallelismFlag    = "parallelism"
	MetricsFlag        = "metrics"
	NoColorFlag        = "no-color"
	VerboseFlag        = "verbose"
	CountFlag          = "count"
	PrintFlag          = "print"
)

func App(cwd string, parser *hclparse.Parser, out io.Writer) *cli.App {
	app := &cli.App{
		Name:   "appendlist",
		Usage:  "Exercise append-only lists with stable element references",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    ConfigFlag,
				Value:   config.Filename,
				Usage:   "HCL file declaring scenarios",
				EnvVars: []string{"APPENDLIST_CONFIG"},
			},
			&cli.IntFlag{
				Name:  FirstChunkSizeFlag,
				Usage: "capacity of the first chunk, a power of two (overrides the config file)",
			},
			&cli.IntFlag{
				Name:  ParallelismFlag,
				Usage: "how many scenarios or files are processed at once (overrides the config file)",
			},
			&cli.BoolFlag{
				Name:  MetricsFlag,
				Usage: "print metrics in the prometheus text format after running",
			},
			&cli.BoolFlag{
				Name:  NoColorFlag,
				Usage: "disable coloured output",
			},
			&cli.BoolFlag{
				Name:    VerboseFlag,
				Aliases: []string{"v"},
				Usage:   "log debug information",
			},
		},
		Before: func(c *cli.Context) error {
			logging.Setup(os.Stderr, logging.Level(c.Bool(VerboseFlag)), !c.Bool(NoColorFlag))
			return nil
		},
	}

	app.Commands = []*cli.Command{{
		Name:      "run",
		Usage:     "Fill lists as declared by the scenarios and read every element back",
		ArgsUsage: "[scenario...]",
		Action: func(c *cli.Context) error {
			return run(c, cwd, parser, out)
		},
	}, {
		Name:  "layout",
		Usage: "Show the chunks a list allocates for a number of elements",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: CountFlag, Value: 100, Usage: "number of elements"},
		},
		Action: func(c *cli.Context) error {
			return layout(c, cwd, parser, out)
		},
	}, {
		Name:      "load",
		Usage:     "Read the lines of every matching file into one list",
		ArgsUsage: "PATTERN...",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: PrintFlag, Usage: "print every loaded line"},
		},
		Action: func(c *cli.Context) error {
			return load(c, cwd, parser, out)
		},
	}}

	app.CommandNotFound = func(c *cli.Context, name string) {
		names := functional.Map(app.Commands, func(cmd *cli.Command) string { return cmd.Name })
		fmt.Fprintf(out, "unknown command %q", name)
		if suggestion := functional.Suggest(name, names); suggestion != "" {
			fmt.Fprintf(out, ", did you mean %q?", suggestion)
		}
		fmt.Fprintln(out)
	}

	return app
}

// settings loads the configuration file and applies command line overrides.
func settings(c *cli.Context, cwd string, parser *hclparse.Parser) (*config.Config, error) {
	cfg, diags := config.Load(cwd, c.String(ConfigFlag), c.IsSet(ConfigFlag), parser)
	if diags.HasErrors() {
		return nil, diags
	}

	if c.IsSet(FirstChunkSizeFlag) {
		cfg.FirstChunkSize = c.Int(FirstChunkSizeFlag)
	}

	if c.IsSet(ParallelismFlag) {
		cfg.Parallelism = c.Int(ParallelismFlag)
	}

	if _, err := appendlist.NewSized[struct{}](cfg.FirstChunkSize); err != nil {
		return nil, fmt.Errorf("--%s: %w", FirstChunkSizeFlag, err)
	}

	if cfg.Parallelism < 1 {
		return nil, fmt.Errorf("--%s must be at least 1, got %d", ParallelismFlag, cfg.Parallelism)
	}

	slog.Debug("configuration", "file", cfg.Filename, "first_chunk_size", cfg.FirstChunkSize, "parallelism", cfg.Parallelism)
	return cfg, nil
}

func run(c *cli.Context, cwd string, parser *hclparse.Parser, out io.Writer) error {
	cfg, err := settings(c, cwd, parser)
	if err != nil {
		return err
	}

	scenarios, diags := cfg.Select(c.Args().Slice())
	if diags.HasErrors() {
		return diags
	}

	m := bench.NewMetrics()
	reports, err := bench.RunAll(c.Context, scenarios, cfg.FirstChunkSize, cfg.Parallelism, m)

	printer := report.NewPrinter(out, !c.Bool(NoColorFlag))
	for index, result := range reports {
		// failed scenarios leave a zero report behind
		if result.Scenario.Name == "" {
			printer.Failure(scenarios[index].Name)
			continue
		}

		printer.Scenario(result)
	}

	if c.Bool(MetricsFlag) {
		m.WritePrometheus(out)
	}

	return err
}

func layout(c *cli.Context, cwd string, parser *hclparse.Parser, out io.Writer) error {
	cfg, err := settings(c, cwd, parser)
	if err != nil {
		return err
	}

	count := c.Int(CountFlag)
	if count < 0 {
		return fmt.Errorf("--%s cannot be negative, got %d", CountFlag, count)
	}

	list, err := appendlist.NewSized[struct{}](cfg.FirstChunkSize)
	if err != nil {
		return err
	}

	for range count {
		list.Push(struct{}{})
	}

	printer := report.NewPrinter(out, !c.Bool(NoColorFlag))
	fmt.Fprintf(out, "%d elements, first chunk %d\n", list.Len(), list.FirstChunkSize())
	printer.Chunks(list.Chunks())
	return nil
}

func load(c *cli.Context, cwd string, parser *hclparse.Parser, out io.Writer) error {
	if c.NArg() == 0 {
		return fmt.Errorf("load needs at least one pattern")
	}

	cfg, err := settings(c, cwd, parser)
	if err != nil {
		return err
	}

	lines, err := loader.Lines(c.Context, os.DirFS(cwd), c.Args().Slice(), cfg.FirstChunkSize, cfg.Parallelism)
	if err != nil {
		return err
	}

	printer := report.NewPrinter(out, !c.Bool(NoColorFlag))
	fmt.Fprintf(out, "%d lines loaded\n", lines.Len())
	printer.Chunks(lines.Chunks())

	if c.Bool(PrintFlag) {
		report.List(printer, lines.Unwrap())
	}

	return nil
}
