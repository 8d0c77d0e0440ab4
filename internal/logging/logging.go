package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

const timeFormat = time.TimeOnly

// Setup installs a tint handler writing to out as the default slog logger.
// Colours are used only when out is a terminal and color is set.
func Setup(out io.Writer, level slog.Level, color bool) *slog.Logger {
	logger := slog.New(tint.NewHandler(out, &tint.Options{
		AddSource:  level <= slog.LevelDebug,
		Level:      level,
		TimeFormat: timeFormat,
		NoColor:    !color || !isTerminal(out),
	}))

	slog.SetDefault(logger)
	return logger
}

func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// Level maps the command line verbosity to a slog level.
func Level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}

	return slog.LevelInfo
}
