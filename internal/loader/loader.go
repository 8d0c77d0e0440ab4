package loader

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"log/slog"

	"appendlist/internal/concurrent"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

// Line is one line of a loaded file. Number starts at 1.
type Line struct {
	File   string
	Number int
	Text   string
}

func (line Line) String() string {
	return fmt.Sprintf("%s:%d: %s", line.File, line.Number, line.Text)
}

// Files expands every pattern against fsys and returns the matches in order,
// without duplicates. A malformed pattern is an error; a pattern matching
// nothing is not.
func Files(fsys fs.FS, patterns []string) ([]string, error) {
	seen := map[string]bool{}
	result := make([]string, 0)
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("pattern %q is malformed: %w", pattern, doublestar.ErrBadPattern)
		}

		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", pattern, err)
		}

		if len(matches) == 0 {
			slog.Warn("pattern doesn't match anything", "pattern", pattern)
		}

		for _, match := range matches {
			if info, err := fs.Stat(fsys, match); err != nil || info.IsDir() || seen[match] {
				continue
			}

			seen[match] = true
			result = append(result, match)
		}
	}

	return result, nil
}

// Lines reads the files matching patterns on up to parallelism goroutines and
// pushes their lines into one list. Lines of a single file keep their order
// and stay contiguous; files may appear in any order.
func Lines(ctx context.Context, fsys fs.FS, patterns []string, firstChunkSize, parallelism int) (*concurrent.List[Line], error) {
	files, err := Files(fsys, patterns)
	if err != nil {
		return nil, err
	}

	list, err := concurrent.NewListSized[Line](firstChunkSize)
	if err != nil {
		return nil, err
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(parallelism)
	for _, name := range files {
		group.Go(func() error {
			lines, err := read(ctx, fsys, name)
			if err != nil {
				return err
			}

			list.Extend(lines)
			slog.Debug("loaded file", "file", name, "lines", len(lines))
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return list, nil
}

func read(ctx context.Context, fsys fs.FS, name string) ([]Line, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	lines := make([]Line, 0)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		lines = append(lines, Line{File: name, Number: len(lines) + 1, Text: scanner.Text()})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %q: %w", name, err)
	}

	return lines, nil
}
