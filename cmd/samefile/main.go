package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"

	"samefile/internal/compare"
	"samefile/internal/metrics"
	"samefile/internal/progress"
)

const (
	exitSame      = 0
	exitDifferent = 1
	exitError     = 127
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var (
		bufferSize int
		threadsMax int
		quiet      bool
		showBar    bool
		showStats  bool
		verbose    bool
	)

	def := compare.DefaultConfig()
	fset := flag.NewFlagSet("samefile", flag.ContinueOnError)
	fset.SetOutput(stderr)
	fset.IntVar(&bufferSize, "buffer-size", def.BufferSize, "size in bytes of the buffers used for reading files")
	fset.IntVar(&bufferSize, "b", def.BufferSize, "shorthand for -buffer-size")
	fset.IntVar(&threadsMax, "threads-max", def.MaxThreads, "maximum number of threads per comparison (default: logical cores)")
	fset.IntVar(&threadsMax, "t", def.MaxThreads, "shorthand for -threads-max")
	fset.BoolVar(&quiet, "quiet", false, "print nothing except errors; the exit status is the only output")
	fset.BoolVar(&quiet, "q", false, "shorthand for -quiet")
	fset.BoolVar(&showBar, "progress", false, "show a progress bar on stderr")
	fset.BoolVar(&showStats, "stats", false, "print run statistics on stderr")
	fset.BoolVar(&verbose, "v", false, "debug logging on stderr")
	fset.Usage = func() { usage(fset) }

	if err := fset.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitSame
		}
		return exitError
	}

	paths := fset.Args()
	if len(paths) < 2 {
		_, _ = fmt.Fprintf(stderr, "usage: samefile [flags] <file1> <file2> [file3 ...]\n")
		return exitError
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	stats := &metrics.Stats{}
	var bar *progress.Bar
	c, err := compare.New(
		compare.Config{BufferSize: bufferSize, MaxThreads: threadsMax},
		compare.WithLogger(logger),
		compare.WithStats(stats),
		compare.WithProgress(func(n int64) {
			if bar != nil {
				bar.AddBytes(n)
			}
		}),
	)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return exitError
	}

	files, err := c.AdmitAll(paths)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return exitError
	}

	stats.Start()
	if showBar {
		bar = progress.New(stderr, files[0].Length*int64(len(files)-1), stats.Snapshot)
	}

	verdict, err := c.CompareFiles(ctx, files)

	if bar != nil {
		bar.Close()
	}
	stats.Stop()
	if showStats {
		metrics.Print(stderr, stats)
	}
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return exitError
	}

	if !quiet {
		_, _ = fmt.Fprintln(stdout, describe(verdict))
	}
	if verdict.IsSame() {
		return exitSame
	}
	return exitDifferent
}

func describe(v compare.Verdict) string {
	if v.Kind != compare.DifferentSize {
		return v.String()
	}
	return fmt.Sprintf("%s (%s vs %s)", v, humanize.IBytes(uint64(v.LeftLen)), humanize.IBytes(uint64(v.RightLen)))
}

func usage(fset *flag.FlagSet) {
	w := fset.Output()
	_, _ = fmt.Fprintf(w, "usage: samefile [flags] <file1> <file2> [file3 ...]\n\n")
	_, _ = fmt.Fprintf(w, "Print whether the files are the same, and indicate it via the exit status as well.\n\n")
	_, _ = fmt.Fprintf(w, "A regular file is considered the same as another one if they are the same size\n")
	_, _ = fmt.Fprintf(w, "and have the exact same contents. Other file types are not supported.\n\n")
	_, _ = fmt.Fprintf(w, "Flags:\n")
	fset.PrintDefaults()
	_, _ = fmt.Fprintf(w, "\nExit status:\n")
	_, _ = fmt.Fprintf(w, "  %3d  files have the same contents\n", exitSame)
	_, _ = fmt.Fprintf(w, "  %3d  files have different contents\n", exitDifferent)
	_, _ = fmt.Fprintf(w, "  %3d  an error occurred\n", exitError)
}
