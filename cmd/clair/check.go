package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/mgomes/clairscript/clair"
)

func checkCommand(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	jobs := fs.Int("j", runtime.GOMAXPROCS(0), "number of files parsed concurrently")
	maxNesting := fs.Int("max-nesting", defaultMaxNesting, "reject programs nested deeper than this (0 for no limit)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	targets := fs.Args()
	if len(targets) == 0 {
		return errors.New("clair check: path required")
	}

	files, err := collectTokenFiles(targets)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return nil
	}

	failures, err := checkFiles(context.Background(), files, clair.Config{MaxNesting: *maxNesting}, *jobs)
	if err != nil {
		return err
	}
	for _, failure := range failures {
		fmt.Println(failure)
	}
	if len(failures) > 0 {
		return fmt.Errorf("clair check: %d of %d file(s) failed", len(failures), len(files))
	}

	fmt.Printf("%d file(s) ok\n", len(files))
	return nil
}

// checkFiles parses files with at most jobs running at once and returns
// the failures in the order of files.
func checkFiles(ctx context.Context, files []string, cfg clair.Config, jobs int) ([]error, error) {
	results := make([]error, len(files))

	var g errgroup.Group
	g.SetLimit(max(jobs, 1))
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = checkFile(path, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var failures []error
	for _, err := range results {
		if err != nil {
			failures = append(failures, err)
		}
	}
	return failures, nil
}

func checkFile(path string, cfg clair.Config) error {
	stream, err := loadTokenFile(path)
	if err != nil {
		return err
	}
	if _, err := clair.ParseStream(stream, cfg); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
