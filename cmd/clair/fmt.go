package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mgomes/clairscript/clair"
)

// fmtCommand rewrites token files in the canonical envelope form written by
// clair.EncodeTokenStream.
func fmtCommand(args []string) error {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	write := fs.Bool("w", false, "write result to token files instead of stdout")
	check := fs.Bool("check", false, "fail if any token file is not in canonical form")
	if err := fs.Parse(args); err != nil {
		return err
	}

	targets := fs.Args()
	if len(targets) == 0 {
		return errors.New("clair fmt: path required")
	}

	files, err := collectTokenFiles(targets)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return nil
	}

	changedCount := 0
	for _, path := range files {
		original, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		formatted, err := formatTokenFile(original)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		changed := !bytes.Equal(formatted, original)
		if changed {
			changedCount++
		}

		switch {
		case *write && changed:
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("stat %s: %w", path, err)
			}
			if err := os.WriteFile(path, formatted, info.Mode().Perm()); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
		case !*write && !*check:
			fmt.Print(string(formatted))
		}
	}

	if *check && changedCount > 0 {
		return fmt.Errorf("clair fmt: %d file(s) need formatting", changedCount)
	}

	return nil
}

func formatTokenFile(data []byte) ([]byte, error) {
	stream, err := clair.DecodeTokenStream(data)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := clair.EncodeTokenStream(&buf, stream); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
