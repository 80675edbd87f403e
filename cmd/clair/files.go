package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const tokenFileSuffix = ".tokens.json"

func isTokenFile(path string) bool {
	return strings.HasSuffix(path, tokenFileSuffix)
}

// collectTokenFiles expands targets into absolute token file paths. Files
// named explicitly are kept whatever their name; directories are walked for
// *.tokens.json files.
func collectTokenFiles(targets []string) ([]string, error) {
	seen := make(map[string]struct{})
	files := make([]string, 0)
	addFile := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return
		}
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		files = append(files, abs)
	}

	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", target, err)
		}
		if !info.IsDir() {
			addFile(target)
			continue
		}
		err = filepath.WalkDir(target, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() || !isTokenFile(path) {
				return nil
			}
			addFile(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", target, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// collectWatchDirs returns the directories to watch for targets: every
// directory under a directory target, and the parent of a file target.
func collectWatchDirs(targets []string) ([]string, error) {
	seen := make(map[string]struct{})
	dirs := make([]string, 0)
	addDir := func(dir string) error {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", dir, err)
		}
		if _, ok := seen[abs]; ok {
			return nil
		}
		seen[abs] = struct{}{}
		dirs = append(dirs, abs)
		return nil
	}

	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", target, err)
		}
		if !info.IsDir() {
			if err := addDir(filepath.Dir(target)); err != nil {
				return nil, err
			}
			continue
		}
		err = filepath.WalkDir(target, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if !entry.IsDir() {
				return nil
			}
			return addDir(path)
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", target, err)
		}
	}

	sort.Strings(dirs)
	return dirs, nil
}

// computeIncludePaths lists the directories searched for included files:
// the token file's own directory first, then extras, without duplicates.
func computeIncludePaths(tokenPath string, extras []string) ([]string, error) {
	seen := make(map[string]struct{})
	var dirs []string
	addPath := func(label, p string) error {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve %s %q: %w", label, p, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("access %s %q: %w", label, abs, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%s %q is not a directory", label, abs)
		}
		if _, ok := seen[abs]; ok {
			return nil
		}
		seen[abs] = struct{}{}
		dirs = append(dirs, abs)
		return nil
	}
	if err := addPath("token file directory", filepath.Dir(tokenPath)); err != nil {
		return nil, err
	}
	for _, extra := range extras {
		if err := addPath("include path", extra); err != nil {
			return nil, err
		}
	}
	return dirs, nil
}

// resolveInclude finds the file an include names, either as written or as
// its token stream, in the first directory that has one.
func resolveInclude(name string, dirs []string) (string, bool) {
	rel := filepath.FromSlash(strings.ReplaceAll(name, "\\", "/"))
	for _, dir := range dirs {
		for _, candidate := range []string{rel, rel + tokenFileSuffix} {
			full := filepath.Join(dir, candidate)
			if info, err := os.Stat(full); err == nil && !info.IsDir() {
				return full, true
			}
		}
	}
	return "", false
}
