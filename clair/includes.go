package clair

import (
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// IncludeRef is one `inclure` statement found in a program.
type IncludeRef struct {
	Path string
	Pos  Position
}

// Includes lists the include statements reachable from node in source
// order, including those nested in blocks.
func Includes(node Node) []IncludeRef {
	var refs []IncludeRef
	Inspect(node, func(n Node) bool {
		if inc, ok := n.(*IncludeStmt); ok {
			refs = append(refs, IncludeRef{Path: inc.Path, Pos: inc.Pos()})
		}
		_, isExpr := n.(Expression)
		return !isExpr
	})
	return refs
}

// CheckIncludePath rejects include paths that cannot name a file under the
// including file's search root: empty or absolute paths, paths that clean
// to the current directory, and implicit-relative paths that climb out with
// "..". Paths starting with "./" or "../" are explicit and may climb.
func CheckIncludePath(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("include path must be non-empty")
	}
	normalized := strings.ReplaceAll(trimmed, "\\", "/")
	if path.IsAbs(normalized) || filepath.IsAbs(trimmed) || filepath.VolumeName(trimmed) != "" {
		return fmt.Errorf("include path %q must be relative", name)
	}

	cleaned := path.Clean(normalized)
	if cleaned == "." {
		return fmt.Errorf("include path %q resolves to the current directory", name)
	}
	if !isExplicitRelativePath(normalized) && containsPathTraversal(cleaned) {
		return fmt.Errorf("include path %q escapes the search root", name)
	}
	return nil
}

func isExplicitRelativePath(name string) bool {
	return strings.HasPrefix(name, "./") || strings.HasPrefix(name, "../")
}

func containsPathTraversal(cleanPath string) bool {
	return slices.Contains(strings.Split(cleanPath, "/"), "..")
}
