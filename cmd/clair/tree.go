package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/mgomes/clairscript/clair"
)

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// printTree writes the indented tree of program, coloured when color is set.
func printTree(w io.Writer, program *clair.Program, color bool) error {
	if !color {
		return clair.Fprint(w, program)
	}
	for _, line := range clair.Flatten(program) {
		if _, err := fmt.Fprintln(w, strings.Repeat("  ", line.Depth)+renderTreeLine(line)); err != nil {
			return err
		}
	}
	return nil
}

func renderTreeLine(line clair.TreeLine) string {
	if line.Node == nil {
		return mutedStyle.Render(line.Label + ":")
	}

	out := nodeStyle(line.Node).Render(line.Label)
	if line.Detail != "" {
		out += " " + detailStyle.Render(line.Detail)
	}
	if pos := line.Node.Pos(); pos.Line > 0 {
		out += " " + mutedStyle.Render(fmt.Sprintf("@%d:%d", pos.Line, pos.Column))
	}
	return out
}

func nodeStyle(node clair.Node) lipgloss.Style {
	switch node.(type) {
	case *clair.Program:
		return headerStyle.Padding(0)
	case clair.Statement:
		return statementStyle
	default:
		return expressionStyle
	}
}
