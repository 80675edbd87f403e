package main

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/mgomes/clairscript/clair"
)

const programContext = "programme"

type lintWarning struct {
	Context string
	Pos     clair.Position
	Message string
}

func analyzeCommand(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	var includePaths pathList
	fs.Var(&includePaths, "include-path", "add an include search directory (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("clair analyze: token file required")
	}

	tokenPath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve token file path: %w", err)
	}
	program, err := parseTokenFile(tokenPath, clair.Config{MaxNesting: defaultMaxNesting})
	if err != nil {
		return fmt.Errorf("analysis %w", err)
	}
	includeDirs, err := computeIncludePaths(tokenPath, includePaths)
	if err != nil {
		return err
	}

	warnings := analyzeProgram(program, includeDirs)
	if len(warnings) == 0 {
		fmt.Println("No issues found")
		return nil
	}

	for _, warning := range warnings {
		line := max(warning.Pos.Line, 1)
		column := max(warning.Pos.Column, 1)
		fmt.Printf("%s:%d:%d: %s (%s)\n", tokenPath, line, column, warning.Message, warning.Context)
	}

	return fmt.Errorf("analysis found %d issue(s)", len(warnings))
}

// analyzeProgram lints program. Includes are resolved against includeDirs;
// a nil includeDirs skips resolution.
func analyzeProgram(program *clair.Program, includeDirs []string) []lintWarning {
	warnings := make([]lintWarning, 0)

	lintStatements(programContext, program.Body, &warnings)
	lintDuplicateMembers(program, &warnings)
	lintObjectKeys(program, &warnings)
	lintIncludes(program, includeDirs, &warnings)

	sort.SliceStable(warnings, func(i, j int) bool {
		if warnings[i].Pos.Line != warnings[j].Pos.Line {
			return warnings[i].Pos.Line < warnings[j].Pos.Line
		}
		if warnings[i].Pos.Column != warnings[j].Pos.Column {
			return warnings[i].Pos.Column < warnings[j].Pos.Column
		}
		return warnings[i].Context < warnings[j].Context
	})

	return warnings
}

// lintStatements reports statements that follow a terminating one and
// returns whether the list always terminates.
func lintStatements(context string, statements []clair.Statement, warnings *[]lintWarning) bool {
	terminated := false
	for _, stmt := range statements {
		if terminated {
			*warnings = append(*warnings, lintWarning{
				Context: context,
				Pos:     stmt.Pos(),
				Message: "unreachable statement",
			})
			continue
		}
		if statementTerminates(context, stmt, warnings) {
			terminated = true
		}
	}
	return terminated
}

func statementTerminates(context string, stmt clair.Statement, warnings *[]lintWarning) bool {
	switch typed := stmt.(type) {
	case *clair.ReturnStmt, *clair.ThrowStmt:
		return true
	case *clair.IfStmt:
		consequentTerminated := lintStatements(context, typed.Consequent, warnings)
		if typed.Alternate == nil {
			return false
		}
		alternateTerminated := lintStatements(context, typed.Alternate, warnings)
		return consequentTerminated && alternateTerminated
	case *clair.WhileStmt:
		lintStatements(context, typed.Body, warnings)
		return false
	case *clair.ForEachStmt:
		lintStatements(context, typed.Body, warnings)
		return false
	case *clair.TryStmt:
		blockTerminated := lintStatements(context, typed.Block, warnings)
		handlerTerminated := false
		if typed.Handler != nil {
			handlerTerminated = lintStatements(context, typed.Handler.Body, warnings)
		}
		if lintStatements(context, typed.Finalizer, warnings) {
			return true
		}
		if typed.Handler == nil {
			return false
		}
		return blockTerminated && handlerTerminated
	case *clair.FunctionStmt:
		lintStatements(typed.Name, typed.Body, warnings)
		return false
	case *clair.ClassStmt:
		for _, method := range typed.Methods {
			lintStatements(typed.Name+"."+method.Name, method.Body, warnings)
		}
		return false
	case *clair.InterfaceStmt:
		for _, method := range typed.Methods {
			lintStatements(typed.Name+"."+method.Name, method.Body, warnings)
		}
		return false
	default:
		return false
	}
}

func lintDuplicateMembers(program *clair.Program, warnings *[]lintWarning) {
	check := func(owner string, methods []*clair.FunctionStmt) {
		first := make(map[string]*clair.FunctionStmt, len(methods))
		for _, method := range methods {
			if prev, ok := first[method.Name]; ok {
				*warnings = append(*warnings, lintWarning{
					Context: owner,
					Pos:     method.Pos(),
					Message: fmt.Sprintf("duplicate method %q (first declared on line %d)", method.Name, prev.Pos().Line),
				})
				continue
			}
			first[method.Name] = method
		}
	}

	clair.Inspect(program, func(n clair.Node) bool {
		switch typed := n.(type) {
		case *clair.ClassStmt:
			check(typed.Name, typed.Methods)
		case *clair.InterfaceStmt:
			check(typed.Name, typed.Methods)
		}
		return true
	})
}

func lintObjectKeys(program *clair.Program, warnings *[]lintWarning) {
	clair.Inspect(program, func(n clair.Node) bool {
		obj, ok := n.(*clair.ObjectLiteral)
		if !ok {
			return true
		}
		seen := make(map[string]struct{}, len(obj.Pairs))
		for _, pair := range obj.Pairs {
			if _, dup := seen[pair.Key]; dup {
				*warnings = append(*warnings, lintWarning{
					Context: programContext,
					Pos:     pair.Value.Pos(),
					Message: fmt.Sprintf("duplicate key %q in object literal", pair.Key),
				})
				continue
			}
			seen[pair.Key] = struct{}{}
		}
		return true
	})
}

func lintIncludes(program *clair.Program, includeDirs []string, warnings *[]lintWarning) {
	for _, ref := range clair.Includes(program) {
		if err := clair.CheckIncludePath(ref.Path); err != nil {
			*warnings = append(*warnings, lintWarning{Context: programContext, Pos: ref.Pos, Message: err.Error()})
			continue
		}
		if includeDirs == nil {
			continue
		}
		if _, ok := resolveInclude(ref.Path, includeDirs); !ok {
			*warnings = append(*warnings, lintWarning{
				Context: programContext,
				Pos:     ref.Pos,
				Message: fmt.Sprintf("include %q not found", ref.Path),
			})
		}
	}
}
