package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/oops"

	"github.com/automoto/jlvl/shared/levelcompiler"
	"github.com/automoto/jlvl/shared/levelformat"
	"github.com/automoto/jlvl/shared/levelsource"
)

const (
	exitOK = iota
	exitUsage
	exitRead
	exitParse
	exitCompile
	exitWrite
)

// exitError carries the process exit code for a failure.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error { return &exitError{code: exitUsage, err: err} }

// exitCode maps an error to its exit code. Errors cobra raises on its own,
// such as too many arguments, are usage errors.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUsage
}

func compileFile(in, out string) error {
	src, err := readSource(in)
	if err != nil {
		return err
	}
	f, err := levelcompiler.Compile(src)
	if err != nil {
		return &exitError{code: exitCompile, err: err}
	}
	b, err := levelformat.Encode(f)
	if err != nil {
		return &exitError{code: exitCompile, err: err}
	}
	if err := os.WriteFile(out, b, 0o644); err != nil {
		return &exitError{code: exitWrite, err: oops.In("levelc").With("path", out).Wrapf(err, "write %s", out)}
	}
	return nil
}

func readSource(in string) (*levelsource.Source, error) {
	if strings.EqualFold(filepath.Ext(in), ".tmx") {
		if _, err := os.Stat(in); err != nil {
			return nil, &exitError{code: exitRead, err: oops.In("levelc").With("path", in).Wrapf(err, "read %s", in)}
		}
		dir, name := filepath.Split(in)
		if dir == "" {
			dir = "."
		}
		src, err := levelcompiler.ImportTMX(os.DirFS(dir), name)
		if err != nil {
			return nil, &exitError{code: exitParse, err: err}
		}
		return src, nil
	}

	text, err := os.ReadFile(in)
	if err != nil {
		return nil, &exitError{code: exitRead, err: oops.In("levelc").With("path", in).Wrapf(err, "read %s", in)}
	}
	src, err := levelsource.Parse(string(text))
	if err != nil {
		return nil, &exitError{code: exitParse, err: err}
	}
	return src, nil
}

// report writes a diagnostic with the source line when the error has one.
func report(w io.Writer, err error) {
	var pe *levelsource.ParseError
	var se *levelcompiler.SemanticError
	switch {
	case errors.As(err, &pe):
		fmt.Fprintf(w, "levelc: line %d: %s\n", pe.Line, pe.Message)
		if pe.Text != "" {
			fmt.Fprintf(w, "%6d | %s\n", pe.Line, pe.Text)
		}
	case errors.As(err, &se):
		fmt.Fprintf(w, "levelc: %s\n", se.Error())
	default:
		fmt.Fprintf(w, "levelc: %v\n", err)
	}
}
