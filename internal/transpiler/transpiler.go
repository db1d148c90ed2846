// Package transpiler translates brainfuck source into a standalone C program.
//
// Translation is a single pass over the token stream: every command maps to
// one C statement and brackets map to while blocks, so no command tree is
// built. Unmatched brackets follow the parser's policy: a stray ']' emits
// nothing and every unclosed '[' is closed at the end of the program; in
// strict mode both are errors and nothing is emitted.
package transpiler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/funvibe/funbf/internal/config"
	"github.com/funvibe/funbf/internal/diagnostics"
	"github.com/funvibe/funbf/internal/lexer"
	"github.com/funvibe/funbf/internal/token"
)

// Options control the shape of the generated program.
type Options struct {
	TapeSize int
	CellBits int
	EOF      config.EOFMode
	Strict   bool
}

// OptionsFromConfig copies the relevant settings of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		TapeSize: cfg.TapeSize,
		CellBits: cfg.CellBits,
		EOF:      cfg.EOF,
		Strict:   cfg.Strict,
	}
}

func (o Options) withDefaults() Options {
	if o.TapeSize == 0 {
		o.TapeSize = config.DefaultTapeSize
	}
	if o.CellBits == 0 {
		o.CellBits = config.DefaultCellBits
	}
	if o.EOF == "" {
		o.EOF = config.DefaultEOF
	}
	return o
}

func (o Options) validate() error {
	cfg := config.Config{TapeSize: o.TapeSize, CellBits: o.CellBits, EOF: o.EOF}
	return cfg.Validate()
}

const indentUnit = "    "

var fragments = map[token.TokenType]string{
	token.MOVE_RIGHT: "++p;",
	token.MOVE_LEFT:  "--p;",
	token.INCREMENT:  "++*p;",
	token.DECREMENT:  "--*p;",
	token.OUTPUT:     "putchar((unsigned char)*p);",
	token.LBRACKET:   "while (*p) {",
	token.RBRACKET:   "}",
}

var inputFragments = map[config.EOFMode]string{
	config.EOFZero:      "{ int c = getchar(); *p = c == EOF ? 0 : c; }",
	config.EOFUnchanged: "{ int c = getchar(); if (c != EOF) *p = c; }",
}

// Emit writes the C translation of src to w. The program is rendered in
// memory first, so w receives either all of it or, on error, nothing.
func Emit(w io.Writer, src string, opts Options) error {
	var buf bytes.Buffer
	if err := render(&buf, src, opts); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Source returns the C translation of src.
func Source(src string, opts Options) (string, error) {
	var sb strings.Builder
	if err := render(&sb, src, opts); err != nil {
		return "", err
	}
	return sb.String(), nil
}

type stringWriter interface {
	io.Writer
	WriteString(s string) (int, error)
}

func render(w stringWriter, src string, opts Options) error {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return err
	}
	cell := fmt.Sprintf("uint%d_t", opts.CellBits)

	fmt.Fprintf(w, "#include <stdint.h>\n#include <stdio.h>\n\nint main(void) {\n")
	fmt.Fprintf(w, "%sstatic %s a[%d];\n", indentUnit, cell, opts.TapeSize)
	fmt.Fprintf(w, "%s%s *p = a;\n", indentUnit, cell)

	var open []token.Token // unmatched '[' so far
	var errs []error

	l := lexer.New(src)
	for tok := l.NextToken(); tok.Type != token.EOF; tok = l.NextToken() {
		switch tok.Type {
		case token.LBRACKET:
			writeLine(w, len(open)+1, fragments[tok.Type])
			open = append(open, tok)
		case token.RBRACKET:
			if len(open) == 0 {
				if opts.Strict {
					errs = append(errs, diagnostics.NewError(diagnostics.ErrP002, tok, "unexpected ']' with no open loop"))
				}
				continue
			}
			open = open[:len(open)-1]
			writeLine(w, len(open)+1, fragments[tok.Type])
		case token.INPUT:
			writeLine(w, len(open)+1, inputFragments[opts.EOF])
		default:
			writeLine(w, len(open)+1, fragments[tok.Type])
		}
	}

	for i := len(open) - 1; i >= 0; i-- {
		if opts.Strict {
			errs = append(errs, diagnostics.NewError(diagnostics.ErrP001, open[i], "loop opened here is never closed"))
		}
		writeLine(w, i+1, "}")
	}

	w.WriteString(indentUnit + "return 0;\n}\n")
	return errors.Join(errs...)
}

func writeLine(w stringWriter, depth int, s string) {
	w.WriteString(strings.Repeat(indentUnit, depth))
	w.WriteString(s)
	w.WriteString("\n")
}

// WriteFile writes the C translation of src to path. The file is created
// through a temporary file in the same directory and renamed into place,
// so path is either fully written or left untouched.
func WriteFile(path string, src string, opts Options) (err error) {
	var buf bytes.Buffer
	if err := Emit(&buf, src, opts); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err = tmp.Chmod(0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
