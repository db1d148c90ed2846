package transpiler

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/funbf/internal/config"
	"github.com/funvibe/funbf/internal/diagnostics"
	"github.com/funvibe/funbf/internal/evaluator"
	"github.com/funvibe/funbf/internal/parser"
)

func TestSource_Layout(t *testing.T) {
	got, err := Source("+[->.<]x,", Options{TapeSize: 16})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `#include <stdint.h>
#include <stdio.h>

int main(void) {
    static uint8_t a[16];
    uint8_t *p = a;
    ++*p;
    while (*p) {
        --*p;
        ++p;
        putchar((unsigned char)*p);
        --p;
    }
    { int c = getchar(); *p = c == EOF ? 0 : c; }
    return 0;
}
`
	if got != want {
		t.Errorf("generated source mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestSource_Defaults(t *testing.T) {
	got, err := Source("", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "static uint8_t a[30000];") {
		t.Errorf("default buffer declaration missing:\n%s", got)
	}
}

func TestSource_CellWidthAndEOF(t *testing.T) {
	got, err := Source(",", Options{TapeSize: 4, CellBits: 32, EOF: config.EOFUnchanged})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"static uint32_t a[4];", "uint32_t *p = a;", "if (c != EOF) *p = c;"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestSource_InvalidOptions(t *testing.T) {
	if _, err := Source("+", Options{TapeSize: -4}); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("negative tape size: error = %v, want config.ErrInvalid", err)
	}
	if _, err := Source("+", Options{CellBits: 7}); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("7-bit cells: error = %v, want config.ErrInvalid", err)
	}
}

func TestSource_UnmatchedBracketsPermissive(t *testing.T) {
	got, err := Source("]+[[-", Options{TapeSize: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o, c := strings.Count(got, "{"), strings.Count(got, "}"); o != c {
		t.Errorf("unbalanced braces (%d open, %d close):\n%s", o, c, got)
	}
	if n := strings.Count(got, "while (*p) {"); n != 2 {
		t.Errorf("got %d loops, want 2", n)
	}
}

func TestEmit_StrictWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	err := Emit(&buf, "+]\n[", Options{Strict: true})
	if err == nil {
		t.Fatal("expected error")
	}
	var diag *diagnostics.DiagnosticError
	if !errors.As(err, &diag) {
		t.Fatalf("error %v carries no diagnostic", err)
	}
	if !strings.Contains(err.Error(), "P001") || !strings.Contains(err.Error(), "P002") {
		t.Errorf("error = %v, want both P001 and P002", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes on error", buf.Len())
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.c")
	if err := WriteFile(path, "+.", Options{TapeSize: 8}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := Source("+.", Options{TapeSize: 8})
	if string(data) != want {
		t.Errorf("file content mismatch:\n%s", data)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestWriteFile_FailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.c")
	if err := os.WriteFile(path, []byte("previous"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(path, "[", Options{Strict: true}); err == nil {
		t.Fatal("expected error")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "previous" {
		t.Errorf("existing file was modified: %q", data)
	}

	missing := filepath.Join(dir, "no", "such", "dir", "out.c")
	if err := WriteFile(missing, "+", Options{}); err == nil {
		t.Fatal("expected error for missing directory")
	}
	if _, err := os.Stat(missing); !os.IsNotExist(err) {
		t.Errorf("stat %s: %v, want not exist", missing, err)
	}
}

// The interpreter and the compiled C program must print the same bytes.
func TestTranspileMatchesInterpreter(t *testing.T) {
	cc, err := exec.LookPath("cc")
	if err != nil {
		t.Skip("no C compiler in PATH")
	}

	programs := []struct {
		name  string
		src   string
		input string
		bits  int
	}{
		{"hello", "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++.", "", 8},
		{"cat", ",[.,]", "echo this\n", 8},
		{"wrap", "-.+.", "", 8},
		{"wide loop", strings.Repeat("+", 256) + "[>+<-]>[-[-[-[-.]]]]", "", 16},
		{"eof zero", ",.,.", "Z", 8},
		{"unclosed", "+++[>++++++++++<-]>+++++++.>[", "", 8},
	}

	dir := t.TempDir()
	for _, tt := range programs {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{TapeSize: 64, CellBits: tt.bits}

			cfile := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".c")
			bin := strings.TrimSuffix(cfile, ".c")
			if err := WriteFile(cfile, tt.src, opts); err != nil {
				t.Fatalf("transpile: %v", err)
			}
			if out, err := exec.Command(cc, "-o", bin, cfile).CombinedOutput(); err != nil {
				t.Fatalf("cc: %v\n%s", err, out)
			}
			cmd := exec.Command(bin)
			cmd.Stdin = strings.NewReader(tt.input)
			compiled, err := cmd.Output()
			if err != nil {
				t.Fatalf("running compiled program: %v", err)
			}

			program, err := parser.Parse(tt.src)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			var interpreted bytes.Buffer
			cfg := &config.Config{TapeSize: 64, CellBits: tt.bits, EOF: config.EOFZero}
			m, err := evaluator.New(cfg, strings.NewReader(tt.input), &interpreted)
			if err != nil {
				t.Fatal(err)
			}
			if err := m.Run(program); err != nil {
				t.Fatalf("interpret: %v", err)
			}

			if !bytes.Equal(compiled, interpreted.Bytes()) {
				t.Errorf("output differs\ncompiled:    %q\ninterpreted: %q", compiled, interpreted.Bytes())
			}
		})
	}
}
