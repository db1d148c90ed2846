package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/funvibe/funbf/internal/backend"
	"github.com/funvibe/funbf/internal/config"
	"github.com/funvibe/funbf/internal/diagnostics"
	"github.com/funvibe/funbf/internal/logs"
	"github.com/funvibe/funbf/internal/parser"
	"github.com/funvibe/funbf/internal/pipeline"
	"github.com/funvibe/funbf/internal/prettyprinter"
	"github.com/funvibe/funbf/internal/token"
	"github.com/mattn/go-isatty"
)

// CLI is the command line of funbf.
type CLI struct {
	Memory       string `short:"m" placeholder:"N" help:"Number of tape cells (default 30000)."`
	TranspileToC string `short:"t" name:"transpile-to-c" placeholder:"FILE" help:"Write an equivalent C program to FILE instead of running."`
	Debug        bool   `short:"d" help:"Log elapsed time and step count after the run."`
	Command      bool   `short:"c" help:"Treat INPUT as program text instead of a file path."`
	Strict       bool   `help:"Reject programs with unmatched brackets."`
	CellBits     int    `name:"cell-bits" placeholder:"BITS" help:"Cell width: 8, 16, 32 or 64."`
	EOF          string `name:"eof" placeholder:"MODE" help:"Value stored by ',' at end of input: zero or unchanged."`
	Fmt          bool   `help:"Print the program in canonical layout and exit."`
	Config       string `placeholder:"FILE" help:"Configuration file (default: funbf.yaml found next to the program or above)."`
	LogFile      string `name:"log-file" placeholder:"FILE" help:"Append JSON log records to FILE."`
	LogJSON      bool   `name:"log-json" help:"Write log records on stderr as JSON."`

	Input string `arg:"" name:"INPUT" help:"Program file, '-' for stdin, or program text with -c."`
}

// stdio bundles the process streams so tests can run the CLI in-process.
type stdio struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func main() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	var cli CLI
	kong.Parse(&cli,
		kong.Name("funbf"),
		kong.Description("Run a brainfuck program, or translate it to C."),
		kong.UsageOnError(),
	)

	os.Exit(cli.Execute(stdio{in: os.Stdin, out: os.Stdout, err: os.Stderr}))
}

// Execute runs the parsed command line and returns the exit status.
func (c *CLI) Execute(std stdio) int {
	source, path, err := c.readSource(std.in)
	if err != nil {
		fmt.Fprintf(std.err, "- %s\n", err)
		return 1
	}

	cfg, err := c.loadConfig(path)
	if err != nil {
		printErrors(std.err, []*diagnostics.DiagnosticError{
			diagnostics.Wrap(diagnostics.ErrC001, token.Token{}, err),
		})
		return 1
	}

	logger, closeLog, err := c.newLogger(std.err, cfg)
	if err != nil {
		fmt.Fprintf(std.err, "- %s\n", err)
		return 1
	}
	defer closeLog()

	ctx := pipeline.NewPipelineContext(source)
	ctx.FilePath = path
	ctx.Config = cfg
	ctx.Input = std.in
	ctx.Output = std.out
	ctx.TranspilePath = c.TranspileToC
	ctx.Debug = c.Debug
	ctx.Logger = logs.ForRun(logger, ctx.RunID)

	if c.Fmt {
		return runFormat(ctx, std)
	}

	errs := runPipeline(ctx)
	if c.Debug && c.TranspileToC == "" && isTerminal(std.out) {
		// Leave the shell prompt on a fresh line.
		fmt.Fprintln(std.out)
	}
	if len(errs) > 0 {
		printErrors(std.err, errs)
		return 1
	}
	return 0
}

func runPipeline(ctx *pipeline.PipelineContext) []*diagnostics.DiagnosticError {
	processors := []pipeline.Processor{&pipeline.ConfigProcessor{}}
	// The C backend works on the raw text; it does its own bracket pass.
	if ctx.TranspilePath == "" {
		processors = append(processors, &parser.ParserProcessor{})
	}
	processors = append(processors, backend.NewExecutionProcessor(backend.ForContext(ctx)))

	ctx.Log().Debug("pipeline start", "file", ctx.FilePath, "bytes", len(ctx.SourceCode))
	return pipeline.New(processors...).Run(ctx).Errors
}

func runFormat(ctx *pipeline.PipelineContext, std stdio) int {
	final := pipeline.New(&pipeline.ConfigProcessor{}, &parser.ParserProcessor{}).Run(ctx)
	if len(final.Errors) > 0 {
		printErrors(std.err, final.Errors)
		return 1
	}
	fmt.Fprint(std.out, prettyprinter.NewCodePrinter().Print(final.AstRoot))
	return 0
}

func (c *CLI) readSource(stdin io.Reader) (source, path string, err error) {
	if c.Command {
		return c.Input, "", nil
	}
	if c.Input == "-" {
		if isTerminal(stdin) {
			return "", "", errors.New("refusing to read the program from a terminal; pass a file or use -c")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading program from stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}
	data, err := os.ReadFile(c.Input)
	if err != nil {
		return "", "", fmt.Errorf("reading program: %w", err)
	}
	return string(data), c.Input, nil
}

// loadConfig merges the configuration file with flags. Flags win.
func (c *CLI) loadConfig(programPath string) (*config.Config, error) {
	cfg := config.Default()

	configPath := c.Config
	if configPath == "" {
		dir := "."
		if programPath != "" && programPath != "<stdin>" {
			dir = filepath.Dir(programPath)
		}
		found, err := config.FindConfig(dir)
		if err != nil {
			return nil, err
		}
		configPath = found
	}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.Memory != "" {
		n, err := config.ParseTapeSize(c.Memory)
		if err != nil {
			return nil, err
		}
		cfg.TapeSize = n
	}
	if c.CellBits != 0 {
		cfg.CellBits = c.CellBits
	}
	if c.EOF != "" {
		mode, err := config.ParseEOFMode(c.EOF)
		if err != nil {
			return nil, err
		}
		cfg.EOF = mode
	}
	if c.Strict {
		cfg.Strict = true
	}
	if c.LogFile != "" {
		cfg.LogFile = c.LogFile
	}
	return cfg, nil
}

func (c *CLI) newLogger(stderr io.Writer, cfg *config.Config) (*slog.Logger, func(), error) {
	if c.Debug {
		logs.SetLevel(slog.LevelDebug)
	}

	opts := logs.Options{Writer: stderr, JSON: c.LogJSON}
	closeLog := func() {}
	if cfg.LogFile != "" {
		f, err := logs.OpenFile(cfg.LogFile)
		if err != nil {
			return nil, nil, err
		}
		opts.File = f
		closeLog = func() { f.Close() }
	}
	return logs.New(opts), closeLog, nil
}

func printErrors(w io.Writer, errs []*diagnostics.DiagnosticError) {
	for _, err := range errs {
		fmt.Fprintf(w, "- %s\n", err.Error())
	}
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
