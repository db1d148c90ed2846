package evaluator

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/funvibe/funbf/internal/ast"
	"github.com/funvibe/funbf/internal/config"
)

// Cell is the set of supported cell types. Arithmetic on a cell wraps
// modulo its width, which is exactly Go's unsigned overflow behaviour.
type Cell interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Machine is the width independent view of an evaluator.
type Machine interface {
	// Run executes a whole program and flushes buffered output.
	Run(program *ast.Program) error
	// Cell returns the value of tape cell i.
	Cell(i int) uint64
	// SetCell stores v, truncated to the cell width, in tape cell i.
	SetCell(i int, v uint64)
	Pointer() int
	TapeSize() int
	// Steps counts executed commands; every re-check of a loop condition
	// after an iteration counts as one more.
	Steps() uint64
}

// Evaluator walks a command tree against a tape and a data pointer.
// It owns both for the duration of one run and is not safe for
// concurrent use.
type Evaluator[C Cell] struct {
	tape  []C
	ptr   int
	in    io.ByteReader
	out   *bufio.Writer
	eof   config.EOFMode
	steps uint64
}

// New builds an evaluator for cfg's tape size, cell width and EOF mode.
// A nil in behaves as an empty input; a nil out discards output.
func New(cfg *config.Config, in io.Reader, out io.Writer) (Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.CellBits {
	case 8:
		return NewWithCells[uint8](cfg.TapeSize, in, out, cfg.EOF), nil
	case 16:
		return NewWithCells[uint16](cfg.TapeSize, in, out, cfg.EOF), nil
	case 32:
		return NewWithCells[uint32](cfg.TapeSize, in, out, cfg.EOF), nil
	case 64:
		return NewWithCells[uint64](cfg.TapeSize, in, out, cfg.EOF), nil
	}
	return nil, fmt.Errorf("%w: unsupported cell width %d", config.ErrInvalid, cfg.CellBits)
}

// NewWithCells creates an evaluator with a zeroed tape of size cells.
func NewWithCells[C Cell](size int, in io.Reader, out io.Writer, eof config.EOFMode) *Evaluator[C] {
	if out == nil {
		out = io.Discard
	}
	var br io.ByteReader
	switch r := in.(type) {
	case nil:
		br = emptyInput{}
	case io.ByteReader:
		br = r
	default:
		br = &byteAtATime{r: r}
	}
	if eof == "" {
		eof = config.DefaultEOF
	}
	return &Evaluator[C]{
		tape: make([]C, size),
		in:   br,
		out:  bufio.NewWriter(out),
		eof:  eof,
	}
}

type emptyInput struct{}

func (emptyInput) ReadByte() (byte, error) { return 0, io.EOF }

// byteAtATime never reads past the byte it returns, so bytes the program
// does not consume stay in r for the next reader.
type byteAtATime struct {
	r   io.Reader
	buf [1]byte
}

func (b *byteAtATime) ReadByte() (byte, error) {
	if _, err := io.ReadFull(b.r, b.buf[:]); err != nil {
		return 0, err
	}
	return b.buf[0], nil
}

func (e *Evaluator[C]) Run(program *ast.Program) error {
	err := e.Exec(program.Commands)
	if ferr := e.out.Flush(); ferr != nil && err == nil {
		err = &RuntimeError{Message: "writing output", Err: ferr}
	}
	return err
}

// Exec runs cmds in order, recursing into loop bodies. Output stays
// buffered until the next ',' or the end of Run.
func (e *Evaluator[C]) Exec(cmds []ast.Command) error {
	for _, cmd := range cmds {
		e.steps++
		switch c := cmd.(type) {
		case *ast.MoveRight:
			if e.ptr+1 >= len(e.tape) {
				return e.outOfBounds(c, e.ptr+1)
			}
			e.ptr++
		case *ast.MoveLeft:
			if e.ptr == 0 {
				return e.outOfBounds(c, -1)
			}
			e.ptr--
		case *ast.Increment:
			e.tape[e.ptr]++
		case *ast.Decrement:
			e.tape[e.ptr]--
		case *ast.Output:
			if err := e.out.WriteByte(byte(e.tape[e.ptr])); err != nil {
				return &RuntimeError{Token: c.Token, Message: "writing output", Err: err}
			}
		case *ast.Input:
			if err := e.read(c); err != nil {
				return err
			}
		case *ast.Loop:
			// Check the cell; on non-zero run the body once and check again.
			for e.tape[e.ptr] != 0 {
				if err := e.Exec(c.Body); err != nil {
					return err
				}
				e.steps++
			}
		default:
			return fmt.Errorf("unknown command %T", cmd)
		}
	}
	return nil
}

func (e *Evaluator[C]) read(c *ast.Input) error {
	// Prompts written before a read must be visible to the user.
	if err := e.out.Flush(); err != nil {
		return &RuntimeError{Token: c.Token, Message: "writing output", Err: err}
	}
	b, err := e.in.ReadByte()
	switch {
	case err == nil:
		e.tape[e.ptr] = C(b)
	case errors.Is(err, io.EOF):
		if e.eof == config.EOFZero {
			e.tape[e.ptr] = 0
		}
	default:
		return &RuntimeError{Token: c.Token, Message: "reading input", Err: err}
	}
	return nil
}

func (e *Evaluator[C]) outOfBounds(c ast.Command, target int) error {
	return &RuntimeError{
		Token:   c.GetToken(),
		Message: fmt.Sprintf("%s moves the pointer to %d, tape has cells 0..%d", c.TokenLiteral(), target, len(e.tape)-1),
		Err:     ErrPointerOutOfBounds,
	}
}

func (e *Evaluator[C]) Cell(i int) uint64 { return uint64(e.tape[i]) }

func (e *Evaluator[C]) SetCell(i int, v uint64) { e.tape[i] = C(v) }

func (e *Evaluator[C]) Pointer() int { return e.ptr }

func (e *Evaluator[C]) TapeSize() int { return len(e.tape) }

func (e *Evaluator[C]) Steps() uint64 { return e.steps }
