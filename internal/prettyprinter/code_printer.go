package prettyprinter

import (
	"bytes"
	"github.com/funvibe/funbf/internal/ast"
)

// --- Code Printer (Output is canonical brainfuck source) ---

// CodePrinter renders a command tree without comments: runs of leaf
// commands share a line, every bracket sits on its own line and loop
// bodies are indented. Unclosed loops are printed closed, which keeps
// their meaning since their body already ran to the end of the input.
type CodePrinter struct {
	buf       bytes.Buffer
	indent    int
	lineWidth int // max line width (0 = unlimited)
	column    int // current column position
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{indent: 0, lineWidth: 100, column: 0}
}

func NewCodePrinterWithWidth(width int) *CodePrinter {
	return &CodePrinter{indent: 0, lineWidth: width, column: 0}
}

func (p *CodePrinter) SetLineWidth(width int) {
	p.lineWidth = width
}

// Print renders program and returns the text. The printer can be reused.
func (p *CodePrinter) Print(program *ast.Program) string {
	p.buf.Reset()
	p.indent = 0
	p.column = 0
	program.Accept(p)
	return p.buf.String()
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
	p.column = p.indent * 4
}

func (p *CodePrinter) newline() {
	if p.column == 0 {
		return
	}
	p.buf.WriteByte('\n')
	p.column = 0
}

func (p *CodePrinter) writeLeaf(lexeme string) {
	if p.column > 0 && p.lineWidth > 0 && p.column+len(lexeme) > p.lineWidth {
		p.newline()
	}
	if p.column == 0 {
		p.writeIndent()
	}
	p.buf.WriteString(lexeme)
	p.column += len(lexeme)
}

func (p *CodePrinter) writeBracket(b string) {
	p.newline()
	p.writeIndent()
	p.buf.WriteString(b)
	p.column += len(b)
	p.newline()
}

func (p *CodePrinter) printCommands(cmds []ast.Command) {
	for _, c := range cmds {
		c.Accept(p)
	}
}

func (p *CodePrinter) VisitProgram(program *ast.Program) {
	p.printCommands(program.Commands)
	p.newline()
}

func (p *CodePrinter) VisitMoveRight(c *ast.MoveRight) { p.writeLeaf(">") }
func (p *CodePrinter) VisitMoveLeft(c *ast.MoveLeft)   { p.writeLeaf("<") }
func (p *CodePrinter) VisitIncrement(c *ast.Increment) { p.writeLeaf("+") }
func (p *CodePrinter) VisitDecrement(c *ast.Decrement) { p.writeLeaf("-") }
func (p *CodePrinter) VisitOutput(c *ast.Output)       { p.writeLeaf(".") }
func (p *CodePrinter) VisitInput(c *ast.Input)         { p.writeLeaf(",") }

func (p *CodePrinter) VisitLoop(c *ast.Loop) {
	p.writeBracket("[")
	p.indent++
	p.printCommands(c.Body)
	p.indent--
	p.writeBracket("]")
}
