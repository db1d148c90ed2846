package ast

// Inspect traverses cmds in depth-first order, calling f for every command.
// If f returns false, the children of that command are skipped.
func Inspect(cmds []Command, f func(Command) bool) {
	for _, c := range cmds {
		if !f(c) {
			continue
		}
		if loop, ok := c.(*Loop); ok {
			Inspect(loop.Body, f)
		}
	}
}

// CountLoops returns the number of Loop nodes in the tree.
func CountLoops(cmds []Command) int {
	n := 0
	Inspect(cmds, func(c Command) bool {
		if _, ok := c.(*Loop); ok {
			n++
		}
		return true
	})
	return n
}

// CountCommands returns the number of nodes in the tree, loops included.
func CountCommands(cmds []Command) int {
	n := 0
	Inspect(cmds, func(Command) bool {
		n++
		return true
	})
	return n
}

// MaxDepth is the deepest loop nesting in the tree. A flat program has depth 0.
func MaxDepth(cmds []Command) int {
	depth := 0
	for _, c := range cmds {
		if loop, ok := c.(*Loop); ok {
			if d := 1 + MaxDepth(loop.Body); d > depth {
				depth = d
			}
		}
	}
	return depth
}

// Equal reports whether two command sequences have the same shape,
// ignoring source positions.
func Equal(a, b []Command) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].TokenLiteral() != b[i].TokenLiteral() {
			return false
		}
		la, aok := a[i].(*Loop)
		lb, bok := b[i].(*Loop)
		if aok != bok {
			return false
		}
		if aok && !Equal(la.Body, lb.Body) {
			return false
		}
	}
	return true
}
