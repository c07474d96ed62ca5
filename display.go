package bptree

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Debug output for maps and sets: Graphviz DOT structure dumps and a
// colorized, width-aware console listing.

var (
	keyStyle    = color.New(color.FgCyan, color.Bold)
	memberStyle = color.New(color.FgCyan)
)

// printWidth returns the column limit for console listings: the
// terminal width when w is an interactive terminal, 80 otherwise.
func printWidth(w io.Writer) int {
	width := 80
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			width = tw
		}
	}
	return width
}

// Dot outputs the internal tree structure of the map in Graphviz DOT
// format (for debugging purposes).
func (m *Map[K, V]) Dot(w io.Writer) {
	m.tree.Dot(w)
}

// Dot outputs the internal tree structure of the set in Graphviz DOT
// format (for debugging purposes).
func (s *Set[K]) Dot(w io.Writer) {
	s.tree.Dot(w)
}

// PrintTo writes all entries in key order as a wrapped, comma-separated
// listing. Keys are colorized according to the color package's global
// setting (which follows standard output); w itself is not inspected.
func (m *Map[K, V]) PrintTo(w io.Writer) {
	width := printWidth(w)
	line := 0
	m.tree.ForEach(func(k K, v V) bool {
		plain := fmt.Sprintf("%v=%v", k, v)
		line = advance(w, line, len(plain), width)
		fmt.Fprintf(w, "%s=%v", keyStyle.Sprintf("%v", k), v)
		return true
	})
	fmt.Fprintln(w)
}

// PrintTo writes all members in ascending order as a wrapped,
// comma-separated listing.
func (s *Set[K]) PrintTo(w io.Writer) {
	width := printWidth(w)
	line := 0
	s.tree.ForEach(func(k K, _ struct{}) bool {
		plain := fmt.Sprintf("%v", k)
		line = advance(w, line, len(plain), width)
		fmt.Fprint(w, memberStyle.Sprintf("%v", k))
		return true
	})
	fmt.Fprintln(w)
}

// advance emits the separator or line break preceding a cell of the
// given visible length and returns the new line fill.
func advance(w io.Writer, line, cell, width int) int {
	if line > 0 && line+cell+2 > width {
		fmt.Fprintln(w, ",")
		return cell
	}
	if line > 0 {
		fmt.Fprint(w, ", ")
		return line + cell + 2
	}
	return cell
}
