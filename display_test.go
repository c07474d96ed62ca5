package bptree

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapDotOutput(t *testing.T) {
	m := newIntMap(t)
	for k := 1; k <= 12; k++ {
		m.Set(k, "x")
	}
	var buf bytes.Buffer
	m.Dot(&buf)
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "strict digraph {"))
	assert.Contains(t, out, "shape=box")
	assert.Contains(t, out, "->")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "}"))
}

func TestSetPrintTo(t *testing.T) {
	s := newIntSet(t, 3, 1, 2)
	var buf bytes.Buffer
	s.PrintTo(&buf)
	out := buf.String()
	for _, want := range []string{"1", "2", "3"} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "1"), strings.Index(out, "3"),
		"listing must be in ascending order")
}

func TestMapPrintToWraps(t *testing.T) {
	m := newIntMap(t)
	for k := 100; k < 180; k++ {
		m.Set(k, "valuevaluevalue")
	}
	var buf bytes.Buffer
	m.PrintTo(&buf)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Greater(t, len(lines), 1, "long listings must wrap")
}
