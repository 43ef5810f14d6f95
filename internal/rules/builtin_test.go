package rules

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/spanmerge/match"
)

func TestBuiltinNames(t *testing.T) {
	assert.Equal(t, []string{"chars", "lines", "words"}, BuiltinNames())
	_, ok := Builtin("lines")
	assert.True(t, ok)
	_, ok = Builtin("nope")
	assert.False(t, ok)
}

func TestChars(t *testing.T) {
	got := slices.Collect(chars("aé\xff"))
	assert.Equal(t, []match.Match{
		{Start: 0, End: 0, Value: "a"},
		{Start: 1, End: 2, Value: "é"},
		{Start: 3, End: 3, Value: "\xff"},
	}, got)
}

func TestLines(t *testing.T) {
	got := slices.Collect(lines("one\r\n\ntwo\nthree"))
	assert.Equal(t, []match.Match{
		{Start: 0, End: 2, Value: "one"},
		{Start: 6, End: 8, Value: "two"},
		{Start: 10, End: 14, Value: "three"},
	}, got)

	assert.Empty(t, slices.Collect(lines("\n\n")))
	assert.Empty(t, slices.Collect(lines("")))
}

func TestWords(t *testing.T) {
	got := slices.Collect(words("hi, wörld 42!x"))
	assert.Equal(t, []match.Match{
		{Start: 0, End: 1, Value: "hi"},
		{Start: 4, End: 9, Value: "wörld"},
		{Start: 11, End: 12, Value: "42"},
		{Start: 14, End: 14, Value: "x"},
	}, got)
}

func TestBuiltins_StopEarly(t *testing.T) {
	for _, name := range BuiltinNames() {
		f, _ := Builtin(name)
		n := 0
		for range f("ab cd\nef gh\n") {
			n++
			break
		}
		require.Equal(t, 1, n, name)
	}
}
