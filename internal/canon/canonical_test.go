package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/spanmerge/match"
)

func TestMarshalBasic(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"string", "hello", `"hello"`},
		{"empty string", "", `""`},
		{"int", 42, "42"},
		{"negative int", -100, "-100"},
		{"int64", int64(9223372036854775807), "9223372036854775807"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"empty array", []any{}, "[]"},
		{"empty object", map[string]any{}, "{}"},
		{"string slice", []string{"a", "b"}, `["a","b"]`},
		{"string map", map[string]string{"b": "2", "a": "1"}, `{"a":"1","b":"2"}`},
		{"array of ints", []any{1, 2, 3}, "[1,2,3]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Marshal(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalSortedKeys(t *testing.T) {
	obj := map[string]any{
		"zebra": 1,
		"alpha": 2,
		"beta":  map[string]any{"y": 1, "x": 2},
	}
	assert.Equal(t, `{"alpha":2,"beta":{"x":2,"y":1},"zebra":1}`, string(MustMarshal(obj)))
}

func TestMarshalUTF16KeyOrder(t *testing.T) {
	// U+1F600 is D83D DE00 in UTF-16 and sorts before U+E000, although its
	// UTF-8 bytes sort after.
	obj := map[string]any{"\uE000": 1, "\U0001F600": 2}
	assert.Equal(t, "{\"\U0001F600\":2,\"\uE000\":1}", string(MustMarshal(obj)))
}

func TestMarshalStringEscaping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"<a & b>", `"<a & b>"`},
		{"quote\"back\\slash", `"quote\"back\\slash"`},
		{"line\nbreak\ttab\r", `"line\nbreak\ttab\r"`},
		{"\x01", `"\u0001"`},
		{"\u2028\u2029", "\"\u2028\u2029\""},
		// e + combining acute is normalized to U+00E9.
		{"e\u0301", "\"\u00e9\""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, string(MustMarshal(tt.input)), "%q", tt.input)
	}
}

func TestMarshalRejects(t *testing.T) {
	for _, v := range []any{nil, 1.5, float32(2), struct{}{}, []any{nil}, map[string]any{"k": 0.1}} {
		_, err := Marshal(v)
		assert.Error(t, err, "%#v", v)
	}
	assert.Panics(t, func() { MustMarshal(nil) })
}

func TestHashDomainSeparation(t *testing.T) {
	a, err := Hash(DomainRuleSet, "x")
	require.NoError(t, err)
	b, err := Hash(DomainGroups, "x")
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)

	again, err := Hash(DomainRuleSet, "x")
	require.NoError(t, err)
	assert.Equal(t, a, again)

	_, err = Hash(DomainRuleSet, 1.0)
	assert.Error(t, err)
}

func TestTextHashIsNotNormalized(t *testing.T) {
	assert.NotEqual(t, TextHash("e\u0301"), TextHash("\u00e9"))
	assert.Equal(t, TextHash("abc"), TextHash("abc"))
}

func TestGroupMap(t *testing.T) {
	left := match.RuleMatch{Rule: "a", Match: match.Match{Start: 0, End: 1, Value: "ab"}}
	right := match.RuleMatch{Rule: "b", Match: match.Match{Start: 1, End: 2, Value: "bc",
		Groups: map[string]string{"n": "c"}}}
	g := match.MatchGroup{Start: 0, End: 2, Left: left, Right: right, Matches: []match.RuleMatch{left, right}}

	got := string(MustMarshal(GroupMap(g)))
	assert.Equal(t,
		`{"end":2,"left":{"end":1,"rule":"a","start":0,"value":"ab"},`+
			`"matches":[{"end":1,"rule":"a","start":0,"value":"ab"},`+
			`{"end":2,"groups":{"n":"c"},"rule":"b","start":1,"value":"bc"}],`+
			`"right":{"end":2,"groups":{"n":"c"},"rule":"b","start":1,"value":"bc"},"start":0}`,
		got)

	h1, err := GroupsHash([]match.MatchGroup{g})
	require.NoError(t, err)
	h2, err := GroupsHash([]match.MatchGroup{g, g})
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
