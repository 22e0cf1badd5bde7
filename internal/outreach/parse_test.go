// File path: internal/outreach/parse_test.go
package outreach

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const wellFormedOutput = `[
  {"variant": "direct", "content": "Direct message.", "matchReason": "fit"},
  {"variant": "value", "content": "Value message.", "matchReason": "fit"},
  {"variant": "curiosity", "content": "Curiosity message.", "matchReason": "fit"},
  {"variant": "relationship", "content": "Relationship message.", "matchReason": "fit"}
]`

func TestParseVariantsWellFormed(t *testing.T) {
	variants, dropped, err := ParseVariants(wellFormedOutput)
	require.NoError(t, err)
	require.Zero(t, dropped)
	require.Len(t, variants, 4)

	tags := make(map[VariantTag]bool)
	for _, v := range variants {
		tags[v.Variant] = true
		require.NotEmpty(t, v.Content)
	}
	for _, tag := range AllVariantTags() {
		require.True(t, tags[tag], "missing %s", tag)
	}
}

func TestParseVariantsFencedEqualsBare(t *testing.T) {
	bare, _, err := ParseVariants(wellFormedOutput)
	require.NoError(t, err)

	for _, wrapped := range []string{
		"```json\n" + wellFormedOutput + "\n```",
		"```\n" + wellFormedOutput + "\n```",
		"```json\n```json\n" + wellFormedOutput + "\n```\n```",
	} {
		fenced, dropped, err := ParseVariants(wrapped)
		require.NoError(t, err)
		require.Zero(t, dropped)
		require.Equal(t, bare, fenced)
	}
}

func TestStripCodeFenceIdempotent(t *testing.T) {
	once := StripCodeFence("```json\n[1]\n```")
	require.Equal(t, "[1]", once)
	require.Equal(t, once, StripCodeFence(once))
}

func TestParseVariantsInvalidJSONFailsClosed(t *testing.T) {
	for _, raw := range []string{
		"here are your messages!",
		`{"variant": "direct"}`,
		"```json\nnot json\n```",
		"",
	} {
		_, _, err := ParseVariants(raw)
		require.ErrorIs(t, err, ErrUnparsableOutput, "input %q", raw)
	}
}

func TestParseVariantsDropsMalformedEntries(t *testing.T) {
	raw := `[
	  {"variant": "direct", "content": "Keep me."},
	  {"variant": "shouty", "content": "Unknown tag."},
	  {"variant": "value", "content": "   "},
	  {"variant": "curiosity", "content": "Also kept."}
	]`
	variants, dropped, err := ParseVariants(raw)
	require.NoError(t, err)
	require.Equal(t, 2, dropped)
	require.Len(t, variants, 2)
	require.Equal(t, VariantDirect, variants[0].Variant)
	require.Equal(t, VariantCuriosity, variants[1].Variant)
}

func TestParseVariantsAllDroppedFailsClosed(t *testing.T) {
	raw := `[{"variant": "bogus", "content": "x"}, {"variant": "direct", "content": ""}]`
	_, dropped, err := ParseVariants(raw)
	require.ErrorIs(t, err, ErrUnparsableOutput)
	require.Equal(t, 2, dropped)
}

func TestParseVariantTagClosedSet(t *testing.T) {
	tag, err := ParseVariantTag(" Direct ")
	require.NoError(t, err)
	require.Equal(t, VariantDirect, tag)

	_, err = ParseVariantTag("persuasive")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrUnparsableOutput))
}
