package tokenizer_test

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steosofficial/gonori/dictionary"
	"github.com/steosofficial/gonori/tokenizer"
)

// loadFixtureTokenizer builds the synthetic dictionary under
// dictionary/testdata/fixture into a fresh temp directory and loads it back,
// exercising the Builder/Loader round trip end to end.
func loadFixtureTokenizer(t *testing.T) *tokenizer.Tokenizer {
	t.Helper()
	out := t.TempDir()
	require.NoError(t, dictionary.NewBuilder(false).Build("../dictionary/testdata/fixture", out))

	sys, err := dictionary.LoadSystemDictionary(out)
	require.NoError(t, err)
	t.Cleanup(func() { sys.Close() })

	user := dictionary.NewUserDictionary(nil, sys.ConnectionCost.Additional)
	return tokenizer.New(sys, user)
}

func surfacesAndTags(l tokenizer.Lattice) ([]string, []dictionary.POSTag) {
	surfaces := make([]string, len(l))
	tags := make([]dictionary.POSTag, len(l))
	for i, tok := range l {
		surfaces[i] = tok.Surface
		tags[i] = tok.Morpheme.FirstPOSTag()
	}
	return surfaces, tags
}

func TestTokenizeScenarios(t *testing.T) {
	tok := loadFixtureTokenizer(t)

	cases := []struct {
		name         string
		input        string
		wantSurfaces []string
		wantTags     []dictionary.POSTag
	}{
		{
			name:         "single space between words",
			input:        "화학 이외의 것",
			wantSurfaces: []string{"BOS", "화학", "이외", "의", "것", "EOS"},
			wantTags: []dictionary.POSTag{
				dictionary.UNKNOWN, dictionary.NNG, dictionary.NNG, dictionary.J, dictionary.NNB, dictionary.UNKNOWN,
			},
		},
		{
			name:         "extra whitespace between words",
			input:        "화학  이외의   것",
			wantSurfaces: []string{"BOS", "화학", "이외", "의", "것", "EOS"},
			wantTags: []dictionary.POSTag{
				dictionary.UNKNOWN, dictionary.NNG, dictionary.NNG, dictionary.J, dictionary.NNB, dictionary.UNKNOWN,
			},
		},
		{
			name:         "comma-separated proper nouns",
			input:        "가락지나물은 한국, 중국, 일본",
			wantSurfaces: []string{"BOS", "가락지나물", "은", "한국", ",", "중국", ",", "일본", "EOS"},
			wantTags: []dictionary.POSTag{
				dictionary.UNKNOWN, dictionary.NNG, dictionary.J, dictionary.NNP, dictionary.SC,
				dictionary.NNP, dictionary.SC, dictionary.NNP, dictionary.UNKNOWN,
			},
		},
		{
			name:         "non-Hangul script grouped as one unknown token",
			input:        "εἰμί",
			wantSurfaces: []string{"BOS", "εἰμί", "EOS"},
			wantTags:     []dictionary.POSTag{dictionary.UNKNOWN, dictionary.SL, dictionary.UNKNOWN},
		},
		{
			name:         "mixed scripts, quotes and sentence-final mark",
			input:        "ABC '텍스트'텍스트 텍스트.",
			wantSurfaces: []string{"BOS", "ABC", "'", "텍스트", "'", "텍스트", "텍스트", ".", "EOS"},
			wantTags: []dictionary.POSTag{
				dictionary.UNKNOWN, dictionary.SL, dictionary.SY, dictionary.NNG, dictionary.SY,
				dictionary.NNG, dictionary.NNG, dictionary.SF, dictionary.UNKNOWN,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lattice := tok.Tokenize(tc.input)
			surfaces, tags := surfacesAndTags(lattice)
			assert.Equal(t, tc.wantSurfaces, surfaces)
			assert.Equal(t, tc.wantTags, tags)
		})
	}
}

// TestTokenizeEmptyInput checks that the lattice is never truly empty: it
// always holds the BOS/EOS sentinels.
func TestTokenizeEmptyInput(t *testing.T) {
	tok := loadFixtureTokenizer(t)
	lattice := tok.Tokenize("")
	surfaces, _ := surfacesAndTags(lattice)
	assert.Equal(t, []string{"BOS", "EOS"}, surfaces)
}

// TestTokenizeWhitespaceOnlyInput checks that unknown-word generation never
// fires on a whitespace-only input.
func TestTokenizeWhitespaceOnlyInput(t *testing.T) {
	tok := loadFixtureTokenizer(t)
	lattice := tok.Tokenize("   ")
	surfaces, _ := surfacesAndTags(lattice)
	assert.Equal(t, []string{"BOS", "EOS"}, surfaces)
}

// TestTokenizeDeterminism checks that tokenizing the same input twice
// against the same dictionary yields identical output.
func TestTokenizeDeterminism(t *testing.T) {
	tok := loadFixtureTokenizer(t)
	const input = "가락지나물은 한국, 중국, 일본"

	first := tok.Tokenize(input)
	second := tok.Tokenize(input)

	s1, t1 := surfacesAndTags(first)
	s2, t2 := surfacesAndTags(second)
	assert.Equal(t, s1, s2)
	assert.Equal(t, t1, t2)
}

// TestTokenizeBoundaryCoverage checks that tokens are non-overlapping, in
// increasing offset order, and that any gap between one token's end and the
// next token's start is whitespace only.
func TestTokenizeBoundaryCoverage(t *testing.T) {
	tok := loadFixtureTokenizer(t)
	const input = "ABC '텍스트'텍스트 텍스트."

	lattice := tok.Tokenize(input)
	require.NotEmpty(t, lattice)

	pos := 0
	for _, token := range lattice {
		require.GreaterOrEqual(t, token.Offset, pos, "token %q overlaps the previous one", token.Surface)
		for gap := input[pos:token.Offset]; len(gap) > 0; {
			r, size := utf8.DecodeRuneInString(gap)
			assert.True(t, tokenizer.IsWhitespace(r), "non-whitespace gap before %q", token.Surface)
			gap = gap[size:]
		}
		pos = token.Offset + token.Length
	}
	for _, r := range input[pos:] {
		assert.True(t, tokenizer.IsWhitespace(r), "trailing non-whitespace not covered by any token")
	}
}
