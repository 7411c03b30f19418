package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/steosofficial/gonori/dictionary"
)

// newGroupUnknownFixture builds just enough of an UnknownTokenDictionary's
// codepoint classification to exercise groupUnknown's script/punctuation/
// digit grouping without going through the full Builder.
func newGroupUnknownFixture() *dictionary.UnknownTokenDictionary {
	u := dictionary.NewUnknownTokenDictionary()
	for r := 'a'; r <= 'z'; r++ {
		u.ClassOfCodepoint[r] = dictionary.ALPHA
	}
	for r := 'A'; r <= 'Z'; r++ {
		u.ClassOfCodepoint[r] = dictionary.ALPHA
	}
	for _, r := range []rune("가나다라마바") {
		u.ClassOfCodepoint[r] = dictionary.HANGUL
	}
	u.ClassOfCodepoint['\''] = dictionary.SYMBOL
	u.ClassOfCodepoint[','] = dictionary.SYMBOL
	u.ClassOfCodepoint['淚'] = dictionary.HANJA
	return u
}

func TestGroupUnknown(t *testing.T) {
	unk := newGroupUnknownFixture()

	cases := []struct {
		name       string
		input      string
		doGroup    bool
		wantOffset int
		wantClass  dictionary.CharacterClass
	}{
		{"empty", "", true, 0, dictionary.DEFAULT},
		{"ascii alpha run stops at space", "abcd efjk", true, 4, dictionary.ALPHA},
		{"hangul run stops at space", "가나다라 마바", true, 12, dictionary.HANGUL},
		{"quote breaks on punctuation mismatch", "'가나다' 마바", true, 1, dictionary.SYMBOL},
		{"hanja run breaks on punctuation mismatch", "淚,", true, 3, dictionary.HANJA},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			offset, class := groupUnknown(tc.input, unk, tc.doGroup)
			assert.Equal(t, tc.wantOffset, offset)
			assert.Equal(t, tc.wantClass, class)
		})
	}
}
