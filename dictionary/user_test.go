package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRightIDForSurfaceCodaDetection checks the Hangul syllable modulo-28
// coda check. U+AC00 ("가") is the first syllable in the block and has no
// coda (index 0 mod 28 == 0); U+AC01 ("각") adds the first coda jamo (index
// 1 mod 28 != 0).
func TestRightIDForSurfaceCodaDetection(t *testing.T) {
	additional := AdditionalMetadata{
		LeftIDNNG:        10,
		RightIDNNG:       20,
		RightIDNNGWCoda:  21,
		RightIDNNGWOCoda: 22,
	}

	cases := []struct {
		name    string
		surface string
		want    uint16
	}{
		{"empty surface falls back to plain NNG", "", additional.RightIDNNG},
		{"non-Hangul last rune falls back to plain NNG", "hello", additional.RightIDNNG},
		{"no-coda syllable", "가", additional.RightIDNNGWOCoda},
		{"coda syllable", "각", additional.RightIDNNGWCoda},
		{"coda detection looks at the last rune only", "사과각", additional.RightIDNNGWCoda},
		{"no-coda detection looks at the last rune only", "각사과", additional.RightIDNNGWOCoda},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, rightIDForSurface(tc.surface, additional))
		})
	}
}

func TestNewUserDictionaryEmptyHasNoAutomaton(t *testing.T) {
	u := NewUserDictionary(nil, AdditionalMetadata{})
	assert.Nil(t, u.AC)
	assert.Empty(t, u.Surfaces)
}

func TestNewUserDictionarySynthesizesCompoundExpressions(t *testing.T) {
	additional := AdditionalMetadata{RightIDNNGWOCoda: 5, RightIDNNGWCoda: 6, RightIDNNG: 7}
	entries := []UserEntry{
		{Surface: "가나다", Parts: []string{"가나다"}},
		{Surface: "가나다라", Parts: []string{"가나", "다라"}},
	}

	u := NewUserDictionary(entries, additional)
	assert.NotNil(t, u.AC)
	assert.Equal(t, []string{"가나다", "가나다라"}, u.Surfaces)

	single := u.Morphemes[0]
	assert.Equal(t, MORPHEME, single.POSType)
	assert.Equal(t, []POSTag{}, single.POSTags)
	assert.Empty(t, single.Expressions)

	compound := u.Morphemes[1]
	assert.Equal(t, COMPOUND, compound.POSType)
	assert.Equal(t, []POSTag{NNG}, compound.POSTags)
	assert.Equal(t, []Expression{{Surface: "다라", POSTag: NNG}}, compound.Expressions)
}
