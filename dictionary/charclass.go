package dictionary

import "strings"

// CharacterClass is the closed character-category enumeration used to drive
// unknown-word generation. Serialized as a single byte.
type CharacterClass uint8

const (
	NGRAM CharacterClass = iota
	DEFAULT
	SPACE
	SYMBOL
	NUMERIC
	ALPHA
	CYRILLIC
	GREEK
	HIRAGANA
	KATAKANA
	KANJI
	HANGUL
	HANJA
	HANJANUMERIC
)

var charClassNames = [...]string{
	NGRAM:        "NGRAM",
	DEFAULT:      "DEFAULT",
	SPACE:        "SPACE",
	SYMBOL:       "SYMBOL",
	NUMERIC:      "NUMERIC",
	ALPHA:        "ALPHA",
	CYRILLIC:     "CYRILLIC",
	GREEK:        "GREEK",
	HIRAGANA:     "HIRAGANA",
	KATAKANA:     "KATAKANA",
	KANJI:        "KANJI",
	HANGUL:       "HANGUL",
	HANJA:        "HANJA",
	HANJANUMERIC: "HANJANUMERIC",
}

func (c CharacterClass) String() string {
	if int(c) < len(charClassNames) {
		return charClassNames[c]
	}
	return "DEFAULT"
}

var charClassByName = func() map[string]CharacterClass {
	m := make(map[string]CharacterClass, len(charClassNames))
	for class, name := range charClassNames {
		m[name] = CharacterClass(class)
	}
	return m
}()

// CharacterClassFromName maps a char.def category token to a CharacterClass.
func CharacterClassFromName(name string) (CharacterClass, error) {
	if class, ok := charClassByName[strings.ToUpper(name)]; ok {
		return class, nil
	}
	return DEFAULT, wrapf(DictionaryMalformed, nil, "unknown character class %q", name)
}

// CategoryDefinition carries the unknown-word-generation policy for one
// CharacterClass, as parsed from a char.def category line.
type CategoryDefinition struct {
	Invoke uint8
	Group  uint8
	Length uint8
}

// ForceInvoke reports whether this class forces unknown-word generation even
// when the dictionary already matched at the current position.
func (c CategoryDefinition) ForceInvoke() bool { return c.Invoke == 1 }

// ShouldGroup reports whether a run of same-category characters should be
// grouped into a single unknown morpheme.
func (c CategoryDefinition) ShouldGroup() bool { return c.Group == 1 }
