package dictionary

// UnknownTokenDictionary drives unknown-word generation: it classifies
// codepoints, and holds one synthesized Morpheme and one CategoryDefinition
// per CharacterClass.
type UnknownTokenDictionary struct {
	ClassOfCodepoint map[rune]CharacterClass
	MorphemeOfClass  map[CharacterClass]*Morpheme
	CategoryOfClass  map[CharacterClass]CategoryDefinition
}

// NewUnknownTokenDictionary returns an UnknownTokenDictionary pre-seeded with
// the hard-coded NGRAM morpheme (see ngramMorpheme in morpheme.go); callers add the
// unk.def/char.def derived entries on top.
func NewUnknownTokenDictionary() *UnknownTokenDictionary {
	u := &UnknownTokenDictionary{
		ClassOfCodepoint: make(map[rune]CharacterClass),
		MorphemeOfClass:  make(map[CharacterClass]*Morpheme),
		CategoryOfClass:  make(map[CharacterClass]CategoryDefinition),
	}
	ngram := ngramMorpheme
	u.MorphemeOfClass[NGRAM] = &ngram
	return u
}

// ClassOf returns the CharacterClass assigned to a codepoint, falling back
// to HANGUL when the codepoint has no explicit char.def rule.
func (u *UnknownTokenDictionary) ClassOf(r rune) CharacterClass {
	if class, ok := u.ClassOfCodepoint[r]; ok {
		return class
	}
	return HANGUL
}

// CharDef returns the CategoryDefinition governing unknown-word generation
// for the class a codepoint maps to.
func (u *UnknownTokenDictionary) CharDef(r rune) CategoryDefinition {
	return u.CategoryOfClass[u.ClassOf(r)]
}

// MorphemeFor returns the synthesized morpheme for a CharacterClass, or nil
// if none was registered. The builder registers NGRAM plus only the classes
// that unk.def lists, so a class ClassOf can return may still have no entry.
func (u *UnknownTokenDictionary) MorphemeFor(class CharacterClass) *Morpheme {
	return u.MorphemeOfClass[class]
}
