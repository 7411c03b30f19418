package tokenizer

import "unicode"

// punctuationCategories is the general-category set treated as punctuation
// for unknown-word grouping purposes, built by wrapping stdlib unicode range
// tables behind a domain predicate instead of hand-rolling a codepoint
// table.
var punctuationCategories = []*unicode.RangeTable{
	unicode.Zs, unicode.Zl, unicode.Zp,
	unicode.Cc, unicode.Cf,
	unicode.Pd, unicode.Ps, unicode.Pe, unicode.Pc, unicode.Po,
	unicode.Sm, unicode.Sc, unicode.Sk, unicode.So,
	unicode.Pi, unicode.Pf,
}

// hangulLetterAraea is the one codepoint force-classified as punctuation
// outside the general-category set above.
const hangulLetterAraea = 0x119E

// IsPunctuation reports whether ch should be treated as punctuation for
// unknown-word grouping.
func IsPunctuation(ch rune) bool {
	if ch == hangulLetterAraea {
		return true
	}
	return unicode.In(ch, punctuationCategories...)
}

// IsWhitespace is the whitespace predicate used throughout §4.4.
func IsWhitespace(ch rune) bool {
	return unicode.IsSpace(ch)
}

// IsASCIIDigit reports whether ch is in 0-9, per §4.4.c's "is_digit" check
// (ASCII digits only, not the broader Unicode Nd category).
func IsASCIIDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// commonOrInherited reports whether a script name is one of the two
// wildcard scripts §4.4.c treats specially.
func commonOrInherited(script string) bool {
	return script == "Common" || script == "Inherited"
}

// scriptOf returns the Unicode script name owning ch, grounded on the same
// "wrap unicode.Scripts" approach boxesandglue's ot/unicode_script.go uses
// to mirror HarfBuzz script detection. Falls back to "Common" when no
// script table in unicode.Scripts claims the rune (true only of a small
// number of unassigned/reserved codepoints).
func scriptOf(ch rune) string {
	for name, table := range unicode.Scripts {
		if unicode.Is(table, ch) {
			return name
		}
	}
	return "Common"
}
