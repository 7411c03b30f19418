package dictionary

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// UserEntry is one user-dictionary source entry before compilation: a
// surface and its optional decomposition into subpart surfaces.
type UserEntry struct {
	Surface string
	Parts   []string
}

// UserDictionary is the compiled user dictionary: synthesized morphemes plus
// an optional Aho-Corasick index, absent when the dictionary is empty.
type UserDictionary struct {
	Surfaces  []string
	Morphemes []Morpheme
	AC        *Automaton
}

// hangulSyllableBase and hangulSyllableEnd bound the precomposed Hangul
// syllable block (U+AC00..U+D7A3) used by the coda check below.
const (
	hangulSyllableBase = 0xAC00
	hangulSyllableEnd  = 0xD7A3
)

// NewUserDictionary compiles a set of entries into a UserDictionary. Entries
// are sorted by surface first, so bucket index i aligns with AC pattern
// index i.
func NewUserDictionary(entries []UserEntry, additional AdditionalMetadata) *UserDictionary {
	sorted := append([]UserEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Surface < sorted[j].Surface })

	u := &UserDictionary{}
	for _, e := range sorted {
		u.Surfaces = append(u.Surfaces, e.Surface)
		u.Morphemes = append(u.Morphemes, synthesizeUserMorpheme(e, additional))
	}
	if len(u.Surfaces) > 0 {
		u.AC = BuildAutomaton(u.Surfaces)
	}
	return u
}

// synthesizeUserMorpheme builds the Morpheme for one user entry.
func synthesizeUserMorpheme(e UserEntry, additional AdditionalMetadata) Morpheme {
	m := Morpheme{
		LeftID:   additional.LeftIDNNG,
		RightID:  rightIDForSurface(e.Surface, additional),
		WordCost: -100000,
	}

	if len(e.Parts) <= 1 {
		m.POSType = MORPHEME
	} else {
		m.POSType = COMPOUND
	}

	switch {
	case len(e.Parts) == 0:
		m.POSTags = []POSTag{NNG}
	default:
		n := len(e.Parts) - 1
		if n < 0 {
			n = 0
		}
		tags := make([]POSTag, n)
		for i := range tags {
			tags[i] = NNG
		}
		m.POSTags = tags
	}

	for i := 1; i < len(e.Parts); i++ {
		m.Expressions = append(m.Expressions, Expression{Surface: e.Parts[i], POSTag: NNG})
	}

	return m
}

// rightIDForSurface selects the right_id by whether surface ends in a
// Hangul syllable with a coda.
func rightIDForSurface(surface string, additional AdditionalMetadata) uint16 {
	if surface == "" {
		return additional.RightIDNNG
	}
	runes := []rune(surface)
	last := runes[len(runes)-1]
	if last < hangulSyllableBase || last > hangulSyllableEnd {
		return additional.RightIDNNG
	}
	if (last-hangulSyllableBase)%28 == 0 {
		return additional.RightIDNNGWOCoda
	}
	return additional.RightIDNNGWCoda
}

// LoadUserDictionaryFile parses one plain-text user dictionary file:
// collapse whitespace, strip '#' comments, skip blank lines; each
// surviving line is "surface part1 part2 ...".
func LoadUserDictionaryFile(path string) ([]UserEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, wrapf(DictionaryMissing, err, "open %s", path)
		}
		return nil, wrapf(IoFailure, err, "open %s", path)
	}
	defer f.Close()

	var entries []UserEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := collapseWhitespace(stripComment(scanner.Text()))
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		entries = append(entries, UserEntry{Surface: fields[0], Parts: fields[1:]})
	}
	if err := scanner.Err(); err != nil {
		return nil, wrapf(IoFailure, err, "scan %s", path)
	}
	return entries, nil
}

// LoadUserDictionaryDirectory parses every *.txt file in dir and
// concatenates their entries.
func LoadUserDictionaryDirectory(dir string) ([]UserEntry, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, wrapf(IoFailure, err, "glob %s/*.txt", dir)
	}
	var all []UserEntry
	for _, file := range files {
		entries, err := LoadUserDictionaryFile(file)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	return all, nil
}
