package dictionary

// TokenDictionary holds the system dictionary's morpheme buckets. Bucket
// index i corresponds to Aho-Corasick pattern index i: both are derived from
// the same sorted-by-surface pass over the source CSVs.
type TokenDictionary struct {
	Surfaces  []string
	Morphemes [][]Morpheme
}

// Bucket returns the morphemes sharing one surface, in source-CSV insertion
// order, for the given AC pattern index.
func (t *TokenDictionary) Bucket(patternIndex int) []Morpheme {
	if patternIndex < 0 || patternIndex >= len(t.Morphemes) {
		return nil
	}
	return t.Morphemes[patternIndex]
}

// Len returns the number of distinct-surface buckets.
func (t *TokenDictionary) Len() int { return len(t.Morphemes) }
