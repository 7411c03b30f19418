package tokenizer

import (
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/steosofficial/gonori/dictionary"
)

// spaceCostTags is the set of POS tags that carry a non-zero space cost.
var spaceCostTags = map[dictionary.POSTag]bool{
	dictionary.E:   true,
	dictionary.J:   true,
	dictionary.VCP: true,
	dictionary.XSA: true,
	dictionary.XSN: true,
	dictionary.XSV: true,
}

// Tokenizer runs the three-phase lattice construction plus Viterbi path
// selection against one loaded system dictionary and an optional user
// dictionary overlay.
type Tokenizer struct {
	System *dictionary.SystemDictionary
	User   *dictionary.UserDictionary
	Logger zerolog.Logger
}

// New returns a Tokenizer. A nil User is equivalent to an empty user
// dictionary (phase 1 is elided).
func New(system *dictionary.SystemDictionary, user *dictionary.UserDictionary) *Tokenizer {
	return &Tokenizer{System: system, User: user, Logger: log.Logger}
}

// Tokenize runs the full pipeline over input and returns the winning
// Lattice. Total over any valid UTF-8 string; never fails, never panics on
// empty input (returns just BOS/EOS).
func (t *Tokenizer) Tokenize(input string) Lattice {
	buckets, nextID := t.buildLattice(input)
	lattice, _, _ := t.backtrace(input, buckets, nextID+1)
	return lattice
}

// buildLattice runs phases 1-3 and the Viterbi sweep, returning the solved
// bucket array plus the last unique id assigned to any pushed node (BOS
// holds id 0, so the first pushed node holds id 1).
func (t *Tokenizer) buildLattice(input string) ([][]node, uint32) {
	buckets := make([][]node, len(input)+1)
	buckets[0] = append(buckets[0], node{morpheme: &dictionary.BOSEOS})

	foundsPosition := make(map[int]bool)
	var uniqueID uint32

	t.lookupUserDictionary(input, buckets, foundsPosition, &uniqueID)
	t.lookupSystemDictionary(input, buckets, foundsPosition, &uniqueID)
	t.generateUnknownWords(input, buckets, foundsPosition, &uniqueID)

	t.runViterbi(buckets)

	return buckets, uniqueID
}

// lookupUserDictionary is phase 1.
func (t *Tokenizer) lookupUserDictionary(input string, buckets [][]node, founds map[int]bool, uniqueID *uint32) {
	if t.User == nil || t.User.AC == nil {
		return
	}
	t.User.AC.Walk([]byte(input), func(m dictionary.Match) {
		founds[m.Start] = true
		numSpaces := countSpaceBefore(input, m.Start)
		morph := &t.User.Morphemes[m.Pattern]
		var spaceCost int32
		if numSpaces > 0 {
			spaceCost = t.spaceCost(morph)
		}
		*uniqueID++
		buckets[m.End] = append(buckets[m.End], node{
			morpheme:        morph,
			start:           m.Start,
			end:             m.End,
			startWithSpace:  m.Start - numSpaces,
			spaceCost:       spaceCost,
			totalCost:       defaultTotalCost,
			parentNodeIndex: 0,
			uniqueID:        *uniqueID,
		})
	})
}

// lookupSystemDictionary is phase 2: one node per morpheme sharing the
// matched surface.
func (t *Tokenizer) lookupSystemDictionary(input string, buckets [][]node, founds map[int]bool, uniqueID *uint32) {
	if t.System.AC == nil {
		return
	}
	t.System.AC.Walk([]byte(input), func(m dictionary.Match) {
		founds[m.Start] = true
		numSpaces := countSpaceBefore(input, m.Start)
		bucket := t.System.Tokens.Bucket(m.Pattern)
		for i := range bucket {
			morph := &bucket[i]
			var spaceCost int32
			if numSpaces > 0 {
				spaceCost = t.spaceCost(morph)
			}
			*uniqueID++
			buckets[m.End] = append(buckets[m.End], node{
				morpheme:        morph,
				start:           m.Start,
				end:             m.End,
				startWithSpace:  m.Start - numSpaces,
				spaceCost:       spaceCost,
				totalCost:       defaultTotalCost,
				parentNodeIndex: 0,
				uniqueID:        *uniqueID,
			})
		}
	})
}

// generateUnknownWords is phase 3.
func (t *Tokenizer) generateUnknownWords(input string, buckets [][]node, founds map[int]bool, uniqueID *uint32) {
	lastPushedIndex := 0
	for start, ch := range input {
		if start < lastPushedIndex {
			continue
		}
		if IsWhitespace(ch) {
			continue
		}
		charDef := t.System.Unknown.CharDef(ch)
		if founds[start] && !charDef.ForceInvoke() {
			continue
		}

		unkLen, class := groupUnknown(input[start:], t.System.Unknown, charDef.ShouldGroup())
		morph := t.System.Unknown.MorphemeFor(class)
		end := start + unkLen

		numSpaces := countSpaceBefore(input, start)
		var spaceCost int32
		if numSpaces > 0 {
			spaceCost = t.spaceCost(morph)
		}
		*uniqueID++
		buckets[end] = append(buckets[end], node{
			morpheme:        morph,
			start:           start,
			end:             end,
			startWithSpace:  start - numSpaces,
			spaceCost:       spaceCost,
			totalCost:       defaultTotalCost,
			parentNodeIndex: 0,
			uniqueID:        *uniqueID,
		})
		lastPushedIndex = end
	}
}

// spaceCost implements get_space_cost (§4.4.b), logging the anomalous
// empty-pos_tags case rather than failing.
func (t *Tokenizer) spaceCost(m *dictionary.Morpheme) int32 {
	if len(m.POSTags) == 0 {
		t.Logger.Warn().Msg("morpheme has empty pos_tags during space-cost lookup")
		return 0
	}
	if spaceCostTags[m.FirstPOSTag()] {
		return 3000
	}
	return 0
}

// runViterbi implements §4.5's forward sweep.
func (t *Tokenizer) runViterbi(buckets [][]node) {
	for i := 1; i < len(buckets); i++ {
		bucket := buckets[i]
		for idx := range bucket {
			n := &bucket[idx]
			candidates := buckets[n.startWithSpace]
			if len(candidates) == 0 {
				continue
			}
			parentIdx, connCost := selectParent(candidates, n.morpheme.LeftID, t.System.ConnectionCost)
			parent := candidates[parentIdx]
			n.totalCost = parent.totalCost + n.spaceCost + connCost + n.morpheme.WordCost
			n.parentNodeIndex = parentIdx
		}
	}
}

// selectParent implements select_parent (§4.5): ties broken by first-seen
// minimum.
func selectParent(candidates []node, leftID uint16, cc *dictionary.ConnectionCost) (int, int32) {
	if len(candidates) == 0 {
		return 0, 0
	}
	bestIdx := 0
	bestConn := cc.Cost(candidates[0].morpheme.RightID, leftID)
	bestTotal := candidates[0].totalCost + bestConn
	for k := 1; k < len(candidates); k++ {
		connCost := cc.Cost(candidates[k].morpheme.RightID, leftID)
		candidateCost := candidates[k].totalCost + connCost
		if candidateCost < bestTotal {
			bestTotal = candidateCost
			bestIdx = k
			bestConn = connCost
		}
	}
	return bestIdx, bestConn
}

// backtrace implements §4.5's back-trace, producing the final Lattice plus
// the unique ids of every node on the winning path (in path order: BOS's id 0
// first, eosID last) so a graph renderer can mark them optimal without
// recomputing the path.
func (t *Tokenizer) backtrace(input string, buckets [][]node, eosID uint32) (Lattice, []uint32, int) {
	tailSpaces := countSpaceBefore(input, len(input))
	endPos := len(input) - tailSpaces

	eosParentIdx, _ := selectParent(buckets[endPos], dictionary.BOSEOS.LeftID, t.System.ConnectionCost)

	var tokens []Token
	var ids []uint32
	tokens = append(tokens, Token{Surface: "EOS", Offset: endPos, Length: 0, Morpheme: &dictionary.BOSEOS})
	ids = append(ids, eosID)

	cur := buckets[endPos][eosParentIdx]
	for cur.end != 0 {
		tokens = append(tokens, Token{
			Surface:  input[cur.start:cur.end],
			Offset:   cur.start,
			Length:   cur.end - cur.start,
			Morpheme: cur.morpheme,
		})
		ids = append(ids, cur.uniqueID)
		cur = buckets[cur.startWithSpace][cur.parentNodeIndex]
	}
	tokens = append(tokens, Token{Surface: "BOS", Offset: 0, Length: 0, Morpheme: &dictionary.BOSEOS})
	ids = append(ids, 0)

	for i, j := 0, len(tokens)-1; i < j; i, j = i+1, j-1 {
		tokens[i], tokens[j] = tokens[j], tokens[i]
	}
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	return tokens, ids, endPos
}

// countSpaceBefore implements count_space_before_word (§4.4.a): walk
// codepoints backwards from offset, summing byte widths of whitespace runs.
func countSpaceBefore(input string, offset int) int {
	count := 0
	for offset > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:offset])
		if r == utf8.RuneError && size <= 1 {
			break
		}
		if !IsWhitespace(r) {
			break
		}
		count += size
		offset -= size
	}
	return count
}

// groupUnknown implements group_unknown (§4.4.c).
func groupUnknown(rest string, unk *dictionary.UnknownTokenDictionary, doGroup bool) (int, dictionary.CharacterClass) {
	if rest == "" {
		return 0, dictionary.DEFAULT
	}
	firstCh, firstSize := utf8.DecodeRuneInString(rest)
	class := unk.ClassOf(firstCh)
	resultOffset := firstSize
	if !doGroup {
		return resultOffset, class
	}

	firstScript := scriptOf(firstCh)
	firstIsCommonOrInherited := commonOrInherited(firstScript)
	isFirstPunct := IsPunctuation(firstCh)
	isFirstDigit := IsASCIIDigit(firstCh)

	i := firstSize
	for i < len(rest) {
		ch, size := utf8.DecodeRuneInString(rest[i:])
		chScript := scriptOf(ch)
		isSameScript := (chScript == firstScript || firstIsCommonOrInherited || commonOrInherited(chScript)) && !IsWhitespace(ch)
		isPunct := IsPunctuation(ch)
		isDigit := IsASCIIDigit(ch)

		if !isSameScript || isPunct != isFirstPunct || isDigit != isFirstDigit {
			break
		}
		if firstIsCommonOrInherited && !isPunct {
			firstScript = chScript
			class = unk.ClassOf(ch)
			firstIsCommonOrInherited = commonOrInherited(firstScript)
		}
		resultOffset += size
		i += size
	}
	return resultOffset, class
}
