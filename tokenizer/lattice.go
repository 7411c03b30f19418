package tokenizer

import "github.com/steosofficial/gonori/dictionary"

// node is one internal lattice candidate. Back-pointers are
// (bucket, index-within-bucket) pairs rather than owning pointers, so node
// storage stays a flat array-of-buckets with no cycles.
type node struct {
	morpheme         *dictionary.Morpheme
	start            int
	end              int
	startWithSpace   int
	spaceCost        int32
	totalCost        int32
	parentNodeIndex  int
	uniqueID         uint32
}

// defaultTotalCost is the unreached-node cost sentinel: large enough that
// any reachable path strictly dominates it.
const defaultTotalCost int32 = 1_000_000_000

// Token is one element of a Tokenize result.
type Token struct {
	Surface  string
	Offset   int
	Length   int
	Morpheme *dictionary.Morpheme
}

// Lattice is the ordered output of Tokenize: always starts with a BOS token
// and ends with an EOS token.
type Lattice []Token
