package dictionary

// Expression is one element of a compound/inflected morpheme's decomposition:
// a surface fragment tagged with the POSTag that applies to just that
// fragment (the third CSV sub-field is accepted but unused, per the current
// dictionary contract).
type Expression struct {
	Surface string
	POSTag  POSTag
}

// Morpheme is a single dictionary entry. Instances are immutable after load
// and shared by reference across every lattice node that can match them.
type Morpheme struct {
	LeftID      uint16
	RightID     uint16
	WordCost    int32
	POSType     POSType
	POSTags     []POSTag
	Expressions []Expression
}

// FirstPOSTag returns the morpheme's primary tag, or UNKNOWN if it carries
// none (an anomalous but non-fatal condition, logged by the tokenizer's
// space-cost lookup).
func (m *Morpheme) FirstPOSTag() POSTag {
	if len(m.POSTags) == 0 {
		return UNKNOWN
	}
	return m.POSTags[0]
}

// ngramMorpheme is the hard-coded synthesized entry for the NGRAM character
// class, inserted into every UnknownTokenDictionary regardless of unk.def
// contents.
var ngramMorpheme = Morpheme{
	LeftID:   1798,
	RightID:  3559,
	WordCost: 3677,
	POSType:  MORPHEME,
	POSTags:  []POSTag{SY},
}

// BOSEOS is the constant morpheme used for both the synthetic begin- and
// end-of-sentence lattice nodes.
var BOSEOS = Morpheme{
	LeftID:   0,
	RightID:  0,
	WordCost: 0,
	POSType:  MORPHEME,
	POSTags:  []POSTag{UNKNOWN},
}
