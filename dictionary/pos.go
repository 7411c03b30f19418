package dictionary

import "strings"

// POSTag is the closed part-of-speech enumeration. Values are serialized as
// a single byte, so the declaration order below is the on-disk order.
type POSTag uint8

const (
	UNKNOWN POSTag = iota
	E
	IC
	J
	MAG
	MAJ
	MM
	NNG
	NNP
	NNB
	NNBC
	NP
	NR
	SF
	SH
	SL
	SN
	SP
	SSC
	SSO
	SC
	SY
	SE
	VA
	VCN
	VCP
	VV
	VX
	XPN
	XR
	XSA
	XSN
	XSV
)

var posTagNames = [...]string{
	UNKNOWN: "UNKNOWN",
	E:       "E",
	IC:      "IC",
	J:       "J",
	MAG:     "MAG",
	MAJ:     "MAJ",
	MM:      "MM",
	NNG:     "NNG",
	NNP:     "NNP",
	NNB:     "NNB",
	NNBC:    "NNBC",
	NP:      "NP",
	NR:      "NR",
	SF:      "SF",
	SH:      "SH",
	SL:      "SL",
	SN:      "SN",
	SP:      "SP",
	SSC:     "SSC",
	SSO:     "SSO",
	SC:      "SC",
	SY:      "SY",
	SE:      "SE",
	VA:      "VA",
	VCN:     "VCN",
	VCP:     "VCP",
	VV:      "VV",
	VX:      "VX",
	XPN:     "XPN",
	XR:      "XR",
	XSA:     "XSA",
	XSN:     "XSN",
	XSV:     "XSV",
}

func (t POSTag) String() string {
	if int(t) < len(posTagNames) {
		return posTagNames[t]
	}
	return "UNKNOWN"
}

var posTagByName = func() map[string]POSTag {
	m := make(map[string]POSTag, len(posTagNames))
	for tag, name := range posTagNames {
		m[name] = POSTag(tag)
	}
	return m
}()

// aliasedUnknown collects the historical spellings that the source dictionary
// uses in place of a real tag; all of them collapse to UNKNOWN.
var aliasedUnknown = map[string]bool{
	"UNA": true,
	"NA":  true,
	"VSV": true,
}

// POSTagFromName maps a raw dictionary string to a POSTag. Any name starting
// with "J" maps to J and any name starting with "E" maps to E before exact or
// alias matching is attempted, matching the prefix-collapsing the reference
// dictionary relies on for its many J*/E* subcategories.
func POSTagFromName(name string) (POSTag, error) {
	if name == "" {
		return UNKNOWN, wrapf(DictionaryMalformed, nil, "empty POS tag name")
	}
	if strings.HasPrefix(name, "J") {
		return J, nil
	}
	if strings.HasPrefix(name, "E") {
		return E, nil
	}
	if aliasedUnknown[name] {
		return UNKNOWN, nil
	}
	if tag, ok := posTagByName[name]; ok {
		return tag, nil
	}
	return UNKNOWN, wrapf(DictionaryMalformed, nil, "unknown POS tag name %q", name)
}

// POSType is the coarser morpheme classification.
type POSType uint8

const (
	MORPHEME POSType = iota
	COMPOUND
	INFLECT
	PREANALYSIS
)

func (t POSType) String() string {
	switch t {
	case MORPHEME:
		return "MORPHEME"
	case COMPOUND:
		return "COMPOUND"
	case INFLECT:
		return "INFLECT"
	case PREANALYSIS:
		return "PREANALYSIS"
	default:
		return "MORPHEME"
	}
}

// POSTypeFromName maps the pos_type CSV column to a POSType. "*" and
// "MORPHEME" are synonyms for MORPHEME; matching is case-insensitive.
func POSTypeFromName(name string) (POSType, error) {
	switch strings.ToUpper(name) {
	case "*", "MORPHEME":
		return MORPHEME, nil
	case "COMPOUND":
		return COMPOUND, nil
	case "INFLECT":
		return INFLECT, nil
	case "PREANALYSIS":
		return PREANALYSIS, nil
	default:
		return MORPHEME, wrapf(DictionaryMalformed, nil, "unknown pos_type %q", name)
	}
}
