package dictionary

import (
	"bufio"
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// mecabCSVColumns is the column count of one MeCab dictionary CSV row, whose
// columns are, in order:
// surface,left_id,right_id,word_cost,pos_tags,semantic_class,is_coda,
// reading_form,pos_type,left_pos,right_pos,expression
const mecabCSVColumns = 12

// Builder compiles a MeCab-format source tree into the four compiled
// dictionary artifacts, in the binary format documented in artifacts.go.
type Builder struct {
	Normalize bool
	Logger    zerolog.Logger
}

// NewBuilder returns a Builder that logs through the global zerolog logger;
// callers may replace Builder.Logger afterwards.
func NewBuilder(normalize bool) *Builder {
	return &Builder{Normalize: normalize, Logger: log.Logger}
}

// Build reads inputDir's MeCab source files and writes the four compiled
// artifacts into outputDir.
func (b *Builder) Build(inputDir, outputDir string) error {
	b.Logger.Info().
		Str("input", inputDir).
		Str("output", outputDir).
		Bool("normalize", b.Normalize).
		Msg("building dictionary")

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return wrapf(IoFailure, err, "create output directory %s", outputDir)
	}

	tokenDict, automaton, err := b.buildTokenInfos(inputDir)
	if err != nil {
		return err
	}
	if err := SaveTokenDictionary(outputDir, tokenDict); err != nil {
		return err
	}
	if err := SaveAutomaton(outputDir, automaton); err != nil {
		return err
	}

	additional, err := b.scanAdditionalMetadata(inputDir)
	if err != nil {
		return err
	}
	unkDict, err := b.buildUnkDictionary(inputDir)
	if err != nil {
		return err
	}
	if err := SaveUnknownTokenDictionary(outputDir, unkDict); err != nil {
		return err
	}

	matrix, err := b.buildConnectionCost(inputDir, additional)
	if err != nil {
		return err
	}
	if err := SaveConnectionCost(outputDir, matrix); err != nil {
		return err
	}

	b.Logger.Info().
		Int("buckets", tokenDict.Len()).
		Msg("dictionary built successfully")
	return nil
}

// buildTokenInfos enumerates *.csv in inputDir, parses every row into a
// Morpheme, buckets by surface, and builds the Aho-Corasick index over the
// distinct sorted surfaces.
func (b *Builder) buildTokenInfos(inputDir string) (*TokenDictionary, *Automaton, error) {
	files, err := filepath.Glob(filepath.Join(inputDir, "*.csv"))
	if err != nil {
		return nil, nil, wrapf(IoFailure, err, "glob %s/*.csv", inputDir)
	}
	if len(files) == 0 {
		return nil, nil, wrapf(DictionaryMissing, nil, "no .csv files found in %s", inputDir)
	}

	type record struct {
		surface string
		morph   Morpheme
	}
	var records []record

	for _, file := range files {
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, nil, wrapf(IoFailure, err, "read %s", file)
		}
		content := string(raw)
		if b.Normalize {
			content = norm.NFKC.String(content)
		}

		reader := csv.NewReader(strings.NewReader(content))
		reader.FieldsPerRecord = -1
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, nil, wrapf(DictionaryMalformed, err, "parse csv %s", file)
		}

		skipped := 0
		for _, row := range rows {
			if len(row) != mecabCSVColumns {
				skipped++
				continue
			}
			morph, surface, err := morphemeFromCSVRow(row)
			if err != nil {
				skipped++
				continue
			}
			records = append(records, record{surface: surface, morph: morph})
		}
		if skipped > 0 {
			b.Logger.Warn().Str("file", file).Int("skipped", skipped).Msg("skipped unparsable csv rows")
		}
	}

	sort.SliceStable(records, func(i, j int) bool { return records[i].surface < records[j].surface })

	var surfaces []string
	var buckets [][]Morpheme
	for i, r := range records {
		if i == 0 || r.surface != records[i-1].surface {
			surfaces = append(surfaces, r.surface)
			buckets = append(buckets, nil)
		}
		buckets[len(buckets)-1] = append(buckets[len(buckets)-1], r.morph)
	}

	tokenDict := &TokenDictionary{Surfaces: surfaces, Morphemes: buckets}
	automaton := BuildAutomaton(surfaces)
	return tokenDict, automaton, nil
}

// morphemeFromCSVRow builds a Morpheme from one 12-column MeCab CSV row.
func morphemeFromCSVRow(row []string) (Morpheme, string, error) {
	surface := row[0]
	leftID, err := strconv.ParseUint(row[1], 10, 16)
	if err != nil {
		return Morpheme{}, "", wrapf(DictionaryMalformed, err, "left_id %q", row[1])
	}
	rightID, err := strconv.ParseUint(row[2], 10, 16)
	if err != nil {
		return Morpheme{}, "", wrapf(DictionaryMalformed, err, "right_id %q", row[2])
	}
	wordCost, err := strconv.ParseInt(row[3], 10, 32)
	if err != nil {
		return Morpheme{}, "", wrapf(DictionaryMalformed, err, "word_cost %q", row[3])
	}
	posTags, err := parsePOSTagList(row[4])
	if err != nil {
		return Morpheme{}, "", err
	}
	posType, err := POSTypeFromName(row[8])
	if err != nil {
		return Morpheme{}, "", err
	}
	expressions, err := parseExpressions(row[11])
	if err != nil {
		return Morpheme{}, "", err
	}

	return Morpheme{
		LeftID:      uint16(leftID),
		RightID:     uint16(rightID),
		WordCost:    int32(wordCost),
		POSType:     posType,
		POSTags:     posTags,
		Expressions: expressions,
	}, surface, nil
}

func parsePOSTagList(field string) ([]POSTag, error) {
	parts := strings.Split(field, "+")
	tags := make([]POSTag, 0, len(parts))
	for _, p := range parts {
		tag, err := POSTagFromName(p)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// parseExpressions parses the expression CSV column: "*" means no
// expansion; otherwise a "+"-separated list of "surface/postag/unused"
// triples.
func parseExpressions(field string) ([]Expression, error) {
	if field == "*" {
		return nil, nil
	}
	segments := strings.Split(field, "+")
	expressions := make([]Expression, 0, len(segments))
	for _, seg := range segments {
		fields := strings.Split(seg, "/")
		if len(fields) != 3 {
			return nil, wrapf(DictionaryMalformed, nil, "expression segment %q: want 3 fields, got %d", seg, len(fields))
		}
		tag, err := POSTagFromName(fields[1])
		if err != nil {
			return nil, err
		}
		expressions = append(expressions, Expression{Surface: fields[0], POSTag: tag})
	}
	return expressions, nil
}

// buildUnkDictionary parses unk.def and char.def into an
// UnknownTokenDictionary.
func (b *Builder) buildUnkDictionary(inputDir string) (*UnknownTokenDictionary, error) {
	u := NewUnknownTokenDictionary()

	unkPath := filepath.Join(inputDir, "unk.def")
	rows, err := readCSVFile(unkPath)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if len(row) != 5 {
			continue
		}
		class, err := CharacterClassFromName(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, err
		}
		leftID, err := strconv.ParseUint(strings.TrimSpace(row[1]), 10, 16)
		if err != nil {
			return nil, wrapf(DictionaryMalformed, err, "unk.def left_id %q", row[1])
		}
		rightID, err := strconv.ParseUint(strings.TrimSpace(row[2]), 10, 16)
		if err != nil {
			return nil, wrapf(DictionaryMalformed, err, "unk.def right_id %q", row[2])
		}
		wordCost, err := strconv.ParseInt(strings.TrimSpace(row[3]), 10, 32)
		if err != nil {
			return nil, wrapf(DictionaryMalformed, err, "unk.def word_cost %q", row[3])
		}
		tag, err := POSTagFromName(strings.TrimSpace(row[4]))
		if err != nil {
			return nil, err
		}
		morph := Morpheme{
			LeftID:   uint16(leftID),
			RightID:  uint16(rightID),
			WordCost: int32(wordCost),
			POSType:  MORPHEME,
			POSTags:  []POSTag{tag},
		}
		u.MorphemeOfClass[class] = &morph
	}

	charDefPath := filepath.Join(inputDir, "char.def")
	if err := parseCharDef(charDefPath, u); err != nil {
		return nil, err
	}

	return u, nil
}

// parseCharDef implements the char.def grammar: comment-stripped,
// whitespace-collapsed lines that are either codepoint rules
// ("0xHEX[..0xHEX] CLASS ...") or category rules
// ("CLASS INVOKE GROUP LENGTH ...").
func parseCharDef(path string, u *UnknownTokenDictionary) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return wrapf(DictionaryMissing, err, "open %s", path)
		}
		return wrapf(IoFailure, err, "open %s", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := collapseWhitespace(stripComment(scanner.Text()))
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		if strings.HasPrefix(fields[0], "0x") {
			if err := applyCodepointRule(fields, u); err != nil {
				return err
			}
			continue
		}

		if len(fields) < 4 {
			return wrapf(DictionaryMalformed, nil, "char.def category line %q: too few fields", line)
		}
		class, err := CharacterClassFromName(fields[0])
		if err != nil {
			return err
		}
		invoke, err := strconv.ParseUint(fields[1], 10, 8)
		if err != nil {
			return wrapf(DictionaryMalformed, err, "char.def invoke %q", fields[1])
		}
		group, err := strconv.ParseUint(fields[2], 10, 8)
		if err != nil {
			return wrapf(DictionaryMalformed, err, "char.def group %q", fields[2])
		}
		length, err := strconv.ParseUint(fields[3], 10, 8)
		if err != nil {
			return wrapf(DictionaryMalformed, err, "char.def length %q", fields[3])
		}
		u.CategoryOfClass[class] = CategoryDefinition{Invoke: uint8(invoke), Group: uint8(group), Length: uint8(length)}
	}
	if err := scanner.Err(); err != nil {
		return wrapf(IoFailure, err, "scan %s", path)
	}
	return nil
}

func applyCodepointRule(fields []string, u *UnknownTokenDictionary) error {
	if len(fields) < 2 {
		return wrapf(DictionaryMalformed, nil, "char.def codepoint line %v: too few fields", fields)
	}
	class, err := CharacterClassFromName(fields[1])
	if err != nil {
		return err
	}

	rangeField := fields[0]
	if lo, hi, ok := strings.Cut(rangeField, ".."); ok {
		start, err := parseCodepoint(lo)
		if err != nil {
			return err
		}
		end, err := parseCodepoint(hi)
		if err != nil {
			return err
		}
		for cp := start; cp <= end; cp++ {
			u.ClassOfCodepoint[cp] = class
		}
		return nil
	}

	cp, err := parseCodepoint(rangeField)
	if err != nil {
		return err
	}
	u.ClassOfCodepoint[cp] = class
	return nil
}

func parseCodepoint(s string) (rune, error) {
	v, err := strconv.ParseInt(strings.TrimPrefix(s, "0x"), 16, 32)
	if err != nil {
		return 0, wrapf(DictionaryMalformed, err, "codepoint %q", s)
	}
	return rune(v), nil
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

func collapseWhitespace(line string) string {
	return strings.Join(strings.Fields(line), " ")
}

// buildConnectionCost parses matrix.def into a ConnectionCost and folds in
// the NNG-discovery scan of left-id.def/right-id.def.
func (b *Builder) buildConnectionCost(inputDir string, additional AdditionalMetadata) (*ConnectionCost, error) {
	path := filepath.Join(inputDir, "matrix.def")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, wrapf(DictionaryMissing, err, "open %s", path)
		}
		return nil, wrapf(IoFailure, err, "open %s", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var fwd, bwd int64
	haveDims := false
	var costs []int16

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		if !haveDims {
			if len(fields) != 2 {
				return nil, wrapf(DictionaryMalformed, nil, "matrix.def header %q: want 2 fields", line)
			}
			fwd, err = strconv.ParseInt(fields[0], 10, 32)
			if err != nil {
				return nil, wrapf(DictionaryMalformed, err, "matrix.def fwd %q", fields[0])
			}
			bwd, err = strconv.ParseInt(fields[1], 10, 32)
			if err != nil {
				return nil, wrapf(DictionaryMalformed, err, "matrix.def bwd %q", fields[1])
			}
			if fwd <= 0 || bwd <= 0 {
				return nil, wrapf(DictionaryMalformed, nil, "matrix.def dimensions must be positive, got %d %d", fwd, bwd)
			}
			costs = make([]int16, fwd*bwd)
			haveDims = true
			continue
		}

		if len(fields) != 3 {
			return nil, wrapf(DictionaryMalformed, nil, "matrix.def row %q: want 3 fields", line)
		}
		fwdID, err := strconv.ParseInt(fields[0], 10, 32)
		if err != nil {
			return nil, wrapf(DictionaryMalformed, err, "matrix.def fwd_id %q", fields[0])
		}
		bwdID, err := strconv.ParseInt(fields[1], 10, 32)
		if err != nil {
			return nil, wrapf(DictionaryMalformed, err, "matrix.def bwd_id %q", fields[1])
		}
		cost, err := strconv.ParseInt(fields[2], 10, 16)
		if err != nil {
			return nil, wrapf(DictionaryMalformed, err, "matrix.def cost %q", fields[2])
		}
		idx := fwdID*bwd + bwdID
		if idx < 0 || idx >= int64(len(costs)) {
			return nil, wrapf(DictionaryMalformed, nil, "matrix.def cell (%d,%d) out of bounds for %dx%d", fwdID, bwdID, fwd, bwd)
		}
		costs[idx] = int16(cost)
	}
	if err := scanner.Err(); err != nil {
		return nil, wrapf(IoFailure, err, "scan %s", path)
	}
	if !haveDims {
		return nil, wrapf(DictionaryMalformed, nil, "matrix.def: missing header line")
	}

	return &ConnectionCost{
		ForwardSize:  int32(fwd),
		BackwardSize: int32(bwd),
		Costs:        costs,
		Additional:   additional,
	}, nil
}

// scanAdditionalMetadata scans left-id.def/right-id.def for the NNG
// connection-class rows the user dictionary needs. Absent patterns leave
// the corresponding field at 0.
func (b *Builder) scanAdditionalMetadata(inputDir string) (AdditionalMetadata, error) {
	var additional AdditionalMetadata

	leftID, err := scanIDDefForPattern(filepath.Join(inputDir, "left-id.def"), "NNG,*,*,*,*,*,*,*")
	if err != nil {
		return additional, err
	}
	additional.LeftIDNNG = leftID

	rightPath := filepath.Join(inputDir, "right-id.def")
	if id, err := scanIDDefForPattern(rightPath, "NNG,*,*,*,*,*,*,*"); err != nil {
		return additional, err
	} else {
		additional.RightIDNNG = id
	}
	if id, err := scanIDDefForPattern(rightPath, "NNG,*,T,*,*,*,*,*"); err != nil {
		return additional, err
	} else {
		additional.RightIDNNGWCoda = id
	}
	if id, err := scanIDDefForPattern(rightPath, "NNG,*,F,*,*,*,*,*"); err != nil {
		return additional, err
	} else {
		additional.RightIDNNGWOCoda = id
	}

	return additional, nil
}

// scanIDDefForPattern returns the numeric id of the first line in path
// whose remainder contains substr, or 0 if the file is absent or no line
// matches.
func scanIDDefForPattern(path, substr string) (uint16, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, wrapf(IoFailure, err, "open %s", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, substr) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		id, err := strconv.ParseUint(fields[0], 10, 16)
		if err != nil {
			continue
		}
		return uint16(id), nil
	}
	if err := scanner.Err(); err != nil {
		return 0, wrapf(IoFailure, err, "scan %s", path)
	}
	return 0, nil
}

// readCSVFile reads a whole file as headerless CSV, failing with
// DictionaryMissing if absent.
func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, wrapf(DictionaryMissing, err, "open %s", path)
		}
		return nil, wrapf(IoFailure, err, "open %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, wrapf(DictionaryMalformed, err, "parse csv %s", path)
	}
	return rows, nil
}
