package dictionary

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"unsafe"

	"github.com/edsrzf/mmap-go"
)

// Artifact filenames for the four compiled dictionary files.
const (
	AhoCorasickFilename = "ahocorasick.bin"
	TokenFilename       = "token.bin"
	UnkFilename         = "unk.bin"
	MatrixFilename      = "matrix.bin"
)

// automatonHeader is ahocorasick.bin's on-disk map: every section is a raw,
// fixed-size-element array, so the whole file is reinterpreted with no copy
// at load time.
type automatonHeader struct {
	Magic             [4]byte
	NodesOffset       int64
	NodesCount        int64
	EdgesOffset       int64
	EdgesCount        int64
	OutputsOffset     int64
	OutputsCount      int64
	PatternLensOffset int64
	PatternLensCount  int64
}

const automatonMagic = "GNA1"

// SaveAutomaton writes an Automaton to dir/ahocorasick.bin.
func SaveAutomaton(dir string, a *Automaton) error {
	path := filepath.Join(dir, AhoCorasickFilename)
	f, err := os.Create(path)
	if err != nil {
		return wrapf(IoFailure, err, "create %s", path)
	}
	defer f.Close()

	var header automatonHeader
	copy(header.Magic[:], automatonMagic)
	headerSize := int64(binary.Size(header))

	offset := headerSize
	header.NodesOffset, header.NodesCount = offset, int64(len(a.Nodes))
	offset += int64(len(a.Nodes)) * int64(unsafe.Sizeof(AutomatonNode{}))
	header.EdgesOffset, header.EdgesCount = offset, int64(len(a.Edges))
	offset += int64(len(a.Edges)) * int64(unsafe.Sizeof(AutomatonEdge{}))
	header.OutputsOffset, header.OutputsCount = offset, int64(len(a.Outputs))
	offset += int64(len(a.Outputs)) * 4
	header.PatternLensOffset, header.PatternLensCount = offset, int64(len(a.PatternLens))

	if err := binary.Write(f, binary.LittleEndian, header); err != nil {
		return wrapf(SerializationFailure, err, "write automaton header")
	}
	if _, err := writeRaw(f, a.Nodes); err != nil {
		return err
	}
	if _, err := writeRaw(f, a.Edges); err != nil {
		return err
	}
	if _, err := writeRaw(f, a.Outputs); err != nil {
		return err
	}
	if _, err := writeRaw(f, a.PatternLens); err != nil {
		return err
	}
	return nil
}

// LoadAutomaton memory-maps dir/ahocorasick.bin and returns zero-copy slices
// over it, plus the open mmap handle the caller must keep alive (and Unmap
// on dictionary close) so the backing pages stay resident.
func LoadAutomaton(dir string) (*Automaton, mmap.MMap, error) {
	path := filepath.Join(dir, AhoCorasickFilename)
	_, m, err := mmapOpen(path)
	if err != nil {
		return nil, nil, err
	}

	var header automatonHeader
	headerSize := binary.Size(header)
	if len(m) < headerSize {
		m.Unmap()
		return nil, nil, wrapf(SerializationFailure, nil, "%s: truncated header", path)
	}
	if err := binary.Read(bytes.NewReader(m[:headerSize]), binary.LittleEndian, &header); err != nil {
		m.Unmap()
		return nil, nil, wrapf(SerializationFailure, err, "%s: read header", path)
	}
	if string(header.Magic[:]) != automatonMagic {
		m.Unmap()
		return nil, nil, wrapf(SerializationFailure, nil, "%s: bad magic", path)
	}

	a := &Automaton{
		Nodes:       sliceFromBytes[AutomatonNode](m[header.NodesOffset : header.NodesOffset+header.NodesCount*int64(unsafe.Sizeof(AutomatonNode{}))]),
		Edges:       sliceFromBytes[AutomatonEdge](m[header.EdgesOffset : header.EdgesOffset+header.EdgesCount*int64(unsafe.Sizeof(AutomatonEdge{}))]),
		Outputs:     sliceFromBytes[int32](m[header.OutputsOffset : header.OutputsOffset+header.OutputsCount*4]),
		PatternLens: sliceFromBytes[int32](m[header.PatternLensOffset : header.PatternLensOffset+header.PatternLensCount*4]),
	}
	return a, m, nil
}

// matrixHeader is matrix.bin's on-disk map. ForwardSize/BackwardSize and
// AdditionalMetadata are small and fixed, so they live directly in the
// header; Costs is the one large raw section, zero-copy loaded.
type matrixHeader struct {
	Magic        [4]byte
	ForwardSize  int32
	BackwardSize int32
	Additional   AdditionalMetadata
	CostsOffset  int64
	CostsCount   int64
}

const matrixMagic = "GNM1"

// SaveConnectionCost writes a ConnectionCost to dir/matrix.bin.
func SaveConnectionCost(dir string, c *ConnectionCost) error {
	path := filepath.Join(dir, MatrixFilename)
	f, err := os.Create(path)
	if err != nil {
		return wrapf(IoFailure, err, "create %s", path)
	}
	defer f.Close()

	var header matrixHeader
	copy(header.Magic[:], matrixMagic)
	header.ForwardSize = c.ForwardSize
	header.BackwardSize = c.BackwardSize
	header.Additional = c.Additional
	header.CostsOffset = int64(binary.Size(header))
	header.CostsCount = int64(len(c.Costs))

	if err := binary.Write(f, binary.LittleEndian, header); err != nil {
		return wrapf(SerializationFailure, err, "write matrix header")
	}
	if _, err := writeRaw(f, c.Costs); err != nil {
		return err
	}
	return nil
}

// LoadConnectionCost memory-maps dir/matrix.bin.
func LoadConnectionCost(dir string) (*ConnectionCost, mmap.MMap, error) {
	path := filepath.Join(dir, MatrixFilename)
	_, m, err := mmapOpen(path)
	if err != nil {
		return nil, nil, err
	}

	var header matrixHeader
	headerSize := binary.Size(header)
	if len(m) < headerSize {
		m.Unmap()
		return nil, nil, wrapf(SerializationFailure, nil, "%s: truncated header", path)
	}
	if err := binary.Read(bytes.NewReader(m[:headerSize]), binary.LittleEndian, &header); err != nil {
		m.Unmap()
		return nil, nil, wrapf(SerializationFailure, err, "%s: read header", path)
	}
	if string(header.Magic[:]) != matrixMagic {
		m.Unmap()
		return nil, nil, wrapf(SerializationFailure, nil, "%s: bad magic", path)
	}

	c := &ConnectionCost{
		ForwardSize:  header.ForwardSize,
		BackwardSize: header.BackwardSize,
		Additional:   header.Additional,
		Costs:        sliceFromBytes[int16](m[header.CostsOffset : header.CostsOffset+header.CostsCount*2]),
	}
	return c, m, nil
}

// complexHeader is the shared on-disk map for artifacts that are entirely
// gob+gzip encoded (token.bin, unk.bin): no raw zero-copy section is worth
// the complexity for these variable/map-shaped payloads.
type complexHeader struct {
	Magic  [4]byte
	Length int64
}

const complexMagic = "GNC1"

func writeComplexArtifact(path string, v any) error {
	payload, err := writeGzipGob(v)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return wrapf(IoFailure, err, "create %s", path)
	}
	defer f.Close()

	header := complexHeader{Length: int64(len(payload))}
	copy(header.Magic[:], complexMagic)
	if err := binary.Write(f, binary.LittleEndian, header); err != nil {
		return wrapf(SerializationFailure, err, "write header for %s", path)
	}
	if _, err := f.Write(payload); err != nil {
		return wrapf(IoFailure, err, "write payload for %s", path)
	}
	return nil
}

func readComplexArtifact(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return wrapf(DictionaryMissing, err, "read %s", path)
		}
		return wrapf(IoFailure, err, "read %s", path)
	}

	var header complexHeader
	headerSize := binary.Size(header)
	if len(raw) < headerSize {
		return wrapf(SerializationFailure, nil, "%s: truncated header", path)
	}
	if err := binary.Read(bytes.NewReader(raw[:headerSize]), binary.LittleEndian, &header); err != nil {
		return wrapf(SerializationFailure, err, "%s: read header", path)
	}
	if string(header.Magic[:]) != complexMagic {
		return wrapf(SerializationFailure, nil, "%s: bad magic", path)
	}
	payload := raw[headerSize:]
	if int64(len(payload)) < header.Length {
		return wrapf(SerializationFailure, nil, "%s: truncated payload", path)
	}
	return readGzipGob(payload[:header.Length], v)
}

// SaveTokenDictionary writes a TokenDictionary to dir/token.bin.
func SaveTokenDictionary(dir string, t *TokenDictionary) error {
	return writeComplexArtifact(filepath.Join(dir, TokenFilename), t)
}

// LoadTokenDictionary reads dir/token.bin.
func LoadTokenDictionary(dir string) (*TokenDictionary, error) {
	var t TokenDictionary
	if err := readComplexArtifact(filepath.Join(dir, TokenFilename), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// unkDictionaryWire is UnknownTokenDictionary's gob-friendly mirror: gob
// cannot decode into a struct whose map value type is an interface or
// requires registration, but *Morpheme works directly, so this is a thin
// rename shim kept separate in case the in-memory shape grows a field gob
// should not see.
type unkDictionaryWire struct {
	ClassOfCodepoint map[rune]CharacterClass
	MorphemeOfClass  map[CharacterClass]*Morpheme
	CategoryOfClass  map[CharacterClass]CategoryDefinition
}

// SaveUnknownTokenDictionary writes an UnknownTokenDictionary to dir/unk.bin.
func SaveUnknownTokenDictionary(dir string, u *UnknownTokenDictionary) error {
	wire := unkDictionaryWire{
		ClassOfCodepoint: u.ClassOfCodepoint,
		MorphemeOfClass:  u.MorphemeOfClass,
		CategoryOfClass:  u.CategoryOfClass,
	}
	return writeComplexArtifact(filepath.Join(dir, UnkFilename), &wire)
}

// LoadUnknownTokenDictionary reads dir/unk.bin.
func LoadUnknownTokenDictionary(dir string) (*UnknownTokenDictionary, error) {
	var wire unkDictionaryWire
	if err := readComplexArtifact(filepath.Join(dir, UnkFilename), &wire); err != nil {
		return nil, err
	}
	return &UnknownTokenDictionary{
		ClassOfCodepoint: wire.ClassOfCodepoint,
		MorphemeOfClass:  wire.MorphemeOfClass,
		CategoryOfClass:  wire.CategoryOfClass,
	}, nil
}
