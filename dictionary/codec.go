package dictionary

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"encoding/gob"
	"io"
	"os"
	"unsafe"

	"github.com/edsrzf/mmap-go"
)

// sliceFromBytes reinterprets a byte range as a slice of T with no copy,
// using unsafe.Slice rather than the older reflect.SliceHeader trick.
func sliceFromBytes[T any](b []byte) []T {
	if len(b) == 0 {
		return nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), len(b)/size)
}

// writeRaw appends the binary.LittleEndian encoding of a fixed-size slice,
// returning the byte length written.
func writeRaw(w io.Writer, data any) (int64, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, data); err != nil {
		return 0, wrapf(SerializationFailure, err, "encode raw section")
	}
	n, err := w.Write(buf.Bytes())
	if err != nil {
		return 0, wrapf(IoFailure, err, "write raw section")
	}
	return int64(n), nil
}

// mmapOpen opens and memory-maps a file read-only, surfacing failures as
// DictionaryMissing/IoFailure. Grounded on analyzer.loadInternal's
// os.Open + mmap.Map(file, mmap.RDONLY, 0) sequence.
func mmapOpen(path string) (*os.File, mmap.MMap, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, wrapf(DictionaryMissing, err, "open %s", path)
		}
		return nil, nil, wrapf(IoFailure, err, "open %s", path)
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, nil, wrapf(IoFailure, err, "mmap %s", path)
	}
	return f, m, nil
}

// writeGzipGob gob-encodes v and gzip-compresses the result, the encoding
// used for the variable/map-shaped artifacts (token.bin, unk.bin).
func writeGzipGob(v any) ([]byte, error) {
	var gobBuf bytes.Buffer
	if err := gob.NewEncoder(&gobBuf).Encode(v); err != nil {
		return nil, wrapf(SerializationFailure, err, "gob-encode")
	}
	var gzBuf bytes.Buffer
	gz := gzip.NewWriter(&gzBuf)
	if _, err := gz.Write(gobBuf.Bytes()); err != nil {
		return nil, wrapf(SerializationFailure, err, "gzip-compress")
	}
	if err := gz.Close(); err != nil {
		return nil, wrapf(SerializationFailure, err, "gzip-close")
	}
	return gzBuf.Bytes(), nil
}

// readGzipGob reverses writeGzipGob.
func readGzipGob(b []byte, v any) error {
	gz, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return wrapf(SerializationFailure, err, "gzip-reader")
	}
	decompressed, err := io.ReadAll(gz)
	if err != nil {
		return wrapf(SerializationFailure, err, "gzip-read")
	}
	if err := gz.Close(); err != nil {
		return wrapf(SerializationFailure, err, "gzip-close")
	}
	if err := gob.NewDecoder(bytes.NewReader(decompressed)).Decode(v); err != nil {
		return wrapf(SerializationFailure, err, "gob-decode")
	}
	return nil
}
