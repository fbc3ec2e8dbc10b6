// Package codec implements the on-disk binary encoding of a single student
// record. The layout is explicit and stable across implementations:
//
//	offset   size     field
//	0        4        magic "ETDB"
//	4        1        format version (0x01)
//	5        uvarint  length of name, followed by its bytes
//	...      uvarint  length of first name, followed by its bytes
//	...      varint   birth year (zig-zag, int64 range)
//	end-32   32       BLAKE2b-256 digest of every preceding byte
//
// All multi-byte integers use encoding/binary varint rules. The digest makes
// the encoding self-checking: truncated or corrupted input is reported as a
// format error instead of decoding into a wrong record.
package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"golang.org/x/crypto/blake2b"

	"github.com/alem-hub/studentbase/internal/domain/shared"
	"github.com/alem-hub/studentbase/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// FORMAT CONSTANTS
// ══════════════════════════════════════════════════════════════════════════════

const (
	// Version is the only format version this package reads and writes.
	Version byte = 0x01

	// MaxEncodedSize bounds how many bytes Decode will read from a source.
	MaxEncodedSize = 1 << 20

	headerSize = len(Magic) + 1
	digestSize = blake2b.Size256

	// smallest valid record: header, two zero lengths, one varint byte, digest
	minEncodedSize = headerSize + 3 + digestSize
)

// Magic identifies a student record encoding.
const Magic = "ETDB"

const domainName = "codec"

var (
	errShortInput    = errors.New("input shorter than the smallest valid record")
	errBadMagic      = errors.New("missing record magic")
	errDigest        = errors.New("digest mismatch")
	errFieldOverrun  = errors.New("field length overruns input")
	errBadVarint     = errors.New("malformed varint")
	errTrailingBytes = errors.New("trailing bytes after record")
	errYearRange     = errors.New("birth year out of range")
	errTooLarge      = fmt.Errorf("input larger than %d bytes", MaxEncodedSize)
)

// ══════════════════════════════════════════════════════════════════════════════
// ENCODING
// ══════════════════════════════════════════════════════════════════════════════

// Marshal returns the encoding of s.
func Marshal(s *student.Student) ([]byte, error) {
	if s == nil {
		return nil, shared.NewDomainError(domainName, "Marshal", shared.ErrInvalidInput, "record is nil")
	}

	name := s.Name()
	firstName := s.FirstName()

	buf := make([]byte, 0, headerSize+2*binary.MaxVarintLen64+len(name)+len(firstName)+binary.MaxVarintLen64+digestSize)
	buf = append(buf, Magic...)
	buf = append(buf, Version)
	buf = binary.AppendUvarint(buf, uint64(len(name)))
	buf = append(buf, name...)
	buf = binary.AppendUvarint(buf, uint64(len(firstName)))
	buf = append(buf, firstName...)
	buf = binary.AppendVarint(buf, int64(s.BirthYear()))

	sum := blake2b.Sum256(buf)
	buf = append(buf, sum[:]...)

	return buf, nil
}

// Encode writes the encoding of s to w.
// Write failures are reported with the shared.ErrIO kind.
func Encode(w io.Writer, s *student.Student) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return shared.IOError(domainName, "Encode", "failed to write record", err)
	}

	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DECODING
// ══════════════════════════════════════════════════════════════════════════════

// Decode reads r to EOF and decodes exactly one record from it.
// Read failures are reported with shared.ErrIO, invalid content with
// shared.ErrFormat.
func Decode(r io.Reader) (*student.Student, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxEncodedSize+1))
	if err != nil {
		return nil, shared.IOError(domainName, "Decode", "failed to read record", err)
	}
	if len(data) > MaxEncodedSize {
		return nil, shared.FormatError(domainName, "Decode", "record too large", errTooLarge)
	}

	return Unmarshal(data)
}

// Unmarshal decodes a record from data. Every failure carries shared.ErrFormat.
func Unmarshal(data []byte) (*student.Student, error) {
	if len(data) < minEncodedSize {
		return nil, formatErr("input too short", errShortInput)
	}
	if !bytes.HasPrefix(data, []byte(Magic)) {
		return nil, formatErr("not a student record", errBadMagic)
	}
	if v := data[len(Magic)]; v != Version {
		return nil, formatErr("unsupported format version", fmt.Errorf("version %d", v))
	}

	body := data[:len(data)-digestSize]
	want := data[len(data)-digestSize:]
	got := blake2b.Sum256(body)
	if !bytes.Equal(got[:], want) {
		return nil, formatErr("record is corrupted", errDigest)
	}

	p := body[headerSize:]

	name, p, err := readString(p)
	if err != nil {
		return nil, formatErr("invalid name field", err)
	}

	firstName, p, err := readString(p)
	if err != nil {
		return nil, formatErr("invalid first name field", err)
	}

	year, n := binary.Varint(p)
	if n <= 0 {
		return nil, formatErr("invalid birth year field", errBadVarint)
	}
	if year < math.MinInt || year > math.MaxInt {
		return nil, formatErr("invalid birth year field", errYearRange)
	}
	if len(p) != n {
		return nil, formatErr("invalid record layout", errTrailingBytes)
	}

	return student.NewStudent(name, firstName, int(year)), nil
}

// readString reads one uvarint length-prefixed field and returns the rest.
func readString(p []byte) (string, []byte, error) {
	length, n := binary.Uvarint(p)
	if n <= 0 {
		return "", nil, errBadVarint
	}
	p = p[n:]

	if length > uint64(len(p)) {
		return "", nil, errFieldOverrun
	}

	return string(p[:length]), p[length:], nil
}

func formatErr(message string, err error) error {
	return shared.FormatError(domainName, "Decode", message, err)
}
