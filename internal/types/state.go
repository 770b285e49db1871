package types

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/cespare/xxhash"
)

var (
	// ErrStateCorrupt is returned when a compressed state fails its checksum.
	ErrStateCorrupt = errors.New("state checksum mismatch")
	// ErrStateTruncated is returned when reading past the end of a state.
	ErrStateTruncated = errors.New("state truncated")
)

// State represents the Game Boy state. This is used to
// save and load states between runs.
type State struct {
	raw          []byte // raw state data (for serialization)
	readPosition int    // current read position
	err          error  // first read error
}

// Stater is an interface that allows an object to be saved
// and loaded from a state.
type Stater interface {
	Load(*State) // Load the state of the object
	Save(*State) // Save the state of the object
}

// NewState creates a new state.
func NewState() *State {
	return &State{
		raw: make([]byte, 0, 0x10000),
	}
}

// StateFromBytes creates a new state from the given bytes.
func StateFromBytes(raw []byte) *State {
	return &State{
		raw: raw,
	}
}

// ResetPosition allows the state to be read from the beginning.
func (s *State) ResetPosition() {
	s.readPosition = 0
	s.err = nil
}

func (s *State) Write8(value uint8) {
	s.raw = append(s.raw, value)
}

func (s *State) Write16(value uint16) {
	s.raw = binary.LittleEndian.AppendUint16(s.raw, value)
}

func (s *State) Write32(value uint32) {
	s.raw = binary.LittleEndian.AppendUint32(s.raw, value)
}

func (s *State) Write64(value uint64) {
	s.raw = binary.LittleEndian.AppendUint64(s.raw, value)
}

func (s *State) WriteBool(value bool) {
	if value {
		s.raw = append(s.raw, 1)
	} else {
		s.raw = append(s.raw, 0)
	}
}

func (s *State) WriteData(data []byte) {
	s.raw = append(s.raw, data...)
}

// next returns the next n bytes, or zeroes once the state is exhausted.
func (s *State) next(n int) []byte {
	if s.readPosition+n > len(s.raw) {
		if s.err == nil {
			s.err = ErrStateTruncated
		}
		s.readPosition = len(s.raw)
		return make([]byte, n)
	}
	b := s.raw[s.readPosition : s.readPosition+n]
	s.readPosition += n
	return b
}

func (s *State) Read8() uint8 {
	return s.next(1)[0]
}

func (s *State) Read16() uint16 {
	return binary.LittleEndian.Uint16(s.next(2))
}

func (s *State) Read32() uint32 {
	return binary.LittleEndian.Uint32(s.next(4))
}

func (s *State) Read64() uint64 {
	return binary.LittleEndian.Uint64(s.next(8))
}

func (s *State) ReadBool() bool {
	return s.next(1)[0] != 0
}

func (s *State) ReadData(p []byte) {
	copy(p, s.next(len(p)))
}

// Err returns the first error encountered while reading the state.
func (s *State) Err() error {
	return s.err
}

func (s *State) Bytes() []byte {
	return s.raw
}

// Compress packs the state with brotli, followed by an xxhash checksum of
// the uncompressed data.
func (s *State) Compress() ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.DefaultCompression)
	if _, err := w.Write(s.raw); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return binary.LittleEndian.AppendUint64(buf.Bytes(), xxhash.Sum64(s.raw)), nil
}

// DecompressState reverses Compress, verifying the checksum.
func DecompressState(data []byte) (*State, error) {
	if len(data) < 8 {
		return nil, ErrStateTruncated
	}
	body, sum := data[:len(data)-8], binary.LittleEndian.Uint64(data[len(data)-8:])

	raw, err := io.ReadAll(brotli.NewReader(bytes.NewReader(body)))
	if err != nil {
		return nil, fmt.Errorf("decompressing state: %w", err)
	}
	if xxhash.Sum64(raw) != sum {
		return nil, ErrStateCorrupt
	}

	return StateFromBytes(raw), nil
}
