package apbmem

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when an access goes beyond the storage capacity.
var ErrOutOfRange = errors.New("address beyond the storage capacity")

// A Storage keeps the content of the memory.
//
// The storage is managed in units of unitSize bytes. No memory is allocated
// for units that Read and Write never touched.
type Storage struct {
	unitSize uint64
	capacity uint64
	data     map[uint64][]byte
}

// NewStorage creates a storage with the given capacity in bytes.
func NewStorage(capacity uint64) *Storage {
	return &Storage{
		unitSize: 4096,
		capacity: capacity,
		data:     make(map[uint64][]byte),
	}
}

// Capacity returns the size of the storage in bytes.
func (s *Storage) Capacity() uint64 {
	return s.capacity
}

func (s *Storage) mustBeInRange(addr, n uint64) error {
	if addr+n > s.capacity || addr+n < addr {
		return fmt.Errorf("access [%#x, %#x): %w", addr, addr+n, ErrOutOfRange)
	}

	return nil
}

func (s *Storage) unit(addr uint64, create bool) []byte {
	base := addr - addr%s.unitSize

	u, ok := s.data[base]
	if !ok && create {
		u = make([]byte, s.unitSize)
		s.data[base] = u
	}

	return u
}

// Read returns n bytes starting at addr. Bytes never written read as zero.
func (s *Storage) Read(addr, n uint64) ([]byte, error) {
	if err := s.mustBeInRange(addr, n); err != nil {
		return nil, err
	}

	res := make([]byte, n)
	for off := uint64(0); off < n; {
		curr := addr + off
		inUnit := curr % s.unitSize
		chunk := min(n-off, s.unitSize-inUnit)

		if u := s.unit(curr, false); u != nil {
			copy(res[off:off+chunk], u[inUnit:inUnit+chunk])
		}

		off += chunk
	}

	return res, nil
}

// Write stores data starting at addr.
func (s *Storage) Write(addr uint64, data []byte) error {
	n := uint64(len(data))
	if err := s.mustBeInRange(addr, n); err != nil {
		return err
	}

	for off := uint64(0); off < n; {
		curr := addr + off
		inUnit := curr % s.unitSize
		chunk := min(n-off, s.unitSize-inUnit)

		u := s.unit(curr, true)
		copy(u[inUnit:inUnit+chunk], data[off:off+chunk])

		off += chunk
	}

	return nil
}

// ReadWord reads a little-endian 32-bit word.
func (s *Storage) ReadWord(addr uint64) (uint32, error) {
	b, err := s.Read(addr, 4)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(b), nil
}

// WriteWord writes the bytes of a little-endian 32-bit word whose strobe bits
// are set.
func (s *Storage) WriteWord(addr uint64, data uint32, strb uint8) error {
	if err := s.mustBeInRange(addr, 4); err != nil {
		return err
	}

	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], data)

	for i := 0; i < 4; i++ {
		if strb&(1<<i) == 0 {
			continue
		}

		if err := s.Write(addr+uint64(i), buf[i:i+1]); err != nil {
			return err
		}
	}

	return nil
}
