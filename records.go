// ./records.go
package spk

/*
Package spk provides the fixed-size record and word accessor that is the
sole point of file I/O for an archive.

This program is free software; you can redistribute it and/or
modify it under the terms of the GNU General Public License
as published by the Free Software Foundation; either version 2
of the License, or (at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program; if not, write to the Free Software
Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston, MA
02110-1301, USA.
*/

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
)

// RecordAccessor reads and writes 1024-byte records and 8-byte words over a
// seekable binary stream. Every individual operation is serialized behind one
// lock, so an accessor may be shared by concurrent callers; the lock is held
// for exactly one read or write, never across a sequence of calls.
type RecordAccessor struct {
	mu     sync.Mutex
	stream io.ReadWriteSeeker
	reads  uint64
}

// NewRecordAccessor wraps a seekable binary stream. It returns
// ErrInvalidHandle if the stream is nil or does not support seeking.
func NewRecordAccessor(stream io.ReadWriteSeeker) (*RecordAccessor, error) {
	if stream == nil {
		return nil, fmt.Errorf("%w: nil stream", ErrInvalidHandle)
	}
	if _, err := stream.Seek(0, io.SeekCurrent); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHandle, err)
	}
	return &RecordAccessor{stream: stream}, nil
}

// ReadRecord returns record n (1-based) as exactly RecordSize bytes. A
// record lying wholly or partly past the end of the stream is zero-padded.
func (a *RecordAccessor) ReadRecord(n int) ([]byte, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: record number %d", ErrInvalidRange, n)
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.stream.Seek(int64(n-1)*RecordSize, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: seek to record %d: %v", ErrIO, n, err)
	}
	buf := make([]byte, RecordSize)
	_, err := io.ReadFull(a.stream, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("%w: read record %d: %v", ErrIO, n, err)
	}
	a.reads++
	return buf, nil
}

// WriteRecord writes data as record n (1-based). The data must be exactly
// RecordSize bytes long.
func (a *RecordAccessor) WriteRecord(n int, data []byte) error {
	if n < 1 {
		return fmt.Errorf("%w: record number %d", ErrInvalidRange, n)
	}
	if len(data) != RecordSize {
		return fmt.Errorf("%w: record data is %d bytes, want %d", ErrInvalidRange, len(data), RecordSize)
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.stream.Seek(int64(n-1)*RecordSize, io.SeekStart); err != nil {
		return fmt.Errorf("%w: seek to record %d: %v", ErrIO, n, err)
	}
	if _, err := a.stream.Write(data); err != nil {
		return fmt.Errorf("%w: write record %d: %v", ErrIO, n, err)
	}
	return nil
}

// ReadWords reads the inclusive word range [start, end] (1-based, 8 bytes per
// word) and decodes each word as an IEEE-754 double in the given byte order.
// A short read is an error here, unlike in ReadRecord.
func (a *RecordAccessor) ReadWords(start, end int, order binary.ByteOrder) ([]float64, error) {
	if start < 1 || end < start {
		return nil, fmt.Errorf("%w: words %d..%d", ErrInvalidRange, start, end)
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.stream.Seek(int64(start-1)*WordSize, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: seek to word %d: %v", ErrIO, start, err)
	}
	raw := make([]byte, (end-start+1)*WordSize)
	if _, err := io.ReadFull(a.stream, raw); err != nil {
		return nil, fmt.Errorf("%w: read words %d..%d: %v", ErrIO, start, end, err)
	}
	a.reads++

	words := make([]float64, end-start+1)
	for i := range words {
		words[i] = math.Float64frombits(order.Uint64(raw[i*WordSize:]))
	}
	return words, nil
}

// WriteWords encodes the values as IEEE-754 doubles in the given byte order
// and writes them starting at word start (1-based).
func (a *RecordAccessor) WriteWords(start int, values []float64, order binary.ByteOrder) error {
	if start < 1 {
		return fmt.Errorf("%w: start word %d", ErrInvalidRange, start)
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.stream.Seek(int64(start-1)*WordSize, io.SeekStart); err != nil {
		return fmt.Errorf("%w: seek to word %d: %v", ErrIO, start, err)
	}
	raw := make([]byte, len(values)*WordSize)
	for i, v := range values {
		order.PutUint64(raw[i*WordSize:], math.Float64bits(v))
	}
	if _, err := a.stream.Write(raw); err != nil {
		return fmt.Errorf("%w: write words at %d: %v", ErrIO, start, err)
	}
	return nil
}

// ReadCount returns the number of read operations performed so far. The
// cache tests and the cmd tools use it as a probe for redundant I/O.
func (a *RecordAccessor) ReadCount() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reads
}
