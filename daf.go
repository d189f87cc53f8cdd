// ./daf.go
package spk

/*
Package spk provides the DAF archive type: header access, comment text,
raw word reads, and the append protocol used when writing archives.

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
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// DAF is an open double-precision array file. It composes the record
// accessor, the format detector, and the file record parser, and is the
// base layer both the SPK evaluator and the excerpt writer build on.
type DAF struct {
	accessor *RecordAccessor
	format   fileFormat
	closer   io.Closer

	// Record is the parsed file record. It is immutable for archives
	// opened read-only; the append protocol updates it and rewrites
	// record 1 after every array.
	Record *FileRecord

	order binary.ByteOrder
}

// NewDAF opens an archive over a seekable binary stream: it detects the
// byte order from the first record and parses the file record. If the
// stream is also an io.Closer, Close releases it.
func NewDAF(stream io.ReadWriteSeeker) (*DAF, error) {
	accessor, err := NewRecordAccessor(stream)
	if err != nil {
		return nil, err
	}
	first, err := accessor.ReadRecord(1)
	if err != nil {
		return nil, err
	}
	format, err := detectFormat(first)
	if err != nil {
		return nil, err
	}
	record, err := parseFileRecord(first, format.Order)
	if err != nil {
		return nil, err
	}
	d := &DAF{
		accessor: accessor,
		format:   format,
		Record:   record,
		order:    format.Order,
	}
	if closer, ok := stream.(io.Closer); ok {
		d.closer = closer
	}
	return d, nil
}

// Open opens the archive file at path.
func Open(path string) (*DAF, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	d, err := NewDAF(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	return d, nil
}

// CreateDAF writes a fresh, empty archive onto the stream: a file record,
// one empty summary record, and its paired name record. The new file is
// little-endian. Arrays are added with AddArray.
func CreateDAF(stream io.ReadWriteSeeker, locator string, nd, ni int, internalName string) (*DAF, error) {
	if nd < 1 || ni < 2 {
		return nil, fmt.Errorf("%w: ND=%d NI=%d (need ND >= 1, NI >= 2)", ErrInvalidRange, nd, ni)
	}
	accessor, err := NewRecordAccessor(stream)
	if err != nil {
		return nil, err
	}
	d := &DAF{
		accessor: accessor,
		format:   fileFormat{Tag: formatTagLittleEndian, Order: binary.LittleEndian},
		order:    binary.LittleEndian,
		Record: &FileRecord{
			LocatorID:        locator,
			DoubleCount:      nd,
			IntegerCount:     ni,
			InternalFilename: internalName,
			Forward:          2,
			Backward:         2,
			Free:             3*WordsPerRecord + 1,
			FormatTag:        formatTagLittleEndian,
		},
	}
	if closer, ok := stream.(io.Closer); ok {
		d.closer = closer
	}
	if err := d.writeFileRecord(); err != nil {
		return nil, err
	}
	blank := make([]byte, RecordSize)
	if err := accessor.WriteRecord(2, blank); err != nil {
		return nil, err
	}
	if err := accessor.WriteRecord(3, blank); err != nil {
		return nil, err
	}
	return d, nil
}

// Close releases the underlying stream if it is closable.
func (d *DAF) Close() error {
	if d.closer != nil {
		return d.closer.Close()
	}
	return nil
}

// ByteOrder returns the byte order every multi-byte field of the file is
// encoded in.
func (d *DAF) ByteOrder() binary.ByteOrder {
	return d.order
}

// FormatTag returns the binary format tag, "BIG-IEEE" or "LTL-IEEE".
func (d *DAF) FormatTag() string {
	return d.format.Tag
}

// Accessor exposes the underlying record accessor. The evaluation tests and
// the cmd tools use its read counter as an I/O probe.
func (d *DAF) Accessor() *RecordAccessor {
	return d.accessor
}

// ReadWords reads the inclusive word range [start, end] from the data area,
// decoded in the file's byte order.
func (d *DAF) ReadWords(start, end int) ([]float64, error) {
	return d.accessor.ReadWords(start, end, d.order)
}

// WriteWords writes values starting at the given word in the file's byte
// order.
func (d *DAF) WriteWords(start int, values []float64) error {
	return d.accessor.WriteWords(start, values, d.order)
}

// Comments returns the comment text stored in the records strictly between
// the file record and the first summary record. Each comment record
// contributes its first 1000 bytes; the text ends at the first EOT (0x04)
// byte, and interior NUL bytes become newlines. An archive with comment
// records but no EOT returns ErrMissingTerminator; an archive with no
// comment records at all returns the empty string.
func (d *DAF) Comments() (string, error) {
	var raw []byte
	for n := 2; n < d.Record.Forward; n++ {
		record, err := d.accessor.ReadRecord(n)
		if err != nil {
			return "", err
		}
		raw = append(raw, record[:CommentAreaSize]...)
	}
	if len(raw) == 0 {
		return "", nil
	}
	end := bytes.IndexByte(raw, commentTerminator)
	if end < 0 {
		return "", ErrMissingTerminator
	}
	text := bytes.ReplaceAll(raw[:end], []byte{0}, []byte{'\n'})
	return string(text), nil
}

// writeFileRecord re-encodes the whole file record and writes it as record
// 1. Called after every append so the header pointers never go stale.
func (d *DAF) writeFileRecord() error {
	return d.accessor.WriteRecord(1, d.Record.encode(d.order))
}

// AddArray appends a named array to the archive following the DAF append
// protocol: the data words go at the current free pointer, the summary
// entry and name go into the tail summary record pair (allocating and
// chaining a fresh pair when the tail is full), and the header pointers are
// rewritten so the file stays internally consistent after every array.
//
// doubles and ints must have the file's ND and NI lengths; the final two
// integers are overwritten with the array's start and end words.
func (d *DAF) AddArray(name string, doubles []float64, ints []int32, values []float64) error {
	fr := d.Record
	if len(doubles) != fr.DoubleCount || len(ints) != fr.IntegerCount {
		return fmt.Errorf("%w: summary has %d doubles and %d ints, file wants %d and %d",
			ErrInvalidRange, len(doubles), len(ints), fr.DoubleCount, fr.IntegerCount)
	}
	if len(values) == 0 {
		return fmt.Errorf("%w: empty array", ErrInvalidRange)
	}

	tail := fr.Backward
	tailRecord, err := d.accessor.ReadRecord(tail)
	if err != nil {
		return err
	}
	control := parseControl(tailRecord, d.order)

	var slot int
	if control.Count < fr.SummariesPerRecord() {
		slot = control.Count
		control.Count++
		control.encodeInto(tailRecord, d.order)
	} else {
		// Tail is full: allocate the first whole record after the
		// free pointer, chain it from the old tail, and give it a
		// blank name record.
		next := (fr.Free-1)*WordSize/RecordSize + 2
		old := parseControl(tailRecord, d.order)
		old.Next = next
		old.encodeInto(tailRecord, d.order)
		if err := d.accessor.WriteRecord(tail, tailRecord); err != nil {
			return err
		}

		tailRecord = make([]byte, RecordSize)
		control = summaryControl{Next: 0, Prev: tail, Count: 1}
		control.encodeInto(tailRecord, d.order)
		if err := d.accessor.WriteRecord(next+1, make([]byte, RecordSize)); err != nil {
			return err
		}
		tail = next
		slot = 0
		fr.Backward = next
		fr.Free = (next+1)*WordsPerRecord + 1
	}

	start := fr.Free
	end := start + len(values) - 1
	if err := d.WriteWords(start, values); err != nil {
		return err
	}
	fr.Free = end + 1

	entry := make([]int32, len(ints))
	copy(entry, ints)
	entry[len(entry)-2] = int32(start)
	entry[len(entry)-1] = int32(end)

	step := fr.SummaryStep()
	offset := SummaryControlSize + slot*step
	for k, v := range doubles {
		d.order.PutUint64(tailRecord[offset+k*8:], math.Float64bits(v))
	}
	for k, v := range entry {
		d.order.PutUint32(tailRecord[offset+fr.DoubleCount*8+k*4:], uint32(v))
	}
	if err := d.accessor.WriteRecord(tail, tailRecord); err != nil {
		return err
	}

	nameRecord, err := d.accessor.ReadRecord(tail + 1)
	if err != nil {
		return err
	}
	putField(nameRecord[slot*step:slot*step+step], name)
	if err := d.accessor.WriteRecord(tail+1, nameRecord); err != nil {
		return err
	}

	return d.writeFileRecord()
}
