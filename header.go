// ./header.go
package spk

/*
Package spk provides parsing and encoding of the fixed-layout DAF file
record (the first 1024-byte record of every archive).

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
	"fmt"
)

// Byte offsets of the file record fields. All integers are 4-byte unsigned,
// all text fields are space padded.
//
//	locator_id:8  double_count:4  integer_count:4  internal_filename:60
//	forward:4  backward:4  free:4  format_tag:8
//	reserved:603  ftp_string:28  reserved:297
const (
	offLocator  = 0
	offND       = 8
	offNI       = 12
	offFilename = 16
	offForward  = 76
	offBackward = 80
	offFree     = 84
	offFormat   = 88
	offFTP      = 699
)

// FileRecord holds the decoded file record of a DAF archive. It is parsed
// once when the archive is opened and never mutated afterwards; the excerpt
// writer builds a fresh FileRecord for its output file and re-encodes the
// whole record on every pointer update.
type FileRecord struct {
	// LocatorID is the 8-byte identifier, "DAF/SPK" for ephemeris files.
	LocatorID string
	// DoubleCount (ND) is the number of doubles in each summary.
	DoubleCount int
	// IntegerCount (NI) is the number of integers in each summary.
	IntegerCount int
	// InternalFilename is the 60-byte internal name of the archive.
	InternalFilename string
	// Forward is the 1-based record number of the first summary record.
	Forward int
	// Backward is the 1-based record number of the last summary record.
	Backward int
	// Free is the 1-based word number of the first free word of the data
	// area.
	Free int
	// FormatTag names the byte order the file is written in.
	FormatTag string
}

// parseFileRecord decodes the first record of an archive with the detected
// byte order.
func parseFileRecord(record []byte, order binary.ByteOrder) (*FileRecord, error) {
	if len(record) < RecordSize {
		return nil, fmt.Errorf("%w: file record is %d bytes", ErrIO, len(record))
	}
	fr := &FileRecord{
		LocatorID:        trimField(record[offLocator : offLocator+8]),
		DoubleCount:      int(order.Uint32(record[offND:])),
		IntegerCount:     int(order.Uint32(record[offNI:])),
		InternalFilename: trimField(record[offFilename : offFilename+60]),
		Forward:          int(order.Uint32(record[offForward:])),
		Backward:         int(order.Uint32(record[offBackward:])),
		Free:             int(order.Uint32(record[offFree:])),
		FormatTag:        trimField(record[offFormat : offFormat+8]),
	}
	return fr, nil
}

// encode serializes the file record into a fresh 1024-byte record, including
// the FTP validation string. Writing the complete record on every header
// update keeps the file consistent without patching bytes in place.
func (fr *FileRecord) encode(order binary.ByteOrder) []byte {
	record := make([]byte, RecordSize)
	putField(record[offLocator:offLocator+8], fr.LocatorID)
	order.PutUint32(record[offND:], uint32(fr.DoubleCount))
	order.PutUint32(record[offNI:], uint32(fr.IntegerCount))
	putField(record[offFilename:offFilename+60], fr.InternalFilename)
	order.PutUint32(record[offForward:], uint32(fr.Forward))
	order.PutUint32(record[offBackward:], uint32(fr.Backward))
	order.PutUint32(record[offFree:], uint32(fr.Free))
	putField(record[offFormat:offFormat+8], fr.FormatTag)
	copy(record[offFTP:], ftpValidationString)
	return record
}

// SummaryLength returns the packed size in bytes of one summary entry.
func (fr *FileRecord) SummaryLength() int {
	return fr.DoubleCount*8 + fr.IntegerCount*4
}

// SummaryStep returns the summary entry length rounded up to the next
// 8-byte boundary; entries are laid out on this step within a record.
func (fr *FileRecord) SummaryStep() int {
	return (fr.SummaryLength() + 7) &^ 7
}

// SummariesPerRecord returns how many summary entries fit in one record
// after its 24-byte control block.
func (fr *FileRecord) SummariesPerRecord() int {
	return (RecordSize - SummaryControlSize) / fr.SummaryStep()
}

// putField writes a text field space padded to its fixed width.
func putField(dst []byte, s string) {
	for i := range dst {
		dst[i] = ' '
	}
	copy(dst, s)
}
