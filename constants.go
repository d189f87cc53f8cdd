// ./constants.go
package spk

/*
Package spk provides constants shared by the DAF reader and the SPK
evaluation code.

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

const (
	// RecordSize is the fixed size of a DAF record in bytes. Every DAF
	// file is a sequence of 1024-byte records, addressed 1-based.
	RecordSize = 1024

	// WordSize is the size of one DAF word (an IEEE-754 double) in bytes.
	WordSize = 8

	// WordsPerRecord is the number of 8-byte words held by one record.
	WordsPerRecord = RecordSize / WordSize

	// SummaryControlSize is the size in bytes of the control block at the
	// start of every summary record: three doubles holding the next
	// record number, the previous record number, and the summary count.
	SummaryControlSize = 24

	// CommentAreaSize is the usable prefix of each comment record.
	// The trailing 24 bytes of a comment record are never used.
	CommentAreaSize = 1000

	// commentTerminator is the EOT byte ending the comment text.
	commentTerminator = 0x04
)

const (
	// J2000Epoch is the Julian Date of the J2000 reference instant,
	// 2000 January 1 12:00 TDB.
	J2000Epoch = 2451545.0

	// SecondsPerDay is the number of TDB seconds in one Julian day.
	SecondsPerDay = 86400.0
)

// SPK segment data types this package can evaluate. Type 2 stores
// Chebyshev position coefficients only; type 3 additionally stores an
// independently fitted velocity polynomial.
const (
	DataTypeChebyshevPosition         = 2
	DataTypeChebyshevPositionVelocity = 3
)

// ftpValidationString is the fixed 28-byte marker written into every DAF
// header record. A file transferred through a translating (non-binary)
// channel corrupts at least one of its bytes.
const ftpValidationString = "FTPSTR:\r:\n:\r\n:\r\x00:\x81:\x10\xce:ENDFTP"

// naifDAFIdentifier is the locator identifier of pre-FTP-string DAF
// files, whose byte order must be probed rather than read from a tag.
const naifDAFIdentifier = "NAIF/DAF"

// Format tags stored at byte offset 88 of the header record.
const (
	formatTagBigEndian    = "BIG-IEEE"
	formatTagLittleEndian = "LTL-IEEE"
)
