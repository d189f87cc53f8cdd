// ./format.go
package spk

/*
Package spk provides byte-order and file-format detection for DAF
archive files.

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
	"strings"
)

// fileFormat is the outcome of inspecting the first record of an archive:
// the binary format tag and the byte order it implies for every multi-byte
// field in the file.
type fileFormat struct {
	Tag   string
	Order binary.ByteOrder
}

// formatOrders maps the format tag at byte offset 88 of the header record
// to a byte order. These two tags are the only ones NAIF has ever written
// for double-precision array files.
var formatOrders = map[string]binary.ByteOrder{
	formatTagBigEndian:    binary.BigEndian,
	formatTagLittleEndian: binary.LittleEndian,
}

// formatProbeOrder fixes the candidate sequence for old NAIF/DAF files,
// whose headers carry no usable format tag.
var formatProbeOrder = []string{formatTagBigEndian, formatTagLittleEndian}

// detectFormat inspects the raw first record of an archive and determines
// the file's byte order.
//
// New-style files identify themselves with a "DAF/..." locator and carry an
// explicit format tag plus the FTP validation string. Old-style files carry
// the bare "NAIF/DAF" locator; for those, each candidate byte order is tried
// in turn and accepted if the decoded double count equals 2, the value every
// SPK file stores there.
func detectFormat(record []byte) (fileFormat, error) {
	if len(record) < RecordSize {
		return fileFormat{}, fmt.Errorf("%w: first record is %d bytes", ErrIO, len(record))
	}
	locator := strings.ToUpper(trimField(record[0:8]))

	if locator == naifDAFIdentifier {
		for _, tag := range formatProbeOrder {
			order := formatOrders[tag]
			if order.Uint32(record[8:12]) == 2 {
				return fileFormat{Tag: tag, Order: order}, nil
			}
		}
		return fileFormat{}, ErrEndiannessUndetermined
	}

	if strings.HasPrefix(locator, "DAF/") {
		tag := trimField(record[88:96])
		order, ok := formatOrders[tag]
		if !ok {
			return fileFormat{}, fmt.Errorf("%w: %q", ErrUnknownFormat, tag)
		}
		// The FTP string detects archives damaged by an ASCII-mode
		// transfer before any coefficient is ever decoded.
		if !bytes.Contains(bytes.Trim(record[500:1000], "\x00"), []byte(ftpValidationString)) {
			return fileFormat{}, fmt.Errorf("%w: FTP validation string damaged", ErrCorruptedFile)
		}
		return fileFormat{Tag: tag, Order: order}, nil
	}

	return fileFormat{}, fmt.Errorf("%w: %q", ErrInvalidFileIdentifier, locator)
}

// trimField decodes a fixed-width header text field, dropping the space and
// NUL padding both NAIF toolkits use.
func trimField(b []byte) string {
	return strings.TrimRight(string(b), " \x00")
}
