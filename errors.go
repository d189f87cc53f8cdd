// ./errors.go
package spk

/*
Package spk provides the error taxonomy shared by the DAF reader, the
SPK segment evaluator, and the excerpt writer.

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
	"errors"
	"fmt"
)

// ErrInvalidHandle is returned when a record accessor is constructed over a
// nil or non-seekable stream.
var ErrInvalidHandle = errors.New("invalid stream handle: must be a seekable binary stream")

// ErrIO is returned when a read from or write to the underlying stream fails
// or comes up short.
var ErrIO = errors.New("i/o failure on archive stream")

// ErrInvalidRange is returned when a record or word range request is
// malformed, for example an end word smaller than the start word.
var ErrInvalidRange = errors.New("invalid record or word range")

// ErrInvalidFileIdentifier is returned when the first eight bytes of a file
// are neither "NAIF/DAF" nor a "DAF/" architecture identifier.
var ErrInvalidFileIdentifier = errors.New("file identifier is not NAIF/DAF or DAF/*")

// ErrUnknownFormat is returned when the header carries a binary format tag
// this package does not recognize.
var ErrUnknownFormat = errors.New("unknown binary format tag")

// ErrEndiannessUndetermined is returned when neither byte order yields a
// sensible header for an old-style NAIF/DAF file.
var ErrEndiannessUndetermined = errors.New("unable to determine byte order of NAIF/DAF file")

// ErrCorruptedFile is returned when the FTP validation string is damaged,
// which indicates the file went through a non-binary transfer, or when the
// summary record chain is inconsistent.
var ErrCorruptedFile = errors.New("archive file is corrupted")

// ErrMissingTerminator is returned when the comment area lacks its EOT
// terminator byte.
var ErrMissingTerminator = errors.New("comment area has no EOT terminator")

// ErrSegmentNotFound is returned by a (center, target) lookup that matches
// no segment in the archive.
var ErrSegmentNotFound = errors.New("no segment for requested center and target")

// ErrUnsupportedDataType is returned when evaluation is requested of a
// segment whose SPK data type is neither 2 nor 3.
var ErrUnsupportedDataType = errors.New("unsupported SPK segment data type")

// ErrOutOfRange is returned when a requested time is covered by no interval
// of a segment. The concrete error is an *OutOfRangeError carrying the
// offending time; errors.Is against ErrOutOfRange matches it.
var ErrOutOfRange = errors.New("time is outside segment coverage")

// ErrValidationFailure is returned by accuracy checks when a computed state
// disagrees with a reference state beyond tolerance.
var ErrValidationFailure = errors.New("state validation failure")

// OutOfRangeError reports a time that no interval of a segment covers.
type OutOfRangeError struct {
	// Seconds is the offending time in TDB seconds past J2000.
	Seconds float64
}

// Error implements the error interface.
func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("time %.6f s past J2000 (JD %.8f) is outside segment coverage",
		e.Seconds, SecondsToJD(e.Seconds))
}

// Unwrap makes errors.Is(err, ErrOutOfRange) hold for *OutOfRangeError.
func (e *OutOfRangeError) Unwrap() error {
	return ErrOutOfRange
}
