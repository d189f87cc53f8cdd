// ./spk.go
package spk

/*
Package spk reads and writes SPICE SPK binary ephemeris files and
evaluates their Chebyshev-encoded trajectories. An SPK file is a DAF
(double-precision array file) whose arrays are trajectory segments; this
type loads every segment and indexes them by body pair.

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
	"fmt"
	"io"
	"strings"
)

// SPK is an open ephemeris archive: a DAF whose summaries have been
// classified into trajectory segments and indexed by (center, target).
type SPK struct {
	// DAF is the underlying archive.
	DAF *DAF
	// Segments lists every segment in file order, including segments of
	// data types this package cannot evaluate.
	Segments []*Segment

	pairs map[[2]int]*Segment
}

// NewSPK builds an SPK over an already opened archive. Every summary is
// classified into a segment and entered into the (center, target) table;
// when a file carries several segments for the same pair, the last one
// wins, matching the lookup behavior of the reference toolkits.
func NewSPK(d *DAF) (*SPK, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: nil archive", ErrInvalidHandle)
	}
	// The first two doubles of every SPK summary are the coverage
	// bounds, so fewer than two doubles cannot be a valid SPK file.
	if d.Record.DoubleCount < 2 {
		return nil, fmt.Errorf("%w: ND=%d, want at least 2", ErrCorruptedFile, d.Record.DoubleCount)
	}
	s := &SPK{
		DAF:   d,
		pairs: make(map[[2]int]*Segment),
	}
	err := d.EachSummary(func(sum Summary) error {
		seg, err := newSegment(d, sum)
		if err != nil {
			return err
		}
		s.Segments = append(s.Segments, seg)
		s.pairs[[2]int{seg.Center, seg.Target}] = seg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// OpenSPK opens the ephemeris file at path.
func OpenSPK(path string) (*SPK, error) {
	d, err := Open(path)
	if err != nil {
		return nil, err
	}
	s, err := NewSPK(d)
	if err != nil {
		d.Close()
		return nil, err
	}
	return s, nil
}

// NewSPKFromStream opens an ephemeris over a seekable binary stream.
func NewSPKFromStream(stream io.ReadWriteSeeker) (*SPK, error) {
	d, err := NewDAF(stream)
	if err != nil {
		return nil, err
	}
	s, err := NewSPK(d)
	if err != nil {
		d.Close()
		return nil, err
	}
	return s, nil
}

// Segment returns the segment encoding the motion of target relative to
// center, or ErrSegmentNotFound.
func (s *SPK) Segment(center, target int) (*Segment, error) {
	seg, ok := s.pairs[[2]int{center, target}]
	if !ok {
		return nil, fmt.Errorf("%w: center=%d target=%d", ErrSegmentNotFound, center, target)
	}
	return seg, nil
}

// Close releases the underlying stream and drops every segment's
// coefficient cache.
func (s *SPK) Close() error {
	for _, seg := range s.Segments {
		seg.ClearData()
	}
	return s.DAF.Close()
}

// Comments returns the archive's comment text.
func (s *SPK) Comments() (string, error) {
	return s.DAF.Comments()
}

// String lists every segment, one per line.
func (s *SPK) String() string {
	lines := make([]string, 0, len(s.Segments))
	for _, seg := range s.Segments {
		lines = append(lines, seg.String())
	}
	return strings.Join(lines, "\n")
}
