// ./excerpt.go
package spk

/*
Package spk provides the excerpt writer, which produces a new, smaller
archive restricted to a time window and an optional set of targets.

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
	"math"
)

// Excerpt writes a trimmed copy of the archive onto out and returns it
// opened as a fresh SPK. The copy keeps the source header and comment
// records verbatim, then re-encodes every segment restricted to the
// [startJD, endJD] window. A non-empty targets list additionally drops
// every segment whose target is not listed.
//
// Interval windows are trimmed, never re-fitted, so a retained segment
// evaluates bit for bit identically to its source over the common
// coverage. Segment names are marked with a leading "X".
//
// A segment that cannot be processed is logged and skipped; the excerpt is
// best effort over independently encoded segments. The writer assumes it
// is the only one appending to out.
func (s *SPK) Excerpt(out io.ReadWriteSeeker, startJD, endJD float64, targets []int) (*SPK, error) {
	src := s.DAF
	forward := src.Record.Forward

	accessor, err := NewRecordAccessor(out)
	if err != nil {
		return nil, err
	}

	// Header and comment area, copied verbatim.
	for n := 1; n < forward; n++ {
		record, err := src.accessor.ReadRecord(n)
		if err != nil {
			return nil, err
		}
		if err := accessor.WriteRecord(n, record); err != nil {
			return nil, err
		}
	}

	// An empty summary record and its paired name record seed the new
	// file's chain at the same record number the source used.
	blank := make([]byte, RecordSize)
	if err := accessor.WriteRecord(forward, blank); err != nil {
		return nil, err
	}
	if err := accessor.WriteRecord(forward+1, blank); err != nil {
		return nil, err
	}

	record := *src.Record
	record.Forward = forward
	record.Backward = forward
	record.Free = (forward+1)*WordsPerRecord + 1
	dst := &DAF{
		accessor: accessor,
		format:   src.format,
		order:    src.order,
		Record:   &record,
	}
	if closer, ok := out.(io.Closer); ok {
		dst.closer = closer
	}
	if err := dst.writeFileRecord(); err != nil {
		return nil, err
	}

	var wanted map[int]bool
	if len(targets) > 0 {
		wanted = make(map[int]bool, len(targets))
		for _, t := range targets {
			wanted[t] = true
		}
	}

	startSecond := JDToSeconds(startJD)
	endSecond := JDToSeconds(endJD)

	err = src.EachSummary(func(sum Summary) error {
		if len(sum.Ints) < 6 {
			log.WithField("segment", sum.Name).Warn("excerpt: malformed summary skipped")
			return nil
		}
		if wanted != nil && !wanted[int(sum.Ints[0])] {
			return nil
		}
		included, err := excerptSegment(src, dst, sum, startSecond, endSecond)
		if err != nil {
			// One broken segment must not abort the excerpt.
			log.WithError(err).WithField("segment", sum.Name).Warn("excerpt: segment skipped")
			return nil
		}
		if !included {
			log.WithField("segment", sum.Name).Debug("excerpt: no overlap with time window")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Reopen through the normal path, which re-validates everything the
	// writer produced.
	return NewSPKFromStream(out)
}

// excerptSegment copies the part of one segment overlapping the window
// into dst. It returns false when the segment has no overlap at all.
func excerptSegment(src, dst *DAF, sum Summary, startSecond, endSecond float64) (bool, error) {
	startWord := int(sum.Ints[4])
	endWord := int(sum.Ints[5])

	meta, err := src.ReadWords(endWord-3, endWord)
	if err != nil {
		return false, err
	}
	init := meta[0]
	intlen := meta[1]
	rsize := int(meta[2])
	count := int(meta[3])
	if intlen <= 0 || rsize < 2 || count < 1 {
		return false, fmt.Errorf("%w: segment %q metadata init=%f intlen=%f rsize=%d n=%d",
			ErrCorruptedFile, sum.Name, init, intlen, rsize, count)
	}

	i := clamp(int(math.Floor((startSecond-init)/intlen)), 0, count)
	j := clamp(int(math.Floor((endSecond-init)/intlen))+1, 0, count)
	if i == j {
		return false, nil
	}

	words, err := src.ReadWords(startWord+i*rsize, startWord+j*rsize-1)
	if err != nil {
		return false, err
	}
	newInit := init + float64(i)*intlen
	words = append(words, newInit, intlen, float64(rsize), float64(j-i))

	doubles := make([]float64, len(sum.Doubles))
	copy(doubles, sum.Doubles)
	doubles[0] = newInit
	doubles[1] = newInit + float64(j-i)*intlen

	name := "X"
	if len(sum.Name) > 1 {
		name += sum.Name[1:]
	}
	if err := dst.AddArray(name, doubles, sum.Ints, words); err != nil {
		return false, err
	}
	return true, nil
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
