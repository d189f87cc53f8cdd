// ./segment.go
package spk

/*
Package spk provides the trajectory segment type: lazy coefficient
loading and Chebyshev position/state evaluation.

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
	"math"
	"sync"
	"sync/atomic"
)

// Segment is one body pair's trajectory within an SPK archive, valid over a
// bounded time range and stored as a sequence of per-interval Chebyshev
// records. Coefficients are loaded from the archive on first evaluation and
// cached until ClearData.
type Segment struct {
	// Name is the segment's entry in the archive's name records.
	Name string
	// StartSecond and EndSecond bound the segment's coverage in TDB
	// seconds past J2000.
	StartSecond float64
	EndSecond   float64
	// Target and Center are NAIF body identifiers; the segment encodes
	// the motion of Target relative to Center.
	Target int
	Center int
	// Frame is the NAIF integer identifier of the reference frame.
	Frame int
	// DataType is the SPK data type: 2 (Chebyshev position) and 3
	// (Chebyshev position and velocity) are evaluable.
	DataType int
	// StartWord and EndWord bound the segment's words in the data area.
	StartWord int
	EndWord   int

	daf *DAF

	// Coefficient cache. The pointer is read without the lock on the
	// hot path and re-checked under it during loads, so a second caller
	// arriving mid-load blocks and then observes the finished table.
	mu    sync.Mutex
	table atomic.Pointer[coefficientTable]
}

// coefficientTable is a segment's materialized Chebyshev data: one record
// per interval, each holding a midpoint, a radius, and term-major
// position coefficients.
type coefficientTable struct {
	initSecond     float64
	intervalLength float64
	recordSize     int
	count          int

	midpoints []float64
	radii     []float64
	// coeffs[i][k] holds the x, y, z coefficients of T_k on interval i.
	coeffs [][][3]float64
}

// newSegment classifies one SPK summary into a segment. Descriptor layout:
// two doubles (start and end second) followed by six integers (target,
// center, frame, data type, start word, end word).
func newSegment(d *DAF, s Summary) (*Segment, error) {
	if len(s.Doubles) < 2 || len(s.Ints) < 6 {
		return nil, fmt.Errorf("%w: summary %q has %d doubles and %d ints",
			ErrCorruptedFile, s.Name, len(s.Doubles), len(s.Ints))
	}
	return &Segment{
		Name:        s.Name,
		StartSecond: s.Doubles[0],
		EndSecond:   s.Doubles[1],
		Target:      int(s.Ints[0]),
		Center:      int(s.Ints[1]),
		Frame:       int(s.Ints[2]),
		DataType:    int(s.Ints[3]),
		StartWord:   int(s.Ints[4]),
		EndWord:     int(s.Ints[5]),
		daf:         d,
	}, nil
}

// componentCount returns how many polynomial components each coefficient
// record stores for the segment's data type. Evaluation only ever reads the
// first three (position); the stored velocity half of a type 3 record is
// not used, velocities always come from differentiating the position
// polynomial.
func (s *Segment) componentCount() (int, error) {
	switch s.DataType {
	case DataTypeChebyshevPosition:
		return 3, nil
	case DataTypeChebyshevPositionVelocity:
		return 6, nil
	default:
		return 0, fmt.Errorf("%w: type %d in segment %q", ErrUnsupportedDataType, s.DataType, s.Name)
	}
}

// data returns the segment's coefficient table, loading it on first use.
func (s *Segment) data() (*coefficientTable, error) {
	if t := s.table.Load(); t != nil {
		return t, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.table.Load(); t != nil {
		return t, nil
	}
	t, err := s.load()
	if err != nil {
		return nil, err
	}
	s.table.Store(t)
	return t, nil
}

// load reads the segment's trailing metadata and coefficient block from the
// archive and reshapes it into per-interval records.
func (s *Segment) load() (*coefficientTable, error) {
	components, err := s.componentCount()
	if err != nil {
		return nil, err
	}
	meta, err := s.daf.ReadWords(s.EndWord-3, s.EndWord)
	if err != nil {
		return nil, err
	}
	t := &coefficientTable{
		initSecond:     meta[0],
		intervalLength: meta[1],
		recordSize:     int(meta[2]),
		count:          int(meta[3]),
	}
	if t.recordSize < 2+components || t.count < 1 {
		return nil, fmt.Errorf("%w: segment %q metadata rsize=%d n=%d",
			ErrCorruptedFile, s.Name, t.recordSize, t.count)
	}
	terms := (t.recordSize - 2) / components

	flat, err := s.daf.ReadWords(s.StartWord, s.StartWord+t.count*t.recordSize-1)
	if err != nil {
		return nil, err
	}
	t.midpoints = make([]float64, t.count)
	t.radii = make([]float64, t.count)
	t.coeffs = make([][][3]float64, t.count)
	for i := 0; i < t.count; i++ {
		record := flat[i*t.recordSize : (i+1)*t.recordSize]
		t.midpoints[i] = record[0]
		t.radii[i] = record[1]
		cs := make([][3]float64, terms)
		for k := 0; k < terms; k++ {
			cs[k] = [3]float64{
				record[2+k],
				record[2+terms+k],
				record[2+2*terms+k],
			}
		}
		t.coeffs[i] = cs
	}
	return t, nil
}

// ClearData discards the cached coefficient table; the next evaluation
// reloads it from the archive.
func (s *Segment) ClearData() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table.Store(nil)
}

// locate finds the interval covering the given time. Both interval
// boundaries are inclusive. For the contiguous intervals valid files carry,
// the direct index computation lands on the covering interval; the scan
// below only runs for irregular data, before the time is declared out of
// range.
func (t *coefficientTable) locate(seconds float64) (int, error) {
	if t.intervalLength > 0 {
		i := int(math.Floor((seconds - t.initSecond) / t.intervalLength))
		if i < 0 {
			i = 0
		}
		if i >= t.count {
			i = t.count - 1
		}
		if math.Abs(seconds-t.midpoints[i]) <= t.radii[i] {
			return i, nil
		}
	}
	for i := 0; i < t.count; i++ {
		if math.Abs(seconds-t.midpoints[i]) <= t.radii[i] {
			return i, nil
		}
	}
	return 0, &OutOfRangeError{Seconds: seconds}
}

// positionAt evaluates the position polynomial at a TDB time in seconds
// past J2000.
func (s *Segment) positionAt(seconds float64) (Vector, error) {
	t, err := s.data()
	if err != nil {
		return Vector{}, err
	}
	i, err := t.locate(seconds)
	if err != nil {
		return Vector{}, err
	}
	normalized := (seconds - t.midpoints[i]) / t.radii[i]
	return vectorFrom(chebyshevEval(t.coeffs[i], normalized)), nil
}

// stateAt evaluates position and velocity at a TDB time in seconds past
// J2000. The velocity is the derivative of the position polynomial scaled
// by the interval radius.
func (s *Segment) stateAt(seconds float64) (State, error) {
	t, err := s.data()
	if err != nil {
		return State{}, err
	}
	i, err := t.locate(seconds)
	if err != nil {
		return State{}, err
	}
	normalized := (seconds - t.midpoints[i]) / t.radii[i]
	return State{
		Position: vectorFrom(chebyshevEval(t.coeffs[i], normalized)),
		Velocity: vectorFrom(chebyshevEvalDerivative(t.coeffs[i], normalized, t.radii[i])),
	}, nil
}

// Compute returns the position of Target relative to Center at the given
// Julian Date, in kilometers.
func (s *Segment) Compute(jd float64) (Vector, error) {
	return s.ComputeAt(jd, 0)
}

// ComputeAt is Compute with a two-part Julian Date; offset is added as a
// fraction of a day.
func (s *Segment) ComputeAt(jd, offset float64) (Vector, error) {
	return s.positionAt(JDPairToSeconds(jd, offset))
}

// ComputeSeries evaluates positions for an ordered sequence of Julian
// Dates, preserving input order. Any out-of-range time fails the whole
// call.
func (s *Segment) ComputeSeries(jds []float64) ([]Vector, error) {
	out := make([]Vector, len(jds))
	for i, jd := range jds {
		v, err := s.ComputeAt(jd, 0)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ComputeAndDifferentiate returns the position (km) and velocity (km/day)
// of Target relative to Center at the given Julian Date.
func (s *Segment) ComputeAndDifferentiate(jd float64) (State, error) {
	return s.ComputeAndDifferentiateAt(jd, 0)
}

// ComputeAndDifferentiateAt is ComputeAndDifferentiate with a two-part
// Julian Date.
func (s *Segment) ComputeAndDifferentiateAt(jd, offset float64) (State, error) {
	return s.stateAt(JDPairToSeconds(jd, offset))
}

// ComputeAndDifferentiateSeries evaluates states for an ordered sequence of
// Julian Dates, preserving input order.
func (s *Segment) ComputeAndDifferentiateSeries(jds []float64) ([]State, error) {
	out := make([]State, len(jds))
	for i, jd := range jds {
		st, err := s.ComputeAndDifferentiateAt(jd, 0)
		if err != nil {
			return nil, err
		}
		out[i] = st
	}
	return out, nil
}

// StartJD and EndJD return the segment coverage as Julian Dates.
func (s *Segment) StartJD() float64 { return SecondsToJD(s.StartSecond) }

// EndJD returns the end of the segment's coverage as a Julian Date.
func (s *Segment) EndJD() float64 { return SecondsToJD(s.EndSecond) }

// String implements fmt.Stringer with a one-line human readable summary.
func (s *Segment) String() string {
	return fmt.Sprintf("segment %q target=%d center=%d frame=%d type=%d JD %.2f..%.2f",
		s.Name, s.Target, s.Center, s.Frame, s.DataType, s.StartJD(), s.EndJD())
}
