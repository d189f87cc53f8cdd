// ./spk_test.go
package spk

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// moonSpec covers JD 2451545..2451553 with four two-day intervals of a
// two-term series; at each interval midpoint the position is the zeroth
// coefficient and the velocity the first.
func moonSpec() segmentSpec {
	return segmentSpec{
		name:           "SEG MOON",
		target:         301,
		center:         3,
		frame:          1,
		dataType:       DataTypeChebyshevPosition,
		initSecond:     0,
		intervalLength: 2 * SecondsPerDay,
		count:          4,
		terms:          2,
	}
}

func earthSpec() segmentSpec {
	sp := moonSpec()
	sp.name = "SEG EARTH"
	sp.target = 399
	sp.dataType = DataTypeChebyshevPositionVelocity
	return sp
}

func TestNewSPKClassifiesSegments(t *testing.T) {
	archive := buildArchive(t, moonSpec(), earthSpec())
	defer archive.Close()

	require.Len(t, archive.Segments, 2)
	seg := archive.Segments[0]
	assert.Equal(t, "SEG MOON", seg.Name)
	assert.Equal(t, 301, seg.Target)
	assert.Equal(t, 3, seg.Center)
	assert.Equal(t, 1, seg.Frame)
	assert.Equal(t, DataTypeChebyshevPosition, seg.DataType)
	assert.Equal(t, 0.0, seg.StartSecond)
	assert.Equal(t, 8*SecondsPerDay, seg.EndSecond)
	assert.Equal(t, 2451545.0, seg.StartJD())
	assert.Equal(t, 2451553.0, seg.EndJD())
	assert.Greater(t, seg.EndWord, seg.StartWord)
}

func TestNewSPKRejectsBadArchives(t *testing.T) {
	_, err := NewSPK(nil)
	assert.ErrorIs(t, err, ErrInvalidHandle)

	// one double cannot hold an SPK coverage window
	d, err := CreateDAF(memFile(t, "nd1.daf"), "DAF/SPK", 1, 6, "not an spk")
	require.NoError(t, err)
	_, err = NewSPK(d)
	assert.ErrorIs(t, err, ErrCorruptedFile)
}

func TestSegmentLookup(t *testing.T) {
	archive := buildArchive(t, moonSpec(), earthSpec())
	defer archive.Close()

	seg, err := archive.Segment(3, 301)
	require.NoError(t, err)
	assert.Equal(t, "SEG MOON", seg.Name)

	_, err = archive.Segment(3, 999)
	assert.ErrorIs(t, err, ErrSegmentNotFound)
	_, err = archive.Segment(301, 3)
	assert.ErrorIs(t, err, ErrSegmentNotFound)
}

func TestSegmentLookupLastWriteWins(t *testing.T) {
	first := moonSpec()
	second := moonSpec()
	second.name = "SEG MOON REVISED"
	archive := buildArchive(t, first, second)
	defer archive.Close()

	require.Len(t, archive.Segments, 2)
	seg, err := archive.Segment(3, 301)
	require.NoError(t, err)
	assert.Equal(t, "SEG MOON REVISED", seg.Name)
}

// TestComputeAtIntervalMidpoints checks exact values: at a midpoint the
// normalized time is zero, so the position is the zeroth coefficient of
// each component.
func TestComputeAtIntervalMidpoints(t *testing.T) {
	archive := buildArchive(t, moonSpec())
	defer archive.Close()
	seg, err := archive.Segment(3, 301)
	require.NoError(t, err)

	// interval 0 midpoint is one day past J2000
	pos, err := seg.Compute(2451546)
	require.NoError(t, err)
	assert.Equal(t, Vector{X: 311, Y: 321, Z: 331}, pos)

	// interval 1 coefficients are offset by 1/8
	pos, err = seg.Compute(2451548)
	require.NoError(t, err)
	assert.Equal(t, Vector{X: 311.125, Y: 321.125, Z: 331.125}, pos)
}

// TestComputeAndDifferentiateType3 checks that a type 3 segment evaluates
// through the position polynomial: the velocity is its derivative, not the
// stored velocity coefficients.
func TestComputeAndDifferentiateType3(t *testing.T) {
	archive := buildArchive(t, earthSpec())
	defer archive.Close()
	seg, err := archive.Segment(3, 399)
	require.NoError(t, err)

	st, err := seg.ComputeAndDifferentiate(2451546)
	require.NoError(t, err)
	assert.Equal(t, Vector{X: 409, Y: 419, Z: 429}, st.Position)
	// d/dt of c0 + c1*t is c1 per normalized unit; the radius of a
	// two-day interval makes the km/day scale exactly 1/2, and the
	// Clenshaw loop carries a factor 2.
	assert.Equal(t, Vector{X: 410, Y: 420, Z: 430}, st.Velocity)
}

func TestComputePositionMatchesState(t *testing.T) {
	archive := buildArchive(t, moonSpec())
	defer archive.Close()
	seg, err := archive.Segment(3, 301)
	require.NoError(t, err)

	for _, jd := range []float64{2451545.0, 2451545.25, 2451547.8, 2451551.03, 2451553.0} {
		pos, err := seg.Compute(jd)
		require.NoError(t, err)
		st, err := seg.ComputeAndDifferentiate(jd)
		require.NoError(t, err)
		assert.Equal(t, pos, st.Position, "jd=%f", jd)
	}
}

func TestComputeAtTwoPartDate(t *testing.T) {
	archive := buildArchive(t, moonSpec())
	defer archive.Close()
	seg, err := archive.Segment(3, 301)
	require.NoError(t, err)

	whole, err := seg.Compute(2451546)
	require.NoError(t, err)
	split, err := seg.ComputeAt(2451545, 1)
	require.NoError(t, err)
	assert.Equal(t, whole, split)
}

func TestComputeOutOfRange(t *testing.T) {
	archive := buildArchive(t, moonSpec())
	defer archive.Close()
	seg, err := archive.Segment(3, 301)
	require.NoError(t, err)

	// both coverage endpoints are inclusive
	_, err = seg.Compute(2451545)
	assert.NoError(t, err)
	_, err = seg.Compute(2451553)
	assert.NoError(t, err)

	_, err = seg.Compute(2451553.5)
	assert.ErrorIs(t, err, ErrOutOfRange)
	var oor *OutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, 8.5*SecondsPerDay, oor.Seconds)

	_, err = seg.Compute(2451544)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestSeriesPreserveInputOrder(t *testing.T) {
	archive := buildArchive(t, moonSpec())
	defer archive.Close()
	seg, err := archive.Segment(3, 301)
	require.NoError(t, err)

	jds := []float64{2451548, 2451546, 2451550.5}
	positions, err := seg.ComputeSeries(jds)
	require.NoError(t, err)
	states, err := seg.ComputeAndDifferentiateSeries(jds)
	require.NoError(t, err)
	require.Len(t, positions, len(jds))
	require.Len(t, states, len(jds))
	for i, jd := range jds {
		want, err := seg.Compute(jd)
		require.NoError(t, err)
		assert.Equal(t, want, positions[i], "jd=%f", jd)
		assert.Equal(t, want, states[i].Position, "jd=%f", jd)
	}

	_, err = seg.ComputeSeries([]float64{2451546, 2451560})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

// TestCoefficientCache checks that the archive is read exactly once per
// segment load: the metadata words and the coefficient block.
func TestCoefficientCache(t *testing.T) {
	archive := buildArchive(t, moonSpec())
	defer archive.Close()
	seg, err := archive.Segment(3, 301)
	require.NoError(t, err)
	probe := archive.DAF.Accessor()

	before := probe.ReadCount()
	_, err = seg.Compute(2451546)
	require.NoError(t, err)
	assert.Equal(t, before+2, probe.ReadCount())

	// further evaluations hit the cache
	_, err = seg.ComputeAndDifferentiate(2451550)
	require.NoError(t, err)
	_, err = seg.Compute(2451547.5)
	require.NoError(t, err)
	assert.Equal(t, before+2, probe.ReadCount())

	// dropping the cache forces a reload
	seg.ClearData()
	_, err = seg.Compute(2451546)
	require.NoError(t, err)
	assert.Equal(t, before+4, probe.ReadCount())
}

func TestUnsupportedDataType(t *testing.T) {
	lagrange := moonSpec()
	lagrange.name = "SEG LAGRANGE"
	lagrange.target = 394
	lagrange.dataType = 9

	archive := buildArchive(t, moonSpec(), lagrange)
	defer archive.Close()

	// the segment is still listed and indexed
	require.Len(t, archive.Segments, 2)
	seg, err := archive.Segment(3, 394)
	require.NoError(t, err)

	_, err = seg.Compute(2451546)
	assert.ErrorIs(t, err, ErrUnsupportedDataType)
	_, err = seg.ComputeAndDifferentiate(2451546)
	assert.ErrorIs(t, err, ErrUnsupportedDataType)
}

func TestSegmentString(t *testing.T) {
	archive := buildArchive(t, moonSpec())
	defer archive.Close()
	s := archive.Segments[0].String()
	assert.Contains(t, s, "SEG MOON")
	assert.Contains(t, s, "target=301")
	assert.Contains(t, archive.String(), s)
}

func TestCorruptSegmentMetadata(t *testing.T) {
	archive := buildArchive(t, moonSpec())
	defer archive.Close()
	seg, err := archive.Segment(3, 301)
	require.NoError(t, err)

	// zero the record size word of the trailing metadata
	require.NoError(t, archive.DAF.WriteWords(seg.EndWord-1, []float64{0}))
	_, err = seg.Compute(2451546)
	assert.ErrorIs(t, err, ErrCorruptedFile)
	assert.False(t, errors.Is(err, ErrOutOfRange))
}
