// ./testutil_test.go
package spk

import (
	"encoding/binary"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// segmentSpec describes one synthetic Chebyshev segment for the tests.
// Coefficients are generated deterministically from the target id so two
// builds of the same spec are bit-identical.
type segmentSpec struct {
	name     string
	target   int
	center   int
	frame    int
	dataType int

	initSecond     float64
	intervalLength float64
	count          int
	terms          int
}

// words lays the segment out as a data block: count coefficient records
// followed by the four trailing metadata words.
func (sp segmentSpec) words() []float64 {
	components := 3
	if sp.dataType == DataTypeChebyshevPositionVelocity {
		components = 6
	}
	rsize := 2 + components*sp.terms

	out := make([]float64, 0, sp.count*rsize+4)
	for i := 0; i < sp.count; i++ {
		mid := sp.initSecond + (float64(i)+0.5)*sp.intervalLength
		radius := sp.intervalLength / 2
		out = append(out, mid, radius)
		for c := 0; c < components; c++ {
			for k := 0; k < sp.terms; k++ {
				// arbitrary but deterministic and distinct
				out = append(out, float64(sp.target)+float64(c+1)*10+float64(k)+float64(i)/8)
			}
		}
	}
	return append(out, sp.initSecond, sp.intervalLength, float64(rsize), float64(sp.count))
}

// descriptor returns the summary doubles and ints for the segment; the
// start and end words are filled in by AddArray.
func (sp segmentSpec) descriptor() ([]float64, []int32) {
	end := sp.initSecond + float64(sp.count)*sp.intervalLength
	doubles := []float64{sp.initSecond, end}
	ints := []int32{int32(sp.target), int32(sp.center), int32(sp.frame), int32(sp.dataType), 0, 0}
	return doubles, ints
}

// buildArchive writes a synthetic SPK onto an in-memory file and opens it.
func buildArchive(t *testing.T, specs ...segmentSpec) *SPK {
	t.Helper()
	f := memFile(t, "synthetic.bsp")
	d, err := CreateDAF(f, "DAF/SPK", 2, 6, "synthetic archive")
	require.NoError(t, err)
	for _, sp := range specs {
		doubles, ints := sp.descriptor()
		require.NoError(t, d.AddArray(sp.name, doubles, ints, sp.words()))
	}
	archive, err := NewSPK(d)
	require.NoError(t, err)
	return archive
}

// buildArchiveWithComments handcrafts an archive whose comment area spans
// the given raw record payloads (each at most 1000 bytes).
func buildArchiveWithComments(t *testing.T, payloads ...[]byte) *DAF {
	t.Helper()
	f := memFile(t, "comments.bsp")
	accessor, err := NewRecordAccessor(f)
	require.NoError(t, err)

	forward := 2 + len(payloads)
	fr := &FileRecord{
		LocatorID:        "DAF/SPK",
		DoubleCount:      2,
		IntegerCount:     6,
		InternalFilename: "commented archive",
		Forward:          forward,
		Backward:         forward,
		Free:             (forward+1)*WordsPerRecord + 1,
		FormatTag:        formatTagLittleEndian,
	}
	require.NoError(t, accessor.WriteRecord(1, fr.encode(binary.LittleEndian)))

	for i, payload := range payloads {
		require.LessOrEqual(t, len(payload), CommentAreaSize)
		record := make([]byte, RecordSize)
		copy(record, payload)
		require.NoError(t, accessor.WriteRecord(2+i, record))
	}
	blank := make([]byte, RecordSize)
	require.NoError(t, accessor.WriteRecord(forward, blank))
	require.NoError(t, accessor.WriteRecord(forward+1, blank))

	d, err := NewDAF(f)
	require.NoError(t, err)
	return d
}

// excerptTarget opens a fresh in-memory output file for excerpt tests.
func excerptTarget(t *testing.T) afero.File {
	t.Helper()
	return memFile(t, "excerpt.bsp")
}
