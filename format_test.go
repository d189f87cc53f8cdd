// ./format_test.go
package spk

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleFileRecord is a header used across the detection tests.
func sampleFileRecord(tag string) *FileRecord {
	return &FileRecord{
		LocatorID:        "DAF/SPK",
		DoubleCount:      2,
		IntegerCount:     6,
		InternalFilename: "NIO2SPK",
		Forward:          4,
		Backward:         4,
		Free:             641,
		FormatTag:        tag,
	}
}

func TestDetectFormatLittleEndian(t *testing.T) {
	record := sampleFileRecord(formatTagLittleEndian).encode(binary.LittleEndian)
	format, err := detectFormat(record)
	require.NoError(t, err)
	assert.Equal(t, formatTagLittleEndian, format.Tag)
	assert.Equal(t, binary.ByteOrder(binary.LittleEndian), format.Order)
}

func TestDetectFormatBigEndian(t *testing.T) {
	record := sampleFileRecord(formatTagBigEndian).encode(binary.BigEndian)
	format, err := detectFormat(record)
	require.NoError(t, err)
	assert.Equal(t, formatTagBigEndian, format.Tag)
	assert.Equal(t, binary.ByteOrder(binary.BigEndian), format.Order)
}

func TestDetectFormatUnknownTag(t *testing.T) {
	record := sampleFileRecord("VAX-GFLT").encode(binary.LittleEndian)
	_, err := detectFormat(record)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDetectFormatDamagedFTPString(t *testing.T) {
	record := sampleFileRecord(formatTagLittleEndian).encode(binary.LittleEndian)
	// simulate an ASCII-mode transfer mangling a carriage return
	record[offFTP+7] = '\n'
	_, err := detectFormat(record)
	assert.ErrorIs(t, err, ErrCorruptedFile)
}

func TestDetectFormatBadLocator(t *testing.T) {
	record := make([]byte, RecordSize)
	copy(record, "PDS3/VOL")
	_, err := detectFormat(record)
	assert.ErrorIs(t, err, ErrInvalidFileIdentifier)
}

// naifRecord builds an old-style header that carries no format tag.
func naifRecord(order binary.ByteOrder, nd uint32) []byte {
	record := make([]byte, RecordSize)
	putField(record[0:8], naifDAFIdentifier)
	order.PutUint32(record[8:12], nd)
	return record
}

func TestDetectFormatNAIFProbe(t *testing.T) {
	format, err := detectFormat(naifRecord(binary.BigEndian, 2))
	require.NoError(t, err)
	assert.Equal(t, formatTagBigEndian, format.Tag)

	format, err = detectFormat(naifRecord(binary.LittleEndian, 2))
	require.NoError(t, err)
	assert.Equal(t, formatTagLittleEndian, format.Tag)
}

func TestDetectFormatNAIFUndetermined(t *testing.T) {
	// ND=7 decodes as 2 under neither byte order
	_, err := detectFormat(naifRecord(binary.LittleEndian, 7))
	assert.ErrorIs(t, err, ErrEndiannessUndetermined)
}

func TestDetectFormatTruncatedRecord(t *testing.T) {
	_, err := detectFormat([]byte("DAF/SPK "))
	assert.ErrorIs(t, err, ErrIO)
}
