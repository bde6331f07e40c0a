package ewkb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderCountRejectsOversizedLength(t *testing.T) {
	r := newReader([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 0})
	_, err := r.count(8)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestReaderCountAcceptsFittingLength(t *testing.T) {
	r := newReader([]byte{2, 0, 0, 0, 1, 2, 3, 4, 5, 6, 7, 8})
	n, err := r.count(4)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 4, r.off)
}

func TestReaderSwitchesOrder(t *testing.T) {
	r := newReader([]byte{0, 0, 0, 0, 7, 1, 7, 0, 0, 0})

	order, err := r.byteOrder()
	require.NoError(t, err)
	assert.Equal(t, BigEndian, order)
	v, err := r.uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(7), v)

	order, err = r.byteOrder()
	require.NoError(t, err)
	assert.Equal(t, LittleEndian, order)
	v, err = r.uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(7), v)
}

func TestReaderShortInput(t *testing.T) {
	r := newReader([]byte{1, 2, 3})
	_, err := r.uint32()
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
	_, err = r.float64()
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
	assert.Equal(t, 0, r.off)
}

func TestReaderBadFlag(t *testing.T) {
	_, err := newReader([]byte{2}).byteOrder()
	require.Error(t, err)
	de := err.(*DecodeError)
	assert.Equal(t, UnknownTypeCode, de.Reason)
	assert.Equal(t, uint32(2), de.Code)
	assert.Equal(t, 0, de.Offset)
}

func TestWriterOrders(t *testing.T) {
	w := newWriter(nil, BigEndian)
	w.uint32(1)
	assert.Equal(t, []byte{0, 0, 0, 1}, w.buf)

	w = newWriter([]byte{9}, LittleEndian)
	w.uint32(1)
	assert.Equal(t, []byte{9, 1, 0, 0, 0}, w.buf)
}
