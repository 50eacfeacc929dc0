package tlv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, buf []byte) ([]Field, error) {
	t.Helper()
	var out []Field
	sc := NewScanner(buf)
	for sc.Next() {
		out = append(out, sc.Field())
	}
	return out, sc.Err()
}

func TestEncodeFieldsScanRoundTrip(t *testing.T) {
	in := []Field{
		{Type: 1, Value: []byte("topic/a")},
		{Type: 9, Value: []byte{0xAA, 0xBB}},
		{Type: 2, Value: []byte{}},
	}
	b := EncodeFields(in)
	assert.Equal(t, 3*HeaderLen+7+2, len(b))

	out, err := scanAll(t, b)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, uint8(9), out[1].Type)
	assert.Equal(t, []byte{0xAA, 0xBB}, out[1].Value)
	assert.Equal(t, uint8(2), out[2].Type)
	assert.Empty(t, out[2].Value)
}

func TestEncodeFieldsEmpty(t *testing.T) {
	b := EncodeFields(nil)
	require.NotNil(t, b)
	assert.Empty(t, b)
}

func TestAppendFieldLittleEndianLength(t *testing.T) {
	b := AppendField([]byte{0xEE}, Field{Type: 1, Value: make([]byte, 0x0102)})
	assert.Equal(t, []byte{0xEE, 1, 0x02, 0x01}, b[:4])
	assert.Len(t, b, 1+HeaderLen+0x0102)
}

func TestScanEmpty(t *testing.T) {
	out, err := scanAll(t, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestScanMissingLength(t *testing.T) {
	_, err := scanAll(t, []byte{1})
	assert.ErrorIs(t, err, ErrMissingLength)
	_, err = scanAll(t, []byte{1, 0})
	assert.ErrorIs(t, err, ErrMissingLength)
}

func TestScanValueTooLong(t *testing.T) {
	// type=1, len=5, value only 2 bytes
	_, err := scanAll(t, []byte{1, 5, 0, 'a', 'b'})
	assert.ErrorIs(t, err, ErrValueTooLong)
}

func TestScannerStopsAtFirstError(t *testing.T) {
	sc := NewScanner([]byte{1, 1, 0, 'x', 2, 9, 0})
	require.True(t, sc.Next())
	assert.Equal(t, Field{Type: 1, Value: []byte("x")}, sc.Field())
	assert.False(t, sc.Next())
	assert.ErrorIs(t, sc.Err(), ErrValueTooLong)
	assert.False(t, sc.Next())
}

func TestScannerCopiesValues(t *testing.T) {
	buf := EncodeFields([]Field{{Type: 1, Value: []byte("abc")}})
	sc := NewScanner(buf)
	require.True(t, sc.Next())
	buf[3] = 'z'
	assert.Equal(t, []byte("abc"), sc.Field().Value)
}
