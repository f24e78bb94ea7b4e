package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocketbank/internal/encoding"
)

func decode(t *testing.T, input []byte) (string, encoding.Charset) {
	t.Helper()

	r, charset, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got), charset
}

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "Date;Description;Amount\n2024-03-15;Café;12.50\n"

	got, charset := decode(t, []byte(input))
	assert.Equal(t, input, got)
	assert.Equal(t, encoding.CharsetUTF8, charset)
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// "Café;1" with é = 0xE9 in Windows-1252.
	input := []byte{'C', 'a', 'f', 0xE9, ';', '1', '\n'}

	got, charset := decode(t, input)
	assert.Equal(t, "Café;1\n", got)
	assert.NotEqual(t, encoding.CharsetUTF8, charset)
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Date;Amount\n")...)

	got, charset := decode(t, input)
	assert.Equal(t, "Date;Amount\n", got)
	assert.Equal(t, encoding.CharsetUTF8BOM, charset)
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	// BOM followed by "Hi" in little endian.
	input := []byte{0xFF, 0xFE, 'H', 0x00, 'i', 0x00}

	got, charset := decode(t, input)
	assert.Equal(t, "Hi", got)
	assert.Equal(t, encoding.CharsetUTF16LE, charset)
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	got, charset := decode(t, nil)
	assert.Empty(t, got)
	assert.Equal(t, encoding.CharsetUTF8, charset)
}
