package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/keystone-apparel/keystone/internal/encoding"
)

func readAll(t *testing.T, input []byte) (string, encoding.Charset) {
	t.Helper()

	r, cs, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got), cs
}

func TestNewUTF8Reader(t *testing.T) {
	const text = "date,seller,notes\n2025-10-14,José,Piñata crew\n"

	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   []byte
		want    string
		charset encoding.Charset
	}{
		{
			name:    "UTF8Passthrough",
			input:   []byte(text),
			want:    text,
			charset: encoding.UTF8,
		},
		{
			name:    "UTF8BOMStripped",
			input:   append([]byte{0xEF, 0xBB, 0xBF}, text...),
			want:    text,
			charset: encoding.UTF8BOM,
		},
		{
			name:    "UTF16LE",
			input:   utf16,
			want:    text,
			charset: encoding.UTF16LE,
		},
		{
			// "José" with é as 0xE9.
			name:    "Windows1252",
			input:   []byte{'J', 'o', 's', 0xE9, ',', 'c', 'a', 's', 'h', '\n'},
			want:    "José,cash\n",
			charset: encoding.Windows1252,
		},
		{
			name:    "Empty",
			input:   nil,
			want:    "",
			charset: encoding.UTF8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cs := readAll(t, tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.charset, cs)
		})
	}
}
