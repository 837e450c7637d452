package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritchanat/dormdesk/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	// Valid UTF-8 with Thai characters should pass through unchanged.
	input := "ชื่อ;ห้อง\nสมชาย;101\n"
	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_Windows874(t *testing.T) {
	// Windows-874 encoded "ชื่อ;ห้อง\n".
	// Thai letters sit at codepoint - 0x0E01 + 0xA1.
	thaiBytes := []byte{
		0xAA, 0xD7, 0xE8, 0xCD, ';',
		0xCB, 0xE9, 0xCD, 0xA7, '\n',
	}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(thaiBytes))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "ชื่อ;ห้อง\n", string(got))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	// UTF-8 BOM (0xEF 0xBB 0xBF) should be stripped.
	bom := []byte{0xEF, 0xBB, 0xBF}
	content := []byte("ชื่อ;ห้อง\n")
	input := append(bom, content...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "ชื่อ;ห้อง\n", string(got))
}
