package roster_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/kritchanat/dormdesk/internal/importer/roster"
)

func TestParser_EnglishHeader(t *testing.T) {
	csv := `first_name,last_name,phone,email,room
Somchai,Jaidee,0812345678,somchai@example.com,101
Malee,Suksawat,0898765432,,102
`

	p := roster.NewParser()
	entries, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Somchai", entries[0].Tenant.FirstName)
	assert.Equal(t, "Jaidee", entries[0].Tenant.LastName)
	assert.Equal(t, "0812345678", entries[0].Tenant.Phone)
	assert.Equal(t, "somchai@example.com", entries[0].Tenant.Email)
	assert.Equal(t, "101", entries[0].RoomNumber)

	assert.Equal(t, "Malee", entries[1].Tenant.FirstName)
	assert.Empty(t, entries[1].Tenant.Email)
	assert.Equal(t, "102", entries[1].RoomNumber)
}

func TestParser_ThaiHeaderWithPreamble(t *testing.T) {
	csv := `รายชื่อผู้เช่า,,,
อัพเดท,2026-08-01,,

ชื่อ,นามสกุล,เบอร์โทร,ห้อง
สมชาย,ใจดี,0812345678,201
มาลี,สุขสวัสดิ์,0898765432,202
`

	p := roster.NewParser()
	entries, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "สมชาย", entries[0].Tenant.FirstName)
	assert.Equal(t, "ใจดี", entries[0].Tenant.LastName)
	assert.Equal(t, "201", entries[0].RoomNumber)
	assert.Equal(t, "202", entries[1].RoomNumber)
}

func TestParser_Windows874Encoded(t *testing.T) {
	utf8CSV := "ชื่อ,นามสกุล,ห้อง\nสมชาย,ใจดี,301\n"

	encoded, err := charmap.Windows874.NewEncoder().Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	p := roster.NewParser()
	entries, err := p.Parse(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "สมชาย", entries[0].Tenant.FirstName)
	assert.Equal(t, "ใจดี", entries[0].Tenant.LastName)
	assert.Equal(t, "301", entries[0].RoomNumber)
}

func TestParser_SkipsBlankRows(t *testing.T) {
	csv := `first_name,room
Somchai,101

Malee,102
`

	p := roster.NewParser()
	entries, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestParser_MissingRoom(t *testing.T) {
	csv := `first_name,room
Somchai,
`

	p := roster.NewParser()
	_, err := p.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing room number")
}

func TestParser_NoHeader(t *testing.T) {
	csv := `Somchai,Jaidee,101
Malee,Suksawat,102
`

	p := roster.NewParser()
	_, err := p.Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no roster header")
}
