package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	enc "github.com/kritchanat/dormdesk/internal/encoding"
	"github.com/kritchanat/dormdesk/internal/tenant"
)

// Parser reads tenant roster CSV files and produces roster entries.
// Both Thai and English column headers are recognized, and the file may
// carry preamble rows before the header (spreadsheet exports often do).
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Canonical column names; headerAliases maps what files actually say.
const (
	colFirstName = "first_name"
	colLastName  = "last_name"
	colRoom      = "room"
	colEmail     = "email"
	colPhone     = "phone"
	colAddress   = "address"
	colEmergency = "emergency_contact"
)

var headerAliases = map[string]string{
	"first_name": colFirstName,
	"firstname":  colFirstName,
	"ชื่อ":       colFirstName,

	"last_name": colLastName,
	"lastname":  colLastName,
	"นามสกุล":   colLastName,

	"room":        colRoom,
	"room_number": colRoom,
	"ห้อง":        colRoom,
	"เลขห้อง":     colRoom,

	"email": colEmail,
	"อีเมล": colEmail,

	"phone":    colPhone,
	"tel":      colPhone,
	"โทรศัพท์": colPhone,
	"เบอร์โทร": colPhone,

	"address": colAddress,
	"ที่อยู่": colAddress,

	"emergency_contact": colEmergency,
	"ผู้ติดต่อฉุกเฉิน":  colEmergency,
}

func (p *Parser) Parse(r io.Reader) ([]tenant.RosterEntry, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx := detectHeader(rows)
	if cols == nil {
		return nil, fmt.Errorf("no roster header found: need at least first name and room columns")
	}

	return parseRows(cols, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps canonical column names to their index in the row.
type colIndex map[string]int

// detectHeader scans rows for one that carries a recognizable roster
// header. Returns the column index map and the header row index.
func detectHeader(rows [][]string) (colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if canonical, ok := headerAliases[name]; ok {
				cols[canonical] = i
			}
		}

		_, hasName := cols[colFirstName]
		_, hasRoom := cols[colRoom]

		if hasName && hasRoom {
			return cols, rowIdx
		}
	}

	return nil, 0
}

// parseRows extracts roster entries from data rows. headerRowNum is the
// 0-based index of the header in the original file, used to report
// 1-based line numbers for bad rows.
func parseRows(cols colIndex, rows [][]string, headerRowNum int) ([]tenant.RosterEntry, error) {
	var entries []tenant.RosterEntry

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		if isBlank(row) {
			continue
		}

		firstName := cellValue(row, cols, colFirstName)
		if firstName == "" {
			return nil, fmt.Errorf("row %d: missing first name", rowNum)
		}

		roomNumber := cellValue(row, cols, colRoom)
		if roomNumber == "" {
			return nil, fmt.Errorf("row %d: missing room number", rowNum)
		}

		entries = append(entries, tenant.RosterEntry{
			Tenant: tenant.CreateParams{
				FirstName:        firstName,
				LastName:         cellValue(row, cols, colLastName),
				Email:            cellValue(row, cols, colEmail),
				Phone:            cellValue(row, cols, colPhone),
				Address:          cellValue(row, cols, colAddress),
				EmergencyContact: cellValue(row, cols, colEmergency),
			},
			RoomNumber: roomNumber,
		})
	}

	return entries, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

// cellValue safely gets a trimmed cell value for a canonical column.
func cellValue(row []string, cols colIndex, name string) string {
	idx, ok := cols[name]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
