package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/emRival/rekap-absensi/internal/recap"
	"github.com/xuri/excelize/v2"
)

// Layout locates the roster inside a worksheet. All indexes are 0-based.
type Layout struct {
	HeaderRow    int // row holding the day-of-month numbers
	FirstDataRow int // first employee row
	NameCol      int
	RoleCol      int // -1 when the sheet has no role column
	FirstDayCol  int // column of the first day
}

// DefaultLayout matches the time-clock export: day numbers on row 5,
// employees from row 6, name in A, role in B, days from C.
func DefaultLayout() Layout {
	return Layout{HeaderRow: 4, FirstDataRow: 5, NameCol: 0, RoleCol: 1, FirstDayCol: 2}
}

// Sheet is the roster extracted from a worksheet.
type Sheet struct {
	Header []string
	Rows   []recap.Row
}

// Grid attaches window bounds to the extracted roster.
func (s *Sheet) Grid(start, end time.Month, year int) recap.Grid {
	return recap.Grid{
		Header:     s.Header,
		Rows:       s.Rows,
		StartMonth: start,
		EndMonth:   end,
		Year:       year,
	}
}

// Load reads the first worksheet of an .xlsx file or a .csv file.
func Load(path string, layout Layout) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Read(bytes.NewReader(data), filepath.Ext(path), layout)
}

// Read extracts a roster from r; ext selects the decoder (".xlsx" or ".csv").
func Read(r io.Reader, ext string, layout Layout) (*Sheet, error) {
	var rows [][]string
	var err error
	switch strings.ToLower(ext) {
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(r)
	case ".csv":
		rows, err = readCSV(r)
	default:
		return nil, fmt.Errorf("unsupported file type %q (supported: .xlsx, .csv)", ext)
	}
	if err != nil {
		return nil, err
	}
	return FromRows(rows, layout)
}

func readXLSX(r io.Reader) ([][]string, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no worksheet found")
	}
	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("reading worksheet %q: %w", sheetName, err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return rows, nil
}

// FromRows extracts a roster from raw worksheet rows.
//
// The header spans from FirstDayCol to its last non-blank cell. Employee
// rows without a name are skipped; their day cells are cut or padded to
// the header width, since spreadsheet readers drop trailing blank cells.
func FromRows(rows [][]string, layout Layout) (*Sheet, error) {
	if layout.HeaderRow >= len(rows) {
		return nil, fmt.Errorf("header row %d not found (sheet has %d rows)", layout.HeaderRow+1, len(rows))
	}

	header := trimTrailingBlank(cellsFrom(rows[layout.HeaderRow], layout.FirstDayCol))
	if len(header) == 0 {
		return nil, fmt.Errorf("header row %d has no day columns", layout.HeaderRow+1)
	}

	s := &Sheet{Header: header}
	for i := layout.FirstDataRow; i < len(rows); i++ {
		row := rows[i]
		name := strings.TrimSpace(cellAt(row, layout.NameCol))
		if name == "" {
			continue
		}

		var roleName string
		if layout.RoleCol >= 0 {
			roleName = strings.TrimSpace(cellAt(row, layout.RoleCol))
		}

		cells := make([]string, len(header))
		copy(cells, cellsFrom(row, layout.FirstDayCol))
		s.Rows = append(s.Rows, recap.Row{Name: name, Role: roleName, Cells: cells})
	}

	return s, nil
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

func cellsFrom(row []string, col int) []string {
	if col < 0 || col >= len(row) {
		return nil
	}
	return row[col:]
}

func trimTrailingBlank(cells []string) []string {
	end := len(cells)
	for end > 0 && strings.TrimSpace(cells[end-1]) == "" {
		end--
	}
	out := make([]string, end)
	copy(out, cells[:end])
	return out
}
