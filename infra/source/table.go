package source

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrColumnNotFound is returned when no header row holds a required column.
	ErrColumnNotFound = errors.New("column not found")
	// ErrUnsupportedFormat is returned for files that are neither workbooks nor CSV.
	ErrUnsupportedFormat = errors.New("unsupported table format")
)

// maxHeaderScan bounds the rows searched for a header when the configured
// row does not hold the required columns.
const maxHeaderScan = 20

const naiveLayout = "2006-01-02 15:04:05"

type table struct {
	rows     [][]string
	workbook bool
}

func readTable(path, sheet string) (table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err := readWorkbook(path, sheet)
		return table{rows: rows, workbook: true}, err
	case ".csv":
		rows, err := readCSV(path)
		return table{rows: rows}, err
	default:
		return table{}, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

func readWorkbook(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", sheet, path, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

// header maps normalized column names to their index.
type header map[string]int

func normalizeName(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func newHeader(row []string) header {
	h := make(header, len(row))
	for i, name := range row {
		key := normalizeName(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := h[key]; !dup && key != "" {
			h[key] = i
		}
	}
	return h
}

// index returns the position of name, or -1.
func (h header) index(name string) int {
	if i, ok := h[normalizeName(name)]; ok {
		return i
	}
	return -1
}

func (h header) missing(names []string) []string {
	var out []string
	for _, n := range names {
		if h.index(n) < 0 {
			out = append(out, n)
		}
	}
	return out
}

// locateHeader returns the row holding every required column, trying hint
// first and then the leading rows of the table.
func locateHeader(rows [][]string, hint int, required []string) (int, header, error) {
	candidates := make([]int, 0, maxHeaderScan+1)
	if hint >= 0 && hint < len(rows) {
		candidates = append(candidates, hint)
	}
	for i := 0; i < len(rows) && i < maxHeaderScan; i++ {
		if i != hint {
			candidates = append(candidates, i)
		}
	}
	for _, i := range candidates {
		h := newHeader(rows[i])
		if len(h.missing(required)) == 0 {
			return i, h, nil
		}
	}
	var first []string
	if len(candidates) > 0 {
		first = rows[candidates[0]]
	}
	return -1, nil, fmt.Errorf("%w: %s", ErrColumnNotFound, strings.Join(newHeader(first).missing(required), ", "))
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// timestamp renders a workbook date serial as a naive timestamp. Text cells
// and CSV values are returned unchanged.
func (t table) timestamp(s string) string {
	if !t.workbook || s == "" {
		return s
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return s
	}
	ts, err := excelize.ExcelDateToTime(v, false)
	if err != nil {
		return s
	}
	return ts.Round(time.Second).Format(naiveLayout)
}
