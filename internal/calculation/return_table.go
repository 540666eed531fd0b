package calculation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rpgo/retirement-cashflow/internal/domain"
	pct "github.com/rpgo/retirement-cashflow/pkg/decimal"
	"github.com/shopspring/decimal"
)

// Return table column headers.
const (
	ColumnAge        = "Age"
	ColumnPortReturn = "Port return"
	ColumnPortVol    = "Port vol"
)

var monthsPerYear = decimal.NewFromInt(12)

// ReturnTable maps age to expected annual portfolio return and volatility.
// It is immutable after loading and safe for concurrent readers.
type ReturnTable struct {
	rows  []domain.ReturnTableRow // sorted by age
	byAge map[int]domain.ReturnTableRow
}

// NewReturnTable builds a table from rows, rejecting duplicate ages.
func NewReturnTable(rows []domain.ReturnTableRow) (*ReturnTable, error) {
	rt := &ReturnTable{
		rows:  make([]domain.ReturnTableRow, 0, len(rows)),
		byAge: make(map[int]domain.ReturnTableRow, len(rows)),
	}
	for _, row := range rows {
		if _, exists := rt.byAge[row.Age]; exists {
			return nil, fmt.Errorf("%w: duplicate age %d", ErrDataFormat, row.Age)
		}
		rt.byAge[row.Age] = row
		rt.rows = append(rt.rows, row)
	}
	sort.Slice(rt.rows, func(i, j int) bool { return rt.rows[i].Age < rt.rows[j].Age })
	return rt, nil
}

// LoadReturnTable loads the return table from a CSV file
func LoadReturnTable(path string) (*ReturnTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open return table %s: %w", path, err)
	}
	defer file.Close()

	return ParseReturnTable(file, path)
}

// ParseReturnTable reads a CSV with Age, Port return and Port vol columns.
// source is only used in error messages.
func ParseReturnTable(r io.Reader, source string) (*ReturnTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s is empty", ErrDataFormat, source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV %s: %w", source, err)
	}

	ageCol, retCol, volCol := -1, -1, -1
	for i, col := range header {
		switch normalizeHeader(col) {
		case normalizeHeader(ColumnAge):
			ageCol = i
		case normalizeHeader(ColumnPortReturn):
			retCol = i
		case normalizeHeader(ColumnPortVol):
			volCol = i
		}
	}
	if ageCol < 0 || retCol < 0 || volCol < 0 {
		return nil, fmt.Errorf("%w: %s must have columns %q, %q and %q, got %v",
			ErrDataFormat, source, ColumnAge, ColumnPortReturn, ColumnPortVol, header)
	}
	width := max(ageCol, retCol, volCol) + 1

	var rows []domain.ReturnTableRow
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV %s: %w", source, err)
		}
		if isBlankRecord(record) {
			continue
		}
		if len(record) < width {
			return nil, fmt.Errorf("%w: %s line %d: expected at least %d columns, got %d",
				ErrDataFormat, source, line, width, len(record))
		}

		age, err := strconv.Atoi(strings.Trim(strings.TrimSpace(record[ageCol]), `"`))
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: invalid age %q", ErrDataFormat, source, line, record[ageCol])
		}
		ret, err := pct.ParsePercentage(record[retCol])
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %s: %v", ErrDataFormat, source, line, ColumnPortReturn, err)
		}
		vol, err := pct.ParsePercentage(record[volCol])
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %s: %v", ErrDataFormat, source, line, ColumnPortVol, err)
		}

		rows = append(rows, domain.ReturnTableRow{Age: age, AnnualReturn: ret, AnnualVolatility: vol})
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s has no data rows", ErrDataFormat, source)
	}

	rt, err := NewReturnTable(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return rt, nil
}

// Lookup returns the row for an age, if present.
func (rt *ReturnTable) Lookup(age int) (domain.ReturnTableRow, bool) {
	row, ok := rt.byAge[age]
	return row, ok
}

// MonthlyReturn returns the annual return for an age divided by 12.
// Ages missing from the table earn zero.
func (rt *ReturnTable) MonthlyReturn(age int) decimal.Decimal {
	row, ok := rt.Lookup(age)
	if !ok {
		return decimal.Zero
	}
	return row.AnnualReturn.Div(monthsPerYear)
}

// AverageFrom returns the arithmetic mean return and volatility over all rows with age >= startAge.
func (rt *ReturnTable) AverageFrom(startAge int) (decimal.Decimal, decimal.Decimal, error) {
	sumReturn, sumVol := decimal.Zero, decimal.Zero
	count := 0
	for _, row := range rt.rows {
		if row.Age < startAge {
			continue
		}
		sumReturn = sumReturn.Add(row.AnnualReturn)
		sumVol = sumVol.Add(row.AnnualVolatility)
		count++
	}
	if count == 0 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: no ages >= %d", ErrEmptyRange, startAge)
	}
	n := decimal.NewFromInt(int64(count))
	return sumReturn.Div(n), sumVol.Div(n), nil
}

// Rows returns a copy of the table sorted by age.
func (rt *ReturnTable) Rows() []domain.ReturnTableRow {
	return append([]domain.ReturnTableRow(nil), rt.rows...)
}

// Len returns the number of ages in the table.
func (rt *ReturnTable) Len() int { return len(rt.rows) }

func normalizeHeader(h string) string {
	h = strings.Trim(strings.TrimSpace(h), `"`)
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}

func isBlankRecord(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
