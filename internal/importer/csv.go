// Package importer loads supplier inventory from a header-plus-rows CSV upload.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Column names recognised in the header row. Order in the file does not matter.
const (
	ColName          = "name"
	ColCategory      = "category"
	ColQuantity      = "quantity"
	ColUnit          = "unit"
	ColPricePerUnit  = "price_per_unit"
	ColDeliveryModes = "delivery_modes"
	ColShelfLife     = "shelf_life"
)

var ErrEmpty = errors.New("import file has no header row")

// Row is one parsed data line ready to be stored.
type Row struct {
	Line            int
	ProductName     string
	Category        string
	Quantity        float64
	Unit            string
	UnitPrice       decimal.Decimal
	DeliveryOptions []string
	ShelfLife       *int
}

// Inserter stores a single row. Each call is independent of the others.
type Inserter interface {
	InsertImported(row Row) error
}

type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type Result struct {
	Inserted int        `json:"inserted"`
	Failed   int        `json:"failed"`
	Errors   []RowError `json:"errors,omitempty"`
}

func (r *Result) fail(line int, err error) {
	r.Failed++
	r.Errors = append(r.Errors, RowError{Line: line, Reason: err.Error()})
}

// Import reads the CSV from src and hands every data row to sink. A bad row is
// counted and skipped; it never aborts the rest of the batch.
func Import(src io.Reader, sink Inserter) (Result, error) {
	var res Result

	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return res, ErrEmpty
	}
	if err != nil {
		return res, fmt.Errorf("failed to read import header: %w", err)
	}
	cols := indexHeader(header)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				res.fail(perr.Line, err)
				continue
			}
			return res, fmt.Errorf("failed to read import file: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if blank(record) {
			continue
		}

		row, err := parseRow(cols, record)
		if err != nil {
			res.fail(line, err)
			continue
		}
		row.Line = line
		if err := sink.InsertImported(row); err != nil {
			res.fail(line, err)
			continue
		}
		res.Inserted++
	}
	return res, nil
}

func indexHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	return cols
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func cell(cols map[string]int, record []string, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseRow(cols map[string]int, record []string) (Row, error) {
	row := Row{
		ProductName: cell(cols, record, ColName),
		Category:    cell(cols, record, ColCategory),
		Unit:        cell(cols, record, ColUnit),
	}

	qty, err := strconv.ParseFloat(cell(cols, record, ColQuantity), 64)
	if err != nil || math.IsNaN(qty) || math.IsInf(qty, 0) {
		return Row{}, fmt.Errorf("quantity %q is not a number", cell(cols, record, ColQuantity))
	}
	if qty < 0 {
		return Row{}, fmt.Errorf("quantity %v is negative", qty)
	}
	row.Quantity = qty

	price, err := decimal.NewFromString(cell(cols, record, ColPricePerUnit))
	if err != nil {
		return Row{}, fmt.Errorf("price_per_unit %q is not a number", cell(cols, record, ColPricePerUnit))
	}
	if price.IsNegative() {
		return Row{}, fmt.Errorf("price_per_unit %s is negative", price)
	}
	row.UnitPrice = price

	row.DeliveryOptions = splitModes(cell(cols, record, ColDeliveryModes))

	if raw := cell(cols, record, ColShelfLife); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return Row{}, fmt.Errorf("shelf_life %q is not a whole number of days", raw)
		}
		row.ShelfLife = &days
	}
	return row, nil
}

// splitModes splits a delivery_modes cell on commas; empty entries are dropped.
func splitModes(v string) []string {
	out := []string{}
	for _, m := range strings.Split(v, ",") {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}
