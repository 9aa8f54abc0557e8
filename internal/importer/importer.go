// Package importer parses transaction CSV uploads. The expected shape
// is the same one the export endpoint produces:
// date,description,category,amount,type.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hbarnes/penny/internal/category"
	"github.com/hbarnes/penny/internal/encoding"
	"github.com/hbarnes/penny/internal/transaction"
)

const expectedFields = 5

// Parse reads the CSV into create params. The input may be in any
// spreadsheet encoding; it is normalized to UTF-8 first. Rows are
// parsed strictly: a malformed row fails the whole import rather than
// silently dropping entries.
func Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = expectedFields
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	if isHeader(records[0]) {
		records = records[1:]
	}

	params := make([]transaction.CreateParams, 0, len(records))

	for i, rec := range records {
		p, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		params = append(params, p)
	}

	return params, nil
}

func isHeader(rec []string) bool {
	return strings.EqualFold(strings.TrimSpace(rec[0]), "date")
}

func parseRow(rec []string) (transaction.CreateParams, error) {
	date, err := time.Parse(time.DateOnly, strings.TrimSpace(rec[0]))
	if err != nil {
		return transaction.CreateParams{}, fmt.Errorf("invalid date %q", rec[0])
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(rec[3]), 64)
	if err != nil {
		return transaction.CreateParams{}, fmt.Errorf("invalid amount %q", rec[3])
	}

	typ := transaction.Type(strings.ToLower(strings.TrimSpace(rec[4])))
	if typ != transaction.TypeIncome && typ != transaction.TypeExpense {
		return transaction.CreateParams{}, fmt.Errorf("invalid type %q", rec[4])
	}

	p := transaction.CreateParams{
		Description: strings.TrimSpace(rec[1]),
		Category:    category.Normalize(category.Category(strings.TrimSpace(rec[2]))),
		Amount:      amount,
		Type:        typ,
		Date:        &date,
	}

	// Rows must satisfy the same invariants as manual entry, so a bad
	// row fails the whole file before anything is persisted.
	if err := p.Validate(); err != nil {
		return transaction.CreateParams{}, err
	}

	return p, nil
}
