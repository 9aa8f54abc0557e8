// Package export serializes the transaction history to CSV, the same
// shape the importer accepts.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/hbarnes/penny/internal/transaction"
)

var header = []string{"date", "description", "category", "amount", "type"}

// WriteCSV writes all transactions to w in the canonical column order,
// preserving the collection's newest-first ordering.
func WriteCSV(w io.Writer, txs []transaction.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		record := []string{
			tx.Date.Format("2006-01-02"),
			tx.Description,
			string(tx.Category),
			strconv.FormatFloat(tx.Amount, 'f', 2, 64),
			string(tx.Type),
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing transaction %s: %w", tx.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}
