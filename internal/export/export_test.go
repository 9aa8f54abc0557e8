package export_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbarnes/penny/internal/category"
	"github.com/hbarnes/penny/internal/export"
	"github.com/hbarnes/penny/internal/importer"
	"github.com/hbarnes/penny/internal/transaction"
)

func TestWriteCSV(t *testing.T) {
	txs := []transaction.Transaction{
		{
			ID:          uuid.New(),
			Date:        time.Date(2024, 8, 2, 10, 0, 0, 0, time.UTC),
			Description: "Salary",
			Category:    category.Income,
			Amount:      2500,
			Type:        transaction.TypeIncome,
		},
		{
			ID:          uuid.New(),
			Date:        time.Date(2024, 8, 1, 18, 30, 0, 0, time.UTC),
			Description: "Groceries, weekly",
			Category:    category.Food,
			Amount:      -42.5,
			Type:        transaction.TypeExpense,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, txs))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,description,category,amount,type", lines[0])
	assert.Equal(t, "2024-08-02,Salary,Income,2500.00,income", lines[1])
	// The comma in the description must be quoted.
	assert.Equal(t, `2024-08-01,"Groceries, weekly",Food,-42.50,expense`, lines[2])
}

func TestWriteCSV_RoundTripsThroughImporter(t *testing.T) {
	txs := []transaction.Transaction{
		{
			ID:          uuid.New(),
			Date:        time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
			Description: "Bus pass",
			Category:    category.Transport,
			Amount:      -15,
			Type:        transaction.TypeExpense,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, txs))

	params, err := importer.Parse(&buf)
	require.NoError(t, err)
	require.Len(t, params, 1)

	assert.Equal(t, txs[0].Description, params[0].Description)
	assert.Equal(t, txs[0].Category, params[0].Category)
	assert.Equal(t, txs[0].Amount, params[0].Amount)
	assert.Equal(t, txs[0].Type, params[0].Type)
}
