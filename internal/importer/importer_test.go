package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hbarnes/penny/internal/category"
	"github.com/hbarnes/penny/internal/importer"
	"github.com/hbarnes/penny/internal/transaction"
)

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		"date,description,category,amount,type",
		"2024-08-01,Groceries,Food,-42.50,expense",
		"2024-08-02,Salary,Income,2500.00,income",
	}, "\n")

	params, err := importer.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, "Groceries", params[0].Description)
	assert.Equal(t, category.Food, params[0].Category)
	assert.Equal(t, -42.50, params[0].Amount)
	assert.Equal(t, transaction.TypeExpense, params[0].Type)
	require.NotNil(t, params[0].Date)
	assert.Equal(t, time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), *params[0].Date)

	assert.Equal(t, transaction.TypeIncome, params[1].Type)
	assert.Equal(t, 2500.0, params[1].Amount)
}

func TestParse_NoHeaderStillWorks(t *testing.T) {
	params, err := importer.Parse(strings.NewReader("2024-08-01,Bus,Transport,-2.40,expense"))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, category.Transport, params[0].Category)
}

func TestParse_UnknownCategoryNormalizedToOther(t *testing.T) {
	params, err := importer.Parse(strings.NewReader("2024-08-01,Gizmo,Gadgets,-9.99,expense"))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, category.Other, params[0].Category)
}

func TestParse_Malformed(t *testing.T) {
	type testCase struct {
		name  string
		input string
	}

	tests := []testCase{
		{name: "Empty", input: ""},
		{name: "BadDate", input: "08/01/2024,Bus,Transport,-2.40,expense"},
		{name: "BadAmount", input: "2024-08-01,Bus,Transport,two,expense"},
		{name: "BadType", input: "2024-08-01,Bus,Transport,-2.40,transfer"},
		{name: "WrongColumnCount", input: "2024-08-01,Bus,-2.40"},
		{name: "MissingDescription", input: "2024-08-01,,Transport,-2.40,expense"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importer.Parse(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestParse_SignContradictingTypeFailsWholeFile(t *testing.T) {
	input := strings.Join([]string{
		"2024-05-01,Groceries,Food,-20.00,expense",
		"2024-05-02,Salary,Income,-50.00,income",
	}, "\n")

	params, err := importer.Parse(strings.NewReader(input))
	assert.ErrorIs(t, err, transaction.ErrInvalidAmount)
	assert.Nil(t, params)
}
