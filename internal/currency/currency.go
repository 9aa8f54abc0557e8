// Package currency holds the display-currency catalog and formatter.
// Amounts are currency-agnostic numbers; switching the selected code
// only changes display formatting, never the stored values.
package currency

import (
	"strconv"

	xcurrency "golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Code is an ISO 4217 currency code from the supported catalog.
type Code string

// Currency describes one supported display currency.
type Currency struct {
	Code   Code   `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Supported is the fixed catalog. There is no dynamic addition.
var Supported = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
}

// DefaultCode is used when nothing valid has been persisted.
const DefaultCode Code = "USD"

// ByCode looks a currency up in the catalog.
func ByCode(code Code) (Currency, bool) {
	for _, c := range Supported {
		if c.Code == code {
			return c, true
		}
	}

	return Currency{}, false
}

// Format renders the amount in the given currency. If the formatting
// engine rejects the code, it falls back to symbol plus the amount
// fixed to two decimals; it never fails.
func Format(c Currency, amount float64) string {
	unit, err := xcurrency.ParseISO(string(c.Code))
	if err != nil {
		return c.Symbol + strconv.FormatFloat(amount, 'f', 2, 64)
	}

	p := message.NewPrinter(language.English)

	return p.Sprintf("%v", xcurrency.Symbol(unit.Amount(amount)))
}
