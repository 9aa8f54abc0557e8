// Package category defines the fixed set of transaction classifications.
package category

// Category classifies a transaction. The set is fixed; "Income" is the
// special category used by income transactions.
type Category string

const (
	Food          Category = "Food"
	Shopping      Category = "Shopping"
	Transport     Category = "Transport"
	Utilities     Category = "Utilities"
	Entertainment Category = "Entertainment"
	Health        Category = "Health"
	Income        Category = "Income"
	Other         Category = "Other"
)

// All lists every category in display order.
var All = []Category{Food, Shopping, Transport, Utilities, Entertainment, Health, Income, Other}

// Valid reports whether c is one of the known categories.
func Valid(c Category) bool {
	for _, known := range All {
		if c == known {
			return true
		}
	}

	return false
}

// Normalize maps unknown names to Other, matching how the dashboard
// renders unclassified spend.
func Normalize(c Category) Category {
	if Valid(c) {
		return c
	}

	return Other
}
