// Package rebate reads the free-text rebate offered on a deal, e.g.
// "$2.00 per case", and turns it into money amounts.
package rebate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var amountPattern = regexp.MustCompile(`\$?\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)

// PerCase extracts the first dollar amount from text. Text that only
// mentions a per-case amount ("$2.00 per case", "2.5/case") is supported;
// anything without a number is an error.
func PerCase(text string) (decimal.Decimal, error) {
	match := amountPattern.FindStringSubmatch(strings.TrimSpace(text))
	if match == nil {
		return decimal.Zero, fmt.Errorf("no rebate amount in %q", text)
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(match[1], ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse rebate amount %q: %w", match[1], err)
	}
	return amount, nil
}

// Estimate multiplies the per-case amount by cases. Unparseable text estimates to zero.
func Estimate(text string, cases int) decimal.Decimal {
	perCase, err := PerCase(text)
	if err != nil || cases <= 0 {
		return decimal.Zero
	}
	return perCase.Mul(decimal.NewFromInt(int64(cases)))
}

// Format renders an amount as dollars with two decimals.
func Format(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
