package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatVND renders a whole-dong amount with comma grouping, e.g. 1,250,000.
func FormatVND(amount decimal.Decimal) string {
	return moneyPrinter.Sprintf("%d", amount.Round(0).IntPart())
}
