// Package format renders gold amounts for people.
package format

import (
	"github.com/iwvelando/oreha-calculator/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Gold returns an amount with thousands separators and the gold suffix (e.g., "-1,234.56g").
func Gold(amount float64) string {
	return Number(amount) + "g"
}

// Number returns an amount rounded to silver with thousands separators and no
// unit (e.g., "-1,234.56"). Amounts that round to zero never carry a sign.
func Number(amount float64) string {
	rounded := mathutil.Round(amount)
	if rounded == 0 {
		rounded = 0
	}
	return message.NewPrinter(language.English).Sprintf("%.2f", rounded)
}
