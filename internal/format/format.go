// Package format renders calculated figures for display.
package format

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotAvailable is shown in place of values that could not be derived.
const NotAvailable = "N/A"

var printer = message.NewPrinter(language.English)

// Integer rounds v half to even and groups thousands with commas ("12,500").
func Integer(v float64) string {
	return printer.Sprintf("%d", int64(math.RoundToEven(v)))
}

// Count groups thousands with commas.
func Count(v int64) string {
	return printer.Sprintf("%d", v)
}

// Multiplier renders a weighting factor as "1.25x". Whole numbers keep one
// decimal place ("2.0x").
func Multiplier(v float64) string {
	return Decimal(v) + "x"
}

// Decimal renders v with the fewest digits that round-trip, keeping at least
// one decimal place.
func Decimal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Percent appends a percent sign to a value already expressed in percent.
func Percent(v float64) string {
	return Decimal(v) + "%"
}

// Ratio renders a fraction as a percentage with one decimal place ("12.5%").
func Ratio(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return strconv.FormatFloat(*v*100, 'f', 1, 64) + "%"
}

// Currency renders a dollar amount with the given number of decimals.
func Currency(v *float64, decimals int) string {
	if v == nil {
		return NotAvailable
	}
	return "$" + strconv.FormatFloat(*v, 'f', decimals, 64)
}

// Optional renders v with the given number of decimals, or N/A when nil.
func Optional(v *float64, decimals int) string {
	if v == nil {
		return NotAvailable
	}
	return printer.Sprintf("%."+strconv.Itoa(decimals)+"f", *v)
}
