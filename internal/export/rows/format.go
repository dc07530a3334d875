package rows

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Placeholder stands in for a missing optional value.
const Placeholder = "N/A"

// MoneyFormatter renders integer minor units as "<CODE> 1,234.56".
type MoneyFormatter struct {
	unit    currency.Unit
	scale   int
	printer *message.Printer
}

func NewMoneyFormatter(code string) (*MoneyFormatter, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = "USD"
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", code, err)
	}
	scale, _ := currency.Standard.Rounding(unit)
	return &MoneyFormatter{
		unit:    unit,
		scale:   scale,
		printer: message.NewPrinter(language.English),
	}, nil
}

func (f *MoneyFormatter) Code() string { return f.unit.String() }

func (f *MoneyFormatter) Format(minor int64) string {
	major := float64(minor) / math.Pow10(f.scale)
	amount := f.printer.Sprint(number.Decimal(major,
		number.MinFractionDigits(f.scale),
		number.MaxFractionDigits(f.scale),
	))
	return f.unit.String() + " " + amount
}

// Percent renders part/whole as "12.50%"; a zero whole renders "0.00%".
func Percent(part, whole int64) string {
	if whole == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(part)*100/float64(whole))
}

func nameOrPlaceholder(name string) string {
	if strings.TrimSpace(name) == "" {
		return Placeholder
	}
	return name
}
