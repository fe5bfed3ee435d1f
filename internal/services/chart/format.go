package chart

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"DashPull/internal/domain/models"
	"DashPull/internal/services/derive"
)

// Formatter renders numbers for one language. French output uses a decimal
// comma and space grouping.
type Formatter struct {
	p *message.Printer
}

// NewFormatter returns a formatter for a normalized language tag.
func NewFormatter(lang string) *Formatter {
	tag := language.French
	if lang == models.LangEN {
		tag = language.English
	}
	return &Formatter{p: message.NewPrinter(tag)}
}

// Grouped formats v with grouping separators and at most decimals fraction
// digits.
func (f *Formatter) Grouped(v float64, decimals int) string {
	return f.p.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(decimals)))
}

// Fixed formats v with exactly decimals fraction digits and no grouping.
func (f *Formatter) Fixed(v float64, decimals int) string {
	v = derive.RoundTo(v, decimals)
	return f.p.Sprintf("%v", number.Decimal(v,
		number.MinFractionDigits(decimals),
		number.MaxFractionDigits(decimals),
		number.NoSeparator(),
	))
}

// Magnitude abbreviates large values with a K, M or B suffix.
func (f *Formatter) Magnitude(v float64) string {
	switch {
	case v >= 1e9:
		return f.Fixed(v/1e9, 1) + "B"
	case v >= 1e6:
		return f.Fixed(v/1e6, 1) + "M"
	case v >= 1e3:
		return f.Fixed(v/1e3, 1) + "K"
	}
	return f.Grouped(v, 3)
}

// Currency prefixes an abbreviated amount, e.g. "R$ 1.2M".
func (f *Formatter) Currency(prefix string, v float64) string {
	return prefix + f.Magnitude(v)
}

// Percent formats a signed percentage.
func (f *Formatter) Percent(v float64, decimals int) string {
	return f.Signed(v, decimals) + "%"
}

// Signed formats v with an explicit plus sign for positive values.
func (f *Formatter) Signed(v float64, decimals int) string {
	v = derive.RoundTo(v, decimals)
	if v == 0 {
		v = math.Abs(v)
	}
	s := f.Fixed(v, decimals)
	if v > 0 {
		return "+" + s
	}
	return s
}

// Spot formats a commodity price, switching to thousands above 1000.
func (f *Formatter) Spot(v float64) string {
	if v >= 1000 {
		return "$" + f.Fixed(v/1000, 1) + "k"
	}
	return "$" + f.Grouped(derive.RoundHalfUp(v), 0)
}
