// ABOUTME: Locale-aware currency, date and percentage formatting
// ABOUTME: Unsupported locales, currencies and dates return models.FormatError
package present

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/harperreed/pipeline/models"
)

// Fallback is shown in place of a value that could not be formatted.
const Fallback = "-"

type localeInfo struct {
	tag         language.Tag
	dateLayout  string
	symbolAfter bool
}

var locales = []localeInfo{
	{tag: language.AmericanEnglish, dateLayout: "1/2/2006"},
	{tag: language.BritishEnglish, dateLayout: "02/01/2006"},
	{tag: language.German, dateLayout: "2.1.2006", symbolAfter: true},
	{tag: language.French, dateLayout: "02/01/2006", symbolAfter: true},
	{tag: language.Spanish, dateLayout: "2/1/2006", symbolAfter: true},
	{tag: language.Japanese, dateLayout: "2006/1/2"},
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(locales))
	for i, l := range locales {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// Formatter turns amounts and timestamps into display strings for one locale.
// BaseCurrency is used for aggregates that mix deals.
type Formatter struct {
	locale       localeInfo
	printer      *message.Printer
	BaseCurrency string
}

func NewFormatter(locale, baseCurrency string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, &models.FormatError{Kind: "locale", Value: locale, Err: err}
	}

	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return nil, &models.FormatError{Kind: "locale", Value: locale}
	}

	if _, err := currency.ParseISO(baseCurrency); err != nil {
		return nil, &models.FormatError{Kind: "currency", Value: baseCurrency, Err: err}
	}

	info := locales[idx]
	return &Formatter{
		locale:       info,
		printer:      message.NewPrinter(info.tag),
		BaseCurrency: strings.ToUpper(baseCurrency),
	}, nil
}

// Locale returns the matched BCP-47 tag, e.g. "en-US".
func (f *Formatter) Locale() string {
	return f.locale.tag.String()
}

// Currency formats amount with the currency's symbol and standard fraction digits.
func (f *Formatter) Currency(amount float64, code string) (string, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", &models.FormatError{Kind: "currency", Value: code, Err: err}
	}

	// Round half away from zero first; %f alone rounds half to even.
	scale, _ := currency.Standard.Rounding(unit)
	pow := math.Pow10(scale)
	rounded := math.Round(math.Abs(amount)*pow) / pow
	num := f.printer.Sprintf(fmt.Sprintf("%%.%df", scale), rounded)
	return f.withSymbol(unit, num, amount < 0 && rounded != 0), nil
}

// CompactCurrency abbreviates large amounts for dashboard cards: $1.3M, $52.5K.
func (f *Formatter) CompactCurrency(amount float64, code string) (string, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", &models.FormatError{Kind: "currency", Value: code, Err: err}
	}

	abs := math.Abs(amount)
	suffix := ""
	value := math.Round(abs)
	format := "%.0f"

	for _, step := range []struct {
		div    float64
		suffix string
	}{{1e6, "M"}, {1e3, "K"}} {
		scaled := math.Round(abs/step.div*10) / 10
		if scaled >= 1 {
			value, suffix, format = scaled, step.suffix, "%.1f"
			break
		}
	}

	num := f.printer.Sprintf(format, value) + suffix
	return f.withSymbol(unit, num, amount < 0), nil
}

func (f *Formatter) withSymbol(unit currency.Unit, num string, negative bool) string {
	sym := f.printer.Sprint(currency.NarrowSymbol(unit))
	sign := ""
	if negative {
		sign = "-"
	}
	if f.locale.symbolAfter {
		return sign + num + " " + sym
	}
	return sign + sym + num
}

// Date parses an RFC 3339 timestamp or a YYYY-MM-DD date and formats it
// in the locale's numeric date layout.
func (f *Formatter) Date(iso string) (string, error) {
	t, err := ParseTimestamp(iso)
	if err != nil {
		return "", err
	}
	return f.DateOf(t), nil
}

// DateOf formats t in its own location.
func (f *Formatter) DateOf(t time.Time) string {
	return t.Format(f.locale.dateLayout)
}

const localDateTime = "2006-01-02T15:04:05"

// ParseTimestamp accepts RFC 3339, a zone-less date-time (read as UTC) and
// YYYY-MM-DD. Other shapes are a FormatError.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(localDateTime, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, &models.FormatError{Kind: "date", Value: s, Err: err}
	}
	return t, nil
}

// Percent rounds to a whole percentage: 66.6 -> "67%". NaN and Inf give Fallback.
func Percent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Fallback
	}
	return fmt.Sprintf("%d%%", int64(math.Round(v)))
}
