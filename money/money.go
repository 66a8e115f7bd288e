// Package money parses and formats currency amounts the way Brazilian legal documents
// expect them.
//
// Amounts reach the engine in mixed shapes: raw numbers ("10000.5"), values already
// formatted by a person ("10.000,50") or nothing at all. Parsing always follows the
// Brazilian convention (dot groups thousands, comma separates decimals) and all
// arithmetic is done on decimal.Decimal so proportional shares never drift.
package money

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// NotRegistered is the warning sentinel shown when a registry value is missing.
const NotRegistered = "Não cadastrado"

// Zero is the formatted zero amount.
const Zero = "0,00"

var hundred = decimal.NewFromInt(100)

// IsEmpty reports whether s carries no amount: blank, whitespace only, or the
// literal "null" some registry exports write for missing values.
func IsEmpty(s string) bool {
	t := strings.TrimSpace(s)
	return t == "" || t == "null"
}

// Parse converts a Brazilian-formatted amount to a decimal.
// Dots are dropped as thousands separators and the comma becomes the decimal point.
// ok is false for empty or unparseable input.
func Parse(s string) (d decimal.Decimal, ok bool) {
	if IsEmpty(s) {
		return decimal.Zero, false
	}

	clean := strings.ReplaceAll(strings.TrimSpace(s), ".", "")
	clean = strings.Replace(clean, ",", ".", 1)

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// MustParse is like Parse but panics on invalid input.
// Use only in tests or with literals.
func MustParse(s string) decimal.Decimal {
	d, ok := Parse(s)
	if !ok {
		panic("money: invalid amount " + `"` + s + `"`)
	}
	return d
}

// leadingNumber matches the numeric prefix a lenient float parser would consume.
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Leading parses the longest numeric prefix of s using a dot as decimal point and
// ignoring everything after it: "10000.00" is 10000 while "10.000,00" is 10.
func Leading(s string) (decimal.Decimal, bool) {
	m := leadingNumber.FindString(strings.TrimLeft(s, " \t\n\r"))
	if m == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Format renders d with two decimals and thousands grouping: 10.000,00.
// Grouping works on the decimal's digits so amounts of any size stay exact.
func Format(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	whole, cents, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(cents)
	return b.String()
}

// Fixed renders d with two decimals, a dot and no grouping: 5000.00.
func Fixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Share returns total * percentage / 100.
func Share(total, percentage decimal.Decimal) decimal.Decimal {
	return total.Mul(percentage).Div(hundred)
}

// Policy decides how Normalize treats a value for one call site.
type Policy struct {
	// Preformatted lists the characters that mark a value as already formatted.
	// Such values are returned unchanged.
	Preformatted string

	// Empty is returned for empty and unparseable values.
	Empty string

	// RejectZero maps a parsed zero to Empty.
	RejectZero bool
}

var (
	// Liquidation is used for dissolution values: only a comma marks a value as
	// formatted and missing capital counts as zero.
	Liquidation = Policy{Preformatted: ",", Empty: Zero}

	// Display is used for registry summaries: any separator marks a formatted
	// value and missing or zero capital surfaces the warning sentinel.
	Display = Policy{Preformatted: ",.", Empty: NotRegistered, RejectZero: true}
)

// Normalize formats value according to the policy.
func Normalize(value string, p Policy) string {
	if IsEmpty(value) {
		return p.Empty
	}
	if strings.ContainsAny(value, p.Preformatted) {
		return value
	}

	d, ok := Parse(value)
	if !ok || (p.RejectZero && d.IsZero()) {
		return p.Empty
	}
	return Format(d)
}
