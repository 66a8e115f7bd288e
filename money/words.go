package money

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	units    = []string{"", "um", "dois", "três", "quatro", "cinco", "seis", "sete", "oito", "nove"}
	teens    = []string{"dez", "onze", "doze", "treze", "quatorze", "quinze", "dezesseis", "dezessete", "dezoito", "dezenove"}
	tens     = []string{"", "", "vinte", "trinta", "quarenta", "cinquenta", "sessenta", "setenta", "oitenta", "noventa"}
	hundreds = []string{"", "cento", "duzentos", "trezentos", "quatrocentos", "quinhentos", "seiscentos", "setecentos", "oitocentos", "novecentos"}
)

// Words spells out an amount in Brazilian Portuguese, in reais and centavos:
// 430,50 is "Quatrocentos e trinta reais e cinquenta centavos".
// Values up to 999.999.999,99 are supported; the sign is ignored.
func Words(d decimal.Decimal) string {
	d = d.Abs().Round(2)
	whole := d.IntPart()
	cents := d.Sub(decimal.NewFromInt(whole)).Mul(hundred).IntPart()

	var b strings.Builder
	b.WriteString(spell(whole))
	if whole == 1 {
		b.WriteString(" real")
	} else {
		b.WriteString(" reais")
	}

	if cents > 0 {
		b.WriteString(" e ")
		b.WriteString(strings.ToLower(spell(cents)))
		if cents == 1 {
			b.WriteString(" centavo")
		} else {
			b.WriteString(" centavos")
		}
	}
	return b.String()
}

// WordsStub is the simplified spelled-out placeholder used in sale contracts:
// the parsed value with two decimals and a comma, followed by "reais".
func WordsStub(s string) string {
	if IsEmpty(s) {
		return "zero reais"
	}
	d, _ := Parse(s)
	return strings.Replace(Fixed(d), ".", ",", 1) + " reais"
}

func spell(n int64) string {
	if n == 0 {
		return "zero"
	}

	millions := n / 1_000_000
	thousands := (n % 1_000_000) / 1000
	rest := n % 1000

	var parts []string
	if millions > 0 {
		if millions == 1 {
			parts = append(parts, "um milhão")
		} else {
			parts = append(parts, belowThousand(millions)+" milhões")
		}
	}
	if thousands > 0 {
		if thousands == 1 {
			parts = append(parts, "mil")
		} else {
			parts = append(parts, belowThousand(thousands)+" mil")
		}
	}
	if rest > 0 {
		if len(parts) > 0 && rest < 100 {
			parts = append(parts, "e")
		}
		parts = append(parts, belowThousand(rest))
	}

	return capitalize(strings.Join(parts, " "))
}

func belowThousand(n int64) string {
	if n == 100 {
		return "cem"
	}

	var parts []string
	if c := n / 100; c > 0 {
		parts = append(parts, hundreds[c])
	}

	rest := n % 100
	if rest > 0 {
		if len(parts) > 0 {
			parts = append(parts, "e")
		}
		switch {
		case rest < 10:
			parts = append(parts, units[rest])
		case rest < 20:
			parts = append(parts, teens[rest-10])
		default:
			parts = append(parts, tens[rest/10])
			if u := rest % 10; u > 0 {
				parts = append(parts, "e", units[u])
			}
		}
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
